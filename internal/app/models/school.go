package models

import "time"

// School defines the school model based on the 'schools' table.
// CurrentStudents is a derived count: it is recomputed from student rows on
// every school-scoped user creation rather than incremented, so it self-heals
// from drift.
type School struct {
	ID                 string             `json:"id" db:"id"`
	Name               string             `json:"name" db:"name"`
	Address            *string            `json:"address,omitempty" db:"address"`
	Phone              *string            `json:"phone,omitempty" db:"phone"`
	Email              *string            `json:"email,omitempty" db:"email"`
	AdminUserID        *string            `json:"adminUserId,omitempty" db:"admin_user_id"`
	PackageID          *string            `json:"packageId,omitempty" db:"package_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus" db:"subscription_status"`
	SubscriptionStart  *time.Time         `json:"subscriptionStart,omitempty" db:"subscription_start"`
	SubscriptionEnd    *time.Time         `json:"subscriptionEnd,omitempty" db:"subscription_end"`
	MaxStudents        int                `json:"maxStudents" db:"max_students"`
	CurrentStudents    int                `json:"currentStudents" db:"current_students"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
}

// Package defines a purchasable subscription tier based on the 'packages' table
type Package struct {
	ID          string      `json:"id" db:"id"`
	Name        string      `json:"name" db:"name"`
	Description *string     `json:"description,omitempty" db:"description"`
	Price       string      `json:"price" db:"price"` // decimal(10,2), kept as string to avoid float drift
	Currency    string      `json:"currency" db:"currency"`
	Duration    string      `json:"duration" db:"duration"` // 'monthly', 'yearly'
	Features    *string     `json:"features,omitempty" db:"features"` // JSON array of feature strings
	MaxStudents *int        `json:"maxStudents,omitempty" db:"max_students"` // school packages only
	PackageType PackageType `json:"packageType" db:"package_type"`
	IsActive    bool        `json:"isActive" db:"is_active"`
	CreatedAt   time.Time   `json:"createdAt" db:"created_at"`
}
