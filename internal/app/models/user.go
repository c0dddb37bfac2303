package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                 string             `json:"id" db:"id"`
	Email              string             `json:"email" db:"email"`
	PasswordHash       *string            `json:"-" db:"password_hash"` // nullable: invited/placeholder accounts have none
	Name               string             `json:"name" db:"name"`
	Role               Role               `json:"role" db:"role"`
	AgeGroup           *AgeGroup          `json:"ageGroup,omitempty" db:"age_group"`
	PackageID          *string            `json:"packageId,omitempty" db:"package_id"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus" db:"subscription_status"`
	SubscriptionStart  *time.Time         `json:"subscriptionStart,omitempty" db:"subscription_start"`
	SubscriptionEnd    *time.Time         `json:"subscriptionEnd,omitempty" db:"subscription_end"`
	SchoolID           *string            `json:"schoolId,omitempty" db:"school_id"`
	ParentUserID       *string            `json:"parentUserId,omitempty" db:"parent_user_id"`
	Grade              *string            `json:"grade,omitempty" db:"grade"`
	Subjects           *string            `json:"subjects,omitempty" db:"subjects"` // JSON array, teachers only
	LastLoginAt        *time.Time         `json:"lastLoginAt,omitempty" db:"last_login_at"`
	IsActive           bool               `json:"isActive" db:"is_active"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}

// UserSession defines a server-side session row backing a signed session token.
// The token itself carries an embedded expiry; the row carries its own. Both
// must hold for the session to authenticate anyone.
type UserSession struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"userId" db:"user_id"`
	SessionToken string    `json:"-" db:"session_token"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	UserAgent    *string   `json:"userAgent,omitempty" db:"user_agent"`
	IPAddress    *string   `json:"ipAddress,omitempty" db:"ip_address"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// ParentChildRelation links a parent account to a student account (many-to-many)
type ParentChildRelation struct {
	ID               string           `json:"id" db:"id"`
	ParentUserID     string           `json:"parentUserId" db:"parent_user_id"`
	ChildUserID      string           `json:"childUserId" db:"child_user_id"`
	RelationshipType RelationshipType `json:"relationshipType" db:"relationship_type"`
	IsActive         bool             `json:"isActive" db:"is_active"`
	CreatedAt        time.Time        `json:"createdAt" db:"created_at"`
}
