package dto

import "github.com/codewisehub/codewisehub-backend/internal/app/models"

// CreateSchoolRequest represents a new school registration
type CreateSchoolRequest struct {
	Name        string  `json:"name" binding:"required"`
	Address     *string `json:"address,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	PackageID   *string `json:"packageId,omitempty"`
	MaxStudents int     `json:"maxStudents,omitempty"`
}

// CreatePackageRequest represents a new subscription package. Price travels as
// a decimal string to avoid float drift.
type CreatePackageRequest struct {
	Name        string             `json:"name" binding:"required"`
	Description *string            `json:"description,omitempty"`
	Price       string             `json:"price" binding:"required"`
	Currency    *string            `json:"currency,omitempty" binding:"omitempty,len=3"`
	Duration    string             `json:"duration" binding:"required,oneof=monthly yearly"`
	Features    *string            `json:"features,omitempty"`
	MaxStudents *int               `json:"maxStudents,omitempty" binding:"omitempty,min=1"`
	PackageType models.PackageType `json:"packageType" binding:"required,packagetype"`
}

// CreateSchoolUserRequest represents a school-scoped account created by a
// school admin. Only student and teacher roles are accepted.
type CreateSchoolUserRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required,oneof=student teacher"`

	AgeGroup *models.AgeGroup `json:"ageGroup,omitempty" binding:"omitempty,agegroup"`
	Grade    *string          `json:"grade,omitempty"`
	Subjects *string          `json:"subjects,omitempty"`
}
