package dto

import "github.com/codewisehub/codewisehub-backend/internal/app/models"

// SignUpRequest represents a registration request. Role-specific fields are
// optional at the binding level and checked by the auth service per role.
type SignUpRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=6"`
	Name     string      `json:"name" binding:"required"`
	Role     models.Role `json:"role" binding:"required,userrole"`

	// Student fields
	AgeGroup  *models.AgeGroup `json:"ageGroup,omitempty" binding:"omitempty,agegroup"`
	PackageID *string          `json:"packageId,omitempty"`

	// School admin fields
	SchoolName *string `json:"schoolName,omitempty"`

	// Parent fields
	ChildName *string `json:"childName,omitempty"`
}

// SignInRequest represents login credentials
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents a successful sign-up or sign-in. The session token
// is also delivered as an HttpOnly cookie; the body copy serves clients that
// prefer the Authorization header.
type AuthResponse struct {
	User         *models.User `json:"user"`
	SessionToken string       `json:"sessionToken"`
}
