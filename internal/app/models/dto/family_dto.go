package dto

import "github.com/codewisehub/codewisehub-backend/internal/app/models"

// LinkChildRequest links the authenticated parent to a student account
type LinkChildRequest struct {
	ChildUserID      string                   `json:"childUserId" binding:"required"`
	RelationshipType *models.RelationshipType `json:"relationshipType,omitempty" binding:"omitempty,relationshiptype"`
}
