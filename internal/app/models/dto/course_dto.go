package dto

import "github.com/codewisehub/codewisehub-backend/internal/app/models"

// CreateCourseRequest represents a new course definition
type CreateCourseRequest struct {
	Title          string          `json:"title" binding:"required"`
	Description    *string         `json:"description,omitempty"`
	AgeGroup       models.AgeGroup `json:"ageGroup" binding:"required,agegroup"`
	Difficulty     *string         `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
	Category       *string         `json:"category,omitempty"`
	ImageURL       *string         `json:"imageUrl,omitempty"`
	EstimatedHours int             `json:"estimatedHours,omitempty"`
}

// CreateLessonRequest represents a new lesson within a course
type CreateLessonRequest struct {
	Title            string            `json:"title" binding:"required"`
	Description      *string           `json:"description,omitempty"`
	Content          *string           `json:"content,omitempty"`
	OrderIndex       int               `json:"orderIndex" binding:"min=0"`
	Type             models.LessonType `json:"type" binding:"required,lessontype"`
	EstimatedMinutes int               `json:"estimatedMinutes,omitempty"`
	VideoURL         *string           `json:"videoUrl,omitempty"`
	IsRequired       *bool             `json:"isRequired,omitempty"`
}

// CreateRoboticsActivityRequest represents a new standalone robotics activity
type CreateRoboticsActivityRequest struct {
	Title            string          `json:"title" binding:"required"`
	Description      string          `json:"description" binding:"required"`
	Type             *string         `json:"type,omitempty" binding:"omitempty,oneof=puzzle maze challenge"`
	Difficulty       *string         `json:"difficulty,omitempty" binding:"omitempty,oneof=easy medium hard"`
	AgeGroup         models.AgeGroup `json:"ageGroup" binding:"required,agegroup"`
	Instructions     *string         `json:"instructions,omitempty"`
	Solution         *string         `json:"solution,omitempty"`
	EstimatedMinutes int             `json:"estimatedMinutes,omitempty"`
	Points           int             `json:"points,omitempty"`
	ImageURL         *string         `json:"imageUrl,omitempty"`
}
