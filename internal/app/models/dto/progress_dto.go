package dto

// UpsertProgressRequest overwrites the caller's progress counters for a course
type UpsertProgressRequest struct {
	CourseID          string `json:"courseId" binding:"required"`
	LessonsCompleted  int    `json:"lessonsCompleted" binding:"min=0"`
	ProjectsCompleted int    `json:"projectsCompleted" binding:"min=0"`
	TotalScore        int    `json:"totalScore" binding:"min=0"`
	Level             int    `json:"level" binding:"min=0"`
}

// CreateProjectRequest saves a playground project for the caller
type CreateProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
	Code        *string `json:"code,omitempty"`
	ProjectType *string `json:"projectType,omitempty" binding:"omitempty,oneof=blockly javascript microbit"`
	IsCompleted bool    `json:"isCompleted"`
}

// CreateAchievementRequest records an earned badge for the caller
type CreateAchievementRequest struct {
	BadgeType   string  `json:"badgeType" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description,omitempty"`
}
