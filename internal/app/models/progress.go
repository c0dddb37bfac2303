package models

import "time"

// UserProgress tracks a user's progress in a single course. There is at most
// one row per (userId, courseId); re-submitting overwrites the counters.
type UserProgress struct {
	ID                string    `json:"id" db:"id"`
	UserID            string    `json:"userId" db:"user_id"`
	CourseID          string    `json:"courseId" db:"course_id"`
	LessonsCompleted  int       `json:"lessonsCompleted" db:"lessons_completed"`
	ProjectsCompleted int       `json:"projectsCompleted" db:"projects_completed"`
	TotalScore        int       `json:"totalScore" db:"total_score"`
	Level             int       `json:"level" db:"level"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Project is an append-only record of a saved playground project.
type Project struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Code        *string   `json:"code,omitempty" db:"code"`
	ProjectType *string   `json:"projectType,omitempty" db:"project_type"` // 'blockly', 'javascript', 'microbit'
	IsCompleted bool      `json:"isCompleted" db:"is_completed"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Achievement is an append-only badge record owned by a user.
type Achievement struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	BadgeType   string    `json:"badgeType" db:"badge_type"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	EarnedAt    time.Time `json:"earnedAt" db:"earned_at"`
}
