package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID             string    `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Description    *string   `json:"description,omitempty" db:"description"`
	AgeGroup       AgeGroup  `json:"ageGroup" db:"age_group"`
	Difficulty     *string   `json:"difficulty,omitempty" db:"difficulty"` // 'beginner', 'intermediate', 'advanced'
	Category       *string   `json:"category,omitempty" db:"category"`    // 'programming', 'robotics', 'web-development'
	ImageURL       *string   `json:"imageUrl,omitempty" db:"image_url"`
	EstimatedHours int       `json:"estimatedHours" db:"estimated_hours"`
	TeacherID      *string   `json:"teacherId,omitempty" db:"teacher_id"`
	IsActive       bool      `json:"isActive" db:"is_active"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
}

// Lesson belongs to exactly one course; OrderIndex defines display sequence.
type Lesson struct {
	ID               string     `json:"id" db:"id"`
	CourseID         string     `json:"courseId" db:"course_id"`
	Title            string     `json:"title" db:"title"`
	Description      *string    `json:"description,omitempty" db:"description"`
	Content          *string    `json:"content,omitempty" db:"content"` // JSON string for rich content
	OrderIndex       int        `json:"orderIndex" db:"order_index"`
	Type             LessonType `json:"type" db:"type"`
	EstimatedMinutes int        `json:"estimatedMinutes" db:"estimated_minutes"`
	VideoURL         *string    `json:"videoUrl,omitempty" db:"video_url"`
	IsRequired       bool       `json:"isRequired" db:"is_required"`
	CreatedAt        time.Time  `json:"createdAt" db:"created_at"`
}

// RoboticsActivity is a standalone activity, not linked to any course.
type RoboticsActivity struct {
	ID               string    `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Type             *string   `json:"type,omitempty" db:"type"`             // 'puzzle', 'maze', 'challenge'
	Difficulty       *string   `json:"difficulty,omitempty" db:"difficulty"` // 'easy', 'medium', 'hard'
	AgeGroup         AgeGroup  `json:"ageGroup" db:"age_group"`
	Instructions     *string   `json:"instructions,omitempty" db:"instructions"` // JSON string
	Solution         *string   `json:"solution,omitempty" db:"solution"`         // JSON string
	EstimatedMinutes int       `json:"estimatedMinutes" db:"estimated_minutes"`
	Points           int       `json:"points" db:"points"`
	ImageURL         *string   `json:"imageUrl,omitempty" db:"image_url"`
	IsActive         bool      `json:"isActive" db:"is_active"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}
