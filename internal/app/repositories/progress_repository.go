package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
)

// IProgressRepository defines the interface for progress, project and
// achievement operations
type IProgressRepository interface {
	Upsert(ctx context.Context, progress *models.UserProgress) error
	ListByUser(ctx context.Context, userID string) ([]*models.UserProgress, error)
	CreateProject(ctx context.Context, project *models.Project) error
	ListProjects(ctx context.Context, userID string) ([]*models.Project, error)
	CreateAchievement(ctx context.Context, achievement *models.Achievement) error
	ListAchievements(ctx context.Context, userID string) ([]*models.Achievement, error)
}

// ProgressRepository handles user_progress, projects and achievements
// database operations
type ProgressRepository struct {
	db *pgxpool.Pool
}

// NewProgressRepository creates a new ProgressRepository
func NewProgressRepository(db *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Upsert writes a progress record for (user, course). The unique pair
// constraint turns a second submit into a full overwrite of the counters, so
// concurrent submits settle on last-write-wins.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *models.UserProgress) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO user_progress (user_id, course_id, lessons_completed,
			projects_completed, total_score, level)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT ON CONSTRAINT user_progress_user_course_key DO UPDATE SET
			lessons_completed = EXCLUDED.lessons_completed,
			projects_completed = EXCLUDED.projects_completed,
			total_score = EXCLUDED.total_score,
			level = EXCLUDED.level,
			updated_at = NOW()
		RETURNING id, updated_at`,
		progress.UserID, progress.CourseID, progress.LessonsCompleted,
		progress.ProjectsCompleted, progress.TotalScore, progress.Level).
		Scan(&progress.ID, &progress.UpdatedAt)

	if err != nil {
		return fmt.Errorf("error upserting progress: %w", err)
	}

	return nil
}

// ListByUser returns all progress records for a user
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]*models.UserProgress, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, course_id, lessons_completed, projects_completed,
			total_score, level, updated_at
		FROM user_progress
		WHERE user_id = $1
		ORDER BY updated_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing progress: %w", err)
	}
	defer rows.Close()

	var records []*models.UserProgress
	for rows.Next() {
		record := &models.UserProgress{}
		err := rows.Scan(
			&record.ID, &record.UserID, &record.CourseID, &record.LessonsCompleted,
			&record.ProjectsCompleted, &record.TotalScore, &record.Level,
			&record.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning progress record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// CreateProject appends a saved project
func (r *ProgressRepository) CreateProject(ctx context.Context, project *models.Project) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO projects (user_id, title, description, code, project_type, is_completed)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		project.UserID, project.Title, project.Description, project.Code,
		project.ProjectType, project.IsCompleted).
		Scan(&project.ID, &project.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating project: %w", err)
	}

	return nil
}

// ListProjects returns a user's projects, newest first
func (r *ProgressRepository) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, title, description, code, project_type, is_completed, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(
			&project.ID, &project.UserID, &project.Title, &project.Description,
			&project.Code, &project.ProjectType, &project.IsCompleted,
			&project.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

// CreateAchievement appends an earned badge
func (r *ProgressRepository) CreateAchievement(ctx context.Context, achievement *models.Achievement) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO achievements (user_id, badge_type, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id, earned_at`,
		achievement.UserID, achievement.BadgeType, achievement.Title,
		achievement.Description).
		Scan(&achievement.ID, &achievement.EarnedAt)

	if err != nil {
		return fmt.Errorf("error creating achievement: %w", err)
	}

	return nil
}

// ListAchievements returns a user's achievements, newest first
func (r *ProgressRepository) ListAchievements(ctx context.Context, userID string) ([]*models.Achievement, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, badge_type, title, description, earned_at
		FROM achievements
		WHERE user_id = $1
		ORDER BY earned_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*models.Achievement
	for rows.Next() {
		achievement := &models.Achievement{}
		err := rows.Scan(
			&achievement.ID, &achievement.UserID, &achievement.BadgeType,
			&achievement.Title, &achievement.Description, &achievement.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning achievement: %w", err)
		}
		achievements = append(achievements, achievement)
	}
	return achievements, rows.Err()
}
