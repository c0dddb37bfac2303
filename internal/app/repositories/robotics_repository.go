package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
)

// IRoboticsRepository defines the interface for robotics activity operations
type IRoboticsRepository interface {
	List(ctx context.Context, ageGroup *models.AgeGroup) ([]*models.RoboticsActivity, error)
	Create(ctx context.Context, activity *models.RoboticsActivity) error
	Count(ctx context.Context) (int, error)
}

// RoboticsRepository handles robotics_activities database operations
type RoboticsRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewRoboticsRepository creates a new RoboticsRepository
func NewRoboticsRepository(db *pgxpool.Pool) *RoboticsRepository {
	return &RoboticsRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanRoboticsActivity(row pgx.Row) (*models.RoboticsActivity, error) {
	activity := &models.RoboticsActivity{}
	err := row.Scan(
		&activity.ID, &activity.Title, &activity.Description, &activity.Type,
		&activity.Difficulty, &activity.AgeGroup, &activity.Instructions,
		&activity.Solution, &activity.EstimatedMinutes, &activity.Points,
		&activity.ImageURL, &activity.IsActive, &activity.CreatedAt)
	if err != nil {
		return nil, err
	}
	return activity, nil
}

// List returns robotics activities, optionally filtered by age group
func (r *RoboticsRepository) List(ctx context.Context, ageGroup *models.AgeGroup) ([]*models.RoboticsActivity, error) {
	builder := r.sb.Select("id", "title", "description", "type", "difficulty",
		"age_group", "instructions", "solution", "estimated_minutes", "points",
		"image_url", "is_active", "created_at").
		From("robotics_activities").
		OrderBy("created_at")
	if ageGroup != nil {
		builder = builder.Where(squirrel.Eq{"age_group": *ageGroup})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list activities query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing robotics activities: %w", err)
	}
	defer rows.Close()

	var activities []*models.RoboticsActivity
	for rows.Next() {
		activity, err := scanRoboticsActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning robotics activity: %w", err)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

// Create inserts a new robotics activity
func (r *RoboticsRepository) Create(ctx context.Context, activity *models.RoboticsActivity) error {
	if activity.EstimatedMinutes == 0 {
		activity.EstimatedMinutes = 30
	}
	if activity.Points == 0 {
		activity.Points = 10
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO robotics_activities (title, description, type, difficulty,
			age_group, instructions, solution, estimated_minutes, points,
			image_url, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at`,
		activity.Title, activity.Description, activity.Type, activity.Difficulty,
		activity.AgeGroup, activity.Instructions, activity.Solution,
		activity.EstimatedMinutes, activity.Points, activity.ImageURL,
		activity.IsActive).Scan(&activity.ID, &activity.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating robotics activity: %w", err)
	}

	return nil
}

// Count returns the total number of robotics activities. Used by seeding to
// decide whether starter content is needed.
func (r *RoboticsRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM robotics_activities`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting robotics activities: %w", err)
	}
	return count, nil
}
