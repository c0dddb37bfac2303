package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// CourseFilter narrows course listings. SchoolID restricts to courses taught
// by teachers of that school.
type CourseFilter struct {
	AgeGroup *models.AgeGroup
	SchoolID *string
}

// ICourseRepository defines the interface for course and lesson operations
type ICourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]*models.Course, error)
	GetByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error)
	CreateLesson(ctx context.Context, lesson *models.Lesson) error
}

// CourseRepository handles course and lesson database operations
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const courseColumns = "c.id, c.title, c.description, c.age_group, c.difficulty, c.category, c.image_url, c.estimated_hours, c.teacher_id, c.is_active, c.created_at"

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(
		&course.ID, &course.Title, &course.Description, &course.AgeGroup,
		&course.Difficulty, &course.Category, &course.ImageURL,
		&course.EstimatedHours, &course.TeacherID, &course.IsActive, &course.CreatedAt)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// List returns courses matching the filter
func (r *CourseRepository) List(ctx context.Context, filter CourseFilter) ([]*models.Course, error) {
	builder := r.sb.Select(courseColumns).From("courses c").OrderBy("c.created_at")
	if filter.AgeGroup != nil {
		builder = builder.Where(squirrel.Eq{"c.age_group": *filter.AgeGroup})
	}
	if filter.SchoolID != nil {
		builder = builder.
			Join("users t ON t.id = c.teacher_id").
			Where(squirrel.Eq{"t.school_id": *filter.SchoolID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id string) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRow(ctx, `
		SELECT id, title, description, age_group, difficulty, category, image_url,
			estimated_hours, teacher_id, is_active, created_at
		FROM courses WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.EstimatedHours == 0 {
		course.EstimatedHours = 10
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO courses (title, description, age_group, difficulty, category,
			image_url, estimated_hours, teacher_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		course.Title, course.Description, course.AgeGroup, course.Difficulty,
		course.Category, course.ImageURL, course.EstimatedHours, course.TeacherID,
		course.IsActive).Scan(&course.ID, &course.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// ListLessons returns a course's lessons in display order
func (r *CourseRepository) ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, title, description, content, order_index, type,
			estimated_minutes, video_url, is_required, created_at
		FROM lessons
		WHERE course_id = $1
		ORDER BY order_index`, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing lessons: %w", err)
	}
	defer rows.Close()

	var lessons []*models.Lesson
	for rows.Next() {
		lesson := &models.Lesson{}
		err := rows.Scan(
			&lesson.ID, &lesson.CourseID, &lesson.Title, &lesson.Description,
			&lesson.Content, &lesson.OrderIndex, &lesson.Type,
			&lesson.EstimatedMinutes, &lesson.VideoURL, &lesson.IsRequired,
			&lesson.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning lesson: %w", err)
		}
		lessons = append(lessons, lesson)
	}
	return lessons, rows.Err()
}

// CreateLesson inserts a new lesson into a course
func (r *CourseRepository) CreateLesson(ctx context.Context, lesson *models.Lesson) error {
	if lesson.EstimatedMinutes == 0 {
		lesson.EstimatedMinutes = 30
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO lessons (course_id, title, description, content, order_index,
			type, estimated_minutes, video_url, is_required)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		lesson.CourseID, lesson.Title, lesson.Description, lesson.Content,
		lesson.OrderIndex, lesson.Type, lesson.EstimatedMinutes, lesson.VideoURL,
		lesson.IsRequired).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating lesson: %w", err)
	}

	return nil
}
