package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

const schoolColumns = `id, name, address, phone, email, admin_user_id, package_id,
	subscription_status, subscription_start, subscription_end, max_students,
	current_students, created_at`

// ISchoolRepository defines the interface for school database operations
type ISchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id string) (*models.School, error)
	SetStudentCount(ctx context.Context, schoolID string, count int) error
}

// SchoolRepository handles school database operations
type SchoolRepository struct {
	db *pgxpool.Pool
}

// NewSchoolRepository creates a new SchoolRepository
func NewSchoolRepository(db *pgxpool.Pool) *SchoolRepository {
	return &SchoolRepository{db: db}
}

func scanSchool(row pgx.Row) (*models.School, error) {
	school := &models.School{}
	err := row.Scan(
		&school.ID, &school.Name, &school.Address, &school.Phone, &school.Email,
		&school.AdminUserID, &school.PackageID, &school.SubscriptionStatus,
		&school.SubscriptionStart, &school.SubscriptionEnd, &school.MaxStudents,
		&school.CurrentStudents, &school.CreatedAt)
	if err != nil {
		return nil, err
	}
	return school, nil
}

// Create inserts a new school and fills in the generated id and timestamps
func (r *SchoolRepository) Create(ctx context.Context, school *models.School) error {
	if school.SubscriptionStatus == "" {
		school.SubscriptionStatus = models.SubscriptionActive
	}
	if school.MaxStudents == 0 {
		school.MaxStudents = 100
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO schools (name, address, phone, email, admin_user_id, package_id,
			subscription_status, subscription_start, subscription_end, max_students)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, current_students, created_at`,
		school.Name, school.Address, school.Phone, school.Email, school.AdminUserID,
		school.PackageID, school.SubscriptionStatus, school.SubscriptionStart,
		school.SubscriptionEnd, school.MaxStudents).
		Scan(&school.ID, &school.CurrentStudents, &school.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating school: %w", err)
	}

	return nil
}

// GetByID retrieves a school by ID
func (r *SchoolRepository) GetByID(ctx context.Context, id string) (*models.School, error) {
	school, err := scanSchool(r.db.QueryRow(ctx,
		`SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSchoolNotFound
		}
		return nil, fmt.Errorf("error retrieving school: %w", err)
	}
	return school, nil
}

// SetStudentCount writes the derived current_students counter. Callers pass a
// fresh recount, never a delta.
func (r *SchoolRepository) SetStudentCount(ctx context.Context, schoolID string, count int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE schools SET current_students = $1 WHERE id = $2`, count, schoolID)
	if err != nil {
		return fmt.Errorf("error updating school student count: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSchoolNotFound
	}
	return nil
}
