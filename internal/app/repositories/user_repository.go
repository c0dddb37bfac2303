package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/dberrors"
)

const userColumns = `id, email, password_hash, name, role, age_group, package_id,
	subscription_status, subscription_start, subscription_end, school_id,
	parent_user_id, grade, subjects, last_login_at, is_active, created_at, updated_at`

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateLastLogin(ctx context.Context, userID string) error
	UpdatePackage(ctx context.Context, userID, packageID string) (*models.User, error)
	UpdateSubscriptionStatus(ctx context.Context, userID string, status models.SubscriptionStatus) error
	LinkSchool(ctx context.Context, userID, schoolID string) error
	SearchStudentByEmail(ctx context.Context, email string) (*models.User, error)
	ListBySchool(ctx context.Context, schoolID string, role *models.Role) ([]*models.User, error)
	CountStudentsBySchool(ctx context.Context, schoolID string) (int, error)
}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.Name, &user.Role,
		&user.AgeGroup, &user.PackageID, &user.SubscriptionStatus,
		&user.SubscriptionStart, &user.SubscriptionEnd, &user.SchoolID,
		&user.ParentUserID, &user.Grade, &user.Subjects, &user.LastLoginAt,
		&user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Create inserts a new user and fills in the generated id and timestamps.
// A duplicate email surfaces as apperrors.ErrEmailAlreadyExists via the
// users_email_key constraint, which makes concurrent signups with the same
// address race-safe without a separate existence check.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, name, role, age_group, package_id,
			subscription_status, subscription_start, subscription_end, school_id,
			parent_user_id, grade, subjects, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.Name, user.Role, user.AgeGroup,
		user.PackageID, user.SubscriptionStatus, user.SubscriptionStart,
		user.SubscriptionEnd, user.SchoolID, user.ParentUserID, user.Grade,
		user.Subjects, user.IsActive).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "users_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Lookup is exact; emails are stored
// case-sensitively.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}
	return user, nil
}

// UpdateLastLogin updates the last login time
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to update last login time: %w", err)
	}
	return nil
}

// UpdatePackage points the user at a package, activates the subscription and
// stamps its start. Last write wins on repeated selection.
func (r *UserRepository) UpdatePackage(ctx context.Context, userID, packageID string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, `
		UPDATE users
		SET package_id = $1,
			subscription_status = $2,
			subscription_start = NOW(),
			updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns,
		packageID, models.SubscriptionActive, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating user package: %w", err)
	}
	return user, nil
}

// UpdateSubscriptionStatus sets the subscription status of a user.
func (r *UserRepository) UpdateSubscriptionStatus(ctx context.Context, userID string, status models.SubscriptionStatus) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET subscription_status = $1, updated_at = NOW() WHERE id = $2`,
		status, userID)
	if err != nil {
		return fmt.Errorf("error updating subscription status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// LinkSchool associates a user with a school.
func (r *UserRepository) LinkSchool(ctx context.Context, userID, schoolID string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE users SET school_id = $1, updated_at = NOW() WHERE id = $2`,
		schoolID, userID)
	if err != nil {
		return fmt.Errorf("error linking user to school: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SearchStudentByEmail finds a student account by exact email. Used by parent
// dashboards to locate a child account; non-student accounts are invisible to
// this search.
func (r *UserRepository) SearchStudentByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 AND role = $2`,
		email, models.RoleStudent))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching student: %w", err)
	}
	return user, nil
}

// ListBySchool lists users belonging to a school, optionally filtered by role.
func (r *UserRepository) ListBySchool(ctx context.Context, schoolID string, role *models.Role) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE school_id = $1`
	args := []interface{}{schoolID}
	if role != nil {
		query += ` AND role = $2`
		args = append(args, *role)
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing school users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning school user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// CountStudentsBySchool counts student-role users bound to a school. This is
// the source of truth behind schools.current_students.
func (r *UserRepository) CountStudentsBySchool(ctx context.Context, schoolID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE school_id = $1 AND role = $2`,
		schoolID, models.RoleStudent).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting school students: %w", err)
	}
	return count, nil
}
