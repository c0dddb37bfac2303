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

// IPackageRepository defines the interface for package database operations
type IPackageRepository interface {
	List(ctx context.Context, packageType *models.PackageType) ([]*models.Package, error)
	GetByID(ctx context.Context, id string) (*models.Package, error)
	Create(ctx context.Context, pkg *models.Package) error
}

// PackageRepository handles package database operations
type PackageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewPackageRepository creates a new PackageRepository
func NewPackageRepository(db *pgxpool.Pool) *PackageRepository {
	return &PackageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanPackage(row pgx.Row) (*models.Package, error) {
	pkg := &models.Package{}
	err := row.Scan(
		&pkg.ID, &pkg.Name, &pkg.Description, &pkg.Price, &pkg.Currency,
		&pkg.Duration, &pkg.Features, &pkg.MaxStudents, &pkg.PackageType,
		&pkg.IsActive, &pkg.CreatedAt)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// List returns packages, optionally filtered by package type
func (r *PackageRepository) List(ctx context.Context, packageType *models.PackageType) ([]*models.Package, error) {
	builder := r.sb.Select("id", "name", "description", "price::text", "currency",
		"duration", "features", "max_students", "package_type", "is_active", "created_at").
		From("packages").
		OrderBy("price")
	if packageType != nil {
		builder = builder.Where(squirrel.Eq{"package_type": *packageType})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list packages query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing packages: %w", err)
	}
	defer rows.Close()

	var packages []*models.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning package: %w", err)
		}
		packages = append(packages, pkg)
	}
	return packages, rows.Err()
}

// GetByID retrieves a package by ID
func (r *PackageRepository) GetByID(ctx context.Context, id string) (*models.Package, error) {
	pkg, err := scanPackage(r.db.QueryRow(ctx, `
		SELECT id, name, description, price::text, currency, duration, features,
			max_students, package_type, is_active, created_at
		FROM packages WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrPackageNotFound
		}
		return nil, fmt.Errorf("error retrieving package: %w", err)
	}
	return pkg, nil
}

// Create inserts a new package
func (r *PackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	if pkg.Currency == "" {
		pkg.Currency = "USD"
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO packages (name, description, price, currency, duration,
			features, max_students, package_type, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		pkg.Name, pkg.Description, pkg.Price, pkg.Currency, pkg.Duration,
		pkg.Features, pkg.MaxStudents, pkg.PackageType, pkg.IsActive).
		Scan(&pkg.ID, &pkg.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating package: %w", err)
	}

	return nil
}
