package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
)

// IRelationRepository defines the interface for parent-child link operations
type IRelationRepository interface {
	Create(ctx context.Context, relation *models.ParentChildRelation) error
	Exists(ctx context.Context, parentUserID, childUserID string) (bool, error)
	ListChildren(ctx context.Context, parentUserID string) ([]*models.User, error)
	ListParents(ctx context.Context, childUserID string) ([]*models.User, error)
}

// RelationRepository handles parent_child_relations database operations
type RelationRepository struct {
	db *pgxpool.Pool
}

// NewRelationRepository creates a new RelationRepository
func NewRelationRepository(db *pgxpool.Pool) *RelationRepository {
	return &RelationRepository{db: db}
}

// Create inserts a new parent-child link. The table carries no uniqueness
// constraint on the pair, so duplicate links are accepted here; rejecting them
// is a service-level policy decision.
func (r *RelationRepository) Create(ctx context.Context, relation *models.ParentChildRelation) error {
	if relation.RelationshipType == "" {
		relation.RelationshipType = models.RelationshipParent
	}

	err := r.db.QueryRow(ctx, `
		INSERT INTO parent_child_relations (parent_user_id, child_user_id, relationship_type, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		relation.ParentUserID, relation.ChildUserID, relation.RelationshipType,
		relation.IsActive).Scan(&relation.ID, &relation.CreatedAt)

	if err != nil {
		return fmt.Errorf("error creating parent-child relation: %w", err)
	}

	return nil
}

// Exists reports whether a link between the given parent and child already
// exists, regardless of relationship type.
func (r *RelationRepository) Exists(ctx context.Context, parentUserID, childUserID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM parent_child_relations
			WHERE parent_user_id = $1 AND child_user_id = $2)`,
		parentUserID, childUserID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking parent-child relation: %w", err)
	}
	return exists, nil
}

// ListChildren returns the student accounts linked to a parent.
func (r *RelationRepository) ListChildren(ctx context.Context, parentUserID string) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.password_hash, u.name, u.role, u.age_group,
			u.package_id, u.subscription_status, u.subscription_start,
			u.subscription_end, u.school_id, u.parent_user_id, u.grade, u.subjects,
			u.last_login_at, u.is_active, u.created_at, u.updated_at
		FROM parent_child_relations pcr
		JOIN users u ON u.id = pcr.child_user_id
		WHERE pcr.parent_user_id = $1
		ORDER BY pcr.created_at`, parentUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing children: %w", err)
	}
	defer rows.Close()

	var children []*models.User
	for rows.Next() {
		child, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning child user: %w", err)
		}
		children = append(children, child)
	}
	return children, rows.Err()
}

// ListParents returns the parent accounts linked to a student.
func (r *RelationRepository) ListParents(ctx context.Context, childUserID string) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.id, u.email, u.password_hash, u.name, u.role, u.age_group,
			u.package_id, u.subscription_status, u.subscription_start,
			u.subscription_end, u.school_id, u.parent_user_id, u.grade, u.subjects,
			u.last_login_at, u.is_active, u.created_at, u.updated_at
		FROM parent_child_relations pcr
		JOIN users u ON u.id = pcr.parent_user_id
		WHERE pcr.child_user_id = $1
		ORDER BY pcr.created_at`, childUserID)
	if err != nil {
		return nil, fmt.Errorf("error listing parents: %w", err)
	}
	defer rows.Close()

	var parents []*models.User
	for rows.Next() {
		parent, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning parent user: %w", err)
		}
		parents = append(parents, parent)
	}
	return parents, rows.Err()
}
