package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// FamilyService handles parent-child account links
type FamilyService struct {
	relationRepo repositories.IRelationRepository
	userRepo     repositories.IUserRepository
	policy       config.PolicyConfig
	logger       zerolog.Logger
}

// NewFamilyService creates a new FamilyService
func NewFamilyService(
	relationRepo repositories.IRelationRepository,
	userRepo repositories.IUserRepository,
	policy config.PolicyConfig,
	logger zerolog.Logger,
) *FamilyService {
	return &FamilyService{
		relationRepo: relationRepo,
		userRepo:     userRepo,
		policy:       policy,
		logger:       logger,
	}
}

// LinkChild links the calling parent to a student account. Role checks run on
// both ends. Duplicate links are accepted unless the duplicate-link policy is
// on; listing deduplicates nothing, so repeated links show up repeatedly.
func (s *FamilyService) LinkChild(ctx context.Context, parent *models.User, req *dto.LinkChildRequest) (*models.ParentChildRelation, error) {
	if parent.Role != models.RoleParent {
		return nil, apperrors.ErrNotAParentAccount
	}

	child, err := s.userRepo.GetByID(ctx, req.ChildUserID)
	if err != nil {
		return nil, err
	}
	if child.Role != models.RoleStudent {
		return nil, apperrors.ErrNotAStudentAccount
	}

	if s.policy.RejectDuplicateParentLinks {
		exists, err := s.relationRepo.Exists(ctx, parent.ID, child.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrRelationExists
		}
	}

	relation := &models.ParentChildRelation{
		ParentUserID: parent.ID,
		ChildUserID:  child.ID,
		IsActive:     true,
	}
	if req.RelationshipType != nil {
		relation.RelationshipType = *req.RelationshipType
	}
	if err := s.relationRepo.Create(ctx, relation); err != nil {
		return nil, err
	}

	s.logger.Info().Str("parentID", parent.ID).Str("childID", child.ID).Msg("Parent-child link created")
	return relation, nil
}

// SearchChild finds a student account by exact email for linking
func (s *FamilyService) SearchChild(ctx context.Context, email string) (*models.User, error) {
	return s.userRepo.SearchStudentByEmail(ctx, email)
}

// GetChildren returns the student accounts linked to a parent
func (s *FamilyService) GetChildren(ctx context.Context, parent *models.User) ([]*models.User, error) {
	if parent.Role != models.RoleParent {
		return nil, apperrors.ErrNotAParentAccount
	}
	return s.relationRepo.ListChildren(ctx, parent.ID)
}

// GetParents returns the parent accounts linked to a student
func (s *FamilyService) GetParents(ctx context.Context, childUserID string) ([]*models.User, error) {
	return s.relationRepo.ListParents(ctx, childUserID)
}

// GetParentsFor is the viewer-checked variant of GetParents: students see
// their own linked parents, linked parents see the full set (co-parents
// included).
func (s *FamilyService) GetParentsFor(ctx context.Context, viewer *models.User, childUserID string) ([]*models.User, error) {
	if viewer.ID != childUserID {
		if viewer.Role != models.RoleParent {
			return nil, apperrors.ErrPermissionDenied
		}
		linked, err := s.relationRepo.Exists(ctx, viewer.ID, childUserID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, apperrors.ErrPermissionDenied
		}
	}
	return s.relationRepo.ListParents(ctx, childUserID)
}
