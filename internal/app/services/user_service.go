package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// UserService handles operations on the authenticated user's own account
type UserService struct {
	userRepo    repositories.IUserRepository
	packageRepo repositories.IPackageRepository
	logger      zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userRepo repositories.IUserRepository,
	packageRepo repositories.IPackageRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		packageRepo: packageRepo,
		logger:      logger,
	}
}

// GetProfile returns a user by id
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// SelectPackage points the user at a subscription package, activating the
// subscription and stamping its start. Selecting again overwrites the
// previous choice.
func (s *UserService) SelectPackage(ctx context.Context, userID, packageID string) (*models.User, error) {
	pkg, err := s.packageRepo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if !pkg.IsActive {
		return nil, apperrors.ErrPackageInactive
	}

	user, err := s.userRepo.UpdatePackage(ctx, userID, pkg.ID)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID).Str("packageID", pkg.ID).Msg("Package selected")
	return user, nil
}
