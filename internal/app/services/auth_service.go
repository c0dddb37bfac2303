package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/auth"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/validation"
)

// AuthService handles registration, sign-in and sign-out
type AuthService struct {
	userRepo       repositories.IUserRepository
	schoolRepo     repositories.ISchoolRepository
	packageRepo    repositories.IPackageRepository
	sessionService *SessionService
	policy         config.PolicyConfig
	logger         zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	schoolRepo repositories.ISchoolRepository,
	packageRepo repositories.IPackageRepository,
	sessionService *SessionService,
	policy config.PolicyConfig,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		schoolRepo:     schoolRepo,
		packageRepo:    packageRepo,
		sessionService: sessionService,
		policy:         policy,
		logger:         logger,
	}
}

// validateSignUp checks the parts of a registration that binding tags cannot
// express: role validity, role-conditional fields and policy switches.
func (s *AuthService) validateSignUp(req *dto.SignUpRequest) error {
	if !validation.ValidEmail(req.Email) {
		return apperrors.ErrInvalidEmail
	}
	if len(req.Password) < validation.PasswordMinLength {
		return fmt.Errorf("%w: password must be at least %d characters",
			apperrors.ErrInvalidPassword, validation.PasswordMinLength)
	}
	if !models.ValidRole(req.Role) {
		return apperrors.NewBadRequestError("unknown role")
	}
	if req.AgeGroup != nil && !models.ValidAgeGroup(*req.AgeGroup) {
		return apperrors.NewBadRequestError("unknown age group")
	}

	if s.policy.RejectAgeGroupForNonStudents && req.AgeGroup != nil && req.Role != models.RoleStudent {
		return apperrors.NewBadRequestError("ageGroup is only valid for student accounts")
	}
	if req.Role == models.RoleSchoolAdmin && (req.SchoolName == nil || strings.TrimSpace(*req.SchoolName) == "") {
		return apperrors.NewBadRequestError("schoolName is required for school admin accounts")
	}

	return nil
}

// SignUp registers a new account and opens its first session. A school admin
// registration also creates the school itself and wires the admin reference
// both ways.
func (s *AuthService) SignUp(ctx context.Context, req *dto.SignUpRequest, userAgent, ipAddress *string) (*dto.AuthResponse, error) {
	if err := s.validateSignUp(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:              strings.TrimSpace(req.Email),
		PasswordHash:       &hash,
		Name:               req.Name,
		Role:               req.Role,
		AgeGroup:           req.AgeGroup,
		SubscriptionStatus: models.SubscriptionPending,
		IsActive:           true,
	}

	// A student arriving with a chosen package starts subscribed right away.
	if req.Role == models.RoleStudent && req.PackageID != nil {
		pkg, err := s.packageRepo.GetByID(ctx, *req.PackageID)
		if err != nil {
			return nil, err
		}
		if !pkg.IsActive {
			return nil, apperrors.ErrPackageInactive
		}
		now := time.Now()
		user.PackageID = &pkg.ID
		user.SubscriptionStatus = models.SubscriptionActive
		user.SubscriptionStart = &now
	}

	// The unique email constraint is the authority here; a concurrent signup
	// with the same address loses at insert rather than at a pre-check. The
	// account insert also goes first, so a conflict leaves nothing behind.
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	// A school admin's school is created after the account exists, with both
	// references wired: the school's admin pointer and the user's school link.
	if req.Role == models.RoleSchoolAdmin {
		school := &models.School{
			Name:        strings.TrimSpace(*req.SchoolName),
			AdminUserID: &user.ID,
		}
		if err := s.schoolRepo.Create(ctx, school); err != nil {
			return nil, err
		}
		if err := s.userRepo.LinkSchool(ctx, user.ID, school.ID); err != nil {
			s.logger.Error().Err(err).Str("schoolID", school.ID).Msg("Failed to link admin to school")
			return nil, err
		}
		user.SchoolID = &school.ID
	}

	if req.Role == models.RoleParent && req.ChildName != nil {
		// The child's name is informational at signup; the actual account link
		// is established later through the parent dashboard.
		s.logger.Info().Str("parentID", user.ID).Str("childName", *req.ChildName).
			Msg("Parent registered with a child to link")
	}

	token, err := s.sessionService.Issue(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Str("role", string(user.Role)).Msg("User registered")
	return &dto.AuthResponse{User: user, SessionToken: token}, nil
}

// SignIn verifies credentials and opens a new session. A missing account and
// a wrong password produce the same error.
func (s *AuthService) SignIn(ctx context.Context, req *dto.SignInRequest, userAgent, ipAddress *string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login timestamps are best-effort; sign-in still succeeds.
		s.logger.Warn().Err(err).Str("userID", user.ID).Msg("Failed to update last login time")
	}

	token, err := s.sessionService.Issue(ctx, user, userAgent, ipAddress)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", user.ID).Msg("User signed in")
	return &dto.AuthResponse{User: user, SessionToken: token}, nil
}

// SignOut revokes the presented session. Unknown tokens succeed silently.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	return s.sessionService.Revoke(ctx, token)
}
