package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/config"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/auth"
)

// SchoolService handles school management and school-scoped accounts
type SchoolService struct {
	schoolRepo repositories.ISchoolRepository
	userRepo   repositories.IUserRepository
	policy     config.PolicyConfig
	logger     zerolog.Logger
}

// NewSchoolService creates a new SchoolService
func NewSchoolService(
	schoolRepo repositories.ISchoolRepository,
	userRepo repositories.IUserRepository,
	policy config.PolicyConfig,
	logger zerolog.Logger,
) *SchoolService {
	return &SchoolService{
		schoolRepo: schoolRepo,
		userRepo:   userRepo,
		policy:     policy,
		logger:     logger,
	}
}

// GetSchool returns a school by id
func (s *SchoolService) GetSchool(ctx context.Context, schoolID string) (*models.School, error) {
	return s.schoolRepo.GetByID(ctx, schoolID)
}

// CreateSchool registers a school administered by the caller. Admins without a
// school yet get linked to the new one; admins who already run a school keep
// their existing link.
func (s *SchoolService) CreateSchool(ctx context.Context, admin *models.User, req *dto.CreateSchoolRequest) (*models.School, error) {
	school := &models.School{
		Name:        req.Name,
		Address:     req.Address,
		Phone:       req.Phone,
		Email:       req.Email,
		AdminUserID: &admin.ID,
		PackageID:   req.PackageID,
		MaxStudents: req.MaxStudents,
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}

	if admin.SchoolID == nil {
		if err := s.userRepo.LinkSchool(ctx, admin.ID, school.ID); err != nil {
			s.logger.Error().Err(err).Str("schoolID", school.ID).Msg("Failed to link admin to new school")
			return nil, err
		}
	}

	s.logger.Info().Str("schoolID", school.ID).Str("adminID", admin.ID).Msg("School created")
	return school, nil
}

// CreateSchoolUser creates a student or teacher account inside the admin's
// school. School-created accounts are active immediately with no individual
// subscription; they ride on the school license. Every successful create ends
// with a full recount of the school's students.
func (s *SchoolService) CreateSchoolUser(ctx context.Context, schoolID string, req *dto.CreateSchoolUserRequest) (*models.User, error) {
	if req.Role != models.RoleStudent && req.Role != models.RoleTeacher {
		return nil, apperrors.NewBadRequestError("school accounts must be student or teacher")
	}

	school, err := s.schoolRepo.GetByID(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	if s.policy.EnforceSchoolCapacity && req.Role == models.RoleStudent {
		count, err := s.userRepo.CountStudentsBySchool(ctx, school.ID)
		if err != nil {
			return nil, err
		}
		if count >= school.MaxStudents {
			return nil, apperrors.ErrSchoolAtCapacity
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:              req.Email,
		PasswordHash:       &hash,
		Name:               req.Name,
		Role:               req.Role,
		AgeGroup:           req.AgeGroup,
		SchoolID:           &school.ID,
		Grade:              req.Grade,
		Subjects:           req.Subjects,
		SubscriptionStatus: models.SubscriptionActive,
		IsActive:           true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.recountStudents(ctx, school.ID); err != nil {
		// The account exists; a stale counter heals on the next recount.
		s.logger.Warn().Err(err).Str("schoolID", school.ID).Msg("Student recount failed after create")
	}

	s.logger.Info().Str("userID", user.ID).Str("schoolID", school.ID).
		Str("role", string(user.Role)).Msg("School user created")
	return user, nil
}

// recountStudents refreshes schools.current_students from a COUNT over users.
// The counter is always derived, never incremented, so it self-corrects after
// any missed update.
func (s *SchoolService) recountStudents(ctx context.Context, schoolID string) error {
	count, err := s.userRepo.CountStudentsBySchool(ctx, schoolID)
	if err != nil {
		return err
	}
	return s.schoolRepo.SetStudentCount(ctx, schoolID, count)
}

// ListSchoolUsers lists a school's accounts, optionally filtered by role
func (s *SchoolService) ListSchoolUsers(ctx context.Context, schoolID string, role *models.Role) ([]*models.User, error) {
	if _, err := s.schoolRepo.GetByID(ctx, schoolID); err != nil {
		return nil, err
	}
	return s.userRepo.ListBySchool(ctx, schoolID, role)
}
