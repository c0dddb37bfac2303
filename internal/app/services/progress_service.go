package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/pkg/apperrors"
)

// ProgressService handles course progress, saved projects and achievements
type ProgressService struct {
	progressRepo repositories.IProgressRepository
	courseRepo   repositories.ICourseRepository
	relationRepo repositories.IRelationRepository
	logger       zerolog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	progressRepo repositories.IProgressRepository,
	courseRepo repositories.ICourseRepository,
	relationRepo repositories.IRelationRepository,
	logger zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		progressRepo: progressRepo,
		courseRepo:   courseRepo,
		relationRepo: relationRepo,
		logger:       logger,
	}
}

// authorizeView checks read access to another user's learning data. Users see
// their own; parents see linked children; everyone else is refused.
func (s *ProgressService) authorizeView(ctx context.Context, viewer *models.User, userID string) error {
	if viewer.ID == userID {
		return nil
	}
	if viewer.Role == models.RoleParent {
		linked, err := s.relationRepo.Exists(ctx, viewer.ID, userID)
		if err != nil {
			return err
		}
		if linked {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}

// ListProgressFor returns another user's progress records, subject to the
// viewer check.
func (s *ProgressService) ListProgressFor(ctx context.Context, viewer *models.User, userID string) ([]*models.UserProgress, error) {
	if err := s.authorizeView(ctx, viewer, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.ListByUser(ctx, userID)
}

// ListProjectsFor returns another user's saved projects, subject to the viewer
// check.
func (s *ProgressService) ListProjectsFor(ctx context.Context, viewer *models.User, userID string) ([]*models.Project, error) {
	if err := s.authorizeView(ctx, viewer, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.ListProjects(ctx, userID)
}

// ListAchievementsFor returns another user's achievements, subject to the
// viewer check.
func (s *ProgressService) ListAchievementsFor(ctx context.Context, viewer *models.User, userID string) ([]*models.Achievement, error) {
	if err := s.authorizeView(ctx, viewer, userID); err != nil {
		return nil, err
	}
	return s.progressRepo.ListAchievements(ctx, userID)
}

// UpsertProgress overwrites the user's progress counters for a course. The
// course must exist; counters are taken as submitted, last write wins.
func (s *ProgressService) UpsertProgress(ctx context.Context, userID string, req *dto.UpsertProgressRequest) (*models.UserProgress, error) {
	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	progress := &models.UserProgress{
		UserID:            userID,
		CourseID:          req.CourseID,
		LessonsCompleted:  req.LessonsCompleted,
		ProjectsCompleted: req.ProjectsCompleted,
		TotalScore:        req.TotalScore,
		Level:             req.Level,
	}
	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}

	return progress, nil
}

// ListProgress returns all progress records for a user
func (s *ProgressService) ListProgress(ctx context.Context, userID string) ([]*models.UserProgress, error) {
	return s.progressRepo.ListByUser(ctx, userID)
}

// CreateProject saves a playground project for the user
func (s *ProgressService) CreateProject(ctx context.Context, userID string, req *dto.CreateProjectRequest) (*models.Project, error) {
	project := &models.Project{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Code:        req.Code,
		ProjectType: req.ProjectType,
		IsCompleted: req.IsCompleted,
	}
	if err := s.progressRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// ListProjects returns a user's saved projects, newest first
func (s *ProgressService) ListProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.progressRepo.ListProjects(ctx, userID)
}

// CreateAchievement records an earned badge for the user
func (s *ProgressService) CreateAchievement(ctx context.Context, userID string, req *dto.CreateAchievementRequest) (*models.Achievement, error) {
	achievement := &models.Achievement{
		UserID:      userID,
		BadgeType:   req.BadgeType,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.progressRepo.CreateAchievement(ctx, achievement); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userID", userID).Str("badgeType", achievement.BadgeType).Msg("Achievement earned")
	return achievement, nil
}

// ListAchievements returns a user's achievements, newest first
func (s *ProgressService) ListAchievements(ctx context.Context, userID string) ([]*models.Achievement, error) {
	return s.progressRepo.ListAchievements(ctx, userID)
}
