package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
)

// CatalogService serves the learning catalog: packages, courses, lessons and
// robotics activities.
type CatalogService struct {
	packageRepo  repositories.IPackageRepository
	courseRepo   repositories.ICourseRepository
	roboticsRepo repositories.IRoboticsRepository
	logger       zerolog.Logger
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	packageRepo repositories.IPackageRepository,
	courseRepo repositories.ICourseRepository,
	roboticsRepo repositories.IRoboticsRepository,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		packageRepo:  packageRepo,
		courseRepo:   courseRepo,
		roboticsRepo: roboticsRepo,
		logger:       logger,
	}
}

// ListPackages returns packages, optionally filtered by type
func (s *CatalogService) ListPackages(ctx context.Context, packageType *models.PackageType) ([]*models.Package, error) {
	return s.packageRepo.List(ctx, packageType)
}

// GetPackage returns a package by id
func (s *CatalogService) GetPackage(ctx context.Context, packageID string) (*models.Package, error) {
	return s.packageRepo.GetByID(ctx, packageID)
}

// CreatePackage adds a subscription package to the catalog
func (s *CatalogService) CreatePackage(ctx context.Context, req *dto.CreatePackageRequest) (*models.Package, error) {
	pkg := &models.Package{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Duration:    req.Duration,
		Features:    req.Features,
		MaxStudents: req.MaxStudents,
		PackageType: req.PackageType,
		IsActive:    true,
	}
	if req.Currency != nil {
		pkg.Currency = *req.Currency
	}
	if err := s.packageRepo.Create(ctx, pkg); err != nil {
		return nil, err
	}

	s.logger.Info().Str("packageID", pkg.ID).Str("name", pkg.Name).Msg("Package created")
	return pkg, nil
}

// ListCourses returns courses matching the filter
func (s *CatalogService) ListCourses(ctx context.Context, filter repositories.CourseFilter) ([]*models.Course, error) {
	return s.courseRepo.List(ctx, filter)
}

// GetCourse returns a course by id
func (s *CatalogService) GetCourse(ctx context.Context, courseID string) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, courseID)
}

// CreateCourse creates a course owned by the given teacher
func (s *CatalogService) CreateCourse(ctx context.Context, teacherID string, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:          req.Title,
		Description:    req.Description,
		AgeGroup:       req.AgeGroup,
		Difficulty:     req.Difficulty,
		Category:       req.Category,
		ImageURL:       req.ImageURL,
		EstimatedHours: req.EstimatedHours,
		TeacherID:      &teacherID,
		IsActive:       true,
	}
	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	s.logger.Info().Str("courseID", course.ID).Str("teacherID", teacherID).Msg("Course created")
	return course, nil
}

// ListLessons returns a course's lessons in display order. The course must
// exist.
func (s *CatalogService) ListLessons(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.courseRepo.ListLessons(ctx, courseID)
}

// CreateLesson adds a lesson to an existing course
func (s *CatalogService) CreateLesson(ctx context.Context, courseID string, req *dto.CreateLessonRequest) (*models.Lesson, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		CourseID:         courseID,
		Title:            req.Title,
		Description:      req.Description,
		Content:          req.Content,
		OrderIndex:       req.OrderIndex,
		Type:             req.Type,
		EstimatedMinutes: req.EstimatedMinutes,
		VideoURL:         req.VideoURL,
		IsRequired:       true,
	}
	if req.IsRequired != nil {
		lesson.IsRequired = *req.IsRequired
	}
	if err := s.courseRepo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}

// ListRoboticsActivities returns robotics activities, optionally filtered by
// age group
func (s *CatalogService) ListRoboticsActivities(ctx context.Context, ageGroup *models.AgeGroup) ([]*models.RoboticsActivity, error) {
	return s.roboticsRepo.List(ctx, ageGroup)
}

// CreateRoboticsActivity adds a standalone robotics activity
func (s *CatalogService) CreateRoboticsActivity(ctx context.Context, req *dto.CreateRoboticsActivityRequest) (*models.RoboticsActivity, error) {
	activity := &models.RoboticsActivity{
		Title:            req.Title,
		Description:      req.Description,
		Type:             req.Type,
		Difficulty:       req.Difficulty,
		AgeGroup:         req.AgeGroup,
		Instructions:     req.Instructions,
		Solution:         req.Solution,
		EstimatedMinutes: req.EstimatedMinutes,
		Points:           req.Points,
		ImageURL:         req.ImageURL,
		IsActive:         true,
	}
	if err := s.roboticsRepo.Create(ctx, activity); err != nil {
		return nil, err
	}

	s.logger.Info().Str("activityID", activity.ID).Msg("Robotics activity created")
	return activity, nil
}
