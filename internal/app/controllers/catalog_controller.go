package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/repositories"
	"github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// CatalogController serves packages, courses, lessons and robotics activities
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

func parseAgeGroup(ctx *gin.Context) (*models.AgeGroup, bool) {
	param := ctx.Query("ageGroup")
	if param == "" {
		return nil, true
	}
	group := models.AgeGroup(param)
	if !models.ValidAgeGroup(group) {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown age group filter")))
		return nil, false
	}
	return &group, true
}

// ListPackages returns subscription packages. Public: pricing is shown before
// registration.
// @Summary List packages
// @Tags catalog
// @Produce json
// @Param type query string false "Filter by package type (individual or school)"
// @Success 200 {object} dto.APIResponse{data=[]models.Package}
// @Router /packages [get]
func (c *CatalogController) ListPackages(ctx *gin.Context) {
	var packageType *models.PackageType
	if param := ctx.Query("type"); param != "" {
		pt := models.PackageType(param)
		if pt != models.PackageIndividual && pt != models.PackageSchool {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown package type filter")))
			return
		}
		packageType = &pt
	}

	packages, err := c.catalogService.ListPackages(ctx.Request.Context(), packageType)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(packages, ""))
}

// GetPackage returns a single package. Public like the listing.
// @Summary Get a package
// @Tags catalog
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} dto.APIResponse{data=models.Package}
// @Failure 404 {object} dto.ErrorResponse
// @Router /packages/{id} [get]
func (c *CatalogController) GetPackage(ctx *gin.Context) {
	pkg, err := c.catalogService.GetPackage(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pkg, ""))
}

// CreatePackage adds a subscription package
// @Summary Create a package
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Package definition"
// @Success 201 {object} dto.APIResponse{data=models.Package}
// @Router /packages [post]
func (c *CatalogController) CreatePackage(ctx *gin.Context) {
	var req dto.CreatePackageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	pkg, err := c.catalogService.CreatePackage(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(pkg, "Package created"))
}

// ListCourses returns courses, optionally filtered by age group
// @Summary List courses
// @Tags catalog
// @Produce json
// @Param ageGroup query string false "Filter by age group (6-11 or 12-17)"
// @Success 200 {object} dto.APIResponse{data=[]models.Course}
// @Router /courses [get]
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	ageGroup, ok := parseAgeGroup(ctx)
	if !ok {
		return
	}

	filter := repositories.CourseFilter{AgeGroup: ageGroup}
	// School members see their school's courses alongside the common catalog
	// filter; scoping happens by the caller's own school, never a chosen one.
	if user := middleware.CurrentUser(ctx); user != nil && user.SchoolID != nil && ctx.Query("school") == "true" {
		filter.SchoolID = user.SchoolID
	}

	courses, err := c.catalogService.ListCourses(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses, ""))
}

// GetCourse returns a single course
// @Summary Get a course
// @Tags catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course}
// @Failure 404 {object} dto.ErrorResponse
// @Router /courses/{id} [get]
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	course, err := c.catalogService.GetCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(course, ""))
}

// CreateCourse creates a course owned by the calling teacher
// @Summary Create a course
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateCourseRequest true "Course definition"
// @Success 201 {object} dto.APIResponse{data=models.Course}
// @Router /courses [post]
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course, "Course created"))
}

// ListLessons returns a course's lessons in display order
// @Summary List course lessons
// @Tags catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lesson}
// @Router /courses/{id}/lessons [get]
func (c *CatalogController) ListLessons(ctx *gin.Context) {
	lessons, err := c.catalogService.ListLessons(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(lessons, ""))
}

// CreateLesson adds a lesson to a course
// @Summary Add a lesson to a course
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param request body dto.CreateLessonRequest true "Lesson definition"
// @Success 201 {object} dto.APIResponse{data=models.Lesson}
// @Router /courses/{id}/lessons [post]
func (c *CatalogController) CreateLesson(ctx *gin.Context) {
	var req dto.CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	lesson, err := c.catalogService.CreateLesson(ctx.Request.Context(), ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(lesson, "Lesson created"))
}

// ListRoboticsActivities returns robotics activities
// @Summary List robotics activities
// @Tags catalog
// @Produce json
// @Param ageGroup query string false "Filter by age group (6-11 or 12-17)"
// @Success 200 {object} dto.APIResponse{data=[]models.RoboticsActivity}
// @Router /robotics [get]
func (c *CatalogController) ListRoboticsActivities(ctx *gin.Context) {
	ageGroup, ok := parseAgeGroup(ctx)
	if !ok {
		return
	}

	activities, err := c.catalogService.ListRoboticsActivities(ctx.Request.Context(), ageGroup)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(activities, ""))
}

// CreateRoboticsActivity adds a standalone robotics activity
// @Summary Create a robotics activity
// @Tags catalog
// @Accept json
// @Produce json
// @Param request body dto.CreateRoboticsActivityRequest true "Activity definition"
// @Success 201 {object} dto.APIResponse{data=models.RoboticsActivity}
// @Router /robotics [post]
func (c *CatalogController) CreateRoboticsActivity(ctx *gin.Context) {
	var req dto.CreateRoboticsActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	activity, err := c.catalogService.CreateRoboticsActivity(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(activity, "Robotics activity created"))
}
