package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// ProgressController handles course progress, projects and achievements
type ProgressController struct {
	progressService *services.ProgressService
	logger          zerolog.Logger
}

// NewProgressController creates a new ProgressController
func NewProgressController(progressService *services.ProgressService, logger zerolog.Logger) *ProgressController {
	return &ProgressController{
		progressService: progressService,
		logger:          logger,
	}
}

// UpsertProgress overwrites the caller's progress for a course
// @Summary Submit course progress
// @Tags progress
// @Accept json
// @Produce json
// @Param request body dto.UpsertProgressRequest true "Progress counters"
// @Success 200 {object} dto.APIResponse{data=models.UserProgress}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /progress [post]
func (c *ProgressController) UpsertProgress(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.UpsertProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	progress, err := c.progressService.UpsertProgress(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(progress, "Progress saved"))
}

// ListProgress returns the caller's progress records
// @Summary List own progress
// @Tags progress
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.UserProgress}
// @Router /progress [get]
func (c *ProgressController) ListProgress(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	records, err := c.progressService.ListProgress(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// ListStudentProgress returns a student's progress records. Parents may view
// linked children; everyone may view themselves.
// @Summary List a student's progress
// @Tags progress
// @Produce json
// @Param id path string true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.UserProgress}
// @Failure 403 {object} dto.ErrorResponse
// @Router /students/{id}/progress [get]
func (c *ProgressController) ListStudentProgress(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	records, err := c.progressService.ListProgressFor(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records, ""))
}

// ListStudentProjects returns a student's saved projects, same access rule as
// progress
// @Summary List a student's projects
// @Tags projects
// @Produce json
// @Param id path string true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Project}
// @Failure 403 {object} dto.ErrorResponse
// @Router /students/{id}/projects [get]
func (c *ProgressController) ListStudentProjects(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	projects, err := c.progressService.ListProjectsFor(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects, ""))
}

// ListStudentAchievements returns a student's achievements, same access rule
// as progress
// @Summary List a student's achievements
// @Tags achievements
// @Produce json
// @Param id path string true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Achievement}
// @Failure 403 {object} dto.ErrorResponse
// @Router /students/{id}/achievements [get]
func (c *ProgressController) ListStudentAchievements(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	achievements, err := c.progressService.ListAchievementsFor(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(achievements, ""))
}

// CreateProject saves a playground project for the caller
// @Summary Save a project
// @Tags projects
// @Accept json
// @Produce json
// @Param request body dto.CreateProjectRequest true "Project content"
// @Success 201 {object} dto.APIResponse{data=models.Project}
// @Router /projects [post]
func (c *ProgressController) CreateProject(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	project, err := c.progressService.CreateProject(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(project, "Project saved"))
}

// ListProjects returns the caller's saved projects
// @Summary List own projects
// @Tags projects
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Project}
// @Router /projects [get]
func (c *ProgressController) ListProjects(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	projects, err := c.progressService.ListProjects(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(projects, ""))
}

// CreateAchievement records an earned badge for the caller
// @Summary Record an achievement
// @Tags achievements
// @Accept json
// @Produce json
// @Param request body dto.CreateAchievementRequest true "Badge information"
// @Success 201 {object} dto.APIResponse{data=models.Achievement}
// @Router /achievements [post]
func (c *ProgressController) CreateAchievement(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.CreateAchievementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	achievement, err := c.progressService.CreateAchievement(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(achievement, "Achievement recorded"))
}

// ListAchievements returns the caller's achievements
// @Summary List own achievements
// @Tags achievements
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Achievement}
// @Router /achievements [get]
func (c *ProgressController) ListAchievements(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	achievements, err := c.progressService.ListAchievements(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(achievements, ""))
}
