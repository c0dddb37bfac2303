package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models"
	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// SchoolController handles school management operations
type SchoolController struct {
	schoolService *services.SchoolService
	logger        zerolog.Logger
}

// NewSchoolController creates a new SchoolController
func NewSchoolController(schoolService *services.SchoolService, logger zerolog.Logger) *SchoolController {
	return &SchoolController{
		schoolService: schoolService,
		logger:        logger,
	}
}

// schoolID resolves the acting admin's school. School-scoped routes operate
// on the caller's own school only.
func schoolID(ctx *gin.Context) (string, bool) {
	user := middleware.CurrentUser(ctx)
	if user == nil || user.SchoolID == nil {
		ctx.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "No school associated with this account")))
		return "", false
	}
	return *user.SchoolID, true
}

// CreateSchool registers a school run by the calling admin
// @Summary Create a school
// @Tags schools
// @Accept json
// @Produce json
// @Param request body dto.CreateSchoolRequest true "School information"
// @Success 201 {object} dto.APIResponse{data=models.School}
// @Router /schools [post]
func (c *SchoolController) CreateSchool(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	school, err := c.schoolService.CreateSchool(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(school, "School created"))
}

// GetSchool returns the caller's school
// @Summary Get own school
// @Tags schools
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.School}
// @Router /schools/me [get]
func (c *SchoolController) GetSchool(ctx *gin.Context) {
	id, ok := schoolID(ctx)
	if !ok {
		return
	}

	school, err := c.schoolService.GetSchool(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(school, ""))
}

// CreateUser creates a student or teacher account inside the caller's school
// @Summary Create a school-scoped account
// @Tags schools
// @Accept json
// @Produce json
// @Param request body dto.CreateSchoolUserRequest true "Account information"
// @Success 201 {object} dto.APIResponse{data=models.User}
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /schools/users [post]
func (c *SchoolController) CreateUser(ctx *gin.Context) {
	id, ok := schoolID(ctx)
	if !ok {
		return
	}

	var req dto.CreateSchoolUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	user, err := c.schoolService.CreateSchoolUser(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(user, "School account created"))
}

// ListUsers lists the caller's school accounts, optionally filtered by role
// @Summary List school accounts
// @Tags schools
// @Produce json
// @Param role query string false "Filter by role (student or teacher)"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Router /schools/users [get]
func (c *SchoolController) ListUsers(ctx *gin.Context) {
	id, ok := schoolID(ctx)
	if !ok {
		return
	}

	var role *models.Role
	if roleParam := ctx.Query("role"); roleParam != "" {
		r := models.Role(roleParam)
		if !models.ValidRole(r) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
				dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown role filter")))
			return
		}
		role = &r
	}

	users, err := c.schoolService.ListSchoolUsers(ctx.Request.Context(), id, role)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(users, ""))
}
