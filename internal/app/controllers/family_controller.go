package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// FamilyController handles parent-child account links
type FamilyController struct {
	familyService *services.FamilyService
	logger        zerolog.Logger
}

// NewFamilyController creates a new FamilyController
func NewFamilyController(familyService *services.FamilyService, logger zerolog.Logger) *FamilyController {
	return &FamilyController{
		familyService: familyService,
		logger:        logger,
	}
}

// LinkChild links the calling parent to a student account
// @Summary Link a child account
// @Tags family
// @Accept json
// @Produce json
// @Param request body dto.LinkChildRequest true "Child to link"
// @Success 201 {object} dto.APIResponse{data=models.ParentChildRelation}
// @Failure 403 {object} dto.ErrorResponse "Caller is not a parent"
// @Router /family/children [post]
func (c *FamilyController) LinkChild(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.LinkChildRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	relation, err := c.familyService.LinkChild(ctx.Request.Context(), user, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(relation, "Child linked"))
}

// ListChildren returns the student accounts linked to the calling parent
// @Summary List linked children
// @Tags family
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Router /family/children [get]
func (c *FamilyController) ListChildren(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	children, err := c.familyService.GetChildren(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(children, ""))
}

// ListParents returns the parents linked to a student. Students see their own
// list; a linked parent sees the full set including co-parents.
// @Summary List a student's linked parents
// @Tags family
// @Produce json
// @Param id path string true "Student user ID"
// @Success 200 {object} dto.APIResponse{data=[]models.User}
// @Failure 403 {object} dto.ErrorResponse
// @Router /students/{id}/parents [get]
func (c *FamilyController) ListParents(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	parents, err := c.familyService.GetParentsFor(ctx.Request.Context(), user, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(parents, ""))
}

// SearchChild finds a student account by exact email for linking
// @Summary Search for a child account
// @Tags family
// @Produce json
// @Param email query string true "Student email"
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 404 {object} dto.ErrorResponse "No student with that email"
// @Router /users/search-student [get]
func (c *FamilyController) SearchChild(ctx *gin.Context) {
	email := ctx.Query("email")
	if email == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "email query parameter is required")))
		return
	}

	child, err := c.familyService.SearchChild(ctx.Request.Context(), email)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(child, ""))
}
