// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/codewisehub/codewisehub-backend/internal/app/models/dto"
	"github.com/codewisehub/codewisehub-backend/internal/app/services"
	"github.com/codewisehub/codewisehub-backend/internal/middleware"
)

// SessionCookieConfig describes how the session cookie is written
type SessionCookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// AuthController handles sign-up, sign-in and sign-out
type AuthController struct {
	authService *services.AuthService
	cookie      SessionCookieConfig
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, cookie SessionCookieConfig, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		cookie:      cookie,
		logger:      logger,
	}
}

// setSessionCookie writes the HttpOnly session cookie. Secure is only set in
// production so local development over plain HTTP keeps working.
func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(c.cookie.Name, token, int(c.cookie.MaxAge.Seconds()), "/", "", c.cookie.Secure, true)
}

// clearSessionCookie expires the session cookie immediately
func (c *AuthController) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteStrictMode)
	ctx.SetCookie(c.cookie.Name, "", -1, "/", "", c.cookie.Secure, true)
}

func requestMeta(ctx *gin.Context) (userAgent, ipAddress *string) {
	if ua := ctx.GetHeader("User-Agent"); ua != "" {
		userAgent = &ua
	}
	if ip := ctx.ClientIP(); ip != "" {
		ipAddress = &ip
	}
	return userAgent, ipAddress
}

// SignUp handles user registration
// @Summary Register a new account
// @Description Creates a student, teacher, parent or school admin account and opens its first session.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignUpRequest true "Registration information"
// @Success 201 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Router /auth/signup [post]
func (c *AuthController) SignUp(ctx *gin.Context) {
	var req dto.SignUpRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid sign-up payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userAgent, ipAddress := requestMeta(ctx)
	resp, err := c.authService.SignUp(ctx.Request.Context(), &req, userAgent, ipAddress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.SessionToken)
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(resp, "Account created"))
}

// SignIn handles user login
// @Summary Sign in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignInRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.AuthResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/signin [post]
func (c *AuthController) SignIn(ctx *gin.Context) {
	var req dto.SignInRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	userAgent, ipAddress := requestMeta(ctx)
	resp, err := c.authService.SignIn(ctx.Request.Context(), &req, userAgent, ipAddress)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.setSessionCookie(ctx, resp.SessionToken)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Signed in"))
}

// SignOut revokes the current session and clears the cookie
// @Summary Sign out
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse
// @Router /auth/signout [post]
func (c *AuthController) SignOut(ctx *gin.Context) {
	token, _ := ctx.Cookie(c.cookie.Name)
	if token == "" {
		if authHeader := ctx.GetHeader("Authorization"); len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			token = authHeader[7:]
		}
	}

	if token != "" {
		if err := c.authService.SignOut(ctx.Request.Context(), token); err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
	}

	c.clearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Signed out"))
}

// Me returns the authenticated user's profile
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.APIResponse{data=models.User}
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeSessionInvalid, "Authentication required")))
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(user, ""))
}
