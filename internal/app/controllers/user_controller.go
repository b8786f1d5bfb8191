package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/services"
	"github.com/eduverse/eduverse/internal/middleware"
)

// UserController handles user profile operations
type UserController struct {
	authService services.IAuthService
	logger      zerolog.Logger
}

// NewUserController creates a new UserController
func NewUserController(authService services.IAuthService, logger zerolog.Logger) *UserController {
	return &UserController{
		authService: authService,
		logger:      logger,
	}
}

// UpdateProfile updates the authenticated user's profile
// @Summary Update own profile
// @Description Applies the provided profile fields and marks the profile completed
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile fields to update"
// @Success 200 {object} dto.APIResponse{data=models.User} "Updated profile"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Router /users/profile [put]
func (c *UserController) UpdateProfile(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	updated, err := c.authService.UpdateProfile(ctx.Request.Context(), user.ID, &req)
	if err != nil {
		c.logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to update profile")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: updated})
}
