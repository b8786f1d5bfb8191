package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/services"
	"github.com/eduverse/eduverse/internal/middleware"
)

// EnrollmentController handles enrollment and progress operations
type EnrollmentController struct {
	enrollmentService services.IEnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.IEnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// Enroll enrolls the authenticated user in a course
// @Summary Enroll in a course
// @Description Adds the authenticated user to the course. Enrolling twice is a conflict.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Enrolled; course with refreshed student set"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled"
// @Router /courses/{id}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.enrollmentService.Enroll(ctx.Request.Context(), user, courseID)
	if err != nil {
		c.logger.Warn().Err(err).Int64("courseId", courseID).Int64("userId", user.ID).Msg("Enrollment failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}

// RecordProgress marks a lecture as completed
// @Summary Mark a lecture completed
// @Description Records lecture completion for the authenticated user and returns the recomputed progress. Repeating a completed lecture changes nothing.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lecture ID"
// @Success 200 {object} dto.APIResponse{data=models.Progress} "Updated progress"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not enrolled in the lecture's course"
// @Failure 404 {object} dto.ErrorResponse "Lecture not found"
// @Router /lectures/{id}/progress [post]
func (c *EnrollmentController) RecordProgress(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	lectureID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.enrollmentService.RecordProgress(ctx.Request.Context(), user, lectureID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: progress})
}

// GetProgress returns the authenticated user's progress in a course
// @Summary Get course progress
// @Description Returns the user's progress in a course. Never having completed a lecture yields a zero-percentage record.
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Progress} "Progress"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/progress [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.enrollmentService.GetProgress(ctx.Request.Context(), user, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: progress})
}
