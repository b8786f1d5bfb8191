package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/services"
	"github.com/eduverse/eduverse/internal/middleware"
)

// CourseController handles course catalog operations
type CourseController struct {
	courseService services.ICourseService
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.ICourseService, logger zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		logger:        logger,
	}
}

// ListCourses returns the public course catalog
// @Summary List courses
// @Description Returns every course with its teacher and enrolled students
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.Course} "Course catalog"
// @Router /courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Msg("Failed to list courses")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: courses})
}

// GetCourse returns one course by id
// @Summary Get a course
// @Description Returns a course with its teacher, syllabus, lectures and students
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=models.Course} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: course})
}

// CreateCourse creates a new course
// @Summary Create a course
// @Description Creates a course owned by the authenticated teacher
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=models.Course} "Course created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or unsupported class/subject"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Only teachers can create courses"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), user, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("userId", user.ID).Msg("Course creation failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: course})
}

// AddLecture appends a lecture to a course
// @Summary Add a lecture
// @Description Adds a lecture to a course owned by the authenticated teacher. Inline media payloads are uploaded and replaced with durable URLs.
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.AddLectureRequest true "Lecture information"
// @Success 201 {object} dto.APIResponse{data=models.Lecture} "Lecture added"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 503 {object} dto.ErrorResponse "Media storage not configured"
// @Router /courses/{id}/lectures [post]
func (c *CourseController) AddLecture(ctx *gin.Context) {
	user, _ := middleware.CurrentUser(ctx)

	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.AddLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	lecture, err := c.courseService.AddLecture(ctx.Request.Context(), user, courseID, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("courseId", courseID).Msg("Failed to add lecture")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: lecture})
}

// GetLectures lists a course's lectures
// @Summary List course lectures
// @Description Returns the lectures of a course, newest last
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Lecture} "Lectures"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /courses/{id}/lectures [get]
func (c *CourseController) GetLectures(ctx *gin.Context) {
	courseID, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	lectures, err := c.courseService.GetLectures(ctx.Request.Context(), courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: lectures})
}

// pathID parses a numeric path parameter, responding with 400 on failure
func pathID(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name+" parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
