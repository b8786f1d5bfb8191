package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/eduverse/eduverse/internal/app/controllers"
	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	paymentController *controllers.PaymentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group. Identity is resolved for every request; routes
	// decide how much identity they require.
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.ResolveIdentity())

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Public catalog routes ---
	courses := v1.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.GET("/:id", courseController.GetCourse)
		courses.GET("/:id/lectures", courseController.GetLectures)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.GET("/auth/profile", authController.GetProfile)
		authenticated.PUT("/users/profile", userController.UpdateProfile)

		authenticated.POST("/courses/:id/enroll", enrollmentController.Enroll)
		authenticated.GET("/courses/:id/progress", enrollmentController.GetProgress)
		authenticated.POST("/lectures/:id/progress", enrollmentController.RecordProgress)

		authenticated.POST("/payments/orders", paymentController.CreateOrder)
		authenticated.POST("/payments/verify", paymentController.VerifyPayment)

		// Teacher-only routes
		teacherOnly := authenticated.Group("")
		teacherOnly.Use(authMiddleware.RequireRole(models.RoleTeacher))
		{
			teacherOnly.POST("/courses", courseController.CreateCourse)
			teacherOnly.POST("/courses/:id/lectures", courseController.AddLecture)
		}
	}
}
