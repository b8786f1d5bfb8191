package services

import (
	"context"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/auth"
	"github.com/eduverse/eduverse/internal/pkg/email"
	"github.com/eduverse/eduverse/internal/pkg/mediastore"
	"github.com/eduverse/eduverse/internal/pkg/payment"
)

// IAuthService defines the interface for authentication and account operations
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	GetProfile(ctx context.Context, userID int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error)
	ForgotPassword(ctx context.Context, req *dto.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
}

// ICourseService defines the interface for course catalog operations
type ICourseService interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, actor *models.User, req *dto.CreateCourseRequest) (*models.Course, error)
	AddLecture(ctx context.Context, actor *models.User, courseID int64, req *dto.AddLectureRequest) (*models.Lecture, error)
	GetLectures(ctx context.Context, courseID int64) ([]*models.Lecture, error)
}

// IEnrollmentService defines the interface for enrollment and progress operations
type IEnrollmentService interface {
	Enroll(ctx context.Context, actor *models.User, courseID int64) (*models.Course, error)
	RecordProgress(ctx context.Context, actor *models.User, lectureID int64) (*models.Progress, error)
	GetProgress(ctx context.Context, actor *models.User, courseID int64) (*models.Progress, error)
}

// IPaymentService defines the interface for the mocked payment flow
type IPaymentService interface {
	CreateOrder(ctx context.Context, actor *models.User, req *dto.CreatePaymentOrderRequest) (*dto.PaymentOrderResponse, error)
	VerifyPayment(ctx context.Context, req *dto.VerifyPaymentRequest) (*dto.PaymentVerificationResponse, error)
}

// Services combines all services
type Services struct {
	AuthService       IAuthService
	CourseService     ICourseService
	EnrollmentService IEnrollmentService
	PaymentService    IPaymentService
}

// Dependencies are the external ports the services are built on
type Dependencies struct {
	JWTService   *auth.JWTService
	DemoProvider *auth.DemoProvider
	EmailService email.Service
	MediaStore   mediastore.Store
	Gateway      payment.Gateway
	FrontendURL  string
}

// NewServices creates all services wired to the repositories and ports
func NewServices(repos *repositories.Repositories, deps Dependencies) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.UserRepository,
			deps.JWTService,
			deps.DemoProvider,
			deps.EmailService,
			deps.FrontendURL,
		),
		CourseService: NewCourseService(
			repos.CourseRepository,
			repos.LectureRepository,
			deps.MediaStore,
		),
		EnrollmentService: NewEnrollmentService(
			repos.CourseRepository,
			repos.LectureRepository,
			repos.EnrollmentRepository,
			repos.ProgressRepository,
		),
		PaymentService: NewPaymentService(repos.CourseRepository, deps.Gateway),
	}
}
