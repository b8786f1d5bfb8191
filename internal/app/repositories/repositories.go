package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateProfile(ctx context.Context, userID int64, name, bio, avatarURL, phone *string) error
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error)
}

// ICourseRepository defines the interface for course catalog operations
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course, syllabus []*models.SyllabusItem) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
	GetStudents(ctx context.Context, courseID int64) ([]*models.User, error)
	Touch(ctx context.Context, courseID int64) error
}

// ILectureRepository defines the interface for lecture operations
type ILectureRepository interface {
	Create(ctx context.Context, lecture *models.Lecture) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Lecture, error)
	GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lecture, error)
}

// IEnrollmentRepository defines the interface for enrollment operations
type IEnrollmentRepository interface {
	// Enroll adds the student to the course's student set. It reports false
	// without error when the pair already exists.
	Enroll(ctx context.Context, courseID, studentID int64) (bool, error)
}

// IProgressRepository defines the interface for progress tracking
type IProgressRepository interface {
	// RecordCompletion marks a lecture completed for the student and
	// recomputes the percentage, all within one transaction. Repeated calls
	// for the same lecture are no-ops.
	RecordCompletion(ctx context.Context, studentID, courseID, lectureID int64) (*models.Progress, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Progress, error)
}

// Repositories combines all repositories
type Repositories struct {
	UserRepository       *UserRepository
	CourseRepository     *CourseRepository
	LectureRepository    *LectureRepository
	EnrollmentRepository *EnrollmentRepository
	ProgressRepository   *ProgressRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		CourseRepository:     NewCourseRepository(db),
		LectureRepository:    NewLectureRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		ProgressRepository:   NewProgressRepository(db),
	}
}
