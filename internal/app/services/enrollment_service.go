package services

import (
	"context"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/logger"
)

// enrollmentService implements IEnrollmentService
type enrollmentService struct {
	courseRepo     repositories.ICourseRepository
	lectureRepo    repositories.ILectureRepository
	enrollmentRepo repositories.IEnrollmentRepository
	progressRepo   repositories.IProgressRepository
}

// NewEnrollmentService creates a new enrollment and progress service
func NewEnrollmentService(
	courseRepo repositories.ICourseRepository,
	lectureRepo repositories.ILectureRepository,
	enrollmentRepo repositories.IEnrollmentRepository,
	progressRepo repositories.IProgressRepository,
) IEnrollmentService {
	return &enrollmentService{
		courseRepo:     courseRepo,
		lectureRepo:    lectureRepo,
		enrollmentRepo: enrollmentRepo,
		progressRepo:   progressRepo,
	}
}

// Enroll adds the acting user to the course and returns the refreshed
// course. Enrolling twice is reported as a conflict, never silently
// absorbed.
func (s *enrollmentService) Enroll(ctx context.Context, actor *models.User, courseID int64) (*models.Course, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	inserted, err := s.enrollmentRepo.Enroll(ctx, courseID, actor.ID)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	logger.Info().Int64("courseId", courseID).Int64("studentId", actor.ID).Msg("Student enrolled")

	// Reload so the response reflects the new student set
	return s.courseRepo.GetByID(ctx, courseID)
}

// RecordProgress marks a lecture completed for the acting user. The lecture
// determines the course; enrollment is not a precondition, and repeating a
// completed lecture leaves the state unchanged and still returns it.
func (s *enrollmentService) RecordProgress(ctx context.Context, actor *models.User, lectureID int64) (*models.Progress, error) {
	lecture, err := s.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	return s.progressRepo.RecordCompletion(ctx, actor.ID, lecture.CourseID, lectureID)
}

// GetProgress returns the acting user's progress in a course. A user who
// never completed a lecture gets a zero-percentage record.
func (s *enrollmentService) GetProgress(ctx context.Context, actor *models.User, courseID int64) (*models.Progress, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.progressRepo.GetByStudentAndCourse(ctx, actor.ID, courseID)
}
