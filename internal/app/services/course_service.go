package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/app/repositories"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/logger"
	"github.com/eduverse/eduverse/internal/pkg/mediastore"
)

// courseService implements ICourseService
type courseService struct {
	courseRepo  repositories.ICourseRepository
	lectureRepo repositories.ILectureRepository
	mediaStore  mediastore.Store
}

// NewCourseService creates a new course catalog service
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	lectureRepo repositories.ILectureRepository,
	mediaStore mediastore.Store,
) ICourseService {
	return &courseService{
		courseRepo:  courseRepo,
		lectureRepo: lectureRepo,
		mediaStore:  mediaStore,
	}
}

// ListCourses returns the whole catalog. The catalog is public; no identity
// is consulted.
func (s *courseService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.courseRepo.List(ctx)
}

// GetCourse returns a single course with its relations
func (s *courseService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// CreateCourse creates a course owned by the acting teacher
func (s *courseService) CreateCourse(ctx context.Context, actor *models.User, req *dto.CreateCourseRequest) (*models.Course, error) {
	if actor.RoleType != models.RoleTeacher {
		return nil, apperrors.NewForbiddenError("only teachers can create courses")
	}

	if !models.ValidClassLevel(req.Class) {
		return nil, apperrors.NewValidationError("class must be 8, 9 or 10")
	}
	if !models.ValidSubject(req.Subject) {
		return nil, apperrors.NewValidationError("subject is not in the supported list")
	}

	price := req.Price
	if !req.IsPremium {
		// Free courses always carry a zero price
		price = 0
	}

	course := &models.Course{
		Title:       req.Title,
		Description: req.Description,
		ClassLevel:  req.Class,
		Subject:     req.Subject,
		IsPremium:   req.IsPremium,
		Price:       price,
		TeacherID:   actor.ID,
	}

	syllabus := make([]*models.SyllabusItem, 0, len(req.Syllabus))
	for _, item := range req.Syllabus {
		syllabus = append(syllabus, &models.SyllabusItem{
			Topic:       item.Topic,
			Description: item.Description,
			Duration:    item.Duration,
		})
	}

	if _, err := s.courseRepo.Create(ctx, course, syllabus); err != nil {
		return nil, err
	}
	course.Teacher = actor

	logger.Info().
		Int64("courseId", course.ID).
		Int64("teacherId", actor.ID).
		Str("subject", course.Subject).
		Msg("Course created")
	return course, nil
}

// AddLecture appends a lecture to a course owned by the acting teacher.
// Inline media payloads are uploaded to the media store first; the lecture
// only ever stores durable URLs.
func (s *courseService) AddLecture(ctx context.Context, actor *models.User, courseID int64, req *dto.AddLectureRequest) (*models.Lecture, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course.TeacherID != actor.ID {
		return nil, apperrors.NewForbiddenError("only the course teacher can add lectures")
	}

	videoURL, err := s.resolveMedia(ctx, req.VideoURL, mediastore.KindVideo)
	if err != nil {
		return nil, err
	}
	pdfURL, err := s.resolveMedia(ctx, req.PdfURL, mediastore.KindPDF)
	if err != nil {
		return nil, err
	}

	lecture := &models.Lecture{
		CourseID: course.ID,
		Title:    req.Title,
		VideoURL: videoURL,
		PdfURL:   pdfURL,
	}

	if _, err := s.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Touch(ctx, course.ID); err != nil {
		return nil, err
	}

	logger.Info().Int64("lectureId", lecture.ID).Int64("courseId", course.ID).Msg("Lecture added")
	return lecture, nil
}

// GetLectures lists a course's lectures. Like the rest of the catalog the
// listing is public; no identity is consulted.
func (s *courseService) GetLectures(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return s.lectureRepo.GetByCourseID(ctx, courseID)
}

func (s *courseService) resolveMedia(ctx context.Context, ref string, kind mediastore.Kind) (*string, error) {
	if ref == "" {
		return nil, nil
	}

	url, err := s.mediaStore.Resolve(ctx, ref, kind)
	if err != nil {
		if errors.Is(err, mediastore.ErrNotConfigured) {
			return nil, apperrors.NewServiceUnavailableError("media storage is not configured")
		}
		if errors.Is(err, mediastore.ErrInvalidPayload) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("invalid inline %s payload", kind))
		}
		return nil, err
	}
	return &url, nil
}
