package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
)

// In-memory repository fakes used across the service tests.

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*models.User
	resets map[int64]struct {
		token   string
		expires time.Time
	}
	enrolled map[int64][]*models.Course
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: map[int64]*models.User{},
		resets: map[int64]struct {
			token   string
			expires time.Time
		}{},
		enrolled: map[int64][]*models.Course{},
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return 0, apperrors.ErrUserAlreadyExists
		}
	}
	user.Email = strings.ToLower(user.Email)
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return user.ID, nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, userID int64, name, bio, avatarURL, phone *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if name != nil {
		user.Name = *name
	}
	if bio != nil {
		user.Bio = bio
	}
	if avatarURL != nil {
		user.AvatarURL = avatarURL
	}
	if phone != nil {
		user.Phone = phone
	}
	user.ProfileCompleted = true
	user.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = hashedPassword
	delete(r.resets, userID)
	return nil
}

func (r *fakeUserRepo) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.resets[userID] = struct {
		token   string
		expires time.Time
	}{token, expiresAt}
	return nil
}

func (r *fakeUserRepo) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, reset := range r.resets {
		if reset.token == token && reset.expires.After(time.Now()) {
			copied := *r.users[id]
			return &copied, nil
		}
	}
	return nil, apperrors.ErrInvalidPasswordResetToken
}

func (r *fakeUserRepo) GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enrolled[userID], nil
}

type fakeCourseRepo struct {
	nextID  int64
	courses map[int64]*models.Course
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{courses: map[int64]*models.Course{}}
}

func (r *fakeCourseRepo) Create(ctx context.Context, course *models.Course, syllabus []*models.SyllabusItem) (int64, error) {
	r.nextID++
	course.ID = r.nextID
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	course.Syllabus = syllabus
	r.courses[course.ID] = course
	return course.ID, nil
}

func (r *fakeCourseRepo) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return course, nil
}

func (r *fakeCourseRepo) List(ctx context.Context) ([]*models.Course, error) {
	var out []*models.Course
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) GetStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	return nil, nil
}

func (r *fakeCourseRepo) Touch(ctx context.Context, courseID int64) error {
	course, ok := r.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	course.UpdatedAt = time.Now()
	return nil
}

type fakeLectureRepo struct {
	nextID   int64
	lectures map[int64]*models.Lecture
}

func newFakeLectureRepo() *fakeLectureRepo {
	return &fakeLectureRepo{lectures: map[int64]*models.Lecture{}}
}

func (r *fakeLectureRepo) Create(ctx context.Context, lecture *models.Lecture) (int64, error) {
	r.nextID++
	lecture.ID = r.nextID
	lecture.CreatedAt = time.Now()
	r.lectures[lecture.ID] = lecture
	return lecture.ID, nil
}

func (r *fakeLectureRepo) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	lecture, ok := r.lectures[id]
	if !ok {
		return nil, apperrors.ErrLectureNotFound
	}
	return lecture, nil
}

func (r *fakeLectureRepo) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	var out []*models.Lecture
	for id := int64(1); id <= r.nextID; id++ {
		if l, ok := r.lectures[id]; ok && l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

type enrollmentKey struct {
	courseID  int64
	studentID int64
}

type fakeEnrollmentRepo struct {
	pairs map[enrollmentKey]bool
}

func newFakeEnrollmentRepo() *fakeEnrollmentRepo {
	return &fakeEnrollmentRepo{pairs: map[enrollmentKey]bool{}}
}

func (r *fakeEnrollmentRepo) Enroll(ctx context.Context, courseID, studentID int64) (bool, error) {
	key := enrollmentKey{courseID, studentID}
	if r.pairs[key] {
		return false, nil
	}
	r.pairs[key] = true
	return true, nil
}

type progressKey struct {
	studentID int64
	courseID  int64
}

// fakeProgressRepo mirrors the transactional recompute of the real
// repository: percentage always derives from the completed set and the
// course's lecture count.
type fakeProgressRepo struct {
	lectures  *fakeLectureRepo
	completed map[progressKey]map[int64]bool
}

func newFakeProgressRepo(lectures *fakeLectureRepo) *fakeProgressRepo {
	return &fakeProgressRepo{
		lectures:  lectures,
		completed: map[progressKey]map[int64]bool{},
	}
}

func (r *fakeProgressRepo) RecordCompletion(ctx context.Context, studentID, courseID, lectureID int64) (*models.Progress, error) {
	key := progressKey{studentID, courseID}
	if r.completed[key] == nil {
		r.completed[key] = map[int64]bool{}
	}
	r.completed[key][lectureID] = true
	return r.snapshot(ctx, key)
}

func (r *fakeProgressRepo) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Progress, error) {
	return r.snapshot(ctx, progressKey{studentID, courseID})
}

func (r *fakeProgressRepo) snapshot(ctx context.Context, key progressKey) (*models.Progress, error) {
	lectures, _ := r.lectures.GetByCourseID(ctx, key.courseID)
	total := len(lectures)

	ids := []int64{}
	for id := range r.completed[key] {
		ids = append(ids, id)
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(len(ids)) / float64(total) * 100
	}

	return &models.Progress{
		StudentID:         key.studentID,
		CourseID:          key.courseID,
		Percentage:        percentage,
		UpdatedAt:         time.Now(),
		CompletedLectures: ids,
	}, nil
}

// fakeEmailService records sent mail without touching the network
type fakeEmailService struct {
	mu        sync.Mutex
	resetURLs []string
	welcomes  []string
}

func (s *fakeEmailService) SendPasswordResetEmail(toEmail, toName, resetURL string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetURLs = append(s.resetURLs, resetURL)
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(toEmail, toName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.welcomes = append(s.welcomes, toEmail)
	return nil
}
