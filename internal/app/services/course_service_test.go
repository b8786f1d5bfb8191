package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/app/models/dto"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
	"github.com/eduverse/eduverse/internal/pkg/mediastore"
)

type courseFixture struct {
	service  ICourseService
	courses  *fakeCourseRepo
	lectures *fakeLectureRepo
	teacher  *models.User
	student  *models.User
}

func newCourseFixture() *courseFixture {
	courses := newFakeCourseRepo()
	lectures := newFakeLectureRepo()
	return &courseFixture{
		service:  NewCourseService(courses, lectures, mediastore.Disabled{}),
		courses:  courses,
		lectures: lectures,
		teacher:  &models.User{ID: 1, Name: "Ravi Iyer", RoleType: models.RoleTeacher},
		student:  &models.User{ID: 2, Name: "Asha Verma", RoleType: models.RoleStudent},
	}
}

func createCourseReq() *dto.CreateCourseRequest {
	return &dto.CreateCourseRequest{
		Title:       "Algebra Basics",
		Description: "Linear equations and factorization for class 9.",
		Class:       9,
		Subject:     "Mathematics",
		IsPremium:   true,
		Price:       499,
		Syllabus: []dto.SyllabusItemInput{
			{Topic: "Linear equations", Duration: "2h"},
			{Topic: "Factorization", Duration: "3h"},
		},
	}
}

func TestCreateCourse(t *testing.T) {
	f := newCourseFixture()

	course, err := f.service.CreateCourse(context.Background(), f.teacher, createCourseReq())
	require.NoError(t, err)

	assert.Equal(t, f.teacher.ID, course.TeacherID)
	assert.Equal(t, int64(499), course.Price)
	require.Len(t, course.Syllabus, 2)
	assert.Equal(t, "Linear equations", course.Syllabus[0].Topic)
}

func TestCreateCourseStudentForbidden(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.CreateCourse(context.Background(), f.student, createCourseReq())
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestCreateCourseValidatesClassAndSubject(t *testing.T) {
	f := newCourseFixture()

	req := createCourseReq()
	req.Class = 11
	_, err := f.service.CreateCourse(context.Background(), f.teacher, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	req = createCourseReq()
	req.Subject = "Astronomy"
	_, err = f.service.CreateCourse(context.Background(), f.teacher, req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateCourseFreeCoursesCarryZeroPrice(t *testing.T) {
	f := newCourseFixture()

	req := createCourseReq()
	req.IsPremium = false
	req.Price = 750

	course, err := f.service.CreateCourse(context.Background(), f.teacher, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), course.Price)
}

func TestAddLecture(t *testing.T) {
	f := newCourseFixture()
	course, err := f.service.CreateCourse(context.Background(), f.teacher, createCourseReq())
	require.NoError(t, err)

	lecture, err := f.service.AddLecture(context.Background(), f.teacher, course.ID, &dto.AddLectureRequest{
		Title:    "Introduction",
		VideoURL: "https://cdn.example.com/intro.mp4",
	})
	require.NoError(t, err)

	assert.Equal(t, course.ID, lecture.CourseID)
	require.NotNil(t, lecture.VideoURL)
	assert.Equal(t, "https://cdn.example.com/intro.mp4", *lecture.VideoURL)
	assert.Nil(t, lecture.PdfURL)
}

func TestAddLectureOnlyByOwningTeacher(t *testing.T) {
	f := newCourseFixture()
	course, err := f.service.CreateCourse(context.Background(), f.teacher, createCourseReq())
	require.NoError(t, err)

	otherTeacher := &models.User{ID: 3, RoleType: models.RoleTeacher}
	_, err = f.service.AddLecture(context.Background(), otherTeacher, course.ID, &dto.AddLectureRequest{Title: "Hijack"})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestAddLectureUnknownCourse(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.AddLecture(context.Background(), f.teacher, 999, &dto.AddLectureRequest{Title: "Ghost"})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestAddLectureInlineMediaWithoutStore(t *testing.T) {
	f := newCourseFixture()
	course, err := f.service.CreateCourse(context.Background(), f.teacher, createCourseReq())
	require.NoError(t, err)

	_, err = f.service.AddLecture(context.Background(), f.teacher, course.ID, &dto.AddLectureRequest{
		Title:    "Uploaded video",
		VideoURL: "data:video/mp4;base64,AAAA",
	})
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
}

func TestGetLecturesIsPublic(t *testing.T) {
	f := newCourseFixture()
	course, err := f.service.CreateCourse(context.Background(), f.teacher, createCourseReq())
	require.NoError(t, err)

	_, err = f.service.AddLecture(context.Background(), f.teacher, course.ID, &dto.AddLectureRequest{Title: "Introduction"})
	require.NoError(t, err)

	// The listing is part of the public catalog; no enrollment needed
	lectures, err := f.service.GetLectures(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Len(t, lectures, 1)
	assert.Equal(t, "Introduction", lectures[0].Title)
}

func TestGetLecturesUnknownCourse(t *testing.T) {
	f := newCourseFixture()

	_, err := f.service.GetLectures(context.Background(), 999)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}
