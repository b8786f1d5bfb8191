package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/db"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
)

const courseColumns = `id, title, description, class_level, subject, is_premium,
	price, teacher_id, created_at, updated_at`

// CourseRepository handles database operations for the course catalog
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new instance of CourseRepository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// Create inserts a course together with its syllabus items in one transaction
func (r *CourseRepository) Create(ctx context.Context, course *models.Course, syllabus []*models.SyllabusItem) (int64, error) {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO courses (title, description, class_level, subject, is_premium, price, teacher_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRow(ctx, query,
			course.Title,
			course.Description,
			course.ClassLevel,
			course.Subject,
			course.IsPremium,
			course.Price,
			course.TeacherID,
		).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
		if err != nil {
			return err
		}

		for i, item := range syllabus {
			item.CourseID = course.ID
			item.Position = i
			err := tx.QueryRow(ctx,
				`INSERT INTO syllabus_items (course_id, position, topic, description, duration)
				 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
				item.CourseID, item.Position, item.Topic, item.Description, item.Duration,
			).Scan(&item.ID)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	course.Syllabus = syllabus
	return course.ID, nil
}

// GetByID fetches a course with its teacher, syllabus, lectures and students
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`

	course := &models.Course{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&course.ID, &course.Title, &course.Description, &course.ClassLevel,
		&course.Subject, &course.IsPremium, &course.Price, &course.TeacherID,
		&course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, err
	}

	if err := r.loadRelations(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// List returns all courses with teachers and student counts, newest first
func (r *CourseRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.class_level, c.subject, c.is_premium,
			c.price, c.teacher_id, c.created_at, c.updated_at,
			u.id, u.email, u.name, u.role_type
		FROM courses c
		JOIN users u ON u.id = c.teacher_id
		ORDER BY c.created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		teacher := &models.User{}
		err := rows.Scan(
			&course.ID, &course.Title, &course.Description, &course.ClassLevel,
			&course.Subject, &course.IsPremium, &course.Price, &course.TeacherID,
			&course.CreatedAt, &course.UpdatedAt,
			&teacher.ID, &teacher.Email, &teacher.Name, &teacher.RoleType,
		)
		if err != nil {
			return nil, err
		}
		course.Teacher = teacher
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, course := range courses {
		students, err := r.GetStudents(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		course.Students = students
	}
	return courses, nil
}

// GetStudents lists the users enrolled in a course, oldest enrollment first
func (r *CourseRepository) GetStudents(ctx context.Context, courseID int64) ([]*models.User, error) {
	query := `
		SELECT u.id, u.email, u.name, u.role_type
		FROM users u
		JOIN enrollments e ON e.student_id = u.id
		WHERE e.course_id = $1
		ORDER BY e.enrolled_at ASC`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.User
	for rows.Next() {
		student := &models.User{}
		if err := rows.Scan(&student.ID, &student.Email, &student.Name, &student.RoleType); err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// Touch bumps the course's updated_at after a dependent mutation
func (r *CourseRepository) Touch(ctx context.Context, courseID int64) error {
	tag, err := r.db.Exec(ctx, `UPDATE courses SET updated_at = NOW() WHERE id = $1`, courseID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) loadRelations(ctx context.Context, course *models.Course) error {
	teacher := &models.User{}
	err := r.db.QueryRow(ctx,
		`SELECT id, email, name, role_type FROM users WHERE id = $1`, course.TeacherID,
	).Scan(&teacher.ID, &teacher.Email, &teacher.Name, &teacher.RoleType)
	if err != nil {
		return err
	}
	course.Teacher = teacher

	rows, err := r.db.Query(ctx,
		`SELECT id, course_id, position, topic, description, duration
		 FROM syllabus_items WHERE course_id = $1 ORDER BY position ASC`, course.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		item := &models.SyllabusItem{}
		err := rows.Scan(&item.ID, &item.CourseID, &item.Position, &item.Topic, &item.Description, &item.Duration)
		if err != nil {
			return err
		}
		course.Syllabus = append(course.Syllabus, item)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	lectures, err := NewLectureRepository(r.db).GetByCourseID(ctx, course.ID)
	if err != nil {
		return err
	}
	course.Lectures = lectures

	students, err := r.GetStudents(ctx, course.ID)
	if err != nil {
		return err
	}
	course.Students = students
	return nil
}
