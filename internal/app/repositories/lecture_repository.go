package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
)

// LectureRepository handles database operations for lectures
type LectureRepository struct {
	db *pgxpool.Pool
}

// NewLectureRepository creates a new instance of LectureRepository
func NewLectureRepository(db *pgxpool.Pool) *LectureRepository {
	return &LectureRepository{db: db}
}

// Create inserts a new lecture and returns the generated id
func (r *LectureRepository) Create(ctx context.Context, lecture *models.Lecture) (int64, error) {
	query := `
		INSERT INTO lectures (course_id, title, video_url, pdf_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query,
		lecture.CourseID,
		lecture.Title,
		lecture.VideoURL,
		lecture.PdfURL,
	).Scan(&lecture.ID, &lecture.CreatedAt)
	if err != nil {
		return 0, err
	}
	return lecture.ID, nil
}

// GetByID fetches a lecture by primary key
func (r *LectureRepository) GetByID(ctx context.Context, id int64) (*models.Lecture, error) {
	query := `SELECT id, course_id, title, video_url, pdf_url, created_at FROM lectures WHERE id = $1`

	lecture := &models.Lecture{}
	err := r.db.QueryRow(ctx, query, id).Scan(
		&lecture.ID, &lecture.CourseID, &lecture.Title,
		&lecture.VideoURL, &lecture.PdfURL, &lecture.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLectureNotFound
		}
		return nil, err
	}
	return lecture, nil
}

// GetByCourseID lists a course's lectures in insertion order
func (r *LectureRepository) GetByCourseID(ctx context.Context, courseID int64) ([]*models.Lecture, error) {
	query := `SELECT id, course_id, title, video_url, pdf_url, created_at
		FROM lectures WHERE course_id = $1 ORDER BY id ASC`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lectures []*models.Lecture
	for rows.Next() {
		lecture := &models.Lecture{}
		err := rows.Scan(
			&lecture.ID, &lecture.CourseID, &lecture.Title,
			&lecture.VideoURL, &lecture.PdfURL, &lecture.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		lectures = append(lectures, lecture)
	}
	return lectures, rows.Err()
}
