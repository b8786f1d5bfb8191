package repositories

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/db"
)

// ProgressRepository handles database operations for lecture progress
type ProgressRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProgressRepository creates a new instance of ProgressRepository
func NewProgressRepository(pool *pgxpool.Pool) *ProgressRepository {
	return &ProgressRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// RecordCompletion marks a lecture completed and recomputes the percentage
// from the completed set and the course's current lecture count. The whole
// update runs in one transaction so the stored percentage never drifts from
// the completed set. Marking an already completed lecture changes nothing
// but still returns the current state.
func (r *ProgressRepository) RecordCompletion(ctx context.Context, studentID, courseID, lectureID int64) (*models.Progress, error) {
	progress := &models.Progress{StudentID: studentID, CourseID: courseID}

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		upsert, args, err := r.sb.
			Insert("progress").
			Columns("student_id", "course_id").
			Values(studentID, courseID).
			Suffix("ON CONFLICT (student_id, course_id) DO UPDATE SET updated_at = NOW()").
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return err
		}
		if err := tx.QueryRow(ctx, upsert, args...).Scan(&progress.ID); err != nil {
			return err
		}

		_, err = tx.Exec(ctx,
			`INSERT INTO progress_lectures (progress_id, lecture_id)
			 VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			progress.ID, lectureID)
		if err != nil {
			return err
		}

		var completed, total int
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM progress_lectures WHERE progress_id = $1`,
			progress.ID).Scan(&completed)
		if err != nil {
			return err
		}
		err = tx.QueryRow(ctx,
			`SELECT COUNT(*) FROM lectures WHERE course_id = $1`,
			courseID).Scan(&total)
		if err != nil {
			return err
		}

		// A course without lectures reports zero, never a division error.
		percentage := 0.0
		if total > 0 {
			percentage = float64(completed) / float64(total) * 100
		}

		err = tx.QueryRow(ctx,
			`UPDATE progress SET percentage = $2, updated_at = NOW()
			 WHERE id = $1 RETURNING percentage, updated_at`,
			progress.ID, percentage).Scan(&progress.Percentage, &progress.UpdatedAt)
		if err != nil {
			return err
		}

		progress.CompletedLectures, err = completedLectures(ctx, tx, progress.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// GetByStudentAndCourse fetches the progress row for a (student, course)
// pair. A missing row yields a zero-percentage record rather than an error;
// never having marked a lecture is valid state.
func (r *ProgressRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Progress, error) {
	sql, args, err := r.sb.
		Select("id", "student_id", "course_id", "percentage", "updated_at").
		From("progress").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	progress := &models.Progress{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&progress.ID, &progress.StudentID, &progress.CourseID,
		&progress.Percentage, &progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &models.Progress{
				StudentID:         studentID,
				CourseID:          courseID,
				CompletedLectures: []int64{},
			}, nil
		}
		return nil, err
	}

	progress.CompletedLectures, err = completedLectures(ctx, r.db, progress.ID)
	if err != nil {
		return nil, err
	}
	return progress, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func completedLectures(ctx context.Context, q querier, progressID int64) ([]int64, error) {
	rows, err := q.Query(ctx,
		`SELECT lecture_id FROM progress_lectures WHERE progress_id = $1 ORDER BY lecture_id ASC`,
		progressID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
