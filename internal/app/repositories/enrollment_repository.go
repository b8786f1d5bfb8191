package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/db"
)

// EnrollmentRepository handles database operations for course enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new instance of EnrollmentRepository
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: pool,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Enroll inserts the (course, student) pair and bumps the course's
// updated_at. The unique constraint absorbs concurrent attempts; when the
// pair already exists nothing is written and false is returned.
func (r *EnrollmentRepository) Enroll(ctx context.Context, courseID, studentID int64) (bool, error) {
	sql, args, err := r.sb.
		Insert("enrollments").
		Columns("course_id", "student_id").
		Values(courseID, studentID).
		Suffix("ON CONFLICT (course_id, student_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}

	var inserted bool
	err = db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return err
		}
		inserted = tag.RowsAffected() > 0
		if !inserted {
			return nil
		}
		_, err = tx.Exec(ctx, `UPDATE courses SET updated_at = NOW() WHERE id = $1`, courseID)
		return err
	})
	if err != nil {
		return false, err
	}
	return inserted, nil
}
