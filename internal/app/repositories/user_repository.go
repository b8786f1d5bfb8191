package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/pkg/apperrors"
)

const userColumns = `id, email, password, name, role_type, is_email_verified,
	profile_completed, status, bio, avatar_url, phone, created_at, updated_at`

// UserRepository handles database operations for users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and returns the generated id. Emails are stored
// lower-cased; a case-insensitive duplicate surfaces as ErrUserAlreadyExists.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	user.Email = strings.ToLower(user.Email)

	query := `
		INSERT INTO users (email, password, name, role_type, is_email_verified, profile_completed, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Password,
		user.Name,
		user.RoleType,
		user.IsEmailVerified,
		user.ProfileCompleted,
		user.Status,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return 0, apperrors.ErrUserAlreadyExists
		}
		return 0, err
	}

	return user.ID, nil
}

// GetByID fetches a user by primary key
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

// GetByEmail fetches a user by email, matched case-insensitively
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

// EmailExists reports whether an account with the email already exists,
// ignoring case
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE LOWER(email) = LOWER($1))`
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// UpdateProfile applies the provided profile fields, leaving nil fields
// untouched, and marks the profile completed
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, name, bio, avatarURL, phone *string) error {
	query := `
		UPDATE users SET
			name = COALESCE($2, name),
			bio = COALESCE($3, bio),
			avatar_url = COALESCE($4, avatar_url),
			phone = COALESCE($5, phone),
			profile_completed = TRUE,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, name, bio, avatarURL, phone)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored hash and clears any pending reset token
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	query := `
		UPDATE users SET
			password = $2,
			reset_password_token = NULL,
			reset_password_expires = NULL,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, hashedPassword)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// SetResetToken stores a password reset token with its expiry
func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	query := `
		UPDATE users SET
			reset_password_token = $2,
			reset_password_expires = $3,
			updated_at = NOW()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, userID, token, expiresAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// GetByResetToken fetches the user holding an unexpired reset token
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + `
		FROM users
		WHERE reset_password_token = $1 AND reset_password_expires > NOW()`

	user, err := r.scanUser(r.db.QueryRow(ctx, query, token))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPasswordResetToken
		}
		return nil, err
	}
	return user, nil
}

// GetEnrolledCourses lists the courses the user is enrolled in, newest
// enrollment first
func (r *UserRepository) GetEnrolledCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := `
		SELECT c.id, c.title, c.description, c.class_level, c.subject, c.is_premium,
			c.price, c.teacher_id, c.created_at, c.updated_at
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1
		ORDER BY e.enrolled_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		err := rows.Scan(
			&course.ID, &course.Title, &course.Description, &course.ClassLevel,
			&course.Subject, &course.IsPremium, &course.Price, &course.TeacherID,
			&course.CreatedAt, &course.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func (r *UserRepository) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.RoleType,
		&user.IsEmailVerified, &user.ProfileCompleted, &user.Status,
		&user.Bio, &user.AvatarURL, &user.Phone, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
