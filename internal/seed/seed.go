// Package seed creates default data for demo installations.
package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/eduverse/eduverse/internal/app/models"
	"github.com/eduverse/eduverse/internal/config"
	"github.com/eduverse/eduverse/internal/pkg/auth"
)

// querier is the subset of pgxpool.Pool the seeder reads and writes through
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CreateDefaultData seeds the demo accounts when demo login is enabled.
// Seeding is idempotent: existing rows are left untouched.
func CreateDefaultData(ctx context.Context, pool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	if !cfg.Demo.Enabled || cfg.Demo.Email == "" || cfg.Demo.Password == "" {
		lgr.Debug().Msg("Demo login disabled, skipping seed data")
		return nil
	}

	demoID, err := ensureUser(ctx, pool, cfg.Demo.Email, cfg.Demo.Password, "Demo Student", models.RoleStudent)
	if err != nil {
		return fmt.Errorf("failed to seed demo student: %w", err)
	}

	teacherID, err := ensureUser(ctx, pool, "demo.teacher@eduverse.app", cfg.Demo.Password, "Demo Teacher", models.RoleTeacher)
	if err != nil {
		return fmt.Errorf("failed to seed demo teacher: %w", err)
	}

	if err := ensureSampleCourse(ctx, pool, teacherID); err != nil {
		return fmt.Errorf("failed to seed sample course: %w", err)
	}

	lgr.Info().Int64("demoUserId", demoID).Msg("Demo seed data ready")
	return nil
}

// ensureUser creates the account if it does not exist and returns its id
func ensureUser(ctx context.Context, db querier, email, password, name string, role models.RoleType) (int64, error) {
	const selectID = `SELECT id FROM users WHERE LOWER(email) = LOWER($1)`

	var id int64
	err := db.QueryRow(ctx, selectID, email).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}

	err = db.QueryRow(ctx,
		`INSERT INTO users (email, password, name, role_type, is_email_verified, profile_completed, status)
		 VALUES ($1, $2, $3, $4, TRUE, TRUE, $5)
		 ON CONFLICT DO NOTHING
		 RETURNING id`,
		email, hashed, name, role, models.StatusActive).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	// DO NOTHING returns no row when a concurrent seeder won the insert;
	// the account exists now, so read it back
	err = db.QueryRow(ctx, selectID, email).Scan(&id)
	return id, err
}

// ensureSampleCourse creates one free course so the demo catalog is not empty
func ensureSampleCourse(ctx context.Context, pool *pgxpool.Pool, teacherID int64) error {
	var exists bool
	err := pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM courses WHERE teacher_id = $1)`, teacherID).Scan(&exists)
	if err != nil || exists {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO courses (title, description, class_level, subject, is_premium, price, teacher_id)
		 VALUES ($1, $2, $3, $4, FALSE, 0, $5)`,
		"Introduction to Science",
		"A sample course covering the basics of the class 9 science curriculum.",
		9, "Science", teacherID)
	return err
}
