// Package postgres implements the domain repositories using PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"wellness/internal/domain"
)

const dayLayout = "2006-01-02"

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.CalorieRepository = (*DB)(nil)
var _ domain.EventRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Ping reports whether the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.sql.PingContext(ctx)
}

var migrations = []string{
	"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
	"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",

	"CREATE TABLE IF NOT EXISTS weight_logs (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, weight DOUBLE PRECISION NOT NULL CHECK(weight > 0), unit TEXT NOT NULL CHECK(unit IN ('kg','lbs')), logged_at TIMESTAMPTZ NOT NULL, notes TEXT NOT NULL DEFAULT '');",
	"CREATE INDEX IF NOT EXISTS idx_weight_logs_user_logged_at ON weight_logs(user_id, logged_at DESC);",

	"CREATE TABLE IF NOT EXISTS user_goals (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, goal_type TEXT NOT NULL CHECK(goal_type IN ('cutting','bulking','maintaining')), current_weight DOUBLE PRECISION, target_weight DOUBLE PRECISION, weight_unit TEXT NOT NULL CHECK(weight_unit IN ('kg','lbs')), target_date TIMESTAMPTZ, weekly_goal DOUBLE PRECISION, activity_level TEXT NOT NULL DEFAULT '', is_active BOOLEAN NOT NULL, started_at TIMESTAMPTZ NOT NULL, completed_at TIMESTAMPTZ);",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_goals_one_active ON user_goals(user_id) WHERE is_active;",

	"CREATE TABLE IF NOT EXISTS daily_calorie_tracking (user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, day DATE NOT NULL, target_calories INTEGER NOT NULL, consumed_calories INTEGER NOT NULL DEFAULT 0 CHECK(consumed_calories >= 0), is_adjusted BOOLEAN NOT NULL DEFAULT FALSE, adjustment_reason TEXT NOT NULL DEFAULT '', original_target INTEGER, PRIMARY KEY(user_id, day));",

	"CREATE TABLE IF NOT EXISTS calendar_events (id BIGSERIAL PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, title TEXT NOT NULL, event_date DATE NOT NULL, balance_impact TEXT NOT NULL CHECK(balance_impact IN ('rest','moderate','active','none')));",
	"CREATE INDEX IF NOT EXISTS idx_calendar_events_user_date ON calendar_events(user_id, event_date);",

	"CREATE TABLE IF NOT EXISTS metabolic_profiles (user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE, sex TEXT CHECK(sex IN ('male','female')), birth_date DATE, height_cm DOUBLE PRECISION, weight_lbs DOUBLE PRECISION, activity_level TEXT);",
}

func (d *DB) migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
