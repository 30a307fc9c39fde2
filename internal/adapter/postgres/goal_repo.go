package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wellness/internal/domain"
)

const goalColumns = "id, user_id, goal_type, current_weight, target_weight, weight_unit, target_date, weekly_goal, activity_level, is_active, started_at, completed_at"

func scanGoal(row interface{ Scan(...any) error }) (domain.UserGoal, error) {
	var (
		g                       domain.UserGoal
		current, target, weekly sql.NullFloat64
		targetDate, completedAt sql.NullTime
	)
	err := row.Scan(&g.ID, &g.UserID, &g.GoalType, &current, &target, &g.WeightUnit,
		&targetDate, &weekly, &g.ActivityLevel, &g.IsActive, &g.StartedAt, &completedAt)
	if err != nil {
		return g, err
	}
	g.CurrentWeight = nullFloat(current)
	g.TargetWeight = nullFloat(target)
	g.WeeklyGoal = nullFloat(weekly)
	if targetDate.Valid {
		g.TargetDate = &targetDate.Time
	}
	if completedAt.Valid {
		g.CompletedAt = &completedAt.Time
	}
	return g, nil
}

// CreateActiveGoal retires the user's active goals and inserts goal as the
// active one in a single transaction.
func (d *DB) CreateActiveGoal(ctx context.Context, goal domain.UserGoal) (*domain.UserGoal, error) {
	tx, err := d.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	startedAt := goal.StartedAt.UTC()
	if _, err := tx.ExecContext(ctx,
		"UPDATE user_goals SET is_active = FALSE, completed_at = $2 WHERE user_id = $1 AND is_active;",
		goal.UserID, startedAt,
	); err != nil {
		return nil, fmt.Errorf("retire goals: %w", err)
	}

	var targetDate sql.NullTime
	if goal.TargetDate != nil {
		targetDate = sql.NullTime{Time: goal.TargetDate.UTC(), Valid: true}
	}
	row := tx.QueryRowContext(ctx,
		"INSERT INTO user_goals(user_id, goal_type, current_weight, target_weight, weight_unit, target_date, weekly_goal, activity_level, is_active, started_at) "+
			"VALUES($1, $2, $3, $4, $5, $6, $7, $8, TRUE, $9) RETURNING "+goalColumns+";",
		goal.UserID, goal.GoalType, toNullFloat(goal.CurrentWeight), toNullFloat(goal.TargetWeight), goal.WeightUnit,
		targetDate, toNullFloat(goal.WeeklyGoal), goal.ActivityLevel, startedAt,
	)
	created, err := scanGoal(row)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &created, nil
}

// ActiveGoal returns the user's active goal, or nil.
func (d *DB) ActiveGoal(ctx context.Context, userID int64) (*domain.UserGoal, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+goalColumns+" FROM user_goals WHERE user_id = $1 AND is_active LIMIT 1;", userID)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// ListGoals returns every goal of the user, newest first.
func (d *DB) ListGoals(ctx context.Context, userID int64) ([]domain.UserGoal, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+goalColumns+" FROM user_goals WHERE user_id = $1 ORDER BY started_at DESC, id DESC;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.UserGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}

func toNullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
