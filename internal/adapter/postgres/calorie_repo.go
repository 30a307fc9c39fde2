package postgres

import (
	"context"
	"database/sql"
	"errors"

	"wellness/internal/domain"
)

const trackingColumns = "user_id, to_char(day, 'YYYY-MM-DD'), target_calories, consumed_calories, is_adjusted, adjustment_reason, original_target"

func scanTracking(row interface{ Scan(...any) error }) (domain.DailyCalorieTracking, error) {
	var (
		t    domain.DailyCalorieTracking
		orig sql.NullInt64
	)
	err := row.Scan(&t.UserID, &t.Day, &t.TargetCalories, &t.ConsumedCalories, &t.IsAdjusted, &t.AdjustmentReason, &orig)
	if err != nil {
		return t, err
	}
	if orig.Valid {
		v := int(orig.Int64)
		t.OriginalTarget = &v
	}
	t.Recompute()
	return t, nil
}

// GetDailyTracking returns the user's record for day, or nil.
func (d *DB) GetDailyTracking(ctx context.Context, userID int64, day string) (*domain.DailyCalorieTracking, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+trackingColumns+" FROM daily_calorie_tracking WHERE user_id = $1 AND day = $2::date;", userID, day)
	t, err := scanTracking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CreateDailyTrackingIfAbsent inserts t unless the day already has a record,
// then returns the stored record.
func (d *DB) CreateDailyTrackingIfAbsent(ctx context.Context, t domain.DailyCalorieTracking) (*domain.DailyCalorieTracking, error) {
	var orig sql.NullInt64
	if t.OriginalTarget != nil {
		orig = sql.NullInt64{Int64: int64(*t.OriginalTarget), Valid: true}
	}
	if _, err := d.sql.ExecContext(ctx,
		"INSERT INTO daily_calorie_tracking(user_id, day, target_calories, consumed_calories, is_adjusted, adjustment_reason, original_target) "+
			"VALUES($1, $2::date, $3, $4, $5, $6, $7) ON CONFLICT (user_id, day) DO NOTHING;",
		t.UserID, t.Day, t.TargetCalories, t.ConsumedCalories, t.IsAdjusted, t.AdjustmentReason, orig,
	); err != nil {
		return nil, err
	}
	stored, err := d.GetDailyTracking(ctx, t.UserID, t.Day)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, domain.ErrNotFound
	}
	return stored, nil
}

// AddConsumedCalories increments the day's consumed total in place.
func (d *DB) AddConsumedCalories(ctx context.Context, userID int64, day string, calories int) (*domain.DailyCalorieTracking, error) {
	row := d.sql.QueryRowContext(ctx,
		"UPDATE daily_calorie_tracking SET consumed_calories = consumed_calories + $3 WHERE user_id = $1 AND day = $2::date RETURNING "+trackingColumns+";",
		userID, day, calories,
	)
	t, err := scanTracking(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// RecentDailyTracking returns at most n of the user's records, newest first.
func (d *DB) RecentDailyTracking(ctx context.Context, userID int64, n int) ([]domain.DailyCalorieTracking, error) {
	return d.queryTracking(ctx,
		"SELECT "+trackingColumns+" FROM daily_calorie_tracking WHERE user_id = $1 ORDER BY day DESC LIMIT $2;", userID, n)
}

// ListDailyTrackingRange returns the user's records in [startDay, endDay],
// oldest first.
func (d *DB) ListDailyTrackingRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyCalorieTracking, error) {
	return d.queryTracking(ctx,
		"SELECT "+trackingColumns+" FROM daily_calorie_tracking WHERE user_id = $1 AND day BETWEEN $2::date AND $3::date ORDER BY day;",
		userID, startDay, endDay)
}

func (d *DB) queryTracking(ctx context.Context, query string, args ...any) ([]domain.DailyCalorieTracking, error) {
	rows, err := d.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.DailyCalorieTracking
	for rows.Next() {
		t, err := scanTracking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
