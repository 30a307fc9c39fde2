package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"wellness/internal/domain"
)

const weightColumns = "id, user_id, weight, unit, logged_at, notes"

func scanWeight(row interface{ Scan(...any) error }) (domain.WeightLog, error) {
	var w domain.WeightLog
	err := row.Scan(&w.ID, &w.UserID, &w.Weight, &w.Unit, &w.LoggedAt, &w.Notes)
	return w, err
}

// AddWeightLog inserts a new weight log.
func (d *DB) AddWeightLog(ctx context.Context, log domain.WeightLog) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_logs(user_id, weight, unit, logged_at, notes) VALUES($1, $2, $3, $4, $5) RETURNING id;",
		log.UserID, log.Weight, log.Unit, log.LoggedAt.UTC(), log.Notes,
	).Scan(&id)
	return id, err
}

// UpdateWeightLog corrects weight and/or notes of the user's log.
func (d *DB) UpdateWeightLog(ctx context.Context, userID, id int64, patch domain.WeightLogPatch) (*domain.WeightLog, error) {
	var weight sql.NullFloat64
	var notes sql.NullString
	if patch.Weight != nil {
		weight = sql.NullFloat64{Float64: *patch.Weight, Valid: true}
	}
	if patch.Notes != nil {
		notes = sql.NullString{String: *patch.Notes, Valid: true}
	}
	row := d.sql.QueryRowContext(ctx,
		"UPDATE weight_logs SET weight = COALESCE($3, weight), notes = COALESCE($4, notes) WHERE id = $1 AND user_id = $2 RETURNING "+weightColumns+";",
		id, userID, weight, notes,
	)
	w, err := scanWeight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWeightLog removes the user's log by ID.
func (d *DB) DeleteWeightLog(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM weight_logs WHERE id = $1 AND user_id = $2;", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListWeightLogs returns the user's most recent weight logs up to limit.
func (d *DB) ListWeightLogs(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+weightColumns+" FROM weight_logs WHERE user_id = $1 ORDER BY logged_at DESC, id DESC LIMIT $2;", userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightLog, 0, limit)
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// LatestWeightLog returns the user's newest log, or nil.
func (d *DB) LatestWeightLog(ctx context.Context, userID int64) (*domain.WeightLog, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+weightColumns+" FROM weight_logs WHERE user_id = $1 ORDER BY logged_at DESC, id DESC LIMIT 1;", userID)
	w, err := scanWeight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// LatestWeightForLocalDay returns the most recent weight log for a local calendar day.
func (d *DB) LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*domain.WeightLog, error) {
	dayStart, err := time.ParseInLocation(dayLayout, localDay, time.Local)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	row := d.sql.QueryRowContext(ctx,
		"SELECT "+weightColumns+" FROM weight_logs WHERE user_id = $1 AND logged_at >= $2 AND logged_at < $3 ORDER BY logged_at DESC, id DESC LIMIT 1;",
		userID, dayStart.UTC(), dayEnd.UTC(),
	)
	w, err := scanWeight(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}
