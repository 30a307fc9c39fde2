package postgres

import (
	"context"
	"time"

	"wellness/internal/domain"
)

// AddEvent inserts a calendar event.
func (d *DB) AddEvent(ctx context.Context, ev domain.CalendarEvent) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO calendar_events(user_id, title, event_date, balance_impact) VALUES($1, $2, $3::date, $4) RETURNING id;",
		ev.UserID, ev.Title, ev.EventDate.Format(dayLayout), ev.BalanceImpact,
	).Scan(&id)
	return id, err
}

// DeleteEvent removes the user's event by ID.
func (d *DB) DeleteEvent(ctx context.Context, userID, id int64) (bool, error) {
	res, err := d.sql.ExecContext(ctx, "DELETE FROM calendar_events WHERE id = $1 AND user_id = $2;", id, userID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListEventsInRange returns the user's events whose day is in [start, end).
func (d *DB) ListEventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.CalendarEvent, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, title, to_char(event_date, 'YYYY-MM-DD'), balance_impact FROM calendar_events "+
			"WHERE user_id = $1 AND event_date >= $2::date AND event_date < $3::date ORDER BY event_date, id;",
		userID, start.Format(dayLayout), end.Format(dayLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.CalendarEvent
	for rows.Next() {
		var (
			ev  domain.CalendarEvent
			day string
		)
		if err := rows.Scan(&ev.ID, &ev.UserID, &ev.Title, &day, &ev.BalanceImpact); err != nil {
			return nil, err
		}
		if ev.EventDate, err = time.Parse(dayLayout, day); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
