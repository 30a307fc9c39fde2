package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wellness/internal/domain"
	"wellness/internal/engine"
)

const (
	maxTitleLength = 200
	maxRangeDays   = 366
)

// CalendarService manages scheduled activities and the weekly balance view.
type CalendarService struct {
	events domain.EventRepository
	Now    Clock
}

// NewCalendarService creates a CalendarService.
func NewCalendarService(events domain.EventRepository) *CalendarService {
	return &CalendarService{events: events, Now: time.Now}
}

// EventInput is a new calendar event. Date is YYYY-MM-DD; Impact defaults to
// "none".
type EventInput struct {
	Title  string
	Date   string
	Impact string
}

// AddEvent validates and stores a calendar event.
func (s *CalendarService) AddEvent(ctx context.Context, userID int64, in EventInput) (*domain.CalendarEvent, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || len(title) > maxTitleLength {
		return nil, invalid("title must be 1-%d characters", maxTitleLength)
	}
	date, err := parseDay("date", in.Date)
	if err != nil {
		return nil, err
	}
	impact := domain.ImpactNone
	if in.Impact != "" {
		impact = domain.BalanceImpact(strings.ToLower(in.Impact))
		if !impact.Valid() {
			return nil, invalid("balanceImpactType must be one of rest, moderate, active, none")
		}
	}
	ev := domain.CalendarEvent{UserID: userID, Title: title, EventDate: date, BalanceImpact: impact}
	id, err := s.events.AddEvent(ctx, ev)
	if err != nil {
		return nil, fmt.Errorf("add event: %w", err)
	}
	ev.ID = id
	return &ev, nil
}

// DeleteEvent removes an event owned by the user.
func (s *CalendarService) DeleteEvent(ctx context.Context, userID, id int64) error {
	deleted, err := s.events.DeleteEvent(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// ListRange returns events with start <= date < end. Empty bounds default to
// the current week.
func (s *CalendarService) ListRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.CalendarEvent, error) {
	start := engine.StartOfWeek(s.Now())
	if startDay != "" {
		d, err := parseDay("start", startDay)
		if err != nil {
			return nil, err
		}
		start = d
	}
	end := start.AddDate(0, 0, 7)
	if endDay != "" {
		d, err := parseDay("end", endDay)
		if err != nil {
			return nil, err
		}
		end = d
	}
	if !end.After(start) {
		return nil, invalid("end must be after start")
	}
	if end.Sub(start) > maxRangeDays*24*time.Hour {
		return nil, invalid("range must not exceed %d days", maxRangeDays)
	}
	return s.events.ListEventsInRange(ctx, userID, start, end)
}

// WeeklyBalance classifies the week starting at weekStart (YYYY-MM-DD), or
// the current Monday when weekStart is empty.
func (s *CalendarService) WeeklyBalance(ctx context.Context, userID int64, weekStart string) (engine.WeeklyBalance, error) {
	start := engine.StartOfWeek(s.Now())
	if weekStart != "" {
		d, err := parseDay("weekStart", weekStart)
		if err != nil {
			return engine.WeeklyBalance{}, err
		}
		start = d
	}
	events, err := s.events.ListEventsInRange(ctx, userID, start, start.AddDate(0, 0, 7))
	if err != nil {
		return engine.WeeklyBalance{}, fmt.Errorf("load events: %w", err)
	}
	return engine.ComputeWeeklyBalance(events, start), nil
}
