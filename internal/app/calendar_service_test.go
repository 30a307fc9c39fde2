package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"wellness/internal/adapter/memory"
	"wellness/internal/app"
	"wellness/internal/domain"
)

func TestAddEvent_Validation(t *testing.T) {
	svc := app.NewCalendarService(&mockEventRepo{})

	tests := []struct {
		name string
		in   app.EventInput
	}{
		{"empty title", app.EventInput{Title: "  ", Date: "2026-03-16"}},
		{"long title", app.EventInput{Title: strings.Repeat("x", 201), Date: "2026-03-16"}},
		{"bad date", app.EventInput{Title: "Run", Date: "March 16"}},
		{"bad impact", app.EventInput{Title: "Run", Date: "2026-03-16", Impact: "extreme"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.AddEvent(context.Background(), 1, tc.in); !errors.Is(err, app.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestAddEvent_DefaultsToNone(t *testing.T) {
	svc := app.NewCalendarService(&mockEventRepo{})
	ev, err := svc.AddEvent(context.Background(), 1, app.EventInput{Title: "Dentist", Date: "2026-03-18"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.BalanceImpact != domain.ImpactNone || ev.ID != 1 {
		t.Fatalf("unexpected event: %+v", ev)
	}
}

func TestWeeklyBalance_InsufficientRest(t *testing.T) {
	db := memory.New()
	svc := app.NewCalendarService(db)
	svc.Now = fixedClock(testNow.AddDate(0, 0, 3))
	ctx := context.Background()

	plan := []struct {
		date   string
		impact string
	}{
		{"2026-03-16", "active"},
		{"2026-03-17", "active"},
		{"2026-03-17", "rest"},
		{"2026-03-18", "active"},
		{"2026-03-19", "active"},
		{"2026-03-20", "moderate"},
		{"2026-03-23", "rest"}, // next week
	}
	for _, p := range plan {
		if _, err := svc.AddEvent(ctx, 1, app.EventInput{Title: p.impact, Date: p.date, Impact: p.impact}); err != nil {
			t.Fatalf("AddEvent: %v", err)
		}
	}

	b, err := svc.WeeklyBalance(ctx, 1, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.WeekStart != "2026-03-16" {
		t.Fatalf("expected current Monday, got %s", b.WeekStart)
	}
	if b.ActiveDays != 4 || b.ModerateDays != 1 || b.RestDays != 0 || b.Balanced {
		t.Fatalf("unexpected balance: %+v", b)
	}
	if !strings.Contains(b.Recommendation, "rest") {
		t.Fatalf("recommendation should flag rest: %q", b.Recommendation)
	}

	next, _ := svc.WeeklyBalance(ctx, 1, "2026-03-23")
	if next.RestDays != 1 || next.ActiveDays != 0 {
		t.Fatalf("unexpected next week: %+v", next)
	}

	if _, err := svc.WeeklyBalance(ctx, 1, "23-03-2026"); !errors.Is(err, app.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestListRange(t *testing.T) {
	var gotStart, gotEnd time.Time
	repo := &mockEventRepo{
		rangeFn: func(_ context.Context, _ int64, start, end time.Time) ([]domain.CalendarEvent, error) {
			gotStart, gotEnd = start, end
			return nil, nil
		},
	}
	svc := app.NewCalendarService(repo)
	svc.Now = fixedClock(testNow)

	if _, err := svc.ListRange(context.Background(), 1, "", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotStart.Format("2006-01-02") != "2026-03-16" || gotEnd.Format("2006-01-02") != "2026-03-23" {
		t.Fatalf("unexpected default range: %s - %s", gotStart, gotEnd)
	}

	for _, tc := range [][2]string{{"2026-03-20", "2026-03-16"}, {"2026-01-01", "2027-06-01"}, {"bad", ""}} {
		if _, err := svc.ListRange(context.Background(), 1, tc[0], tc[1]); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("ListRange(%s, %s): expected ErrInvalidInput, got %v", tc[0], tc[1], err)
		}
	}
}

func TestDeleteEvent_NotFound(t *testing.T) {
	svc := app.NewCalendarService(&mockEventRepo{})
	if err := svc.DeleteEvent(context.Background(), 1, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
