package domain

import (
	"context"
	"time"
)

// BalanceImpact classifies how a scheduled event weighs on the week's
// activity balance.
type BalanceImpact string

const (
	ImpactRest     BalanceImpact = "rest"
	ImpactModerate BalanceImpact = "moderate"
	ImpactActive   BalanceImpact = "active"
	ImpactNone     BalanceImpact = "none"
)

// Valid reports whether b is a known impact.
func (b BalanceImpact) Valid() bool {
	switch b {
	case ImpactRest, ImpactModerate, ImpactActive, ImpactNone:
		return true
	}
	return false
}

// Rank orders impacts by intensity: active > moderate > rest > none.
func (b BalanceImpact) Rank() int {
	switch b {
	case ImpactActive:
		return 3
	case ImpactModerate:
		return 2
	case ImpactRest:
		return 1
	}
	return 0
}

// CalendarEvent is a scheduled activity. EventDate has day granularity.
type CalendarEvent struct {
	ID            int64         `json:"id"`
	UserID        int64         `json:"userId"`
	Title         string        `json:"title"`
	EventDate     time.Time     `json:"eventDate"`
	BalanceImpact BalanceImpact `json:"balanceImpactType"`
}

// EventRepository is the port for calendar event persistence.
type EventRepository interface {
	AddEvent(ctx context.Context, ev CalendarEvent) (int64, error)
	DeleteEvent(ctx context.Context, userID, id int64) (bool, error)
	// ListEventsInRange returns events whose calendar day falls in
	// [start, end), each bound taken as its own calendar day, ordered by
	// EventDate.
	ListEventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]CalendarEvent, error)
}
