// Package app holds the application services: each use case loads records
// through the repository ports, runs the engine calculators and returns plain
// values.
package app

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks validation failures. Handlers map it to 400.
var ErrInvalidInput = errors.New("invalid input")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

const dayLayout = "2006-01-02"

// Clock returns the current time. Services default to time.Now; tests
// substitute a fixed instant.
type Clock func() time.Time

func parseDay(field, s string) (time.Time, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return time.Time{}, invalid("%s must be YYYY-MM-DD", field)
	}
	return t, nil
}

// startOfDay returns midnight of t's calendar day in t's location.
func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
