package domain

import (
	"context"
	"time"
)

// WeightLog represents a single weight measurement.
type WeightLog struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"userId"`
	Weight   float64    `json:"weight"`
	Unit     WeightUnit `json:"unit"`
	LoggedAt time.Time  `json:"loggedAt"`
	Notes    string     `json:"notes,omitempty"`
}

// WeightIn returns the logged weight expressed in unit.
func (w WeightLog) WeightIn(unit WeightUnit) float64 {
	return ConvertWeight(w.Weight, w.Unit, unit)
}

// WeightLogPatch carries an explicit correction to an existing log. Nil fields
// are left untouched.
type WeightLogPatch struct {
	Weight *float64
	Notes  *string
}

// WeightRepository is the port for weight persistence. List results are
// ordered by LoggedAt descending.
type WeightRepository interface {
	AddWeightLog(ctx context.Context, log WeightLog) (int64, error)
	UpdateWeightLog(ctx context.Context, userID, id int64, patch WeightLogPatch) (*WeightLog, error)
	DeleteWeightLog(ctx context.Context, userID, id int64) (bool, error)
	ListWeightLogs(ctx context.Context, userID int64, limit int) ([]WeightLog, error)
	LatestWeightLog(ctx context.Context, userID int64) (*WeightLog, error)
	LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*WeightLog, error)
}
