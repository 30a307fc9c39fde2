package domain

import (
	"context"
	"time"
)

// MetabolicProfile holds the body stats the base calorie target is derived
// from. Any nil field means the profile is incomplete.
type MetabolicProfile struct {
	UserID        int64      `json:"userId"`
	Sex           *string    `json:"sex,omitempty"`
	BirthDate     *time.Time `json:"birthDate,omitempty"`
	HeightCM      *float64   `json:"heightCm,omitempty"`
	WeightLbs     *float64   `json:"weightLbs,omitempty"`
	ActivityLevel *string    `json:"activityLevel,omitempty"`
}

// ProfileRepository is the port for metabolic profile persistence. GetProfile
// returns nil, nil when the user has no profile yet.
type ProfileRepository interface {
	GetProfile(ctx context.Context, userID int64) (*MetabolicProfile, error)
	UpsertProfile(ctx context.Context, p MetabolicProfile) error
}
