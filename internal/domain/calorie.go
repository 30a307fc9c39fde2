package domain

import "context"

// DailyCalorieTracking is one user's calorie ledger for one calendar day.
type DailyCalorieTracking struct {
	UserID            int64  `json:"userId"`
	Day               string `json:"date"`
	TargetCalories    int    `json:"targetCalories"`
	ConsumedCalories  int    `json:"consumedCalories"`
	RemainingCalories int    `json:"remainingCalories"`
	IsAdjusted        bool   `json:"isAdjusted"`
	AdjustmentReason  string `json:"adjustmentReason,omitempty"`
	OriginalTarget    *int   `json:"originalTarget,omitempty"`
}

// Recompute derives RemainingCalories from target and consumed. Remaining goes
// negative when the day is over budget.
func (t *DailyCalorieTracking) Recompute() {
	t.RemainingCalories = t.TargetCalories - t.ConsumedCalories
}

// LogMeal adds calories to the consumed total.
func (t *DailyCalorieTracking) LogMeal(calories int) {
	t.ConsumedCalories += calories
	t.Recompute()
}

// CalorieRepository is the port for daily calorie tracking persistence.
type CalorieRepository interface {
	// GetDailyTracking returns nil, nil when the day has no record yet.
	GetDailyTracking(ctx context.Context, userID int64, day string) (*DailyCalorieTracking, error)
	// CreateDailyTrackingIfAbsent stores t unless a record for (t.UserID, t.Day)
	// already exists, and returns whichever record is stored.
	CreateDailyTrackingIfAbsent(ctx context.Context, t DailyCalorieTracking) (*DailyCalorieTracking, error)
	// AddConsumedCalories atomically increments the day's consumed total.
	// Returns ErrNotFound if the day has no record.
	AddConsumedCalories(ctx context.Context, userID int64, day string, calories int) (*DailyCalorieTracking, error)
	// RecentDailyTracking returns at most n records, newest day first.
	RecentDailyTracking(ctx context.Context, userID int64, n int) ([]DailyCalorieTracking, error)
	// ListDailyTrackingRange returns records with startDay <= Day <= endDay,
	// oldest first.
	ListDailyTrackingRange(ctx context.Context, userID int64, startDay, endDay string) ([]DailyCalorieTracking, error)
}
