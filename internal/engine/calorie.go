package engine

import (
	"fmt"
	"math"

	"wellness/internal/domain"
)

const (
	// AdherenceTolerance is the share of the window's total target the summed
	// deviation may reach and still count as on track. The weekly summary and
	// the target adjuster both read it so they never disagree.
	AdherenceTolerance = 0.10

	// AdjustmentWindowDays is the maximum number of history days considered.
	AdjustmentWindowDays = 7

	// MinAdjustmentHistory is the number of history days needed before any
	// adjustment is made.
	MinAdjustmentHistory = 3

	// MinDailyTarget is the floor for any computed daily target.
	MinDailyTarget = 1200
)

// CalorieTarget is today's calorie target with the audit trail of any
// adjustment applied to the base target.
type CalorieTarget struct {
	DailyTarget      int    `json:"dailyTarget"`
	IsAdjusted       bool   `json:"isAdjusted"`
	AdjustmentReason string `json:"adjustmentReason,omitempty"`
	OriginalTarget   *int   `json:"originalTarget,omitempty"`
}

// WeeklySummary aggregates the most recent tracking window.
type WeeklySummary struct {
	Days            int  `json:"days"`
	TotalTarget     int  `json:"totalTarget"`
	TotalConsumed   int  `json:"totalConsumed"`
	WeeklyDeviation int  `json:"weeklyDeviation"`
	OnTrack         bool `json:"onTrack"`
}

// window trims newest-first history to the adjustment window.
func window(history []domain.DailyCalorieTracking) []domain.DailyCalorieTracking {
	if len(history) > AdjustmentWindowDays {
		return history[:AdjustmentWindowDays]
	}
	return history
}

// WithinTolerance reports whether deviation is small enough relative to
// totalTarget. A non-positive target is treated as on track.
func WithinTolerance(deviation, totalTarget int) bool {
	if totalTarget <= 0 {
		return true
	}
	return math.Abs(float64(deviation)) <= AdherenceTolerance*float64(totalTarget)
}

// ComputeWeeklySummary sums the newest AdjustmentWindowDays records of
// history, which must be ordered newest first.
func ComputeWeeklySummary(history []domain.DailyCalorieTracking) WeeklySummary {
	w := window(history)
	s := WeeklySummary{Days: len(w)}
	for _, d := range w {
		s.TotalTarget += d.TargetCalories
		s.TotalConsumed += d.ConsumedCalories
	}
	s.WeeklyDeviation = s.TotalConsumed - s.TotalTarget
	s.OnTrack = WithinTolerance(s.WeeklyDeviation, s.TotalTarget)
	return s
}

// ComputeAdaptiveCalorieTarget derives today's target from baseTarget and the
// user's recent adherence. history is ordered newest first and must not
// include today.
//
// Each day's deviation is measured against that day's own stored target, so
// earlier adjustments compound. When the window is off track in the direction
// that works against the goal, the target moves the other way by the average
// daily deviation, capped at AdherenceTolerance of the base target.
func ComputeAdaptiveCalorieTarget(baseTarget int, history []domain.DailyCalorieTracking, goal *domain.UserGoal) CalorieTarget {
	base := CalorieTarget{DailyTarget: baseTarget}
	w := window(history)
	if len(w) < MinAdjustmentHistory || goal == nil {
		return base
	}

	s := ComputeWeeklySummary(w)
	if s.OnTrack {
		return base
	}

	over := s.WeeklyDeviation > 0
	switch goal.GoalType {
	case domain.GoalCutting:
		if !over {
			return base
		}
	case domain.GoalBulking:
		if over {
			return base
		}
	case domain.GoalMaintaining:
	default:
		return base
	}

	avg := float64(s.WeeklyDeviation) / float64(s.Days)
	limit := AdherenceTolerance * float64(baseTarget)
	magnitude := math.Min(math.Abs(avg), limit)
	correction := int(math.Round(magnitude))
	if correction == 0 {
		return base
	}

	target := baseTarget + correction
	if over {
		target = max(baseTarget-correction, MinDailyTarget)
		if target >= baseTarget {
			return base
		}
	}

	original := baseTarget
	return CalorieTarget{
		DailyTarget:      target,
		IsAdjusted:       true,
		AdjustmentReason: adjustmentReason(goal.GoalType, over, int(math.Round(math.Abs(avg))), s.Days, target-baseTarget),
		OriginalTarget:   &original,
	}
}

func adjustmentReason(goal domain.GoalType, over bool, avgDeviation, days, delta int) string {
	direction := "under"
	if over {
		direction = "over"
	}
	verb := "Raised"
	if delta < 0 {
		verb = "Lowered"
		delta = -delta
	}
	return fmt.Sprintf("Averaged %d kcal/day %s target across the last %d days; %s today's target by %d kcal to keep your %s goal on course.",
		avgDeviation, direction, days, verb, delta, goal)
}

// NewDailyTracking builds the record stored on the first read of a day.
func NewDailyTracking(userID int64, day string, target CalorieTarget) domain.DailyCalorieTracking {
	t := domain.DailyCalorieTracking{
		UserID:           userID,
		Day:              day,
		TargetCalories:   target.DailyTarget,
		IsAdjusted:       target.IsAdjusted,
		AdjustmentReason: target.AdjustmentReason,
	}
	if target.OriginalTarget != nil {
		orig := *target.OriginalTarget
		t.OriginalTarget = &orig
	}
	t.Recompute()
	return t
}
