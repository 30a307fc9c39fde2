// Package engine holds the pure calculators behind the wellness views. Every
// function here is a deterministic function of its arguments: callers load
// records from the store first and pass the clock in explicitly.
package engine

import (
	"math"
	"time"

	"wellness/internal/domain"
)

// onTrackTolerance is the share of the expected weekly change a user may fall
// short by before being flagged off track.
const onTrackTolerance = 0.8

// GoalProgress is the derived view of an active goal against the latest
// weigh-in. Weights are in Unit.
type GoalProgress struct {
	Unit            domain.WeightUnit `json:"unit"`
	StartWeight     float64           `json:"startWeight"`
	CurrentWeight   float64           `json:"currentWeight"`
	TargetWeight    float64           `json:"targetWeight"`
	TotalChange     float64           `json:"totalChange"`
	TotalGoal       float64           `json:"totalGoal"`
	PercentComplete float64           `json:"percentComplete"`
	DaysElapsed     int               `json:"daysElapsed"`
	DaysRemaining   *int              `json:"daysRemaining"`
	WeeksElapsed    float64           `json:"weeksElapsed"`
	ExpectedChange  *float64          `json:"expectedChange,omitempty"`
	ActualChange    float64           `json:"actualChange"`
	OnTrack         bool              `json:"onTrack"`
}

// LatestWeight returns the log with the greatest LoggedAt, or nil for an empty
// slice. The earliest index wins ties.
func LatestWeight(logs []domain.WeightLog) *domain.WeightLog {
	var latest *domain.WeightLog
	for i := range logs {
		if latest == nil || logs[i].LoggedAt.After(latest.LoggedAt) {
			latest = &logs[i]
		}
	}
	return latest
}

// ComputeGoalProgress returns nil when there is no goal, the goal has no
// target weight, or there is no weigh-in to measure against.
//
// A goal whose target equals its start weight reports 100% complete.
// PercentComplete is otherwise unclamped: overshoot and regressions are
// reported as-is.
func ComputeGoalProgress(goal *domain.UserGoal, latest *domain.WeightLog, now time.Time) *GoalProgress {
	if goal == nil || goal.TargetWeight == nil || latest == nil {
		return nil
	}
	unit := goal.WeightUnit
	if !unit.Valid() {
		unit = latest.Unit
	}

	current := latest.WeightIn(unit)
	start := current
	if goal.CurrentWeight != nil {
		start = *goal.CurrentWeight
	}
	target := *goal.TargetWeight

	p := &GoalProgress{
		Unit:          unit,
		StartWeight:   start,
		CurrentWeight: current,
		TargetWeight:  target,
		TotalChange:   current - start,
		TotalGoal:     target - start,
		OnTrack:       true,
	}
	p.ActualChange = math.Abs(p.TotalChange)

	if p.TotalGoal == 0 {
		p.PercentComplete = 100
	} else {
		p.PercentComplete = p.TotalChange / p.TotalGoal * 100
	}

	p.DaysElapsed = int(math.Floor(now.Sub(goal.StartedAt).Hours() / 24))
	if p.DaysElapsed < 0 {
		p.DaysElapsed = 0
	}
	p.WeeksElapsed = float64(p.DaysElapsed) / 7

	if goal.TargetDate != nil {
		remaining := int(math.Ceil(goal.TargetDate.Sub(now).Hours() / 24))
		p.DaysRemaining = &remaining
	}

	if goal.WeeklyGoal != nil && p.DaysElapsed > 0 {
		perWeek := domain.ConvertWeight(math.Abs(*goal.WeeklyGoal), domain.UnitLbs, unit)
		expected := perWeek * p.WeeksElapsed
		p.ExpectedChange = &expected
		p.OnTrack = p.ActualChange >= expected*onTrackTolerance
	}
	return p
}

// WeightTrend summarises how weight moved across a trailing window.
type WeightTrend struct {
	Unit          domain.WeightUnit `json:"unit"`
	WindowDays    int               `json:"windowDays"`
	Samples       int               `json:"samples"`
	Change        float64           `json:"change"`
	ChangePerWeek float64           `json:"changePerWeek"`
}

// ComputeWeightTrend compares the oldest and newest logs inside the trailing
// windowDays ending at now. Returns nil with fewer than two samples or when
// both samples share a timestamp.
func ComputeWeightTrend(logs []domain.WeightLog, unit domain.WeightUnit, now time.Time, windowDays int) *WeightTrend {
	cutoff := now.AddDate(0, 0, -windowDays)
	var oldest, newest *domain.WeightLog
	samples := 0
	for i := range logs {
		l := &logs[i]
		if l.LoggedAt.Before(cutoff) || l.LoggedAt.After(now) {
			continue
		}
		samples++
		if oldest == nil || l.LoggedAt.Before(oldest.LoggedAt) {
			oldest = l
		}
		if newest == nil || l.LoggedAt.After(newest.LoggedAt) {
			newest = l
		}
	}
	if samples < 2 {
		return nil
	}
	span := newest.LoggedAt.Sub(oldest.LoggedAt).Hours() / 24 / 7
	if span <= 0 {
		return nil
	}
	change := newest.WeightIn(unit) - oldest.WeightIn(unit)
	return &WeightTrend{
		Unit:          unit,
		WindowDays:    windowDays,
		Samples:       samples,
		Change:        change,
		ChangePerWeek: change / span,
	}
}
