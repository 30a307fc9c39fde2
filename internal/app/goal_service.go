package app

import (
	"context"
	"fmt"
	"time"

	"wellness/internal/domain"
	"wellness/internal/engine"
	"wellness/internal/metrics"
)

// trendWindowDays is the trailing window shown next to goal progress.
const trendWindowDays = 28

// GoalService manages goals and derives progress against the latest weigh-in.
type GoalService struct {
	goals   domain.GoalRepository
	weights domain.WeightRepository
	metrics *metrics.Metrics
	Now     Clock
}

// NewGoalService creates a GoalService.
func NewGoalService(goals domain.GoalRepository, weights domain.WeightRepository, m *metrics.Metrics) *GoalService {
	return &GoalService{goals: goals, weights: weights, metrics: m, Now: time.Now}
}

// GoalInput describes a new goal. WeightUnit defaults to lbs.
type GoalInput struct {
	GoalType      string
	CurrentWeight *float64
	TargetWeight  *float64
	WeightUnit    string
	TargetDate    *time.Time
	WeeklyGoal    *float64
	ActivityLevel string
}

// GoalStatus is the active goal with its derived views. Progress and Trend
// are nil when there is not enough data to compute them.
type GoalStatus struct {
	Goal     *domain.UserGoal     `json:"goal"`
	Progress *engine.GoalProgress `json:"progress"`
	Trend    *engine.WeightTrend  `json:"trend"`
}

// SetUserGoal validates in and stores it as the user's only active goal,
// retiring any previous active goal.
func (s *GoalService) SetUserGoal(ctx context.Context, userID int64, in GoalInput) (*domain.UserGoal, error) {
	goalType := domain.GoalType(in.GoalType)
	if !goalType.Valid() {
		return nil, invalid("goalType must be one of cutting, bulking, maintaining")
	}
	unit := domain.UnitLbs
	if in.WeightUnit != "" {
		u, err := domain.ParseWeightUnit(in.WeightUnit)
		if err != nil {
			return nil, invalid("%v", err)
		}
		unit = u
	}
	if in.CurrentWeight != nil && *in.CurrentWeight <= 0 {
		return nil, invalid("currentWeight must be > 0")
	}
	if in.TargetWeight != nil && *in.TargetWeight <= 0 {
		return nil, invalid("targetWeight must be > 0")
	}
	if in.ActivityLevel != "" && !engine.ValidActivityLevel(in.ActivityLevel) {
		return nil, invalid("unknown activityLevel %q", in.ActivityLevel)
	}

	now := s.Now()
	var targetDate *time.Time
	if in.TargetDate != nil {
		td := startOfDay(in.TargetDate.In(now.Location()))
		if td.Before(startOfDay(now)) {
			return nil, invalid("targetDate must not be in the past")
		}
		targetDate = &td
	}

	goal, err := s.goals.CreateActiveGoal(ctx, domain.UserGoal{
		UserID:        userID,
		GoalType:      goalType,
		CurrentWeight: in.CurrentWeight,
		TargetWeight:  in.TargetWeight,
		WeightUnit:    unit,
		TargetDate:    targetDate,
		WeeklyGoal:    in.WeeklyGoal,
		ActivityLevel: in.ActivityLevel,
		IsActive:      true,
		StartedAt:     now,
	})
	if err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	s.metrics.GoalSet(string(goalType))
	return goal, nil
}

// ActiveGoal returns the user's active goal, or nil.
func (s *GoalService) ActiveGoal(ctx context.Context, userID int64) (*domain.UserGoal, error) {
	return s.goals.ActiveGoal(ctx, userID)
}

// History returns every goal the user has set, newest first.
func (s *GoalService) History(ctx context.Context, userID int64) ([]domain.UserGoal, error) {
	return s.goals.ListGoals(ctx, userID)
}

// Status loads the active goal and recent weigh-ins and computes progress.
func (s *GoalService) Status(ctx context.Context, userID int64) (*GoalStatus, error) {
	goal, err := s.goals.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active goal: %w", err)
	}
	status := &GoalStatus{Goal: goal}
	if goal == nil {
		return status, nil
	}

	logs, err := s.weights.ListWeightLogs(ctx, userID, maxListLimit)
	if err != nil {
		return nil, fmt.Errorf("load weight logs: %w", err)
	}
	now := s.Now()
	status.Progress = engine.ComputeGoalProgress(goal, engine.LatestWeight(logs), now)
	status.Trend = engine.ComputeWeightTrend(logs, goal.WeightUnit, now, trendWindowDays)
	return status, nil
}
