package domain

import (
	"context"
	"time"
)

// GoalType is the phase a user is in.
type GoalType string

const (
	GoalCutting     GoalType = "cutting"
	GoalBulking     GoalType = "bulking"
	GoalMaintaining GoalType = "maintaining"
)

// Valid reports whether g is a known goal type.
func (g GoalType) Valid() bool {
	switch g {
	case GoalCutting, GoalBulking, GoalMaintaining:
		return true
	}
	return false
}

// UserGoal is a weight goal. At most one goal per user is active; a new goal
// retires the previous one instead of overwriting it.
type UserGoal struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"userId"`
	GoalType      GoalType   `json:"goalType"`
	CurrentWeight *float64   `json:"currentWeight,omitempty"`
	TargetWeight  *float64   `json:"targetWeight,omitempty"`
	WeightUnit    WeightUnit `json:"weightUnit"`
	TargetDate    *time.Time `json:"targetDate,omitempty"`
	// WeeklyGoal is the planned change in lbs per week, signed.
	WeeklyGoal    *float64   `json:"weeklyGoal,omitempty"`
	ActivityLevel string     `json:"activityLevel,omitempty"`
	IsActive      bool       `json:"isActive"`
	StartedAt     time.Time  `json:"startedAt"`
	CompletedAt   *time.Time `json:"completedAt,omitempty"`
}

// GoalRepository is the port for goal persistence.
type GoalRepository interface {
	// CreateActiveGoal deactivates every active goal of goal.UserID, stamping
	// CompletedAt with goal.StartedAt, and stores goal as the new active goal.
	// Both steps happen atomically.
	CreateActiveGoal(ctx context.Context, goal UserGoal) (*UserGoal, error)
	ActiveGoal(ctx context.Context, userID int64) (*UserGoal, error)
	ListGoals(ctx context.Context, userID int64) ([]UserGoal, error)
}
