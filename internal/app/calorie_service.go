package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellness/internal/domain"
	"wellness/internal/engine"
	"wellness/internal/metrics"
)

const maxMealCalories = 10000

// CalorieService runs the adaptive calorie loop: it issues each day's target
// from the adherence of the days before it and records meals against it.
type CalorieService struct {
	calories    domain.CalorieRepository
	goals       domain.GoalRepository
	profiles    domain.ProfileRepository
	defaultBase int
	metrics     *metrics.Metrics
	Now         Clock
}

// NewCalorieService creates a CalorieService. defaultBase is the daily target
// used when the user's metabolic profile is incomplete.
func NewCalorieService(calories domain.CalorieRepository, goals domain.GoalRepository, profiles domain.ProfileRepository, defaultBase int, m *metrics.Metrics) *CalorieService {
	return &CalorieService{
		calories:    calories,
		goals:       goals,
		profiles:    profiles,
		defaultBase: defaultBase,
		metrics:     m,
		Now:         time.Now,
	}
}

// BaseTarget is the daily budget before adherence feedback. Derived is false
// when the configured default was used.
type BaseTarget struct {
	engine.BaseTarget
	Derived bool `json:"derived"`
}

func (s *CalorieService) baseTarget(ctx context.Context, userID int64, goal *domain.UserGoal) (BaseTarget, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return BaseTarget{}, fmt.Errorf("load profile: %w", err)
	}
	if bt, ok := engine.ComputeBaseTarget(p, goal, s.Now()); ok {
		return BaseTarget{BaseTarget: bt, Derived: true}, nil
	}
	return BaseTarget{BaseTarget: engine.BaseTarget{Budget: s.defaultBase}}, nil
}

// Today returns today's tracking record, creating it on first read with the
// adjusted target. Concurrent first reads resolve to one stored record.
func (s *CalorieService) Today(ctx context.Context, userID int64) (*domain.DailyCalorieTracking, error) {
	today := s.Now().Format(dayLayout)

	existing, err := s.calories.GetDailyTracking(ctx, userID, today)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load daily tracking: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	history, err := s.calories.RecentDailyTracking(ctx, userID, engine.AdjustmentWindowDays+1)
	if err != nil {
		return nil, fmt.Errorf("load calorie history: %w", err)
	}
	history = before(history, today)

	goal, err := s.goals.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active goal: %w", err)
	}
	base, err := s.baseTarget(ctx, userID, goal)
	if err != nil {
		return nil, err
	}

	target := engine.ComputeAdaptiveCalorieTarget(base.Budget, history, goal)
	stored, err := s.calories.CreateDailyTrackingIfAbsent(ctx, engine.NewDailyTracking(userID, today, target))
	if err != nil {
		return nil, fmt.Errorf("create daily tracking: %w", err)
	}
	if target.IsAdjusted && stored.IsAdjusted {
		s.metrics.TargetAdjusted(string(goal.GoalType))
	}
	return stored, nil
}

// before keeps newest-first records strictly older than day.
func before(history []domain.DailyCalorieTracking, day string) []domain.DailyCalorieTracking {
	out := make([]domain.DailyCalorieTracking, 0, len(history))
	for _, h := range history {
		if h.Day < day {
			out = append(out, h)
		}
	}
	if len(out) > engine.AdjustmentWindowDays {
		out = out[:engine.AdjustmentWindowDays]
	}
	return out
}

// LogMeal adds calories to today's consumed total.
func (s *CalorieService) LogMeal(ctx context.Context, userID int64, calories int) (*domain.DailyCalorieTracking, error) {
	if calories <= 0 || calories > maxMealCalories {
		return nil, invalid("calories must be within (0, %d]", maxMealCalories)
	}
	today, err := s.Today(ctx, userID)
	if err != nil {
		return nil, err
	}
	updated, err := s.calories.AddConsumedCalories(ctx, userID, today.Day, calories)
	if err != nil {
		return nil, fmt.Errorf("add consumed calories: %w", err)
	}
	s.metrics.MealLogged(calories)
	return updated, nil
}

// WeeklySummary aggregates the newest seven tracking records, today included.
func (s *CalorieService) WeeklySummary(ctx context.Context, userID int64) (engine.WeeklySummary, error) {
	history, err := s.calories.RecentDailyTracking(ctx, userID, engine.AdjustmentWindowDays)
	if err != nil {
		return engine.WeeklySummary{}, fmt.Errorf("load calorie history: %w", err)
	}
	return engine.ComputeWeeklySummary(history), nil
}

// ProfileView is the stored profile plus the base target it yields.
type ProfileView struct {
	Profile    *domain.MetabolicProfile `json:"profile"`
	BaseTarget BaseTarget               `json:"baseTarget"`
}

// Profile returns the user's metabolic profile and current base target.
func (s *CalorieService) Profile(ctx context.Context, userID int64) (*ProfileView, error) {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	goal, err := s.goals.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load active goal: %w", err)
	}
	base, err := s.baseTarget(ctx, userID, goal)
	if err != nil {
		return nil, err
	}
	return &ProfileView{Profile: p, BaseTarget: base}, nil
}

// ProfileInput updates a metabolic profile. Nil fields are left unset.
type ProfileInput struct {
	Sex           *string
	BirthDate     *string
	HeightCM      *float64
	WeightLbs     *float64
	ActivityLevel *string
}

// UpdateProfile validates and stores the user's metabolic profile.
func (s *CalorieService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) (*ProfileView, error) {
	p := domain.MetabolicProfile{UserID: userID}
	if in.Sex != nil {
		sex := strings.ToLower(*in.Sex)
		if sex != "male" && sex != "female" {
			return nil, invalid("sex must be \"male\" or \"female\"")
		}
		p.Sex = &sex
	}
	if in.BirthDate != nil {
		bd, err := parseDay("birthDate", *in.BirthDate)
		if err != nil {
			return nil, err
		}
		if bd.After(s.Now()) {
			return nil, invalid("birthDate must be in the past")
		}
		p.BirthDate = &bd
	}
	if in.HeightCM != nil {
		if *in.HeightCM < 50 || *in.HeightCM > 272 {
			return nil, invalid("heightCm must be within [50, 272]")
		}
		p.HeightCM = in.HeightCM
	}
	if in.WeightLbs != nil {
		if *in.WeightLbs <= 0 || *in.WeightLbs > 1500 {
			return nil, invalid("weightLbs must be within (0, 1500]")
		}
		p.WeightLbs = in.WeightLbs
	}
	if in.ActivityLevel != nil {
		if !engine.ValidActivityLevel(*in.ActivityLevel) {
			return nil, invalid("unknown activityLevel %q", *in.ActivityLevel)
		}
		p.ActivityLevel = in.ActivityLevel
	}
	if err := s.profiles.UpsertProfile(ctx, p); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}
	return s.Profile(ctx, userID)
}

// Range returns tracking records for the inclusive day range, oldest first.
func (s *CalorieService) Range(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyCalorieTracking, error) {
	start, err := parseDay("start", startDay)
	if err != nil {
		return nil, err
	}
	end, err := parseDay("end", endDay)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, invalid("end must not be before start")
	}
	return s.calories.ListDailyTrackingRange(ctx, userID, startDay, endDay)
}
