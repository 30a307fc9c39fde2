package app_test

import (
	"context"
	"time"

	"wellness/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type mockWeightRepo struct {
	addFn       func(ctx context.Context, log domain.WeightLog) (int64, error)
	updateFn    func(ctx context.Context, userID, id int64, patch domain.WeightLogPatch) (*domain.WeightLog, error)
	deleteFn    func(ctx context.Context, userID, id int64) (bool, error)
	listFn      func(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error)
	latestFn    func(ctx context.Context, userID int64) (*domain.WeightLog, error)
	latestDayFn func(ctx context.Context, userID int64, day string) (*domain.WeightLog, error)
}

func (m *mockWeightRepo) AddWeightLog(ctx context.Context, log domain.WeightLog) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, log)
	}
	return 0, nil
}

func (m *mockWeightRepo) UpdateWeightLog(ctx context.Context, userID, id int64, patch domain.WeightLogPatch) (*domain.WeightLog, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, patch)
	}
	return nil, domain.ErrNotFound
}

func (m *mockWeightRepo) DeleteWeightLog(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return false, nil
}

func (m *mockWeightRepo) ListWeightLogs(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID, limit)
	}
	return nil, nil
}

func (m *mockWeightRepo) LatestWeightLog(ctx context.Context, userID int64) (*domain.WeightLog, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockWeightRepo) LatestWeightForLocalDay(ctx context.Context, userID int64, day string) (*domain.WeightLog, error) {
	if m.latestDayFn != nil {
		return m.latestDayFn(ctx, userID, day)
	}
	return nil, nil
}

type mockGoalRepo struct {
	createFn func(ctx context.Context, goal domain.UserGoal) (*domain.UserGoal, error)
	activeFn func(ctx context.Context, userID int64) (*domain.UserGoal, error)
	listFn   func(ctx context.Context, userID int64) ([]domain.UserGoal, error)
}

func (m *mockGoalRepo) CreateActiveGoal(ctx context.Context, goal domain.UserGoal) (*domain.UserGoal, error) {
	if m.createFn != nil {
		return m.createFn(ctx, goal)
	}
	goal.ID = 1
	return &goal, nil
}

func (m *mockGoalRepo) ActiveGoal(ctx context.Context, userID int64) (*domain.UserGoal, error) {
	if m.activeFn != nil {
		return m.activeFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockGoalRepo) ListGoals(ctx context.Context, userID int64) ([]domain.UserGoal, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return nil, nil
}

type mockCalorieRepo struct {
	getFn    func(ctx context.Context, userID int64, day string) (*domain.DailyCalorieTracking, error)
	createFn func(ctx context.Context, t domain.DailyCalorieTracking) (*domain.DailyCalorieTracking, error)
	addFn    func(ctx context.Context, userID int64, day string, calories int) (*domain.DailyCalorieTracking, error)
	recentFn func(ctx context.Context, userID int64, n int) ([]domain.DailyCalorieTracking, error)
	rangeFn  func(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyCalorieTracking, error)
}

func (m *mockCalorieRepo) GetDailyTracking(ctx context.Context, userID int64, day string) (*domain.DailyCalorieTracking, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID, day)
	}
	return nil, nil
}

func (m *mockCalorieRepo) CreateDailyTrackingIfAbsent(ctx context.Context, t domain.DailyCalorieTracking) (*domain.DailyCalorieTracking, error) {
	if m.createFn != nil {
		return m.createFn(ctx, t)
	}
	return &t, nil
}

func (m *mockCalorieRepo) AddConsumedCalories(ctx context.Context, userID int64, day string, calories int) (*domain.DailyCalorieTracking, error) {
	if m.addFn != nil {
		return m.addFn(ctx, userID, day, calories)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCalorieRepo) RecentDailyTracking(ctx context.Context, userID int64, n int) ([]domain.DailyCalorieTracking, error) {
	if m.recentFn != nil {
		return m.recentFn(ctx, userID, n)
	}
	return nil, nil
}

func (m *mockCalorieRepo) ListDailyTrackingRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyCalorieTracking, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, startDay, endDay)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn    func(ctx context.Context, userID int64) (*domain.MetabolicProfile, error)
	upsertFn func(ctx context.Context, p domain.MetabolicProfile) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context, userID int64) (*domain.MetabolicProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) UpsertProfile(ctx context.Context, p domain.MetabolicProfile) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, p)
	}
	return nil
}

type mockEventRepo struct {
	addFn    func(ctx context.Context, ev domain.CalendarEvent) (int64, error)
	deleteFn func(ctx context.Context, userID, id int64) (bool, error)
	rangeFn  func(ctx context.Context, userID int64, start, end time.Time) ([]domain.CalendarEvent, error)
}

func (m *mockEventRepo) AddEvent(ctx context.Context, ev domain.CalendarEvent) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, ev)
	}
	return 1, nil
}

func (m *mockEventRepo) DeleteEvent(ctx context.Context, userID, id int64) (bool, error) {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return false, nil
}

func (m *mockEventRepo) ListEventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.CalendarEvent, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, userID, start, end)
	}
	return nil, nil
}
