// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"wellness/internal/domain"
)

const dayLayout = "2006-01-02"

// DB implements an in-memory database storage. One mutex guards every
// collection, so each repository call is atomic.
type DB struct {
	mu       sync.Mutex
	weights  []domain.WeightLog
	goals    []domain.UserGoal
	tracking map[trackingKey]domain.DailyCalorieTracking
	events   []domain.CalendarEvent
	profiles map[int64]domain.MetabolicProfile
	users    []*domain.User
	sessions map[string]*domain.Session

	weightIDCounter int64
	goalIDCounter   int64
	eventIDCounter  int64
	userIDCounter   int64
}

type trackingKey struct {
	userID int64
	day    string
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{
		tracking: make(map[trackingKey]domain.DailyCalorieTracking),
		profiles: make(map[int64]domain.MetabolicProfile),
		sessions: make(map[string]*domain.Session),
	}
}

// Ensure interfaces are met.
var _ domain.WeightRepository = (*DB)(nil)
var _ domain.GoalRepository = (*DB)(nil)
var _ domain.CalorieRepository = (*DB)(nil)
var _ domain.EventRepository = (*DB)(nil)
var _ domain.ProfileRepository = (*DB)(nil)
var _ domain.UserRepository = (*DB)(nil)
var _ domain.SessionRepository = (*SessionRepo)(nil)

// --- WeightRepository ---

// AddWeightLog stores a weight log.
func (db *DB) AddWeightLog(ctx context.Context, log domain.WeightLog) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weightIDCounter++
	log.ID = db.weightIDCounter
	log.LoggedAt = log.LoggedAt.UTC()
	db.weights = append(db.weights, log)
	return log.ID, nil
}

// UpdateWeightLog applies a correction to the user's log.
func (db *DB) UpdateWeightLog(ctx context.Context, userID, id int64, patch domain.WeightLogPatch) (*domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i := range db.weights {
		w := &db.weights[i]
		if w.ID != id || w.UserID != userID {
			continue
		}
		if patch.Weight != nil {
			w.Weight = *patch.Weight
		}
		if patch.Notes != nil {
			w.Notes = *patch.Notes
		}
		ret := *w
		return &ret, nil
	}
	return nil, domain.ErrNotFound
}

// DeleteWeightLog deletes the user's log by ID.
func (db *DB) DeleteWeightLog(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, w := range db.weights {
		if w.ID == id && w.UserID == userID {
			db.weights = append(db.weights[:i], db.weights[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListWeightLogs lists the user's most recent weight logs.
func (db *DB) ListWeightLogs(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeights(userID)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// LatestWeightLog returns the user's newest log, or nil.
func (db *DB) LatestWeightLog(ctx context.Context, userID int64) (*domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userWeights(userID)
	if len(result) == 0 {
		return nil, nil
	}
	return &result[0], nil
}

// LatestWeightForLocalDay returns the latest weight for the given day.
func (db *DB) LatestWeightForLocalDay(ctx context.Context, userID int64, localDay string) (*domain.WeightLog, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	dayStart, err := time.ParseInLocation(dayLayout, localDay, time.Local)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, w := range db.userWeights(userID) {
		if !w.LoggedAt.Before(dayStart) && w.LoggedAt.Before(dayEnd) {
			return &w, nil
		}
	}
	return nil, nil
}

// userWeights returns a copy of the user's logs, newest first. Caller holds mu.
func (db *DB) userWeights(userID int64) []domain.WeightLog {
	var result []domain.WeightLog
	for _, w := range db.weights {
		if w.UserID == userID {
			result = append(result, w)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].LoggedAt.Equal(result[j].LoggedAt) {
			return result[i].LoggedAt.After(result[j].LoggedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

// --- GoalRepository ---

// CreateActiveGoal retires the user's active goals and stores goal as active.
func (db *DB) CreateActiveGoal(ctx context.Context, goal domain.UserGoal) (*domain.UserGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	completedAt := goal.StartedAt.UTC()
	for i := range db.goals {
		g := &db.goals[i]
		if g.UserID == goal.UserID && g.IsActive {
			g.IsActive = false
			g.CompletedAt = &completedAt
		}
	}

	db.goalIDCounter++
	goal.ID = db.goalIDCounter
	goal.IsActive = true
	goal.StartedAt = goal.StartedAt.UTC()
	goal.CompletedAt = nil
	db.goals = append(db.goals, goal)
	return &goal, nil
}

// ActiveGoal returns the user's active goal, or nil.
func (db *DB) ActiveGoal(ctx context.Context, userID int64) (*domain.UserGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for _, g := range db.goals {
		if g.UserID == userID && g.IsActive {
			return &g, nil
		}
	}
	return nil, nil
}

// ListGoals lists every goal of the user, newest first.
func (db *DB) ListGoals(ctx context.Context, userID int64) ([]domain.UserGoal, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	var result []domain.UserGoal
	for i := len(db.goals) - 1; i >= 0; i-- {
		if db.goals[i].UserID == userID {
			result = append(result, db.goals[i])
		}
	}
	return result, nil
}

// --- CalorieRepository ---

// GetDailyTracking returns the user's record for day, or nil.
func (db *DB) GetDailyTracking(ctx context.Context, userID int64, day string) (*domain.DailyCalorieTracking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	t, ok := db.tracking[trackingKey{userID, day}]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// CreateDailyTrackingIfAbsent stores t unless the day already has a record.
func (db *DB) CreateDailyTrackingIfAbsent(ctx context.Context, t domain.DailyCalorieTracking) (*domain.DailyCalorieTracking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key := trackingKey{t.UserID, t.Day}
	if existing, ok := db.tracking[key]; ok {
		return &existing, nil
	}
	t.Recompute()
	db.tracking[key] = t
	return &t, nil
}

// AddConsumedCalories increments the day's consumed total.
func (db *DB) AddConsumedCalories(ctx context.Context, userID int64, day string, calories int) (*domain.DailyCalorieTracking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	key := trackingKey{userID, day}
	t, ok := db.tracking[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	t.LogMeal(calories)
	db.tracking[key] = t
	return &t, nil
}

// RecentDailyTracking returns at most n of the user's records, newest first.
func (db *DB) RecentDailyTracking(ctx context.Context, userID int64, n int) ([]domain.DailyCalorieTracking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userTracking(userID, func(string) bool { return true })
	sort.Slice(result, func(i, j int) bool { return result[i].Day > result[j].Day })
	if len(result) > n {
		result = result[:n]
	}
	return result, nil
}

// ListDailyTrackingRange returns the user's records in [startDay, endDay],
// oldest first.
func (db *DB) ListDailyTrackingRange(ctx context.Context, userID int64, startDay, endDay string) ([]domain.DailyCalorieTracking, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	result := db.userTracking(userID, func(day string) bool { return day >= startDay && day <= endDay })
	sort.Slice(result, func(i, j int) bool { return result[i].Day < result[j].Day })
	return result, nil
}

func (db *DB) userTracking(userID int64, keep func(day string) bool) []domain.DailyCalorieTracking {
	var result []domain.DailyCalorieTracking
	for k, t := range db.tracking {
		if k.userID == userID && keep(k.day) {
			result = append(result, t)
		}
	}
	return result
}

// --- EventRepository ---

// AddEvent stores a calendar event.
func (db *DB) AddEvent(ctx context.Context, ev domain.CalendarEvent) (int64, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.eventIDCounter++
	ev.ID = db.eventIDCounter
	db.events = append(db.events, ev)
	return ev.ID, nil
}

// DeleteEvent deletes the user's event by ID.
func (db *DB) DeleteEvent(ctx context.Context, userID, id int64) (bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	for i, ev := range db.events {
		if ev.ID == id && ev.UserID == userID {
			db.events = append(db.events[:i], db.events[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// ListEventsInRange lists the user's events whose day is in [start, end).
func (db *DB) ListEventsInRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.CalendarEvent, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	startDay, endDay := start.Format(dayLayout), end.Format(dayLayout)
	var result []domain.CalendarEvent
	for _, ev := range db.events {
		day := ev.EventDate.Format(dayLayout)
		if ev.UserID == userID && day >= startDay && day < endDay {
			result = append(result, ev)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].EventDate.Before(result[j].EventDate)
	})
	return result, nil
}

// --- ProfileRepository ---

// GetProfile returns the user's profile, or nil.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*domain.MetabolicProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	p, ok := db.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// UpsertProfile replaces the user's profile.
func (db *DB) UpsertProfile(ctx context.Context, p domain.MetabolicProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.profiles[p.UserID] = p
	return nil
}
