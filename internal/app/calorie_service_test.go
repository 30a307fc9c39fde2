package app_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"wellness/internal/adapter/memory"
	"wellness/internal/app"
	"wellness/internal/domain"
)

func newCalorieService(db *memory.DB) *app.CalorieService {
	svc := app.NewCalorieService(db, db, db, 2000, nil)
	svc.Now = fixedClock(testNow)
	return svc
}

func seedDays(t *testing.T, db *memory.DB, target int, consumed ...int) {
	t.Helper()
	for i, c := range consumed {
		day := testNow.AddDate(0, 0, -(i + 1)).Format("2006-01-02")
		rec, err := db.CreateDailyTrackingIfAbsent(context.Background(), domain.DailyCalorieTracking{UserID: 1, Day: day, TargetCalories: target})
		if err != nil {
			t.Fatal(err)
		}
		if _, err := db.AddConsumedCalories(context.Background(), 1, rec.Day, c); err != nil {
			t.Fatal(err)
		}
	}
}

func TestToday_NoHistoryUsesDefaultBase(t *testing.T) {
	db := memory.New()
	svc := newCalorieService(db)

	rec, err := svc.Today(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Day != "2026-03-16" || rec.TargetCalories != 2000 || rec.RemainingCalories != 2000 || rec.IsAdjusted {
		t.Fatalf("unexpected record: %+v", rec)
	}
}

func TestToday_AdjustsForConflictingAdherence(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	_, _ = db.CreateActiveGoal(ctx, domain.UserGoal{UserID: 1, GoalType: domain.GoalCutting, IsActive: true, StartedAt: testNow.AddDate(0, -1, 0)})
	seedDays(t, db, 2000, 2500, 2400, 2600)

	svc := newCalorieService(db)
	rec, err := svc.Today(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.IsAdjusted || rec.TargetCalories != 1800 {
		t.Fatalf("expected capped downward adjustment to 1800, got %+v", rec)
	}
	if rec.OriginalTarget == nil || *rec.OriginalTarget != 2000 {
		t.Fatalf("expected original target 2000, got %v", rec.OriginalTarget)
	}
	if !strings.Contains(rec.AdjustmentReason, "cutting") {
		t.Errorf("reason should name the goal: %q", rec.AdjustmentReason)
	}

	// Second read returns the stored record, not a recomputation.
	again, _ := svc.Today(ctx, 1)
	if again.TargetCalories != rec.TargetCalories {
		t.Fatalf("target changed between reads: %d vs %d", again.TargetCalories, rec.TargetCalories)
	}
}

func TestToday_TwoDaysOfHistoryNotAdjusted(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	_, _ = db.CreateActiveGoal(ctx, domain.UserGoal{UserID: 1, GoalType: domain.GoalCutting, IsActive: true, StartedAt: testNow})
	seedDays(t, db, 2000, 3000, 3000)

	rec, _ := newCalorieService(db).Today(ctx, 1)
	if rec.IsAdjusted || rec.TargetCalories != 2000 {
		t.Fatalf("expected base target, got %+v", rec)
	}
}

func TestToday_DerivesBaseFromProfile(t *testing.T) {
	db := memory.New()
	ctx := context.Background()
	bd := testNow.AddDate(-36, -2, 0)
	_ = db.UpsertProfile(ctx, domain.MetabolicProfile{
		UserID:        1,
		Sex:           ptr("male"),
		BirthDate:     &bd,
		HeightCM:      ptr(175.0),
		WeightLbs:     ptr(180.0),
		ActivityLevel: ptr("sedentary"),
	})

	rec, _ := newCalorieService(db).Today(ctx, 1)
	if rec.TargetCalories != 2082 {
		t.Fatalf("expected TDEE-derived target 2082, got %d", rec.TargetCalories)
	}
}

func TestToday_ConcurrentFirstReads(t *testing.T) {
	db := memory.New()
	svc := newCalorieService(db)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Today(context.Background(), 1)
		}()
	}
	wg.Wait()

	recent, _ := db.RecentDailyTracking(context.Background(), 1, 10)
	if len(recent) != 1 {
		t.Fatalf("expected one stored record, got %d", len(recent))
	}
}

func TestLogMeal(t *testing.T) {
	db := memory.New()
	svc := newCalorieService(db)
	ctx := context.Background()

	for _, c := range []int{0, -100, 20000} {
		if _, err := svc.LogMeal(ctx, 1, c); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("LogMeal(%d): expected ErrInvalidInput, got %v", c, err)
		}
	}

	rec, err := svc.LogMeal(ctx, 1, 1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rec, _ = svc.LogMeal(ctx, 1, 800)
	if rec.ConsumedCalories != 2300 || rec.RemainingCalories != -300 {
		t.Fatalf("unexpected totals: %+v", rec)
	}
}

func TestWeeklySummary(t *testing.T) {
	db := memory.New()
	seedDays(t, db, 2000, 2100, 1900, 2000, 2400)
	svc := newCalorieService(db)

	s, err := svc.WeeklySummary(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Days != 4 || s.TotalTarget != 8000 || s.TotalConsumed != 8400 || s.WeeklyDeviation != 400 || !s.OnTrack {
		t.Fatalf("unexpected summary: %+v", s)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := memory.New()
	svc := newCalorieService(db)
	ctx := context.Background()

	bad := []app.ProfileInput{
		{Sex: ptr("other")},
		{BirthDate: ptr("16/03/1990")},
		{BirthDate: ptr("2030-01-01")},
		{HeightCM: ptr(20.0)},
		{WeightLbs: ptr(0.0)},
		{ActivityLevel: ptr("couch")},
	}
	for _, in := range bad {
		if _, err := svc.UpdateProfile(ctx, 1, in); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("UpdateProfile(%+v): expected ErrInvalidInput, got %v", in, err)
		}
	}

	view, err := svc.UpdateProfile(ctx, 1, app.ProfileInput{HeightCM: ptr(175.0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.BaseTarget.Derived || view.BaseTarget.Budget != 2000 {
		t.Fatalf("incomplete profile should use the default base: %+v", view.BaseTarget)
	}

	view, err = svc.UpdateProfile(ctx, 1, app.ProfileInput{
		Sex:           ptr("Female"),
		BirthDate:     ptr("1990-01-01"),
		HeightCM:      ptr(165.0),
		WeightLbs:     ptr(150.0),
		ActivityLevel: ptr("moderate"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !view.BaseTarget.Derived || view.BaseTarget.TDEE != 2124 || *view.Profile.Sex != "female" {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestToday_StoreError(t *testing.T) {
	repo := &mockCalorieRepo{
		getFn: func(_ context.Context, _ int64, _ string) (*domain.DailyCalorieTracking, error) {
			return nil, errors.New("db down")
		},
	}
	svc := app.NewCalorieService(repo, &mockGoalRepo{}, &mockProfileRepo{}, 2000, nil)
	if _, err := svc.Today(context.Background(), 1); err == nil {
		t.Fatal("expected error")
	}
}

func TestToday_ExcludesTodayFromHistory(t *testing.T) {
	var stored domain.DailyCalorieTracking
	repo := &mockCalorieRepo{
		recentFn: func(_ context.Context, _ int64, _ int) ([]domain.DailyCalorieTracking, error) {
			// A record for today already exists in history but GetDailyTracking
			// raced with its creation; it must not feed its own adjustment.
			return []domain.DailyCalorieTracking{
				{Day: "2026-03-16", TargetCalories: 2000, ConsumedCalories: 5000},
				{Day: "2026-03-15", TargetCalories: 2000, ConsumedCalories: 2000},
				{Day: "2026-03-14", TargetCalories: 2000, ConsumedCalories: 2000},
			}, nil
		},
		createFn: func(_ context.Context, t domain.DailyCalorieTracking) (*domain.DailyCalorieTracking, error) {
			stored = t
			return &t, nil
		},
	}
	goals := &mockGoalRepo{
		activeFn: func(_ context.Context, _ int64) (*domain.UserGoal, error) {
			return &domain.UserGoal{GoalType: domain.GoalCutting, IsActive: true}, nil
		},
	}
	svc := app.NewCalorieService(repo, goals, &mockProfileRepo{}, 2000, nil)
	svc.Now = fixedClock(testNow)

	if _, err := svc.Today(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.IsAdjusted || stored.TargetCalories != 2000 {
		t.Fatalf("today's own record leaked into history: %+v", stored)
	}
}

func TestRange(t *testing.T) {
	db := memory.New()
	seedDays(t, db, 2000, 1900, 2100, 2000)
	svc := newCalorieService(db)

	got, err := svc.Range(context.Background(), 1, "2026-03-13", "2026-03-14")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Day != "2026-03-13" || got[1].Day != "2026-03-14" {
		t.Fatalf("expected the two oldest seeded days oldest first, got %+v", got)
	}

	for _, bad := range [][2]string{{"2026-03-14", "2026-03-13"}, {"yesterday", "2026-03-14"}, {"2026-03-13", ""}} {
		if _, err := svc.Range(context.Background(), 1, bad[0], bad[1]); !errors.Is(err, app.ErrInvalidInput) {
			t.Errorf("Range(%q, %q): expected ErrInvalidInput, got %v", bad[0], bad[1], err)
		}
	}
}
