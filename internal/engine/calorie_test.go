package engine_test

import (
	"reflect"
	"strings"
	"testing"

	"wellness/internal/domain"
	"wellness/internal/engine"
)

// days builds newest-first history with a constant target.
func days(target int, consumed ...int) []domain.DailyCalorieTracking {
	out := make([]domain.DailyCalorieTracking, len(consumed))
	for i, c := range consumed {
		out[i] = domain.DailyCalorieTracking{TargetCalories: target, ConsumedCalories: c}
		out[i].Recompute()
	}
	return out
}

func TestComputeAdaptiveCalorieTarget_InsufficientHistory(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalCutting}
	got := engine.ComputeAdaptiveCalorieTarget(2000, days(2000, 3000, 3000), goal)
	if got.IsAdjusted || got.DailyTarget != 2000 || got.OriginalTarget != nil {
		t.Fatalf("expected base target unmodified, got %+v", got)
	}
}

func TestComputeAdaptiveCalorieTarget(t *testing.T) {
	cutting := &domain.UserGoal{GoalType: domain.GoalCutting}
	bulking := &domain.UserGoal{GoalType: domain.GoalBulking}
	maintaining := &domain.UserGoal{GoalType: domain.GoalMaintaining}

	tests := []struct {
		name         string
		history      []domain.DailyCalorieTracking
		goal         *domain.UserGoal
		wantAdjusted bool
		wantTarget   int
	}{
		{"on track", days(2000, 2100, 1950, 2050), cutting, false, 2000},
		{"cutting and overeating", days(2000, 2300, 2300, 2300), cutting, true, 1800},
		{"cutting overeating capped", days(2000, 3000, 3000, 3000), cutting, true, 1800},
		{"cutting moderate overage capped", days(2000, 2250, 2250, 2250, 2250), cutting, true, 1800},
		{"cutting and undereating is consistent", days(2000, 1500, 1500, 1500), cutting, false, 2000},
		{"bulking and undereating", days(3000, 2600, 2600, 2700), bulking, true, 3300},
		{"bulking and overeating is consistent", days(3000, 3600, 3600, 3600), bulking, false, 3000},
		{"maintaining over", days(2500, 2900, 2900, 2900), maintaining, true, 2250},
		{"maintaining under", days(2500, 2200, 2200, 2200), maintaining, true, 2750},
		{"no active goal", days(2000, 3000, 3000, 3000), nil, false, 2000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			base := tc.history[0].TargetCalories
			got := engine.ComputeAdaptiveCalorieTarget(base, tc.history, tc.goal)
			if got.IsAdjusted != tc.wantAdjusted || got.DailyTarget != tc.wantTarget {
				t.Fatalf("got %+v, want adjusted=%v target=%d", got, tc.wantAdjusted, tc.wantTarget)
			}
			if got.IsAdjusted {
				if got.AdjustmentReason == "" {
					t.Fatal("adjusted target needs a reason")
				}
				if got.OriginalTarget == nil || *got.OriginalTarget != base {
					t.Fatalf("originalTarget=%v, want %d", got.OriginalTarget, base)
				}
			}
		})
	}
}

func TestComputeAdaptiveCalorieTarget_CorrectionWithinTolerance(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalCutting}
	// Average overage 240 kcal/day on a 2000 base: capped at 10% = 200.
	got := engine.ComputeAdaptiveCalorieTarget(2000, days(2000, 2240, 2240, 2240, 2240, 2240), goal)
	if got.DailyTarget != 1800 {
		t.Fatalf("expected 1800, got %d", got.DailyTarget)
	}
	// Average overage 210 kcal/day against a 2100 base: below the 210 cap.
	got = engine.ComputeAdaptiveCalorieTarget(2100, days(1900, 2110, 2110, 2110), goal)
	if got.DailyTarget != 1890 {
		t.Fatalf("expected 1890, got %d", got.DailyTarget)
	}
	if !strings.Contains(got.AdjustmentReason, "over") {
		t.Fatalf("reason should say over target: %q", got.AdjustmentReason)
	}
}

func TestComputeAdaptiveCalorieTarget_FloorsAtMinimum(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalCutting}
	got := engine.ComputeAdaptiveCalorieTarget(1250, days(1250, 1700, 1700, 1700), goal)
	if got.DailyTarget != engine.MinDailyTarget || !got.IsAdjusted {
		t.Fatalf("expected floor at %d, got %+v", engine.MinDailyTarget, got)
	}

	got = engine.ComputeAdaptiveCalorieTarget(1100, days(1100, 1700, 1700, 1700), goal)
	if got.IsAdjusted || got.DailyTarget != 1100 {
		t.Fatalf("a base already below the floor must not be raised on a cut, got %+v", got)
	}
}

func TestComputeAdaptiveCalorieTarget_OnlyUsesSevenDays(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalCutting}
	history := days(2000, 2000, 2000, 2000, 2000, 2000, 2000, 2000, 9000, 9000)
	got := engine.ComputeAdaptiveCalorieTarget(2000, history, goal)
	if got.IsAdjusted {
		t.Fatalf("days beyond the 7-day window must be ignored, got %+v", got)
	}
}

func TestComputeAdaptiveCalorieTarget_CompoundsAgainstStoredTargets(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalCutting}
	// Days were already lowered to 1800; eating 2000 is still over those targets.
	history := days(1800, 2000, 2000, 2000)
	got := engine.ComputeAdaptiveCalorieTarget(2000, history, goal)
	if !got.IsAdjusted || got.DailyTarget != 1800 {
		t.Fatalf("expected deviation measured against stored targets, got %+v", got)
	}
}

func TestComputeAdaptiveCalorieTarget_Idempotent(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalMaintaining}
	history := days(2500, 2900, 2800, 3000, 2950)
	a := engine.ComputeAdaptiveCalorieTarget(2500, history, goal)
	b := engine.ComputeAdaptiveCalorieTarget(2500, history, goal)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("results differ: %+v vs %+v", a, b)
	}
}

func TestComputeWeeklySummary(t *testing.T) {
	s := engine.ComputeWeeklySummary(days(2000, 2100, 1900, 2300, 2000))
	if s.Days != 4 || s.TotalTarget != 8000 || s.TotalConsumed != 8300 || s.WeeklyDeviation != 300 {
		t.Fatalf("unexpected summary: %+v", s)
	}
	if !s.OnTrack {
		t.Fatal("300 over 8000 is within tolerance")
	}

	s = engine.ComputeWeeklySummary(days(2000, 2500, 2500, 2500, 2500, 2500, 2500, 2500, 0))
	if s.Days != 7 || s.TotalConsumed != 17500 || s.OnTrack {
		t.Fatalf("expected 7-day window off track, got %+v", s)
	}

	empty := engine.ComputeWeeklySummary(nil)
	if empty.Days != 0 || !empty.OnTrack {
		t.Fatalf("empty window should be on track, got %+v", empty)
	}
}

func TestWeeklySummaryAgreesWithAdjuster(t *testing.T) {
	goal := &domain.UserGoal{GoalType: domain.GoalMaintaining}
	for _, consumed := range []int{2150, 2200, 2201, 2250, 1799, 1800} {
		history := days(2000, consumed, consumed, consumed)
		summary := engine.ComputeWeeklySummary(history)
		target := engine.ComputeAdaptiveCalorieTarget(2000, history, goal)
		if summary.OnTrack == target.IsAdjusted {
			t.Errorf("consumed=%d: summary onTrack=%v but adjusted=%v", consumed, summary.OnTrack, target.IsAdjusted)
		}
	}
}

func TestNewDailyTracking(t *testing.T) {
	orig := 2000
	d := engine.NewDailyTracking(7, "2026-03-16", engine.CalorieTarget{
		DailyTarget: 1800, IsAdjusted: true, AdjustmentReason: "why", OriginalTarget: &orig,
	})
	if d.UserID != 7 || d.TargetCalories != 1800 || d.ConsumedCalories != 0 || d.RemainingCalories != 1800 {
		t.Fatalf("unexpected record: %+v", d)
	}
	if d.OriginalTarget == &orig || *d.OriginalTarget != 2000 {
		t.Fatal("originalTarget should be copied")
	}
}
