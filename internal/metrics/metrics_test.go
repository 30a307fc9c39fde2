package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"wellness/internal/metrics"
)

func TestMetrics(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())

	m.MealLogged(450)
	m.MealLogged(300)
	m.TargetAdjusted("cutting")
	m.ObserveRequest("GET", "/api/health", 200, 5*time.Millisecond)
	m.CleanupRan(nil)
	m.CleanupRan(errors.New("db down"))
	m.WeightLogged()
	m.GoalSet("bulking")
	m.GoalSet("bulking")

	if got := testutil.ToFloat64(m.MealsLogged); got != 2 {
		t.Errorf("MealsLogged = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.CaloriesLogged); got != 750 {
		t.Errorf("CaloriesLogged = %v, want 750", got)
	}
	if got := testutil.ToFloat64(m.AdjustedTargets.WithLabelValues("cutting")); got != 1 {
		t.Errorf("AdjustedTargets = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/api/health", "200")); got != 1 {
		t.Errorf("HTTPRequests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.WeightLogs); got != 1 {
		t.Errorf("WeightLogs = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.GoalsSet.WithLabelValues("bulking")); got != 2 {
		t.Errorf("GoalsSet = %v, want 2", got)
	}
	if testutil.ToFloat64(m.CleanupRuns) != 1 || testutil.ToFloat64(m.CleanupFailures) != 1 {
		t.Error("cleanup counters not updated")
	}
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *metrics.Metrics
	m.MealLogged(100)
	m.TargetAdjusted("bulking")
	m.ObserveRequest("GET", "/", 200, time.Second)
	m.CleanupRan(nil)
	m.WeightLogged()
	m.GoalSet("cutting")
}
