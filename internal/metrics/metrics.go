// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the application's custom collectors. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	MealsLogged     prometheus.Counter
	CaloriesLogged  prometheus.Counter
	AdjustedTargets *prometheus.CounterVec
	WeightLogs      prometheus.Counter
	GoalsSet        *prometheus.CounterVec
	CleanupRuns     prometheus.Counter
	CleanupFailures prometheus.Counter
}

// New registers the collectors on reg. Pass prometheus.DefaultRegisterer in
// production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_http_requests_total",
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wellness_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		MealsLogged: f.NewCounter(prometheus.CounterOpts{
			Name: "wellness_meals_logged_total",
			Help: "Total number of meals logged",
		}),

		CaloriesLogged: f.NewCounter(prometheus.CounterOpts{
			Name: "wellness_calories_logged_total",
			Help: "Total calories logged across all users",
		}),

		// goal: cutting, bulking or maintaining
		AdjustedTargets: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_adjusted_targets_total",
			Help: "Daily calorie targets issued with an adherence adjustment",
		}, []string{"goal"}),

		WeightLogs: f.NewCounter(prometheus.CounterOpts{
			Name: "wellness_weight_logs_total",
			Help: "Total number of weight logs recorded",
		}),

		GoalsSet: f.NewCounterVec(prometheus.CounterOpts{
			Name: "wellness_goals_set_total",
			Help: "Total number of goals set by goal type",
		}, []string{"goal"}),

		CleanupRuns: f.NewCounter(prometheus.CounterOpts{
			Name: "wellness_session_cleanup_runs_total",
			Help: "Completed expired-session cleanup runs",
		}),

		CleanupFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "wellness_session_cleanup_failures_total",
			Help: "Failed expired-session cleanup runs",
		}),
	}
}

// ObserveRequest counts one HTTP request and records its latency.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// MealLogged counts a meal and its calories.
func (m *Metrics) MealLogged(calories int) {
	if m == nil {
		return
	}
	m.MealsLogged.Inc()
	m.CaloriesLogged.Add(float64(calories))
}

// TargetAdjusted counts a daily target that carried an adjustment.
func (m *Metrics) TargetAdjusted(goal string) {
	if m == nil {
		return
	}
	m.AdjustedTargets.WithLabelValues(goal).Inc()
}

// WeightLogged counts a recorded weigh-in.
func (m *Metrics) WeightLogged() {
	if m == nil {
		return
	}
	m.WeightLogs.Inc()
}

// GoalSet counts a new active goal by type.
func (m *Metrics) GoalSet(goal string) {
	if m == nil {
		return
	}
	m.GoalsSet.WithLabelValues(goal).Inc()
}

// CleanupRan records the outcome of a session cleanup run.
func (m *Metrics) CleanupRan(err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.CleanupFailures.Inc()
		return
	}
	m.CleanupRuns.Inc()
}
