package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"wellness/internal/logger"
	"wellness/internal/metrics"
)

const cleanupTimeout = 30 * time.Second

// SessionCleanup periodically purges expired sessions.
type SessionCleanup struct {
	auth      *AuthService
	scheduler gocron.Scheduler
	log       *logger.Logger
	metrics   *metrics.Metrics
}

// NewSessionCleanup registers a cleanup job that runs every interval. Call
// Start to begin running it.
func NewSessionCleanup(auth *AuthService, interval time.Duration, log *logger.Logger, m *metrics.Metrics) (*SessionCleanup, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create cleanup scheduler: %w", err)
	}
	c := &SessionCleanup{auth: auth, scheduler: scheduler, log: log, metrics: m}
	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(c.Run),
		gocron.WithName("session_cleanup"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to register cleanup job: %w", err)
	}
	return c, nil
}

// Run performs one cleanup pass.
func (c *SessionCleanup) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	err := c.auth.CleanupExpired(ctx)
	c.metrics.CleanupRan(err)
	if err != nil {
		c.log.Warn("session cleanup failed", "error", err)
		return
	}
	c.log.Debug("expired sessions purged")
}

// AddJob runs task every interval on the same scheduler as the session
// purge. Register jobs before calling Start.
func (c *SessionCleanup) AddJob(name string, interval time.Duration, task func()) error {
	_, err := c.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register %s job: %w", name, err)
	}
	return nil
}

func (c *SessionCleanup) Start() {
	c.scheduler.Start()
}

func (c *SessionCleanup) Shutdown() error {
	return c.scheduler.Shutdown()
}
