package app

import (
	"context"
	"fmt"
	"time"

	"wellness/internal/domain"
	"wellness/internal/metrics"
)

const (
	defaultListLimit = 30
	maxListLimit     = 500
)

// WeightService encapsulates weight-tracking use cases.
type WeightService struct {
	repo    domain.WeightRepository
	metrics *metrics.Metrics
	Now     Clock
}

// NewWeightService creates a WeightService backed by the given repository.
func NewWeightService(repo domain.WeightRepository, m *metrics.Metrics) *WeightService {
	return &WeightService{repo: repo, metrics: m, Now: time.Now}
}

// WeightInput is a new weight measurement. LoggedAt defaults to now.
type WeightInput struct {
	Weight   float64
	Unit     string
	Notes    string
	LoggedAt *time.Time
}

// GetTodayWeight returns the latest weight entry for the given local day.
func (s *WeightService) GetTodayWeight(ctx context.Context, userID int64, today string) (*domain.WeightLog, error) {
	return s.repo.LatestWeightForLocalDay(ctx, userID, today)
}

// RecordWeight validates and stores a new weight measurement.
func (s *WeightService) RecordWeight(ctx context.Context, userID int64, in WeightInput) (*domain.WeightLog, error) {
	if in.Weight <= 0 {
		return nil, invalid("weight must be > 0")
	}
	unit, err := domain.ParseWeightUnit(in.Unit)
	if err != nil {
		return nil, invalid("%v", err)
	}
	now := s.Now()
	loggedAt := now
	if in.LoggedAt != nil {
		if in.LoggedAt.After(now) {
			return nil, invalid("loggedAt must not be in the future")
		}
		loggedAt = *in.LoggedAt
	}
	log := domain.WeightLog{
		UserID:   userID,
		Weight:   in.Weight,
		Unit:     unit,
		LoggedAt: loggedAt,
		Notes:    in.Notes,
	}
	id, err := s.repo.AddWeightLog(ctx, log)
	if err != nil {
		return nil, fmt.Errorf("add weight log: %w", err)
	}
	log.ID = id
	s.metrics.WeightLogged()
	return &log, nil
}

// CorrectWeight applies an explicit correction to the weight or notes of an
// existing log. Returns domain.ErrNotFound when the log does not belong to
// the user.
func (s *WeightService) CorrectWeight(ctx context.Context, userID, id int64, patch domain.WeightLogPatch) (*domain.WeightLog, error) {
	if patch.Weight == nil && patch.Notes == nil {
		return nil, invalid("nothing to update")
	}
	if patch.Weight != nil && *patch.Weight <= 0 {
		return nil, invalid("weight must be > 0")
	}
	return s.repo.UpdateWeightLog(ctx, userID, id, patch)
}

// DeleteWeight hard-deletes a log.
func (s *WeightService) DeleteWeight(ctx context.Context, userID, id int64) error {
	deleted, err := s.repo.DeleteWeightLog(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("delete weight log: %w", err)
	}
	if !deleted {
		return domain.ErrNotFound
	}
	return nil
}

// ListRecent returns the most recent weight logs, newest first. limit is
// clamped to [1, 500] and defaults to 30.
func (s *WeightService) ListRecent(ctx context.Context, userID int64, limit int) ([]domain.WeightLog, error) {
	switch {
	case limit <= 0:
		limit = defaultListLimit
	case limit > maxListLimit:
		limit = maxListLimit
	}
	return s.repo.ListWeightLogs(ctx, userID, limit)
}

// Latest returns the newest log, converted to unit when unit is non-empty.
// Returns nil, nil when the user has no logs.
func (s *WeightService) Latest(ctx context.Context, userID int64, unit string) (*domain.WeightLog, error) {
	var want domain.WeightUnit
	if unit != "" {
		u, err := domain.ParseWeightUnit(unit)
		if err != nil {
			return nil, invalid("%v", err)
		}
		want = u
	}
	latest, err := s.repo.LatestWeightLog(ctx, userID)
	if err != nil || latest == nil {
		return nil, err
	}
	if want != "" && want != latest.Unit {
		latest.Weight = latest.WeightIn(want)
		latest.Unit = want
	}
	return latest, nil
}
