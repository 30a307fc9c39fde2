package main

import (
	"fmt"

	"wellness/internal/adapter/memory"
	"wellness/internal/adapter/postgres"
	"wellness/internal/app"
	"wellness/internal/config"
	"wellness/internal/domain"
	"wellness/internal/logger"
	"wellness/internal/metrics"
)

// store is the set of repository ports backed by one record store.
type store struct {
	weights  domain.WeightRepository
	goals    domain.GoalRepository
	calories domain.CalorieRepository
	events   domain.EventRepository
	profiles domain.ProfileRepository
	users    domain.UserRepository
	sessions domain.SessionRepository
	close    func() error
}

func openStore(cfg config.Config, log *logger.Logger) (*store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store; data is lost on exit")
		db := memory.New()
		return &store{
			weights: db, goals: db, calories: db, events: db, profiles: db, users: db,
			sessions: db.NewSessionRepo(),
			close:    func() error { return nil },
		}, nil
	default:
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db open: %w", err)
		}
		return &store{
			weights: db, goals: db, calories: db, events: db, profiles: db, users: db,
			sessions: postgres.NewSessionRepo(db),
			close:    db.Close,
		}, nil
	}
}

type services struct {
	weight   *app.WeightService
	goals    *app.GoalService
	calories *app.CalorieService
	calendar *app.CalendarService
	charts   *app.ChartsService
	auth     *app.AuthService
}

func newServices(st *store, cfg config.Config, m *metrics.Metrics) services {
	return services{
		weight:   app.NewWeightService(st.weights, m),
		goals:    app.NewGoalService(st.goals, st.weights, m),
		calories: app.NewCalorieService(st.calories, st.goals, st.profiles, cfg.DefaultBaseCalories, m),
		calendar: app.NewCalendarService(st.events),
		charts:   app.NewChartsService(st.weights, st.calories),
		auth:     app.NewAuthService(st.users, st.sessions),
	}
}

// bootstrap loads the configuration, builds the logger and opens the store.
func bootstrap() (config.Config, *logger.Logger, *store, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("logger: %w", err)
	}
	st, err := openStore(cfg, log)
	if err != nil {
		return config.Config{}, nil, nil, err
	}
	return cfg, log, st, nil
}
