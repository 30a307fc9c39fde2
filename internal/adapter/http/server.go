package adapthttp

import (
	"net/http"
	"time"

	"wellness/internal/app"
	"wellness/internal/domain"
	"wellness/internal/logger"
	"wellness/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the application services the HTTP adapter drives.
type Services struct {
	Weight   *app.WeightService
	Goals    *app.GoalService
	Calories *app.CalorieService
	Calendar *app.CalendarService
	Charts   *app.ChartsService
	Auth     *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	weight   *app.WeightService
	goals    *app.GoalService
	calories *app.CalorieService
	calendar *app.CalendarService
	charts   *app.ChartsService
	authSvc  *app.AuthService

	log        *logger.Logger
	metrics    *metrics.Metrics
	gatherer   prometheus.Gatherer
	oidcConfig OIDCConfig
	webDir     string
	now        func() time.Time

	loginLimiter *ipLimiter
	disableAuth  bool
	localUser    *domain.User
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string, log *logger.Logger, m *metrics.Metrics) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		weight:   svc.Weight,
		goals:    svc.Goals,
		calories: svc.Calories,
		calendar: svc.Calendar,
		charts:   svc.Charts,
		authSvc:  svc.Auth,
		log:      log,
		metrics:  m,
		gatherer: prometheus.DefaultGatherer,
		webDir:   webDir,
		now:      time.Now,

		loginLimiter: newIPLimiter(loginRate, loginBurst),
	}
}

// WithoutAuth disables session checks; every request acts as user 1.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	s.localUser = &domain.User{ID: 1, Username: "local"}
	return s
}

// WithOIDC enables SSO login through the given provider configuration.
func (s *Server) WithOIDC(cfg OIDCConfig) *Server {
	s.oidcConfig = cfg
	return s
}

// WithGatherer sets the registry served at /metrics.
func (s *Server) WithGatherer(g prometheus.Gatherer) *Server {
	s.gatherer = g
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	api := http.NewServeMux()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	api.HandleFunc("/auth/login", s.rateLimited(s.loginLimiter, s.handleLogin))
	api.HandleFunc("/auth/logout", s.handleLogout)
	api.HandleFunc("/auth/setup", s.rateLimited(s.loginLimiter, s.handleSetupUser))
	api.HandleFunc("/auth/config", s.handleConfig)
	api.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	api.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	protected := http.NewServeMux()
	protected.HandleFunc("/auth/me", s.handleMe)

	protected.HandleFunc("/weight/today", s.handleWeightToday)
	protected.HandleFunc("/weight/latest", s.handleWeightLatest)
	protected.HandleFunc("/weight/logs", s.handleWeightLogs)
	protected.HandleFunc("/weight/logs/{id}", s.handleWeightLog)

	protected.HandleFunc("/goal", s.handleGoal)
	protected.HandleFunc("/goal/history", s.handleGoalHistory)
	protected.HandleFunc("/profile", s.handleProfile)

	protected.HandleFunc("/calories/today", s.handleCaloriesToday)
	protected.HandleFunc("/calories/meals", s.handleCaloriesMeal)
	protected.HandleFunc("/calories/week", s.handleCaloriesWeek)
	protected.HandleFunc("/calories/range", s.handleCaloriesRange)

	protected.HandleFunc("/calendar/events", s.handleCalendarEvents)
	protected.HandleFunc("/calendar/events/{id}", s.handleCalendarEvent)
	protected.HandleFunc("/calendar/balance", s.handleCalendarBalance)

	protected.HandleFunc("/charts/daily", s.handleChartsDaily)

	api.Handle("/", s.authMiddleware(protected))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", withRoute(api, "/api", api, protected)))
	root.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	root.Handle("/", spaFromDisk(s.webDir))

	return s.requestIDMiddleware(s.loggingMiddleware(withNoCache(root)))
}
