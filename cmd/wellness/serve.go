package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	adapthttp "wellness/internal/adapter/http"
	"wellness/internal/app"
	"wellness/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

const limiterSweepInterval = 5 * time.Minute

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx)
		},
	}
	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.String("web-dir", "web", "static frontend directory")
	_ = v.BindPFlag("addr", flags.Lookup("addr"))
	_ = v.BindPFlag("web_dir", flags.Lookup("web-dir"))
	return cmd
}

func serve(ctx context.Context) error {
	cfg, log, st, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Sync()
	defer func() { _ = st.close() }()

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := newServices(st, cfg, m)

	oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC)
	if err != nil {
		return err
	}

	api := adapthttp.New(adapthttp.Services{
		Weight:   svc.weight,
		Goals:    svc.goals,
		Calories: svc.calories,
		Calendar: svc.calendar,
		Charts:   svc.charts,
		Auth:     svc.auth,
	}, cfg.WebDir, log, m).WithOIDC(oidcCfg)

	cleanup, err := app.NewSessionCleanup(svc.auth, cfg.SessionCleanupInterval, log, m)
	if err != nil {
		return err
	}
	if err := cleanup.AddJob("login_limiter_sweep", limiterSweepInterval, api.SweepLimiters); err != nil {
		_ = cleanup.Shutdown()
		return err
	}
	cleanup.Start()
	defer func() {
		if err := cleanup.Shutdown(); err != nil {
			log.Warn("session cleanup shutdown", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr, "store", cfg.Store, "sso", oidcCfg.Enabled)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
