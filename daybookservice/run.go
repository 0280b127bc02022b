// Package daybookservice wires the diary service together and runs it.
package daybookservice

import (
	"context"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/daybook-app/daybook/internal/aiclient"
	"github.com/daybook-app/daybook/internal/api"
	"github.com/daybook-app/daybook/internal/api/recovery"
	"github.com/daybook-app/daybook/internal/config"
	"github.com/daybook-app/daybook/internal/health"
	"github.com/daybook-app/daybook/internal/insight"
	"github.com/daybook-app/daybook/internal/logger"
	"github.com/daybook-app/daybook/internal/scheduler"
	"github.com/daybook-app/daybook/internal/services"
	"github.com/daybook-app/daybook/internal/store"
	"github.com/daybook-app/daybook/internal/store/sqlite"
)

// Run starts the daybook HTTP server and blocks until shutdown or error.
func Run() error {
	log := logger.New("daybookd")

	cfg, err := config.New()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")
		return err
	}

	log.Info().
		Int("http_port", cfg.HTTPPort).
		Str("db_path", cfg.DBPath).
		Str("model", cfg.Model).
		Str("refresh_policy", string(cfg.RefreshPolicy)).
		Msg("Daybook service starting")

	ctx, stop := newServerContext()
	defer stop()

	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Store unavailable")
		return err
	}
	defer func() { _ = st.Close() }()

	client := aiclient.New(
		cfg.OpenAIBaseURL,
		cfg.Model,
		time.Duration(cfg.RequestTimeout)*time.Second,
		aiclient.StaticCredential(cfg.OpenAIAPIKey),
	)
	if err := aiclient.ResolveWithRetry(ctx, client, 30*time.Second); err != nil {
		// The service still starts; completion calls fail with
		// CredentialNotReady until a restart provides a key.
		log.Warn().Err(err).Msg("API credential not resolved")
	}

	analyzer := insight.NewAnalyzer(client, cfg.Temperature, log)
	refresher := scheduler.NewRefresher(st, analyzer, cfg.RefreshPolicy, log)
	reminder := scheduler.NewReminder(st, scheduler.LogNotifier{Log: log}, cfg.ReminderHour, log)

	go refresher.Loop(ctx)
	go reminder.Loop(ctx)

	router := buildRouter(st, refresher, analyzer)

	startHealthCheckers(ctx, cfg, log, st, client)

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Stack().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Stack().Err(err).Msg("HTTP server failed")
		return err
	}
}

// buildRouter wires HTTP routes to handlers.
func buildRouter(st store.Store, refresher *scheduler.Refresher, analyzer *insight.Analyzer) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Entries
	entrySvc := services.NewEntryService(st)
	entries := api.NewEntryHandler(entrySvc)
	root.HandleFunc("/api/entries", entries.CreateEntry).Methods("POST")
	root.HandleFunc("/api/entries", entries.ListEntries).Methods("GET")
	root.HandleFunc("/api/entries/{entryId}", entries.GetEntry).Methods("GET")
	root.HandleFunc("/api/entries/{entryId}", entries.UpdateEntry).Methods("PUT")
	root.HandleFunc("/api/entries/{entryId}", entries.DeleteEntry).Methods("DELETE")

	// Insights
	insightSvc := services.NewInsightService(refresher, analyzer)
	insights := api.NewInsightHandler(insightSvc)
	root.HandleFunc("/api/insights", insights.GetInsights).Methods("GET")
	root.HandleFunc("/api/insights/refresh", insights.RefreshInsights).Methods("POST")
	root.HandleFunc("/api/insights/daily-message", insights.GetDailyMessage).Methods("GET")

	// Health
	healthHandler := api.NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	return root
}

// startHealthCheckers starts component checkers and the service-level
// aggregator, then binds service health for the handler.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store, client *aiclient.Client) {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	endpointChecker := aiclient.NewEndpointHealthChecker(client, log, probeTimeout)
	go endpointChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker, endpointChecker)
	go svcHealth.Start(ctx, interval)
	api.BindServiceHealth(svcHealth.IsHealthy)
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// newServerContext returns a cancellable context bound to SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

