package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"vibe-insights/action"
	"vibe-insights/teams"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// app is everything the handlers share.
type app struct {
	cfg     Config
	source  teams.Source
	actions *action.Recorder
	logger  *zap.Logger
	metrics *httpMetrics
}

// newApp builds the metrics source selected by cfg. The returned closer
// releases the source and is safe to call once.
func newApp(ctx context.Context, cfg Config, logger *zap.Logger) (*app, func() error, error) {
	catalog, err := teams.Builtin()
	if err != nil {
		return nil, nil, fmt.Errorf("load team catalog: %w", err)
	}

	var src teams.Source = catalog
	closer := func() error { return nil }
	if cfg.Backend == backendSQLite {
		store, err := openSQLStore(ctx, catalog.Records())
		if err != nil {
			return nil, nil, err
		}
		src, closer = store, store.Close
		logger.Info("team metrics served from sqlite")
	}
	if cfg.CacheTTL > 0 {
		src = newCachedSource(src, cfg.CacheTTL)
	}

	a := &app{
		cfg:     cfg,
		source:  src,
		actions: action.NewRecorder(logger),
		logger:  logger,
	}
	if cfg.Metrics {
		a.metrics = newHTTPMetrics()
	}
	return a, closer, nil
}

func (a *app) routes() http.Handler {
	r := mux.NewRouter()

	// Web shell
	r.HandleFunc("/", a.dashboardHandler).Methods(http.MethodGet)
	r.HandleFunc("/factor-analysis", a.factorAnalysisHandler).Methods(http.MethodGet)
	r.HandleFunc("/take-action", a.takeActionHandler).Methods(http.MethodPost)

	// Mobile shell
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/teams", a.listTeamsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/teams/{team}/dashboard", a.teamDashboardHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/teams/{team}/factors", a.teamFactorsHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/layout", a.layoutHandler).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/take-action", a.apiTakeActionHandler).Methods(http.MethodPost, http.MethodOptions)
	api.Use(cors.New(cors.Options{
		AllowedOrigins: a.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Sec-CH-Viewport-Width"},
	}).Handler)

	r.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics.handler()).Methods(http.MethodGet)
	}

	r.Use(a.instrument)
	return r
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// instrument logs every matched request and feeds the request metrics.
func (a *app) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tmpl, err := cur.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}
		elapsed := time.Since(start)
		a.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", rec.status),
			zap.Duration("duration", elapsed),
		)
		if a.metrics != nil {
			a.metrics.observeRequest(r.Method, route, rec.status, elapsed)
		}
	})
}

// serve runs srv on ln until ctx is cancelled, then drains connections.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info("🎨 vibe insights is running", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
