package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/ripple-cli/internal/core/domain"
	"github.com/custodia-labs/ripple-cli/internal/core/ports/driving"
	"github.com/custodia-labs/ripple-cli/internal/logger"
)

// Errors returned by NewServer.
var (
	ErrNilPorts       = errors.New("ports cannot be nil")
	ErrMissingLibrary = errors.New("library service is required")
	ErrMissingMetrics = errors.New("metrics service is required")
	ErrMissingExport  = errors.New("export service is required")
)

// Ports holds the services the HTTP surface drives.
type Ports struct {
	Library driving.LibraryService
	Metrics driving.MetricsService
	Export  driving.ExportService
}

// Options configures request handling.
type Options struct {
	Display domain.DisplaySettings
	Stress  domain.StressSettings
	// RateLimit is requests per second; zero disables limiting.
	RateLimit float64
	Burst     int
}

// OptionsFromSettings builds Options from application settings.
func OptionsFromSettings(s *domain.AppSettings) Options {
	return Options{
		Display:   s.Display,
		Stress:    s.Stress,
		RateLimit: s.Server.RateLimit,
		Burst:     s.Server.Burst,
	}
}

// Server is the HTTP adapter.
type Server struct {
	ports   *Ports
	opts    Options
	limiter *rate.Limiter
}

// NewServer validates ports and creates a server.
func NewServer(ports *Ports, opts Options) (*Server, error) {
	if ports == nil {
		return nil, ErrNilPorts
	}
	if ports.Library == nil {
		return nil, ErrMissingLibrary
	}
	if ports.Metrics == nil {
		return nil, ErrMissingMetrics
	}
	if ports.Export == nil {
		return nil, ErrMissingExport
	}

	s := &Server{ports: ports, opts: opts}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return s, nil
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger.Std(), NoColor: true}))
	r.Use(middleware.Recoverer)
	if s.limiter != nil {
		r.Use(rateLimit(s.limiter))
	}

	r.Get("/", s.handleDashboard)
	r.Post("/ingest", s.handleFormIngest)
	r.Post("/seed", s.handleFormSeed)

	r.Route("/api", func(api chi.Router) {
		api.Get("/assets", s.handleSearch)
		api.Post("/assets", s.handleIngest)
		api.Get("/assets/{id}", s.handleGetAsset)
		api.Get("/assets/{id}/expansion", s.handleGetExpansion)
		api.Get("/terms", s.handleTerms)
		api.Post("/seed", s.handleSeed)
		api.Get("/metrics", s.handleMetrics)
	})

	r.Route("/export", func(ex chi.Router) {
		ex.Get("/ripple-metrics.json", s.handleExportJSON)
		ex.Get("/ripple-metrics.html", s.handleExportHTML)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	logger.Info("HTTP server listening on %s", addr)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}
		return nil
	}
}

// rateLimit rejects requests once the shared bucket is empty.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				respondError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
