package web

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"volunteerhub/internal/adapters/http/middleware"
	"volunteerhub/internal/adapters/http/perf"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/config"
)

// ErrCSRFKeyRequired is returned by NewMux in production without a CSRF key.
var ErrCSRFKeyRequired = errors.New("VOLUNTEERHUB_CSRF_KEY is required in production")

// Sources holds the collections every view reads from.
// A nil source is served as an empty collection.
type Sources struct {
	Events        viewengine.DataSource
	Volunteers    viewengine.DataSource
	Badges        viewengine.DataSource
	Notifications viewengine.DataSource
}

// Global sources instance (set by NewMux)
var sources *Sources

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Calendar settings (set by NewMux)
var (
	displayLocation = time.UTC
	weekStart       = time.Sunday
)

// loadCSRFKey returns the configured CSRF secret.
// In production the key MUST be set. In development a random key is generated per startup.
func loadCSRFKey(cfg config.Config) ([]byte, error) {
	if key, ok := cfg.CSRFKeyBytes(); ok {
		return key, nil
	}
	if cfg.IsProduction() {
		return nil, ErrCSRFKeyRequired
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate CSRF key: %w", err)
	}
	slog.Warn("csrf_key_random", "hint", "set VOLUNTEERHUB_CSRF_KEY so tokens survive restarts")
	return key, nil
}

// Mux is the app's HTTP handler. Close stops its background work.
type Mux struct {
	http.Handler
	limiter *middleware.RateLimiter
}

// Close stops the rate limiter's sweep. Safe to call more than once.
func (m *Mux) Close() {
	m.limiter.Stop()
}

// NewMux wires HTTP handlers for the app.
// PRE: cfg passed Validate; s is non-nil
// POST: returned handler applies Timing -> RateLimit -> CSRF -> SecurityHeaders -> Mux;
// caller calls Close when done serving
func NewMux(cfg config.Config, s *Sources, collector *perf.Collector) (*Mux, error) {
	csrfKey, err := loadCSRFKey(cfg)
	if err != nil {
		return nil, err
	}

	sources = s
	perfCollector = collector
	displayLocation = cfg.Location()
	weekStart = cfg.FirstWeekday()

	mux := http.NewServeMux()
	registerRoutes(mux)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Second)

	handler := middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, cfg.IsProduction(), trustedOrigins(cfg.Listen)),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, cfg.SlowRequest()),
	)
	return &Mux{Handler: handler, limiter: limiter}, nil
}

// trustedOrigins allows same-host form posts during local development.
func trustedOrigins(listen string) []string {
	_, port, err := net.SplitHostPort(listen)
	if err != nil || port == "" {
		port = "8080"
	}
	return []string{"localhost:" + port, "127.0.0.1:" + port}
}

func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/api/events", handleGetEventList)
	mux.HandleFunc("/api/dashboard", handleGetDashboard)
	mux.HandleFunc("/api/badges", handleGetBadgeGallery)
	mux.HandleFunc("/api/notifications", handleGetNotificationCenter)
	mux.HandleFunc("/api/volunteers", handleGetVolunteerDirectory)
	mux.HandleFunc("/api/calendar", handleGetEventCalendar)
	mux.HandleFunc("/api/admin/perf", handleAdminPerf)
}
