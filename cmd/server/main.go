package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"volunteerhub/internal/adapters/fixtures"
	web "volunteerhub/internal/adapters/http"
	"volunteerhub/internal/adapters/http/perf"
	"volunteerhub/internal/adapters/ics"
	"volunteerhub/internal/adapters/source"
	"volunteerhub/internal/adapters/storage"
	"volunteerhub/internal/adapters/storage/sqlsource"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

// shutdownTimeout bounds how long in-flight requests get after SIGTERM.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load(os.Getenv("VOLUNTEERHUB_CONFIG"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	set, err := fixtures.Load(cfg.FixturesPath)
	if err != nil {
		log.Fatalf("failed to load fixtures: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Performance collector: ring buffer of recent request and query timings
	collector := perf.NewCollector(perf.DefaultRingSize)

	loaders := []source.Loader{source.NewStatic(fixtures.SourceName, set.EventRecords())}
	if cfg.SQLitePath != "" {
		db, err := storage.Open(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open event database: %v", err)
		}
		defer db.Close()
		timed := storage.NewTimedDB(db, collector, cfg.SlowQuery())
		loaders = append(loaders, sqlsource.NewLoader(timed, cfg.SQLiteQuery, ""))
	}
	for _, feed := range cfg.ICS {
		loaders = append(loaders, ics.NewLoader(ics.Source{ID: feed.ID, URL: feed.URL}, cfg.Location()))
	}

	events := source.NewRefreshing(loaders...)
	if err := events.Refresh(ctx); err != nil {
		// Partial data is still served; the next scheduled refresh retries.
		slog.Warn("initial_refresh_incomplete", "error", err)
	}
	scheduler, err := source.Schedule(ctx, cfg.RefreshCron, cfg.Location(), events)
	if err != nil {
		log.Fatalf("failed to schedule refresh: %v", err)
	}
	defer scheduler.Stop()

	sources := &web.Sources{
		Events:        events,
		Volunteers:    staticSource(ctx, "volunteers", set.VolunteerRecords()),
		Badges:        staticSource(ctx, "badges", set.BadgeRecords()),
		Notifications: staticSource(ctx, "notifications", set.NotificationRecords()),
	}

	handler, err := web.NewMux(cfg, sources, collector)
	if err != nil {
		log.Fatalf("failed to build handler: %v", err)
	}
	defer handler.Close()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}()

	slog.Info("server_starting",
		"version", version,
		"addr", cfg.Listen,
		"env", cfg.Env,
		"events", len(events.Snapshot()),
		"feeds", len(cfg.ICS),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	slog.Info("server_stopped")
}

// staticSource wraps fixture records in a Refreshing so /health reports them.
func staticSource(ctx context.Context, name string, recs []viewengine.Record) *source.Refreshing {
	s := source.NewRefreshing(source.NewStatic(name, recs))
	if err := s.Refresh(ctx); err != nil {
		log.Fatalf("failed to load %s: %v", name, err)
	}
	return s
}

func logLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
