// Package source serves record snapshots gathered from several loaders
// and keeps them fresh on a cron schedule.
package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"volunteerhub/internal/application/viewengine"
)

// Loader produces the full record set of one backing source.
type Loader interface {
	Name() string
	Load(ctx context.Context) ([]viewengine.Record, error)
}

// Static is a Loader over a fixed record set.
type Static struct {
	name    string
	records []viewengine.Record
}

// NewStatic wraps a copy of recs.
func NewStatic(name string, recs []viewengine.Record) *Static {
	return &Static{name: name, records: slices.Clone(recs)}
}

// Name returns the loader name.
func (s *Static) Name() string { return s.name }

// Load returns the wrapped records.
func (s *Static) Load(ctx context.Context) ([]viewengine.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(s.records), nil
}

// Status describes the outcome of the most recent refresh.
type Status struct {
	LastRefresh time.Time         `json:"last_refresh"`
	Records     int               `json:"records"`
	Failures    map[string]string `json:"failures,omitempty"` // loader name to error
}

// Refreshing is a DataSource whose snapshot is rebuilt by Refresh.
// INVARIANT: Snapshot never blocks on I/O; readers see either the old or the new set.
type Refreshing struct {
	loaders []Loader

	mu       sync.RWMutex
	records  []viewengine.Record
	lastGood map[string][]viewengine.Record
	status   Status
}

// NewRefreshing creates an empty source. Call Refresh before serving.
func NewRefreshing(loaders ...Loader) *Refreshing {
	return &Refreshing{
		loaders:  loaders,
		lastGood: make(map[string][]viewengine.Record, len(loaders)),
	}
}

// Snapshot returns a copy of the current merged records.
func (s *Refreshing) Snapshot() []viewengine.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

// Status returns the most recent refresh outcome.
func (s *Refreshing) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.status
	st.Failures = maps.Clone(s.status.Failures)
	return st
}

// Refresh reloads every loader and swaps in the merged result.
// PRE: ctx is valid
// POST: a failing loader contributes its last good records; the error joins all failures.
// Records keep loader order, then load order; a repeated ID keeps its first record
// and records without an ID are dropped.
func (s *Refreshing) Refresh(ctx context.Context) error {
	start := time.Now()
	loaded := make([][]viewengine.Record, len(s.loaders))
	var errs []error
	failures := map[string]string{}

	for i, l := range s.loaders {
		recs, err := l.Load(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", l.Name(), err))
			failures[l.Name()] = err.Error()
			slog.Warn("source_load_failed", "loader", l.Name(), "error", err)
			continue
		}
		loaded[i] = recs
	}

	s.mu.Lock()
	var merged []viewengine.Record
	seen := make(map[string]bool)
	duplicates, unidentified := 0, 0
	for i, l := range s.loaders {
		recs := loaded[i]
		if _, failed := failures[l.Name()]; failed {
			recs = s.lastGood[l.Name()]
		} else {
			s.lastGood[l.Name()] = recs
		}
		for _, r := range recs {
			if r.ID == "" {
				unidentified++
				continue
			}
			if seen[r.ID] {
				duplicates++
				continue
			}
			seen[r.ID] = true
			merged = append(merged, r)
		}
	}
	s.records = merged
	s.status = Status{LastRefresh: start, Records: len(merged)}
	if len(failures) > 0 {
		s.status.Failures = failures
	}
	s.mu.Unlock()

	slog.Info("source_refreshed",
		"records", len(merged),
		"loaders", len(s.loaders),
		"failed", len(failures),
		"duplicates", duplicates,
		"unidentified", unidentified,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return errors.Join(errs...)
}
