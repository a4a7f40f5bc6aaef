// Package perf keeps recent request and query timings in memory and
// summarizes them for the admin perf endpoint.
package perf

import (
	"cmp"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultRingSize is the default capacity of the ring buffer.
const DefaultRingSize = 10000

// EntryKind distinguishes request vs query entries.
type EntryKind uint8

const (
	KindRequest EntryKind = iota
	KindQuery
)

// Entry is a single timing record stored in the ring buffer.
type Entry struct {
	Kind       EntryKind
	Path       string // "METHOD /path" for requests, a query label for queries
	StatusCode int    // HTTP status (0 for queries)
	DurationMs float64
	Timestamp  time.Time
}

// Collector is a fixed-size ring buffer for timing entries.
// When full, the oldest entries are overwritten. Aggregation happens only in Snapshot.
type Collector struct {
	mu      sync.Mutex
	entries []Entry
	pos     int
	count   atomic.Int64 // entries ever written
}

// NewCollector creates a collector with the given ring buffer capacity.
// PRE: none; size <= 0 uses DefaultRingSize
// POST: storage is pre-allocated
func NewCollector(size int) *Collector {
	if size <= 0 {
		size = DefaultRingSize
	}
	return &Collector{entries: make([]Entry, size)}
}

// Record stores an entry, overwriting the oldest when full.
func (c *Collector) Record(e Entry) {
	c.mu.Lock()
	c.entries[c.pos] = e
	c.pos = (c.pos + 1) % len(c.entries)
	c.mu.Unlock()
	c.count.Add(1)
}

// TotalRecorded returns the number of entries ever recorded, including overwritten ones.
func (c *Collector) TotalRecorded() int64 {
	return c.count.Load()
}

// Snapshot is the aggregated view over a time window.
type Snapshot struct {
	Since          time.Time
	TotalRecorded  int64 // lifetime count, not limited to the window
	Requests       int
	ServerErrors   int // requests answered with 5xx
	Queries        int
	RequestP50Ms   float64
	RequestP95Ms   float64
	RequestP99Ms   float64
	QueryP95Ms     float64
	SlowestPaths   []PathStat
	SlowestQueries []PathStat
}

// PathStat aggregates timing for one request path or query label.
type PathStat struct {
	Path    string
	Count   int
	Errors  int
	AvgMs   float64
	MaxMs   float64
	TotalMs float64
}

// series accumulates one entry kind.
type series struct {
	durations []float64
	byPath    map[string]*PathStat
}

func (s *series) add(e Entry) {
	s.durations = append(s.durations, e.DurationMs)
	if s.byPath == nil {
		s.byPath = make(map[string]*PathStat)
	}
	st, ok := s.byPath[e.Path]
	if !ok {
		st = &PathStat{Path: e.Path}
		s.byPath[e.Path] = st
	}
	st.Count++
	st.TotalMs += e.DurationMs
	st.MaxMs = max(st.MaxMs, e.DurationMs)
	if e.StatusCode >= 500 {
		st.Errors++
	}
}

// top returns the n slowest paths by average, ties broken by path.
func (s *series) top(n int) []PathStat {
	list := make([]PathStat, 0, len(s.byPath))
	for _, st := range s.byPath {
		st.AvgMs = st.TotalMs / float64(st.Count)
		list = append(list, *st)
	}
	slices.SortFunc(list, func(a, b PathStat) int {
		if c := cmp.Compare(b.AvgMs, a.AvgMs); c != 0 {
			return c
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return list[:min(max(n, 0), len(list))]
}

// Snapshot aggregates entries recorded at or after since.
// PRE: none
// POST: SlowestPaths and SlowestQueries hold at most topN entries each
func (c *Collector) Snapshot(since time.Time, topN int) Snapshot {
	c.mu.Lock()
	buf := slices.Clone(c.entries)
	c.mu.Unlock()

	var requests, queries series
	snap := Snapshot{Since: since, TotalRecorded: c.TotalRecorded()}
	for _, e := range buf {
		if e.Timestamp.IsZero() || e.Timestamp.Before(since) {
			continue
		}
		switch e.Kind {
		case KindRequest:
			requests.add(e)
			if e.StatusCode >= 500 {
				snap.ServerErrors++
			}
		case KindQuery:
			queries.add(e)
		}
	}

	snap.Requests = len(requests.durations)
	snap.Queries = len(queries.durations)
	snap.SlowestPaths = requests.top(topN)
	snap.SlowestQueries = queries.top(topN)

	slices.Sort(requests.durations)
	snap.RequestP50Ms = percentile(requests.durations, 50)
	snap.RequestP95Ms = percentile(requests.durations, 95)
	snap.RequestP99Ms = percentile(requests.durations, 99)
	slices.Sort(queries.durations)
	snap.QueryP95Ms = percentile(queries.durations, 95)
	return snap
}

// percentile interpolates the p-th percentile of a sorted slice; 0 when empty.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := (p / 100) * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))
	if lower == upper {
		return sorted[lower]
	}
	frac := idx - float64(lower)
	return sorted[lower]*(1-frac) + sorted[upper]*frac
}
