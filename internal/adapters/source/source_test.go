package source

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"volunteerhub/internal/application/viewengine"
)

type fakeLoader struct {
	name string
	mu   sync.Mutex
	recs []viewengine.Record
	err  error
	hits int
}

func (f *fakeLoader) Name() string { return f.name }

func (f *fakeLoader) Load(ctx context.Context) ([]viewengine.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++
	if f.err != nil {
		return nil, f.err
	}
	return f.recs, nil
}

func (f *fakeLoader) set(recs []viewengine.Record, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recs, f.err = recs, err
}

func rec(id string) viewengine.Record {
	return viewengine.NewRecord(id, map[string]any{"title": id})
}

func snapshotIDs(s viewengine.DataSource) []string {
	var out []string
	for _, r := range s.Snapshot() {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestRefreshing_Merge verifies loader order is kept and duplicate IDs keep the first record.
func TestRefreshing_Merge(t *testing.T) {
	fixtures := NewStatic("fixtures", []viewengine.Record{rec("a"), rec("b")})
	feed := &fakeLoader{name: "feed", recs: []viewengine.Record{rec("b"), rec("c")}}
	s := NewRefreshing(fixtures, feed)

	if got := s.Snapshot(); len(got) != 0 {
		t.Errorf("before refresh = %d records, want 0", len(got))
	}
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := snapshotIDs(s); !equalIDs(got, []string{"a", "b", "c"}) {
		t.Errorf("ids = %v, want [a b c]", got)
	}
	st := s.Status()
	if st.Records != 3 || st.LastRefresh.IsZero() || len(st.Failures) != 0 {
		t.Errorf("status = %+v", st)
	}
}

// TestRefreshing_DropsEmptyIDs verifies records without an ID never collapse into one.
func TestRefreshing_DropsEmptyIDs(t *testing.T) {
	feed := &fakeLoader{name: "feed", recs: []viewengine.Record{rec(""), rec("a"), rec(""), rec("b")}}
	s := NewRefreshing(feed)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if got := snapshotIDs(s); !equalIDs(got, []string{"a", "b"}) {
		t.Errorf("ids = %v, want [a b]", got)
	}
	if st := s.Status(); st.Records != 2 {
		t.Errorf("records = %d, want 2", st.Records)
	}
}

// TestRefreshing_KeepsLastGood verifies a failing loader keeps serving its previous records.
func TestRefreshing_KeepsLastGood(t *testing.T) {
	feed := &fakeLoader{name: "feed", recs: []viewengine.Record{rec("x"), rec("y")}}
	other := &fakeLoader{name: "other", recs: []viewengine.Record{rec("z")}}
	s := NewRefreshing(feed, other)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh() error = %v", err)
	}

	boom := errors.New("connection refused")
	feed.set(nil, boom)
	other.set([]viewengine.Record{rec("z"), rec("w")}, nil)
	err := s.Refresh(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("Refresh() error = %v, want wrapped %v", err, boom)
	}
	if got := snapshotIDs(s); !equalIDs(got, []string{"x", "y", "z", "w"}) {
		t.Errorf("ids = %v, want [x y z w]", got)
	}
	if st := s.Status(); st.Failures["feed"] == "" {
		t.Errorf("status failures = %v, want feed entry", st.Failures)
	}
}

// TestRefreshing_FailureBeforeFirstLoad verifies a loader that never succeeded contributes nothing.
func TestRefreshing_FailureBeforeFirstLoad(t *testing.T) {
	feed := &fakeLoader{name: "feed", err: errors.New("timeout")}
	s := NewRefreshing(NewStatic("fixtures", []viewengine.Record{rec("a")}), feed)
	if err := s.Refresh(context.Background()); err == nil {
		t.Fatal("Refresh() error = nil, want failure")
	}
	if got := snapshotIDs(s); !equalIDs(got, []string{"a"}) {
		t.Errorf("ids = %v, want [a]", got)
	}
}

// TestRefreshing_SnapshotIsCopy verifies callers cannot mutate the served set.
func TestRefreshing_SnapshotIsCopy(t *testing.T) {
	s := NewRefreshing(NewStatic("fixtures", []viewengine.Record{rec("a"), rec("b")}))
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	snap := s.Snapshot()
	snap[0] = rec("mutated")
	if got := snapshotIDs(s); got[0] != "a" {
		t.Errorf("first = %q after caller mutation, want a", got[0])
	}
}

// TestRefreshing_ConcurrentReads verifies snapshots stay consistent while refreshing.
func TestRefreshing_ConcurrentReads(t *testing.T) {
	feed := &fakeLoader{name: "feed", recs: []viewengine.Record{rec("a"), rec("b")}}
	s := NewRefreshing(feed)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range 50 {
				if i%4 == 0 {
					s.Refresh(context.Background())
					continue
				}
				if n := len(s.Snapshot()); n != 2 {
					t.Errorf("snapshot len = %d, want 2", n)
					return
				}
			}
		}(i)
	}
	wg.Wait()

	result := viewengine.Evaluate(s, viewengine.Query{Page: &viewengine.Page{Limit: 1}})
	if result.TotalMatched != 2 || len(result.Records) != 1 {
		t.Errorf("Evaluate = %d/%d", result.TotalMatched, len(result.Records))
	}
}

// TestStatic_CancelledContext verifies Static honours cancellation.
func TestStatic_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewStatic("fixtures", nil).Load(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

// TestSchedule verifies valid specs register one job and invalid specs fail.
func TestSchedule(t *testing.T) {
	s := NewRefreshing(NewStatic("fixtures", nil))

	c, err := Schedule(context.Background(), "*/15 * * * *", time.UTC, s)
	if err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if n := len(c.Entries()); n != 1 {
		t.Errorf("entries = %d, want 1", n)
	}
	next := c.Entries()[0].Next
	if next.IsZero() || next.Minute()%15 != 0 {
		t.Errorf("next run = %v, want a quarter hour", next)
	}
	<-c.Stop().Done()

	if _, err := Schedule(context.Background(), "every tuesday", time.UTC, s); err == nil {
		t.Error("invalid spec should fail")
	}
}
