package viewengine

import (
	"reflect"
	"testing"
	"time"
)

// TestSortRecords_DateKindComparesInstants verifies dates sort chronologically, not lexically.
func TestSortRecords_DateKindComparesInstants(t *testing.T) {
	recs := []Record{
		NewRecord("a", map[string]any{"date": "2024-02-05T09:00:00+13:00"}), // 2024-02-04T20:00Z
		NewRecord("b", map[string]any{"date": "2024-02-04T21:00:00Z"}),
		NewRecord("c", map[string]any{"date": time.Date(2024, 2, 4, 19, 0, 0, 0, time.UTC)}),
	}
	got := ids(SortRecords(recs, DateAsc("date")))
	if want := []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DateAsc = %v, want %v", got, want)
	}
	got = ids(SortRecords(recs, DateDesc("date")))
	if want := []string{"b", "a", "c"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DateDesc = %v, want %v", got, want)
	}
}

// TestSortRecords_Stable verifies ties keep snapshot order in both directions.
func TestSortRecords_Stable(t *testing.T) {
	recs := []Record{
		NewRecord("1", map[string]any{"status": "published"}),
		NewRecord("2", map[string]any{"status": "draft"}),
		NewRecord("3", map[string]any{"status": "published"}),
		NewRecord("4", map[string]any{"status": "draft"}),
		NewRecord("5", map[string]any{"status": "published"}),
	}
	if got, want := ids(SortRecords(recs, Asc("status"))), []string{"2", "4", "1", "3", "5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Asc = %v, want %v", got, want)
	}
	if got, want := ids(SortRecords(recs, Desc("status"))), []string{"1", "3", "5", "2", "4"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Desc = %v, want %v", got, want)
	}
}

// TestSortRecords_MultiKey verifies later keys break earlier ties.
func TestSortRecords_MultiKey(t *testing.T) {
	recs := eventRecords()
	got := ids(SortRecords(recs, Asc("category"), DateDesc("date")))
	// community: e2 (2024-02-05), e5 (unparsable, last); education: e4; environment: e1 (03-10), e3 (01-20)
	if want := []string{"e2", "e5", "e4", "e1", "e3"}; !reflect.DeepEqual(got, want) {
		t.Errorf("multi-key = %v, want %v", got, want)
	}
}

// TestSortRecords_MissingValuesLast verifies uninterpretable values trail in both directions.
func TestSortRecords_MissingValuesLast(t *testing.T) {
	recs := []Record{
		NewRecord("none", nil),
		NewRecord("two", map[string]any{"n": 2}),
		NewRecord("junk", map[string]any{"n": "abc"}),
		NewRecord("one", map[string]any{"n": 1}),
	}
	if got, want := ids(SortRecords(recs, NumberAsc("n"))), []string{"one", "two", "none", "junk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NumberAsc = %v, want %v", got, want)
	}
	if got, want := ids(SortRecords(recs, NumberDesc("n"))), []string{"two", "one", "none", "junk"}; !reflect.DeepEqual(got, want) {
		t.Errorf("NumberDesc = %v, want %v", got, want)
	}
}

// TestCompareBy_AutoKinds verifies automatic comparison across value kinds.
func TestCompareBy_AutoKinds(t *testing.T) {
	cmp := CompareBy(Asc("v"))
	rec := func(v any) Record { return NewRecord("", map[string]any{"v": v}) }
	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"numbersMixedTypes", 2, 10.5, -1},
		{"numbersEqual", int64(3), 3.0, 0},
		{"stringsCaseInsensitive", "apple", "Banana", -1},
		{"stringsCaseTieBreak", "Apple", "apple", -1},
		{"bools", false, true, -1},
		{"times", time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 1},
		{"timeAgainstOffsetString", time.Date(2024, 3, 10, 2, 0, 0, 0, time.UTC), "2024-03-09T23:00:00-05:00", -1},
		{"stringAgainstTime", "2024-03-11", time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC), 1},
		{"timeAgainstUnparsable", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), "tbd", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmp(rec(tt.a), rec(tt.b)); sign(got) != tt.want {
				t.Errorf("compare(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// TestCompareBy_CustomComparator verifies SortKey.Compare overrides Kind.
func TestCompareBy_CustomComparator(t *testing.T) {
	priority := map[any]int{"high": 0, "medium": 1, "low": 2}
	key := SortKey{Field: "p", Compare: func(a, b any) int { return priority[a] - priority[b] }}
	recs := []Record{
		NewRecord("l", map[string]any{"p": "low"}),
		NewRecord("h", map[string]any{"p": "high"}),
		NewRecord("m", map[string]any{"p": "medium"}),
	}
	if got, want := ids(SortRecords(recs, key)), []string{"h", "m", "l"}; !reflect.DeepEqual(got, want) {
		t.Errorf("custom = %v, want %v", got, want)
	}
}

// TestSortRecords_NoKeysCopies verifies sorting without keys returns an equal copy.
func TestSortRecords_NoKeysCopies(t *testing.T) {
	recs := eventRecords()
	out := SortRecords(recs)
	if !reflect.DeepEqual(ids(out), ids(recs)) {
		t.Errorf("order changed: %v", ids(out))
	}
	out[0] = NewRecord("x", nil)
	if recs[0].ID != "e1" {
		t.Error("SortRecords aliased its input")
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
