package viewengine

import "slices"

// DataSource supplies the current record snapshot.
// Implementations return an already-materialized, ordered collection;
// any fetching happens before Snapshot is called.
type DataSource interface {
	Snapshot() []Record
}

// SourceFunc adapts a function to DataSource.
type SourceFunc func() []Record

// Snapshot calls f.
func (f SourceFunc) Snapshot() []Record {
	if f == nil {
		return nil
	}
	return f()
}

// StaticSource serves a fixed in-memory collection.
type StaticSource struct {
	records []Record
}

// NewStaticSource wraps a copy of records.
// PRE: none
// POST: later changes to the caller's slice are not observed
func NewStaticSource(records ...Record) *StaticSource {
	return &StaticSource{records: slices.Clone(records)}
}

// Snapshot returns a copy of the wrapped records in their original order.
func (s *StaticSource) Snapshot() []Record {
	if s == nil {
		return nil
	}
	return slices.Clone(s.records)
}

