// Package viewengine derives render-ready views (filtered, sorted, paged,
// grouped) from in-memory record collections.
//
// Every operation is pure and total: malformed field values degrade to
// "no match", zero, or omission instead of returning errors.
package viewengine

// Page selects the window [Offset, Offset+Limit) of the matched records.
// A non-positive Limit means "all remaining records".
type Page struct {
	Offset int
	Limit  int
}

// Query is one declarative view request. Zero value returns the snapshot as-is.
type Query struct {
	Predicates []Predicate
	Sort       []SortKey
	GroupBy    *GroupKey
	Page       *Page
}

// Result is the evaluated view.
// INVARIANT: TotalMatched >= len(Records)
// INVARIANT: len(Records) <= Limit when Limit > 0
type Result struct {
	Records      []Record
	TotalMatched int
	Offset       int // normalized offset actually applied
	Limit        int // normalized limit, 0 when unpaged
	Groups       []Group
}

// Evaluate applies q to the current snapshot of src.
// Order: filter (conjunctive, short-circuit), stable sort, count, page,
// then groups over the full filtered set.
// PRE: none; a nil src is an empty collection
// POST: same src snapshot and q always yield a value-equal Result
func Evaluate(src DataSource, q Query) Result {
	var snapshot []Record
	if src != nil {
		snapshot = src.Snapshot()
	}
	return Apply(snapshot, q)
}

// Apply evaluates q against an already-materialized snapshot.
// PRE: none
// POST: snapshot is not modified
func Apply(snapshot []Record, q Query) Result {
	matched := make([]Record, 0, len(snapshot))
	for _, r := range snapshot {
		if matchAll(q.Predicates, r) {
			matched = append(matched, r)
		}
	}

	if len(q.Sort) > 0 {
		matched = SortRecords(matched, q.Sort...)
	}

	res := Result{TotalMatched: len(matched)}
	res.Records, res.Offset, res.Limit = paginate(matched, q.Page)

	if q.GroupBy != nil {
		res.Groups = GroupBy(matched, *q.GroupBy)
	}
	return res
}

// paginate slices records per p, clamping offset into [0, len] and treating
// a non-positive limit as unbounded.
func paginate(records []Record, p *Page) ([]Record, int, int) {
	if p == nil {
		return records, 0, 0
	}
	offset := min(max(p.Offset, 0), len(records))
	limit := max(p.Limit, 0)
	end := len(records)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	out := make([]Record, end-offset)
	copy(out, records[offset:end])
	return out, offset, limit
}

