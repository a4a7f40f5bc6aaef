package listutil

import (
	"strings"

	"volunteerhub/internal/application/viewengine"
)

// SortColumn is a sortable column and how its values compare.
type SortColumn struct {
	Name string
	Kind viewengine.SortKind
}

// ListSpec describes which request parameters a list view honours.
type ListSpec struct {
	SearchFields []string             // fields the "q" term is matched against
	FilterFields []string             // exact-match filter keys, also the record field names
	SortColumns  []SortColumn         // allowed "sort" values
	DateField    string               // field checked by "from"/"to", empty disables
	DefaultSort  []viewengine.SortKey // applied when no sort is requested
	TieBreak     []viewengine.SortKey // appended after the requested sort
}

func (s ListSpec) sortColumnNames() []string {
	names := make([]string, len(s.SortColumns))
	for i, c := range s.SortColumns {
		names[i] = c.Name
	}
	return names
}

func (s ListSpec) sortColumn(name string) (SortColumn, bool) {
	for _, c := range s.SortColumns {
		if c.Name == name {
			return c, true
		}
	}
	return SortColumn{}, false
}

// Predicates builds the filter predicates for p.
// PRE: p came from ParseListParams with the same spec
// POST: an empty search and no filters yield only always-true predicates
func (p ListParams) Predicates(spec ListSpec) []viewengine.Predicate {
	preds := []viewengine.Predicate{viewengine.TextMatch(spec.SearchFields, p.Search)}
	for _, key := range spec.FilterFields {
		if v, ok := p.Filters[key]; ok {
			preds = append(preds, filterPredicate(key, v))
		}
	}
	if spec.DateField != "" && (!p.From.IsZero() || !p.To.IsZero()) {
		preds = append(preds, viewengine.DateInRange(spec.DateField, p.From, p.To))
	}
	return preds
}

// SortKeys builds the sort keys for p, falling back to spec.DefaultSort.
func (p ListParams) SortKeys(spec ListSpec) []viewengine.SortKey {
	var keys []viewengine.SortKey
	if col, ok := spec.sortColumn(p.Sort); ok {
		keys = append(keys, viewengine.SortKey{Field: col.Name, Desc: p.Dir == "desc", Kind: col.Kind})
	} else {
		keys = append(keys, spec.DefaultSort...)
	}
	return append(keys, spec.TieBreak...)
}

// Query builds the full view query for p, paged by Page/PerPage.
// PRE: p came from ParseListParams with the same spec
// POST: Page.Offset = (Page-1)*PerPage, Page.Limit = PerPage
func (p ListParams) Query(spec ListSpec) viewengine.Query {
	page := max(p.Page, 1)
	perPage := p.PerPage
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return viewengine.Query{
		Predicates: p.Predicates(spec),
		Sort:       p.SortKeys(spec),
		Page:       &viewengine.Page{Offset: (page - 1) * perPage, Limit: perPage},
	}
}

// filterPredicate matches key against v. A comma-separated v matches any
// of its values, so status=published,completed selects both.
func filterPredicate(key, v string) viewengine.Predicate {
	values := strings.Split(v, ",")
	if len(values) == 1 {
		return viewengine.FieldEquals(key, typedFilterValue(v))
	}
	alts := make([]viewengine.Predicate, 0, len(values))
	for _, s := range values {
		if s = strings.TrimSpace(s); s != "" {
			alts = append(alts, viewengine.FieldEquals(key, typedFilterValue(s)))
		}
	}
	return viewengine.Any(alts...)
}

// typedFilterValue maps boolean filter text onto bools so flags such as
// read=false compare against bool fields; everything else stays a string.
func typedFilterValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	return v
}
