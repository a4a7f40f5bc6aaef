package listutil

import (
	"net/url"
	"testing"
	"time"

	"volunteerhub/internal/application/viewengine"
)

var testSpec = ListSpec{
	SearchFields: []string{"title", "location"},
	FilterFields: []string{"status", "read"},
	SortColumns: []SortColumn{
		{Name: "title", Kind: viewengine.SortString},
		{Name: "date", Kind: viewengine.SortDate},
	},
	DateField:   "date",
	DefaultSort: []viewengine.SortKey{viewengine.DateAsc("date")},
	TieBreak:    []viewengine.SortKey{viewengine.Asc(viewengine.IDField)},
}

func testRecords() []viewengine.Record {
	return []viewengine.Record{
		viewengine.NewRecord("a", map[string]any{"title": "Beach Cleanup", "status": "published", "date": "2024-03-10", "read": false}),
		viewengine.NewRecord("b", map[string]any{"title": "Food Bank", "status": "draft", "date": "2024-02-01", "read": true}),
		viewengine.NewRecord("c", map[string]any{"title": "Park Cleanup", "status": "published", "date": "2024-02-20", "read": true}),
		viewengine.NewRecord("d", map[string]any{"title": "Library Day", "status": "published", "date": "2024-01-05", "read": false}),
	}
}

func resultIDs(res viewengine.Result) []string {
	out := make([]string, len(res.Records))
	for i, r := range res.Records {
		out[i] = r.ID
	}
	return out
}

// TestListParams_Query verifies request parameters become an equivalent view query.
func TestListParams_Query(t *testing.T) {
	tests := []struct {
		name      string
		query     url.Values
		wantIDs   []string
		wantTotal int
	}{
		{"defaultsSortByDate", url.Values{}, []string{"d", "b", "c", "a"}, 4},
		{"statusFilter", url.Values{"status": {"published"}}, []string{"d", "c", "a"}, 3},
		{"allSentinel", url.Values{"status": {"all"}}, []string{"d", "b", "c", "a"}, 4},
		{"search", url.Values{"q": {"cleanup"}}, []string{"c", "a"}, 2},
		{"sortTitleDesc", url.Values{"sort": {"title"}, "dir": {"desc"}}, []string{"c", "d", "b", "a"}, 4},
		{"dateRange", url.Values{"from": {"2024-02-01"}, "to": {"2024-02-20"}}, []string{"b", "c"}, 2},
		{"boolFilter", url.Values{"read": {"false"}}, []string{"d", "a"}, 2},
		{"multiValueFilter", url.Values{"status": {"draft, archived"}}, []string{"b"}, 1},
		{"multiValueBool", url.Values{"read": {"true,false"}}, []string{"d", "b", "c", "a"}, 4},
		{"paged", url.Values{"per_page": {"10"}, "page": {"1"}}, []string{"d", "b", "c", "a"}, 4},
		{"badDateIgnored", url.Values{"from": {"soon"}}, []string{"d", "b", "c", "a"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := ParseListParams(tt.query, testSpec)
			res := viewengine.Apply(testRecords(), params.Query(testSpec))
			got := resultIDs(res)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
			}
			for i := range got {
				if got[i] != tt.wantIDs[i] {
					t.Fatalf("ids = %v, want %v", got, tt.wantIDs)
				}
			}
			if res.TotalMatched != tt.wantTotal {
				t.Errorf("TotalMatched = %d, want %d", res.TotalMatched, tt.wantTotal)
			}
		})
	}
}

// TestListParams_QueryPage verifies page/per_page map to offset/limit.
func TestListParams_QueryPage(t *testing.T) {
	p := ListParams{PageParams: PageParams{Page: 3, PerPage: 10}}
	q := p.Query(testSpec)
	if q.Page == nil || q.Page.Offset != 20 || q.Page.Limit != 10 {
		t.Errorf("page = %+v, want offset 20 limit 10", q.Page)
	}

	zero := ListParams{}.Query(testSpec)
	if zero.Page.Offset != 0 || zero.Page.Limit != DefaultPerPage {
		t.Errorf("zero params page = %+v, want offset 0 limit %d", zero.Page, DefaultPerPage)
	}
}

// TestParseFilterParams_DateBounds verifies "to" covers the whole named day.
func TestParseFilterParams_DateBounds(t *testing.T) {
	f := ParseFilterParams(url.Values{"from": {"2024-02-01"}, "to": {"2024-02-29"}}, nil)
	if !f.From.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("From = %v", f.From)
	}
	if f.To.Day() != 29 || f.To.Hour() != 23 {
		t.Errorf("To = %v, want end of 29 Feb", f.To)
	}
}
