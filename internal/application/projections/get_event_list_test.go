package projections

import (
	"context"
	"math"
	"net/url"
	"testing"

	"volunteerhub/internal/application/listutil"
)

func eventIDs(items []EventItem) []string {
	out := make([]string, len(items))
	for i, e := range items {
		out[i] = e.ID
	}
	return out
}

func sameIDs(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// TestQueryGetEventList_Filters verifies parameter parsing through to the returned page.
func TestQueryGetEventList_Filters(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
		want  []string
	}{
		{"all by date", url.Values{}, []string{"e4", "e5", "e2", "e3", "e6", "e1"}},
		{"published", url.Values{"status": {"published"}}, []string{"e2", "e6", "e1"}},
		{"status all sentinel", url.Values{"status": {"all"}, "category": {"community"}}, []string{"e5", "e2"}},
		{"search", url.Values{"q": {"  PLANTING "}}, []string{"e3"}},
		{"organization search", url.Values{"q": {"pantry"}}, []string{"e5", "e2"}},
		{"date range", url.Values{"from": {"2024-02-05"}, "to": {"2024-02-28"}}, []string{"e5", "e2", "e3", "e6"}},
		{"registered desc", url.Values{"sort": {"volunteers_registered"}, "dir": {"desc"}}, []string{"e1", "e4", "e2", "e6", "e5", "e3"}},
		{"no match", url.Values{"q": {"knitting"}}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := listutil.ParseListParams(tt.query, EventListSpec)
			res, err := QueryGetEventList(context.Background(), GetEventListQuery{Params: params}, GetEventListDeps{Events: testEventSource()})
			if err != nil {
				t.Fatalf("QueryGetEventList() error = %v", err)
			}
			if got := eventIDs(res.Events); !sameIDs(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			if res.PageInfo.Total != len(tt.want) {
				t.Errorf("Total = %d, want %d", res.PageInfo.Total, len(tt.want))
			}
		})
	}
}

// TestQueryGetEventList_Summary verifies counts and fill cover the matched set.
func TestQueryGetEventList_Summary(t *testing.T) {
	params := listutil.ParseListParams(url.Values{"status": {"published"}}, EventListSpec)
	res, err := QueryGetEventList(context.Background(), GetEventListQuery{Params: params}, GetEventListDeps{Events: testEventSource()})
	if err != nil {
		t.Fatalf("QueryGetEventList() error = %v", err)
	}
	if countOf(res.StatusCounts, "published") != 3 || len(res.StatusCounts) != 1 {
		t.Errorf("StatusCounts = %+v, want published:3 only", res.StatusCounts)
	}
	if res.Registered != 56 || res.Needed != 70 {
		t.Errorf("registered/needed = %d/%d, want 56/70", res.Registered, res.Needed)
	}
	if res.FillPercent != 80 {
		t.Errorf("FillPercent = %v, want 80", res.FillPercent)
	}
}

// TestQueryGetEventList_Items verifies derived per-event values.
func TestQueryGetEventList_Items(t *testing.T) {
	params := listutil.ParseListParams(url.Values{}, EventListSpec)
	res, err := QueryGetEventList(context.Background(), GetEventListQuery{Params: params}, GetEventListDeps{Events: testEventSource()})
	if err != nil {
		t.Fatalf("QueryGetEventList() error = %v", err)
	}
	byID := make(map[string]EventItem)
	for _, e := range res.Events {
		byID[e.ID] = e
	}

	beach := byID["e1"]
	if beach.FillPercent != 84 || beach.OpenSpots != 8 {
		t.Errorf("e1 fill/open = %v/%d, want 84/8", beach.FillPercent, beach.OpenSpots)
	}
	if beach.AttendeeCount != 2 || beach.CheckedInCount != 1 {
		t.Errorf("e1 attendees = %d/%d, want 2/1", beach.AttendeeCount, beach.CheckedInCount)
	}
	if beach.Date != "2024-03-10" || beach.EndDate != "" {
		t.Errorf("e1 dates = %q/%q", beach.Date, beach.EndDate)
	}

	over := byID["e4"]
	if over.FillPercent != 150 || over.OpenSpots != 0 {
		t.Errorf("e4 fill/open = %v/%d, want 150/0", over.FillPercent, over.OpenSpots)
	}
	if byID["e3"].FillPercent != 0 {
		t.Errorf("e3 fill = %v, want 0", byID["e3"].FillPercent)
	}
	if byID["e6"].EndDate != "2024-03-01" {
		t.Errorf("e6 end = %q", byID["e6"].EndDate)
	}
	if math.IsNaN(res.FillPercent) {
		t.Error("FillPercent is NaN")
	}
}

// TestQueryGetEventList_Paging verifies page slicing and clamping past the end.
func TestQueryGetEventList_Paging(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		want     []string
		wantPage int
	}{
		{"first", 1, []string{"e4", "e5", "e2", "e3"}, 1},
		{"second", 2, []string{"e6", "e1"}, 2},
		{"past end clamps", 9, []string{"e6", "e1"}, 2},
		{"zero is first", 0, []string{"e4", "e5", "e2", "e3"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := listutil.ListParams{PageParams: listutil.PageParams{Page: tt.page, PerPage: 4}}
			res, err := QueryGetEventList(context.Background(), GetEventListQuery{Params: params}, GetEventListDeps{Events: testEventSource()})
			if err != nil {
				t.Fatalf("QueryGetEventList() error = %v", err)
			}
			if got := eventIDs(res.Events); !sameIDs(got, tt.want) {
				t.Errorf("ids = %v, want %v", got, tt.want)
			}
			if res.PageInfo.Page != tt.wantPage || res.PageInfo.TotalPages != 2 || res.PageInfo.Total != 6 {
				t.Errorf("PageInfo = %+v", res.PageInfo)
			}
		})
	}
}

// TestQueryGetEventList_NilSourceAndCancelledContext verifies the empty and cancelled paths.
func TestQueryGetEventList_NilSourceAndCancelledContext(t *testing.T) {
	res, err := QueryGetEventList(context.Background(), GetEventListQuery{}, GetEventListDeps{})
	if err != nil {
		t.Fatalf("nil source error = %v", err)
	}
	if len(res.Events) != 0 || res.PageInfo.Total != 0 || res.FillPercent != 0 {
		t.Errorf("nil source result = %+v", res)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := QueryGetEventList(ctx, GetEventListQuery{}, GetEventListDeps{Events: testEventSource()}); err == nil {
		t.Error("cancelled context should return an error")
	}
}
