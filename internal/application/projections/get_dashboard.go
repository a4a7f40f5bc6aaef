package projections

import (
	"cmp"
	"context"
	"slices"
	"time"

	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/event"
	"volunteerhub/internal/domain/volunteer"
)

// Dashboard list sizes used when the query leaves them unset.
const (
	DefaultUpcomingLimit      = 5
	DefaultTopCategoriesLimit = 3
	DefaultTopVolunteersLimit = 5
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	Now                time.Time // upcoming events start on or after Now's calendar day in Now's zone
	UpcomingLimit      int
	TopCategoriesLimit int
	TopVolunteersLimit int
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	Events     viewengine.DataSource
	Volunteers viewengine.DataSource // optional: nil yields zero volunteer metrics
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	TotalEvents    int
	EventsByStatus []Count // lifecycle order, zero counts included
	Registered     int     // across events that are not cancelled
	Needed         int
	FillPercent    float64
	TopCategories  []Count
	Upcoming       []EventItem

	TotalVolunteers  int
	ActiveVolunteers int
	TotalHours       float64
	AverageHours     float64
	TopVolunteers    []VolunteerItem
}

// QueryGetDashboard computes the administrator dashboard metrics.
// PRE: none
// POST: FillPercent is 0 when nothing is needed; Upcoming has at most UpcomingLimit published events
// INVARIANT: sums treat missing or malformed numbers as zero
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps) (DashboardResult, error) {
	if err := checkContext(ctx); err != nil {
		return DashboardResult{}, err
	}
	if query.Now.IsZero() {
		query.Now = time.Now()
	}
	upcomingLimit := cmp.Or(query.UpcomingLimit, DefaultUpcomingLimit)
	categoriesLimit := cmp.Or(query.TopCategoriesLimit, DefaultTopCategoriesLimit)
	volunteersLimit := cmp.Or(query.TopVolunteersLimit, DefaultTopVolunteersLimit)

	events := snapshot(deps.Events)
	result := DashboardResult{TotalEvents: len(events)}

	byStatus := viewengine.CountBy(events, viewengine.GroupByField(records.FieldStatus))
	for _, s := range event.Statuses {
		result.EventsByStatus = append(result.EventsByStatus, Count{Label: s, Count: viewengine.BucketCount(byStatus, s)})
	}

	live := viewengine.Apply(events, viewengine.Query{
		Predicates: []viewengine.Predicate{viewengine.Not(viewengine.FieldEquals(records.FieldStatus, event.StatusCancelled))},
	}).Records
	registered := viewengine.SumBy(live, records.FieldVolunteersRegistered)
	needed := viewengine.SumBy(live, records.FieldVolunteersNeeded)
	result.Registered = int(registered)
	result.Needed = int(needed)
	result.FillPercent = viewengine.PercentOfTarget(registered, needed)

	categories := viewengine.CountBy(events, viewengine.GroupByField(records.FieldCategory))
	categories = slices.DeleteFunc(categories, func(b viewengine.Bucket) bool { return b.Label == "" })
	slices.SortStableFunc(categories, func(a, b viewengine.Bucket) int { return cmp.Compare(b.Count, a.Count) })
	result.TopCategories = counts(categories[:min(categoriesLimit, len(categories))])

	// Event dates are calendar days stored at midnight UTC; compare against
	// Now's local calendar day in the same form.
	y, m, d := query.Now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	upcoming := viewengine.Apply(events, viewengine.Query{
		Predicates: []viewengine.Predicate{
			viewengine.FieldEquals(records.FieldStatus, event.StatusPublished),
			viewengine.DateInRange(records.FieldDate, today, time.Time{}),
		},
		Sort: []viewengine.SortKey{
			viewengine.DateAsc(records.FieldDate),
			viewengine.Asc(records.FieldStartTime),
			viewengine.Asc(viewengine.IDField),
		},
		Page: &viewengine.Page{Limit: upcomingLimit},
	})
	result.Upcoming = make([]EventItem, 0, len(upcoming.Records))
	for _, r := range upcoming.Records {
		result.Upcoming = append(result.Upcoming, eventItem(r))
	}

	volunteers := snapshot(deps.Volunteers)
	result.TotalVolunteers = len(volunteers)
	result.ActiveVolunteers = viewengine.BucketCount(
		viewengine.CountBy(volunteers, viewengine.GroupByField(records.FieldStatus)), volunteer.StatusActive)
	result.TotalHours = viewengine.SumBy(volunteers, records.FieldHours)
	result.AverageHours = viewengine.AverageBy(volunteers, records.FieldHours)

	top := viewengine.Apply(volunteers, viewengine.Query{
		Sort: []viewengine.SortKey{viewengine.NumberDesc(records.FieldHours), viewengine.Asc(records.FieldName)},
		Page: &viewengine.Page{Limit: volunteersLimit},
	})
	for i, r := range top.Records {
		result.TopVolunteers = append(result.TopVolunteers, volunteerItem(r, i+1))
	}

	return result, nil
}
