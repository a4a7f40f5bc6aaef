package projections

import (
	"context"

	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// EventListSpec lists the search, filter and sort parameters the event list honours.
var EventListSpec = listutil.ListSpec{
	SearchFields: []string{
		records.FieldTitle,
		records.FieldDescription,
		records.FieldOrganization,
		records.FieldLocation,
		records.FieldCategory,
	},
	FilterFields: []string{records.FieldStatus, records.FieldCategory, records.FieldOrganization},
	SortColumns: []listutil.SortColumn{
		{Name: records.FieldTitle, Kind: viewengine.SortString},
		{Name: records.FieldDate, Kind: viewengine.SortDate},
		{Name: records.FieldOrganization, Kind: viewengine.SortString},
		{Name: records.FieldStatus, Kind: viewengine.SortString},
		{Name: records.FieldVolunteersRegistered, Kind: viewengine.SortNumber},
		{Name: records.FieldVolunteersNeeded, Kind: viewengine.SortNumber},
		{Name: records.FieldHours, Kind: viewengine.SortNumber},
	},
	DateField:   records.FieldDate,
	DefaultSort: []viewengine.SortKey{viewengine.DateAsc(records.FieldDate), viewengine.Asc(records.FieldStartTime)},
	TieBreak:    []viewengine.SortKey{viewengine.Asc(viewengine.IDField)},
}

// GetEventListQuery carries parsed list parameters.
type GetEventListQuery struct {
	Params listutil.ListParams
}

// GetEventListDeps holds dependencies for GetEventList.
type GetEventListDeps struct {
	Events viewengine.DataSource
}

// GetEventListResult carries one page of events plus summaries of every match.
type GetEventListResult struct {
	Events       []EventItem
	PageInfo     listutil.PageInfo
	StatusCounts []Count // over the full matched set
	Registered   int     // over the full matched set
	Needed       int
	FillPercent  float64
}

// QueryGetEventList filters, sorts and pages events.
// PRE: query.Params came from listutil.ParseListParams with EventListSpec
// POST: len(Events) <= PageInfo.PerPage; StatusCounts sum to PageInfo.Total
func QueryGetEventList(ctx context.Context, query GetEventListQuery, deps GetEventListDeps) (GetEventListResult, error) {
	if err := checkContext(ctx); err != nil {
		return GetEventListResult{}, err
	}

	q := query.Params.Query(EventListSpec)
	status := viewengine.GroupByField(records.FieldStatus)
	q.GroupBy = &status

	res, info := applyPaged(snapshot(deps.Events), q, query.Params.Page, query.Params.PerPage)

	result := GetEventListResult{
		Events:   make([]EventItem, 0, len(res.Records)),
		PageInfo: info,
	}
	for _, r := range res.Records {
		result.Events = append(result.Events, eventItem(r))
	}

	var matched []viewengine.Record
	for _, g := range res.Groups {
		result.StatusCounts = append(result.StatusCounts, Count{Label: g.Label, Count: g.Count})
		matched = append(matched, g.Records...)
	}
	registered := viewengine.SumBy(matched, records.FieldVolunteersRegistered)
	needed := viewengine.SumBy(matched, records.FieldVolunteersNeeded)
	result.Registered = int(registered)
	result.Needed = int(needed)
	result.FillPercent = viewengine.PercentOfTarget(registered, needed)

	return result, nil
}
