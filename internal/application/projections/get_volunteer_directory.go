package projections

import (
	"context"

	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// VolunteerListSpec lists the parameters the volunteer directory honours.
var VolunteerListSpec = listutil.ListSpec{
	SearchFields: []string{records.FieldName, records.FieldEmail, records.FieldOrganization, records.FieldSkills},
	FilterFields: []string{records.FieldStatus, records.FieldOrganization},
	SortColumns: []listutil.SortColumn{
		{Name: records.FieldName, Kind: viewengine.SortString},
		{Name: records.FieldHours, Kind: viewengine.SortNumber},
		{Name: records.FieldEventsAttended, Kind: viewengine.SortNumber},
		{Name: records.FieldJoinedAt, Kind: viewengine.SortDate},
		{Name: records.FieldOrganization, Kind: viewengine.SortString},
	},
	DateField:   records.FieldJoinedAt,
	DefaultSort: []viewengine.SortKey{viewengine.NumberDesc(records.FieldHours)},
	TieBreak:    []viewengine.SortKey{viewengine.Asc(records.FieldName), viewengine.Asc(viewengine.IDField)},
}

// GetVolunteerDirectoryQuery carries parsed list parameters.
type GetVolunteerDirectoryQuery struct {
	Params listutil.ListParams
}

// GetVolunteerDirectoryDeps holds dependencies for GetVolunteerDirectory.
type GetVolunteerDirectoryDeps struct {
	Volunteers viewengine.DataSource
}

// GetVolunteerDirectoryResult carries one page of volunteers.
type GetVolunteerDirectoryResult struct {
	Volunteers   []VolunteerItem // Rank is the 1-based position in the full ordering
	PageInfo     listutil.PageInfo
	StatusCounts []Count
	TotalHours   float64 // over the full matched set
	AverageHours float64
}

// QueryGetVolunteerDirectory lists volunteers, ranked by hours unless another sort is requested.
// PRE: query.Params came from listutil.ParseListParams with VolunteerListSpec
// POST: ranks are contiguous across pages
func QueryGetVolunteerDirectory(ctx context.Context, query GetVolunteerDirectoryQuery, deps GetVolunteerDirectoryDeps) (GetVolunteerDirectoryResult, error) {
	if err := checkContext(ctx); err != nil {
		return GetVolunteerDirectoryResult{}, err
	}

	q := query.Params.Query(VolunteerListSpec)
	status := viewengine.GroupByField(records.FieldStatus)
	q.GroupBy = &status
	res, info := applyPaged(snapshot(deps.Volunteers), q, query.Params.Page, query.Params.PerPage)

	result := GetVolunteerDirectoryResult{
		Volunteers: make([]VolunteerItem, 0, len(res.Records)),
		PageInfo:   info,
	}
	for i, r := range res.Records {
		result.Volunteers = append(result.Volunteers, volunteerItem(r, res.Offset+i+1))
	}
	var matched []viewengine.Record
	for _, g := range res.Groups {
		result.StatusCounts = append(result.StatusCounts, Count{Label: g.Label, Count: g.Count})
		matched = append(matched, g.Records...)
	}
	result.TotalHours = viewengine.SumBy(matched, records.FieldHours)
	result.AverageHours = viewengine.AverageBy(matched, records.FieldHours)
	return result, nil
}
