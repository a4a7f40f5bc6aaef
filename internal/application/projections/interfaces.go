package projections

import (
	"context"
	"time"

	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// EventItem is the render-ready form of one event record.
type EventItem struct {
	ID                   string
	Title                string
	Description          string
	Organization         string
	Category             string
	Status               string
	Date                 string // YYYY-MM-DD, empty when unparsable
	StartTime            string
	EndDate              string
	Location             string
	VolunteersNeeded     int
	VolunteersRegistered int
	OpenSpots            int
	FillPercent          float64
	Hours                float64
	AttendeeCount        int
	CheckedInCount       int
	Source               string
}

// VolunteerItem is the render-ready form of one volunteer record.
type VolunteerItem struct {
	Rank           int
	ID             string
	Name           string
	Email          string
	Organization   string
	Status         string
	Hours          float64
	EventsAttended int
	Skills         string
	JoinedAt       string
}

// BadgeItem is the render-ready form of one badge record.
type BadgeItem struct {
	ID              string
	Name            string
	Description     string
	Category        string
	Tier            string
	VolunteerID     string
	EndorsedBy      string
	Progress        float64
	Target          float64
	ProgressPercent float64
	Earned          bool
	EarnedAt        string
}

// NotificationItem is the render-ready form of one notification record.
type NotificationItem struct {
	ID        string
	Title     string
	Message   string
	Type      string
	Priority  string
	Read      bool
	Link      string
	CreatedAt string
}

// Count is a label with its record count, used for filter tabs and chips.
type Count struct {
	Label string
	Count int
}

// eventItem builds an EventItem; numeric fields that are missing or
// malformed read as zero.
func eventItem(r viewengine.Record) EventItem {
	needed := number(r, records.FieldVolunteersNeeded)
	registered := number(r, records.FieldVolunteersRegistered)
	attendees := r.Children(records.FieldAttendees)
	checkedIn := 0
	for _, a := range attendees {
		if v, _ := a.Get(records.FieldCheckedIn); v == true {
			checkedIn++
		}
	}
	return EventItem{
		ID:                   r.ID,
		Title:                r.String(records.FieldTitle),
		Description:          r.String(records.FieldDescription),
		Organization:         r.String(records.FieldOrganization),
		Category:             r.String(records.FieldCategory),
		Status:               r.String(records.FieldStatus),
		Date:                 day(r, records.FieldDate),
		StartTime:            r.String(records.FieldStartTime),
		EndDate:              day(r, records.FieldEndDate),
		Location:             r.String(records.FieldLocation),
		VolunteersNeeded:     int(needed),
		VolunteersRegistered: int(registered),
		OpenSpots:            max(int(needed)-int(registered), 0),
		FillPercent:          viewengine.PercentOfTarget(registered, needed),
		Hours:                number(r, records.FieldHours),
		AttendeeCount:        len(attendees),
		CheckedInCount:       checkedIn,
		Source:               r.String(records.FieldSource),
	}
}

func volunteerItem(r viewengine.Record, rank int) VolunteerItem {
	return VolunteerItem{
		Rank:           rank,
		ID:             r.ID,
		Name:           r.String(records.FieldName),
		Email:          r.String(records.FieldEmail),
		Organization:   r.String(records.FieldOrganization),
		Status:         r.String(records.FieldStatus),
		Hours:          number(r, records.FieldHours),
		EventsAttended: int(number(r, records.FieldEventsAttended)),
		Skills:         r.String(records.FieldSkills),
		JoinedAt:       day(r, records.FieldJoinedAt),
	}
}

func badgeItem(r viewengine.Record) BadgeItem {
	progress := number(r, records.FieldProgress)
	target := number(r, records.FieldTarget)
	earned, _ := r.Get(records.FieldEarned)
	return BadgeItem{
		ID:              r.ID,
		Name:            r.String(records.FieldName),
		Description:     r.String(records.FieldDescription),
		Category:        r.String(records.FieldCategory),
		Tier:            r.String(records.FieldTier),
		VolunteerID:     r.String(records.FieldVolunteerID),
		EndorsedBy:      r.String(records.FieldEndorsedBy),
		Progress:        progress,
		Target:          target,
		ProgressPercent: viewengine.PercentOfTarget(progress, target),
		Earned:          earned == true,
		EarnedAt:        day(r, records.FieldEarnedAt),
	}
}

func notificationItem(r viewengine.Record) NotificationItem {
	read, _ := r.Get(records.FieldRead)
	created := ""
	if t, ok := r.Time(records.FieldCreatedAt); ok {
		created = t.Format(time.RFC3339)
	}
	return NotificationItem{
		ID:        r.ID,
		Title:     r.String(records.FieldTitle),
		Message:   r.String(records.FieldMessage),
		Type:      r.String(records.FieldType),
		Priority:  r.String(records.FieldPriority),
		Read:      read == true,
		Link:      r.String(records.FieldLink),
		CreatedAt: created,
	}
}

func number(r viewengine.Record, field string) float64 {
	n, _ := r.Number(field)
	return n
}

func day(r viewengine.Record, field string) string {
	if t, ok := r.Time(field); ok {
		return t.Format(time.DateOnly)
	}
	return ""
}

func counts(buckets []viewengine.Bucket) []Count {
	out := make([]Count, len(buckets))
	for i, b := range buckets {
		out[i] = Count{Label: b.Label, Count: b.Count}
	}
	return out
}

func snapshot(src viewengine.DataSource) []viewengine.Record {
	if src == nil {
		return nil
	}
	return src.Snapshot()
}

// applyPaged evaluates q and clamps the requested page to the last one that
// exists, re-slicing when the request ran past the end.
// PRE: q.Page was built from page/perPage
// POST: info.Page is within [1, info.TotalPages]
func applyPaged(snap []viewengine.Record, q viewengine.Query, page, perPage int) (viewengine.Result, listutil.PageInfo) {
	res := viewengine.Apply(snap, q)
	info := listutil.NewPageInfo(page, perPage, res.TotalMatched)
	if q.Page == nil || q.Page.Offset != info.Offset() {
		q.Page = &viewengine.Page{Offset: info.Offset(), Limit: info.PerPage}
		res = viewengine.Apply(snap, q)
	}
	return res, info
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
