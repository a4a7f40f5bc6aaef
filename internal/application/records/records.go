// Package records maps domain entities onto viewengine records and names
// the fields every view reads.
package records

import (
	"strings"

	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/badge"
	"volunteerhub/internal/domain/event"
	"volunteerhub/internal/domain/notification"
	"volunteerhub/internal/domain/volunteer"
)

// Event fields.
const (
	FieldTitle                = "title"
	FieldDescription          = "description"
	FieldOrganization         = "organization"
	FieldCategory             = "category"
	FieldStatus               = "status"
	FieldDate                 = "date"
	FieldStartTime            = "start_time"
	FieldEndDate              = "end_date"
	FieldLocation             = "location"
	FieldVolunteersNeeded     = "volunteers_needed"
	FieldVolunteersRegistered = "volunteers_registered"
	FieldHours                = "hours"
	FieldAttendees            = "attendees"
	FieldSource               = "source"
)

// Attendee fields.
const (
	FieldVolunteerID = "volunteer_id"
	FieldName        = "name"
	FieldRole        = "role"
	FieldCheckedIn   = "checked_in"
)

// Volunteer fields (FieldName, FieldOrganization, FieldStatus, FieldHours shared).
const (
	FieldEmail          = "email"
	FieldEventsAttended = "events_attended"
	FieldSkills         = "skills"
	FieldJoinedAt       = "joined_at"
)

// Badge fields (FieldName, FieldDescription, FieldCategory, FieldVolunteerID shared).
const (
	FieldTier       = "tier"
	FieldEndorsedBy = "endorsed_by"
	FieldProgress   = "progress"
	FieldTarget     = "target"
	FieldEarned     = "earned"
	FieldEarnedAt   = "earned_at"
)

// Notification fields (FieldTitle shared).
const (
	FieldRecipientID = "recipient_id"
	FieldMessage     = "message"
	FieldType        = "type"
	FieldPriority    = "priority"
	FieldRead        = "read"
	FieldLink        = "link"
	FieldCreatedAt   = "created_at"
)

// Event converts an event. A zero EndDate is left out so date predicates fail closed.
func Event(e event.Event) viewengine.Record {
	fields := map[string]any{
		FieldTitle:                e.Title,
		FieldDescription:          e.Description,
		FieldOrganization:         e.Organization,
		FieldCategory:             e.Category,
		FieldStatus:               e.Status,
		FieldDate:                 e.Date,
		FieldLocation:             e.Location,
		FieldVolunteersNeeded:     e.VolunteersNeeded,
		FieldVolunteersRegistered: e.VolunteersRegistered,
		FieldHours:                e.Hours,
	}
	if e.StartTime != "" {
		fields[FieldStartTime] = e.StartTime
	}
	if !e.EndDate.IsZero() {
		fields[FieldEndDate] = e.EndDate
	}
	if len(e.Attendees) > 0 {
		attendees := make([]viewengine.Record, len(e.Attendees))
		for i, a := range e.Attendees {
			attendees[i] = viewengine.NewRecord(a.VolunteerID, map[string]any{
				FieldVolunteerID: a.VolunteerID,
				FieldName:        a.Name,
				FieldRole:        a.Role,
				FieldCheckedIn:   a.CheckedIn,
			})
		}
		fields[FieldAttendees] = attendees
	}
	return viewengine.NewRecord(e.ID, fields)
}

// Volunteer converts a volunteer. Skills are joined so text search covers them.
func Volunteer(v volunteer.Volunteer) viewengine.Record {
	fields := map[string]any{
		FieldName:           v.Name,
		FieldEmail:          v.Email,
		FieldOrganization:   v.Organization,
		FieldStatus:         v.Status,
		FieldHours:          v.Hours,
		FieldEventsAttended: v.EventsAttended,
		FieldSkills:         strings.Join(v.Skills, ", "),
	}
	if !v.JoinedAt.IsZero() {
		fields[FieldJoinedAt] = v.JoinedAt
	}
	return viewengine.NewRecord(v.ID, fields)
}

// Badge converts a badge; FieldEarned mirrors IsEarned.
func Badge(b badge.Badge) viewengine.Record {
	fields := map[string]any{
		FieldName:        b.Name,
		FieldDescription: b.Description,
		FieldCategory:    b.Category,
		FieldTier:        b.Tier,
		FieldVolunteerID: b.VolunteerID,
		FieldEndorsedBy:  b.EndorsedBy,
		FieldProgress:    b.Progress,
		FieldTarget:      b.Target,
		FieldEarned:      b.IsEarned(),
	}
	if b.IsEarned() {
		fields[FieldEarnedAt] = b.EarnedAt
	}
	return viewengine.NewRecord(b.ID, fields)
}

// Notification converts a notification with its effective priority.
func Notification(n notification.Notification) viewengine.Record {
	return viewengine.NewRecord(n.ID, map[string]any{
		FieldRecipientID: n.RecipientID,
		FieldTitle:       n.Title,
		FieldMessage:     n.Message,
		FieldType:        n.Type,
		FieldPriority:    n.EffectivePriority(),
		FieldRead:        n.Read,
		FieldLink:        n.Link,
		FieldCreatedAt:   n.CreatedAt,
	})
}

// Events converts a slice of events.
func Events(es []event.Event) []viewengine.Record {
	return mapAll(es, Event)
}

// Volunteers converts a slice of volunteers.
func Volunteers(vs []volunteer.Volunteer) []viewengine.Record {
	return mapAll(vs, Volunteer)
}

// Badges converts a slice of badges.
func Badges(bs []badge.Badge) []viewengine.Record {
	return mapAll(bs, Badge)
}

// Notifications converts a slice of notifications.
func Notifications(ns []notification.Notification) []viewengine.Record {
	return mapAll(ns, Notification)
}

func mapAll[T any](in []T, fn func(T) viewengine.Record) []viewengine.Record {
	out := make([]viewengine.Record, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
