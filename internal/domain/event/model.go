package event

import (
	"errors"
	"time"
)

// Status constants.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []string{StatusDraft, StatusPublished, StatusCompleted, StatusCancelled}

// Max length constants.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 4000
	MaxLocationLength    = 200
)

// Attendee is a volunteer signed up for an event.
type Attendee struct {
	VolunteerID string
	Name        string
	Role        string
	CheckedIn   bool
}

// Event is a volunteering opportunity run by an organization.
// PRE: Title is non-empty. Date is set. Status is one of Statuses.
// INVARIANT: EndDate >= Date when EndDate is set.
type Event struct {
	ID                   string
	Title                string
	Description          string // markdown
	Organization         string
	Category             string
	Status               string
	Date                 time.Time
	StartTime            string    // "15:04", optional
	EndDate              time.Time // zero value means single-day event
	Location             string
	VolunteersNeeded     int
	VolunteersRegistered int
	Hours                float64 // credited hours per attendee
	Attendees            []Attendee
}

// Validate checks the event's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e *Event) Validate() error {
	if e.Title == "" {
		return errors.New("event title cannot be empty")
	}
	if len(e.Title) > MaxTitleLength {
		return errors.New("event title cannot exceed 200 characters")
	}
	if !IsValidStatus(e.Status) {
		return errors.New("event status must be draft, published, completed or cancelled")
	}
	if e.Date.IsZero() {
		return errors.New("event date is required")
	}
	if !e.EndDate.IsZero() && e.EndDate.Before(e.Date) {
		return errors.New("event end date cannot be before start date")
	}
	if e.StartTime != "" {
		if _, err := time.Parse("15:04", e.StartTime); err != nil {
			return errors.New("event start time must be HH:MM")
		}
	}
	if len(e.Description) > MaxDescriptionLength {
		return errors.New("event description cannot exceed 4000 characters")
	}
	if len(e.Location) > MaxLocationLength {
		return errors.New("event location cannot exceed 200 characters")
	}
	if e.VolunteersNeeded < 0 || e.VolunteersRegistered < 0 {
		return errors.New("volunteer counts cannot be negative")
	}
	if e.Hours < 0 {
		return errors.New("event hours cannot be negative")
	}
	return nil
}

// IsMultiDay returns true if the event spans more than one day.
// PRE: none
// POST: returns true if EndDate is set and on a different calendar day than Date
func (e *Event) IsMultiDay() bool {
	if e.EndDate.IsZero() {
		return false
	}
	return e.EndDate.After(e.Date) &&
		e.EndDate.Format(time.DateOnly) != e.Date.Format(time.DateOnly)
}

// OpenSpots returns how many volunteers are still needed, never negative.
func (e *Event) OpenSpots() int {
	return max(e.VolunteersNeeded-e.VolunteersRegistered, 0)
}

// IsValidStatus reports whether s is a known status.
func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}
