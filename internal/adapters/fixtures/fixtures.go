// Package fixtures loads volunteer-platform data from YAML files.
// The demo set is embedded so the server and CLI work with no configuration.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/badge"
	"volunteerhub/internal/domain/event"
	"volunteerhub/internal/domain/notification"
	"volunteerhub/internal/domain/volunteer"
)

//go:embed demo.yaml
var demoYAML []byte

// SourceName tags records loaded from fixtures.
const SourceName = "fixtures"

// Set is a validated collection of every entity kind.
type Set struct {
	Events        []event.Event
	Volunteers    []volunteer.Volunteer
	Badges        []badge.Badge
	Notifications []notification.Notification
}

// EventRecords returns the events as records tagged with SourceName.
func (s Set) EventRecords() []viewengine.Record {
	out := records.Events(s.Events)
	for i, r := range out {
		fields := r.Fields()
		fields[records.FieldSource] = SourceName
		out[i] = viewengine.NewRecord(r.ID, fields)
	}
	return out
}

// VolunteerRecords returns the volunteers as records.
func (s Set) VolunteerRecords() []viewengine.Record { return records.Volunteers(s.Volunteers) }

// BadgeRecords returns the badges as records.
func (s Set) BadgeRecords() []viewengine.Record { return records.Badges(s.Badges) }

// NotificationRecords returns the notifications as records.
func (s Set) NotificationRecords() []viewengine.Record {
	return records.Notifications(s.Notifications)
}

// Default returns the embedded demo set.
func Default() (Set, error) {
	set, err := Parse(demoYAML)
	if err != nil {
		return Set{}, fmt.Errorf("embedded fixtures: %w", err)
	}
	return set, nil
}

// Load reads a fixture file. An empty path returns the embedded demo set.
// PRE: path is empty or names a readable YAML file
// POST: every returned entity passed Validate
func Load(path string) (Set, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read fixtures: %w", err)
	}
	set, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes and validates a fixture document. Entities without an id get a random one.
// PRE: none
// POST: returns the first decode, date or validation error encountered
func Parse(data []byte) (Set, error) {
	var doc fileDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Set{}, fmt.Errorf("decode yaml: %w", err)
	}

	var set Set
	for i, y := range doc.Events {
		e, err := y.toDomain()
		if err != nil {
			return Set{}, fmt.Errorf("event %d: %w", i, err)
		}
		set.Events = append(set.Events, e)
	}
	for i, y := range doc.Volunteers {
		v, err := y.toDomain()
		if err != nil {
			return Set{}, fmt.Errorf("volunteer %d: %w", i, err)
		}
		set.Volunteers = append(set.Volunteers, v)
	}
	for i, y := range doc.Badges {
		b, err := y.toDomain()
		if err != nil {
			return Set{}, fmt.Errorf("badge %d: %w", i, err)
		}
		set.Badges = append(set.Badges, b)
	}
	for i, y := range doc.Notifications {
		n, err := y.toDomain()
		if err != nil {
			return Set{}, fmt.Errorf("notification %d: %w", i, err)
		}
		set.Notifications = append(set.Notifications, n)
	}
	return set, nil
}

type fileDoc struct {
	Events        []eventYAML        `yaml:"events"`
	Volunteers    []volunteerYAML    `yaml:"volunteers"`
	Badges        []badgeYAML        `yaml:"badges"`
	Notifications []notificationYAML `yaml:"notifications"`
}

type attendeeYAML struct {
	VolunteerID string `yaml:"volunteer_id"`
	Name        string `yaml:"name"`
	Role        string `yaml:"role"`
	CheckedIn   bool   `yaml:"checked_in"`
}

type eventYAML struct {
	ID                   string         `yaml:"id"`
	Title                string         `yaml:"title"`
	Description          string         `yaml:"description"`
	Organization         string         `yaml:"organization"`
	Category             string         `yaml:"category"`
	Status               string         `yaml:"status"`
	Date                 string         `yaml:"date"`
	StartTime            string         `yaml:"start_time"`
	EndDate              string         `yaml:"end_date"`
	Location             string         `yaml:"location"`
	VolunteersNeeded     int            `yaml:"volunteers_needed"`
	VolunteersRegistered int            `yaml:"volunteers_registered"`
	Hours                float64        `yaml:"hours"`
	Attendees            []attendeeYAML `yaml:"attendees"`
}

func (y eventYAML) toDomain() (event.Event, error) {
	date, err := parseDate("date", y.Date)
	if err != nil {
		return event.Event{}, err
	}
	end, err := parseDate("end_date", y.EndDate)
	if err != nil {
		return event.Event{}, err
	}
	e := event.Event{
		ID:                   orNewID(y.ID),
		Title:                y.Title,
		Description:          strings.TrimSpace(y.Description),
		Organization:         y.Organization,
		Category:             y.Category,
		Status:               y.Status,
		Date:                 date,
		StartTime:            y.StartTime,
		EndDate:              end,
		Location:             y.Location,
		VolunteersNeeded:     y.VolunteersNeeded,
		VolunteersRegistered: y.VolunteersRegistered,
		Hours:                y.Hours,
	}
	for _, a := range y.Attendees {
		e.Attendees = append(e.Attendees, event.Attendee(a))
	}
	if err := e.Validate(); err != nil {
		return event.Event{}, fmt.Errorf("%s: %w", e.ID, err)
	}
	return e, nil
}

type volunteerYAML struct {
	ID             string   `yaml:"id"`
	Name           string   `yaml:"name"`
	Email          string   `yaml:"email"`
	Organization   string   `yaml:"organization"`
	Status         string   `yaml:"status"`
	Hours          float64  `yaml:"hours"`
	EventsAttended int      `yaml:"events_attended"`
	Skills         []string `yaml:"skills"`
	JoinedAt       string   `yaml:"joined_at"`
}

func (y volunteerYAML) toDomain() (volunteer.Volunteer, error) {
	joined, err := parseDate("joined_at", y.JoinedAt)
	if err != nil {
		return volunteer.Volunteer{}, err
	}
	v := volunteer.Volunteer{
		ID:             orNewID(y.ID),
		Name:           y.Name,
		Email:          y.Email,
		Organization:   y.Organization,
		Status:         y.Status,
		Hours:          y.Hours,
		EventsAttended: y.EventsAttended,
		Skills:         y.Skills,
		JoinedAt:       joined,
	}
	if err := v.Validate(); err != nil {
		return volunteer.Volunteer{}, fmt.Errorf("%s: %w", v.ID, err)
	}
	return v, nil
}

type badgeYAML struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Category    string  `yaml:"category"`
	Tier        string  `yaml:"tier"`
	VolunteerID string  `yaml:"volunteer_id"`
	EndorsedBy  string  `yaml:"endorsed_by"`
	Progress    float64 `yaml:"progress"`
	Target      float64 `yaml:"target"`
	EarnedAt    string  `yaml:"earned_at"`
}

func (y badgeYAML) toDomain() (badge.Badge, error) {
	earned, err := parseDate("earned_at", y.EarnedAt)
	if err != nil {
		return badge.Badge{}, err
	}
	b := badge.Badge{
		ID:          orNewID(y.ID),
		Name:        y.Name,
		Description: y.Description,
		Category:    y.Category,
		Tier:        y.Tier,
		VolunteerID: y.VolunteerID,
		EndorsedBy:  y.EndorsedBy,
		Progress:    y.Progress,
		Target:      y.Target,
		EarnedAt:    earned,
	}
	if err := b.Validate(); err != nil {
		return badge.Badge{}, fmt.Errorf("%s: %w", b.ID, err)
	}
	return b, nil
}

type notificationYAML struct {
	ID          string `yaml:"id"`
	RecipientID string `yaml:"recipient_id"`
	Title       string `yaml:"title"`
	Message     string `yaml:"message"`
	Type        string `yaml:"type"`
	Priority    string `yaml:"priority"`
	Read        bool   `yaml:"read"`
	Link        string `yaml:"link"`
	CreatedAt   string `yaml:"created_at"`
}

func (y notificationYAML) toDomain() (notification.Notification, error) {
	created, err := parseDate("created_at", y.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	n := notification.Notification{
		ID:          orNewID(y.ID),
		RecipientID: y.RecipientID,
		Title:       y.Title,
		Message:     y.Message,
		Type:        y.Type,
		Priority:    y.Priority,
		Read:        y.Read,
		Link:        y.Link,
		CreatedAt:   created,
	}
	if err := n.Validate(); err != nil {
		return notification.Notification{}, fmt.Errorf("%s: %w", n.ID, err)
	}
	return n, nil
}

// parseDate accepts "2006-01-02" or RFC 3339. Empty yields the zero time.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: want YYYY-MM-DD or RFC 3339", field, s)
	}
	return t, nil
}

func orNewID(id string) string {
	if id = strings.TrimSpace(id); id != "" {
		return id
	}
	return uuid.New().String()
}
