package volunteer

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 100
)

// Business rule constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusPending  = "pending"
)

// Volunteer is a person who signs up for events.
type Volunteer struct {
	ID             string
	Name           string
	Email          string
	Organization   string
	Status         string
	Hours          float64
	EventsAttended int
	Skills         []string
	JoinedAt       time.Time
}

// Validate checks if the Volunteer has valid data.
// PRE: Volunteer struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Email must contain '@', Name must not be empty
func (v *Volunteer) Validate() error {
	if strings.TrimSpace(v.Name) == "" {
		return errors.New("volunteer name cannot be empty")
	}
	if len(v.Name) > MaxNameLength {
		return errors.New("volunteer name cannot exceed 100 characters")
	}
	if !strings.Contains(v.Email, "@") {
		return errors.New("volunteer email must be valid")
	}
	if v.Status != StatusActive && v.Status != StatusInactive && v.Status != StatusPending {
		return errors.New("status must be 'active', 'inactive', or 'pending'")
	}
	if v.Hours < 0 {
		return errors.New("volunteer hours cannot be negative")
	}
	return nil
}

// IsActive returns true if the volunteer is currently active.
// INVARIANT: Status field is not mutated
func (v *Volunteer) IsActive() bool {
	return v.Status == StatusActive
}

// SumHours totals the hours of the given volunteers.
func SumHours(vs []Volunteer) float64 {
	var total float64
	for _, v := range vs {
		total += v.Hours
	}
	return total
}
