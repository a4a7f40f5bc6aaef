package notification

import (
	"errors"
	"time"
)

// Notification types
const (
	TypeEvent    = "event"
	TypeBadge    = "badge"
	TypeReminder = "reminder"
	TypeSystem   = "system"
)

// Priority levels
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// ValidTypes contains all valid notification types.
var ValidTypes = []string{TypeEvent, TypeBadge, TypeReminder, TypeSystem}

// ValidPriorities contains all valid priorities, lowest first.
var ValidPriorities = []string{PriorityLow, PriorityNormal, PriorityHigh}

// Domain errors
var (
	ErrEmptyTitle      = errors.New("notification title cannot be empty")
	ErrInvalidType     = errors.New("notification type must be one of: event, badge, reminder, system")
	ErrInvalidPriority = errors.New("notification priority must be one of: low, normal, high")
	ErrMissingTime     = errors.New("notification created_at is required")
)

// Notification is an entry in a user's notification center.
type Notification struct {
	ID          string
	RecipientID string
	Title       string
	Message     string
	Type        string
	Priority    string
	Read        bool
	Link        string
	CreatedAt   time.Time
}

// Validate checks the notification's invariants.
// PRE: none
// POST: returns nil if valid, the matching domain error otherwise
func (n *Notification) Validate() error {
	if n.Title == "" {
		return ErrEmptyTitle
	}
	if !contains(ValidTypes, n.Type) {
		return ErrInvalidType
	}
	if n.Priority != "" && !contains(ValidPriorities, n.Priority) {
		return ErrInvalidPriority
	}
	if n.CreatedAt.IsZero() {
		return ErrMissingTime
	}
	return nil
}

// EffectivePriority returns Priority, defaulting to normal.
func (n *Notification) EffectivePriority() string {
	if n.Priority == "" {
		return PriorityNormal
	}
	return n.Priority
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
