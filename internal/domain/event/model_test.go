package event

import (
	"strings"
	"testing"
	"time"
)

// TestEvent_Validate tests Event validation rules.
func TestEvent_Validate(t *testing.T) {
	valid := Event{
		ID:               "e1",
		Title:            "Beach Cleanup",
		Status:           StatusPublished,
		Date:             time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:        "09:00",
		VolunteersNeeded: 20,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid event, got: %v", err)
	}

	tests := []struct {
		name    string
		modify  func(e *Event)
		wantErr string
	}{
		{"empty title", func(e *Event) { e.Title = "" }, "title cannot be empty"},
		{"title too long", func(e *Event) { e.Title = strings.Repeat("x", MaxTitleLength+1) }, "title cannot exceed"},
		{"invalid status", func(e *Event) { e.Status = "archived" }, "status must be"},
		{"missing date", func(e *Event) { e.Date = time.Time{} }, "date is required"},
		{"end before start", func(e *Event) { e.EndDate = e.Date.Add(-time.Hour) }, "end date cannot be before"},
		{"bad start time", func(e *Event) { e.StartTime = "9am" }, "start time must be"},
		{"description too long", func(e *Event) { e.Description = strings.Repeat("x", MaxDescriptionLength+1) }, "description cannot exceed"},
		{"location too long", func(e *Event) { e.Location = strings.Repeat("x", MaxLocationLength+1) }, "location cannot exceed"},
		{"negative needed", func(e *Event) { e.VolunteersNeeded = -1 }, "cannot be negative"},
		{"negative hours", func(e *Event) { e.Hours = -2 }, "hours cannot be negative"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.modify(&e)
			err := e.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got: %v", tc.wantErr, err)
			}
		})
	}
}

// TestEvent_IsMultiDay tests single-day vs multi-day detection.
func TestEvent_IsMultiDay(t *testing.T) {
	day := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	single := Event{Date: day}
	if single.IsMultiDay() {
		t.Fatal("single day event should not be multi-day")
	}
	sameDay := Event{Date: day, EndDate: day.Add(6 * time.Hour)}
	if sameDay.IsMultiDay() {
		t.Fatal("same-day event should not be multi-day")
	}
	multi := Event{Date: day, EndDate: day.Add(48 * time.Hour)}
	if !multi.IsMultiDay() {
		t.Fatal("multi-day event should be multi-day")
	}
}

// TestEvent_OpenSpots verifies over-subscribed events report zero open spots.
func TestEvent_OpenSpots(t *testing.T) {
	if got := (&Event{VolunteersNeeded: 50, VolunteersRegistered: 42}).OpenSpots(); got != 8 {
		t.Errorf("OpenSpots = %d, want 8", got)
	}
	if got := (&Event{VolunteersNeeded: 10, VolunteersRegistered: 15}).OpenSpots(); got != 0 {
		t.Errorf("OpenSpots = %d, want 0", got)
	}
}
