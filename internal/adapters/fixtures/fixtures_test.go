package fixtures

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"volunteerhub/internal/application/records"
)

// TestDefault_DemoSet verifies the embedded demo data loads and validates.
func TestDefault_DemoSet(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(set.Events) != 6 || len(set.Volunteers) != 4 || len(set.Badges) != 5 || len(set.Notifications) != 5 {
		t.Errorf("counts = %d/%d/%d/%d", len(set.Events), len(set.Volunteers), len(set.Badges), len(set.Notifications))
	}

	beach := set.Events[0]
	if beach.ID != "evt-beach-cleanup" || beach.VolunteersRegistered != 42 || len(beach.Attendees) != 2 {
		t.Errorf("beach = %+v", beach)
	}
	if !beach.Date.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("beach date = %v", beach.Date)
	}
	if !set.Events[5].IsMultiDay() {
		t.Error("river survey should span two days")
	}
}

// TestSet_EventRecords verifies event records carry the fixtures source tag.
func TestSet_EventRecords(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	recs := set.EventRecords()
	if len(recs) != len(set.Events) {
		t.Fatalf("records = %d, want %d", len(recs), len(set.Events))
	}
	for _, r := range recs {
		if r.String(records.FieldSource) != SourceName {
			t.Errorf("%s source = %q", r.ID, r.String(records.FieldSource))
		}
	}
	if got := len(recs[0].Children(records.FieldAttendees)); got != 2 {
		t.Errorf("attendees = %d, want 2", got)
	}
	if got := len(set.VolunteerRecords()) + len(set.BadgeRecords()) + len(set.NotificationRecords()); got != 14 {
		t.Errorf("other records = %d, want 14", got)
	}
}

// TestParse_MissingIDGetsUUID verifies entities without an id are assigned one.
func TestParse_MissingIDGetsUUID(t *testing.T) {
	set, err := Parse([]byte(`
volunteers:
  - name: Ana
    email: ana@example.org
    status: active
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := uuid.Parse(set.Volunteers[0].ID); err != nil {
		t.Errorf("ID %q is not a uuid: %v", set.Volunteers[0].ID, err)
	}
}

// TestParse_Errors verifies decode, date and validation failures are reported.
func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"bad yaml", "events: [", "decode yaml"},
		{"bad date", "events:\n  - title: X\n    status: draft\n    date: 10/03/2024\n", "date"},
		{"missing date", "events:\n  - title: X\n    status: draft\n", "event date is required"},
		{"bad status", "events:\n  - title: X\n    status: open\n    date: \"2024-01-01\"\n", "status"},
		{"bad email", "volunteers:\n  - name: A\n    email: nope\n    status: active\n", "email"},
		{"bad tier", "badges:\n  - name: A\n    tier: wood\n", "tier"},
		{"bad type", "notifications:\n  - title: A\n    type: sms\n    created_at: \"2024-01-01T00:00:00Z\"\n", "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

// TestLoad verifies file loading and the embedded fallback.
func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.yaml")
	doc := "events:\n  - id: e1\n    title: Litter Pick\n    status: published\n    date: \"2024-06-01\"\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(set.Events) != 1 || set.Events[0].Title != "Litter Pick" {
		t.Errorf("events = %+v", set.Events)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
	demo, err := Load("")
	if err != nil || len(demo.Events) == 0 {
		t.Errorf("Load(\"\") = %d events, %v", len(demo.Events), err)
	}
}
