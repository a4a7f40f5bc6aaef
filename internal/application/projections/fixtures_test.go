package projections

import (
	"time"

	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/badge"
	"volunteerhub/internal/domain/event"
	"volunteerhub/internal/domain/notification"
	"volunteerhub/internal/domain/volunteer"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testEventSource() viewengine.DataSource {
	return viewengine.NewStaticSource(records.Events([]event.Event{
		{ID: "e1", Title: "Beach Cleanup", Organization: "Green Earth", Category: "environment", Status: event.StatusPublished,
			Date: date(2024, 3, 10), StartTime: "09:00", VolunteersNeeded: 50, VolunteersRegistered: 42,
			Attendees: []event.Attendee{{VolunteerID: "v1", Name: "Ana", CheckedIn: true}, {VolunteerID: "v2", Name: "Ben"}}},
		{ID: "e2", Title: "Food Drive", Organization: "City Pantry", Category: "community", Status: event.StatusPublished,
			Date: date(2024, 2, 5), StartTime: "13:00", VolunteersNeeded: 8, VolunteersRegistered: 8},
		{ID: "e3", Title: "Tree Planting", Organization: "Green Earth", Category: "environment", Status: event.StatusDraft,
			Date: date(2024, 2, 20), VolunteersNeeded: 30},
		{ID: "e4", Title: "Reading Buddies", Organization: "Library Friends", Category: "education", Status: event.StatusCompleted,
			Date: date(2024, 1, 15), StartTime: "16:00", VolunteersNeeded: 10, VolunteersRegistered: 15},
		{ID: "e5", Title: "Soup Kitchen", Organization: "City Pantry", Category: "community", Status: event.StatusCancelled,
			Date: date(2024, 2, 5), StartTime: "08:00", VolunteersNeeded: 20, VolunteersRegistered: 3},
		{ID: "e6", Title: "River Survey", Organization: "Green Earth", Category: "environment", Status: event.StatusPublished,
			Date: date(2024, 2, 28), EndDate: date(2024, 3, 1), VolunteersNeeded: 12, VolunteersRegistered: 6},
	})...)
}

func testVolunteerSource() viewengine.DataSource {
	return viewengine.NewStaticSource(records.Volunteers([]volunteer.Volunteer{
		{ID: "v1", Name: "Ana", Email: "ana@example.org", Status: volunteer.StatusActive, Hours: 120, EventsAttended: 30,
			Skills: []string{"first aid"}, JoinedAt: date(2022, 5, 1)},
		{ID: "v2", Name: "Ben", Email: "ben@example.org", Status: volunteer.StatusActive, Hours: 45.5, EventsAttended: 9},
		{ID: "v3", Name: "Cai", Email: "cai@example.org", Status: volunteer.StatusInactive, Hours: 80, EventsAttended: 20},
		{ID: "v4", Name: "Dee", Email: "dee@example.org", Status: volunteer.StatusPending},
	})...)
}

func testBadgeSource() viewengine.DataSource {
	earned := date(2024, 1, 2)
	return viewengine.NewStaticSource(records.Badges([]badge.Badge{
		{ID: "b1", Name: "First Shift", Category: "service", Tier: badge.TierBronze, VolunteerID: "v1", EarnedAt: earned},
		{ID: "b2", Name: "Marathon", Category: "service", Tier: badge.TierGold, VolunteerID: "v1", Progress: 30, Target: 50},
		{ID: "b3", Name: "Team Lead", Category: "leadership", Tier: badge.TierSilver, VolunteerID: "v1", EarnedAt: earned},
		{ID: "b4", Name: "Community Champion", Category: "endorsement", Tier: badge.TierPlatinum, VolunteerID: "v2",
			EndorsedBy: "City Pantry", EarnedAt: earned},
		{ID: "b5", Name: "Ten Events", Category: "service", Tier: badge.TierSilver, VolunteerID: "v1", EarnedAt: earned},
	})...)
}

func testNotificationSource() viewengine.DataSource {
	at := func(d, h int) time.Time { return time.Date(2024, 3, d, h, 0, 0, 0, time.UTC) }
	return viewengine.NewStaticSource(records.Notifications([]notification.Notification{
		{ID: "n1", RecipientID: "v1", Title: "New event near you", Type: notification.TypeEvent, CreatedAt: at(1, 10)},
		{ID: "n2", RecipientID: "v1", Title: "Badge earned", Type: notification.TypeBadge, Read: true, CreatedAt: at(2, 9)},
		{ID: "n3", RecipientID: "v1", Title: "Shift tomorrow", Type: notification.TypeReminder, CreatedAt: at(3, 8)},
		{ID: "n4", RecipientID: "v2", Title: "Maintenance", Type: notification.TypeSystem, CreatedAt: at(4, 7)},
		{ID: "n5", RecipientID: "v1", Title: "Event cancelled", Type: notification.TypeEvent, Read: true,
			CreatedAt: time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC)},
	})...)
}

func countOf(cs []Count, label string) int {
	for _, c := range cs {
		if c.Label == label {
			return c.Count
		}
	}
	return 0
}
