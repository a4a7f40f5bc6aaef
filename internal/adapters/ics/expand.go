package ics

import (
	"log/slog"
	"time"

	"github.com/teambition/rrule-go"

	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
	"volunteerhub/internal/domain/event"
)

// MaxOccurrencesPerEvent caps recurrence expansion of one VEVENT.
const MaxOccurrencesPerEvent = 1000

// Expand converts events into published event records for occurrences
// overlapping [from, to]. Times are shown in loc (UTC when nil).
// PRE: from <= to
// POST: recurring events yield one record per occurrence with ID "UID/RFC3339 start";
// EXDATE occurrences are dropped; bad RRULEs are logged and skipped
func Expand(events []Event, from, to time.Time, loc *time.Location) []viewengine.Record {
	if loc == nil {
		loc = time.UTC
	}
	var out []viewengine.Record
	for _, ev := range events {
		if ev.RRule == "" {
			if overlaps(ev.Start, ev.End, from, to) {
				out = append(out, occurrence(ev, ev.Start, ev.End, ev.UID, loc))
			}
			continue
		}

		r, err := rrule.StrToRRule(ev.RRule)
		if err != nil {
			slog.Warn("ics_rrule_invalid", "source", ev.SourceID, "uid", ev.UID, "rrule", ev.RRule, "error", err)
			continue
		}
		r.DTStart(ev.Start)
		var set rrule.Set
		set.RRule(r)
		for _, ex := range ev.ExDates {
			set.ExDate(ex.In(ev.Start.Location()))
		}

		dur := ev.End.Sub(ev.Start)
		starts := set.Between(from.Add(-dur).In(ev.Start.Location()), to.In(ev.Start.Location()), true)
		if len(starts) > MaxOccurrencesPerEvent {
			slog.Warn("ics_occurrences_truncated", "source", ev.SourceID, "uid", ev.UID, "cap", MaxOccurrencesPerEvent)
			starts = starts[:MaxOccurrencesPerEvent]
		}
		for _, s := range starts {
			out = append(out, occurrence(ev, s, s.Add(dur), ev.UID+"/"+s.UTC().Format(time.RFC3339), loc))
		}
	}
	return out
}

// occurrence renders one instance the way fixture events are stored:
// date and end_date are calendar days at UTC midnight, start_time is "15:04".
func occurrence(ev Event, start, end time.Time, id string, loc *time.Location) viewengine.Record {
	fields := map[string]any{
		records.FieldTitle:       ev.Summary,
		records.FieldDescription: ev.Description,
		records.FieldLocation:    ev.Location,
		records.FieldStatus:      event.StatusPublished,
		records.FieldSource:      ev.SourceID,
	}

	startDay := calendarDay(start, loc)
	lastDay := calendarDay(end, loc)
	if ev.AllDay {
		startDay = calendarDay(start, start.Location())
		lastDay = calendarDay(end, end.Location()).AddDate(0, 0, -1)
	} else {
		fields[records.FieldStartTime] = start.In(loc).Format("15:04")
		fields[records.FieldHours] = end.Sub(start).Hours()
		if e := end.In(loc); end.After(start) && e.Hour() == 0 && e.Minute() == 0 && e.Second() == 0 {
			lastDay = lastDay.AddDate(0, 0, -1)
		}
	}
	fields[records.FieldDate] = startDay
	if lastDay.After(startDay) {
		fields[records.FieldEndDate] = lastDay
	}
	return viewengine.NewRecord(id, fields)
}

func calendarDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
