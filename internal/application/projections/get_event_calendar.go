package projections

import (
	"context"
	"fmt"
	"time"

	"volunteerhub/internal/application/calendargrid"
	"volunteerhub/internal/application/records"
	"volunteerhub/internal/application/viewengine"
)

// GetEventCalendarQuery selects the month to lay out.
type GetEventCalendarQuery struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Location  *time.Location // nil keeps each date's own calendar day
	Status    string         // empty or "all" shows every status
	Category  string
	Today     time.Time // highlighted cell, zero for none
}

// GetEventCalendarDeps holds dependencies for GetEventCalendar.
type GetEventCalendarDeps struct {
	Events viewengine.DataSource
}

// MonthRef names a month for navigation links.
type MonthRef struct {
	Year  int
	Month int
}

// CalendarEntry is an event as shown inside a day cell.
type CalendarEntry struct {
	ID        string
	Title     string
	StartTime string
	Status    string
	Category  string
}

// CalendarDay is one grid cell.
type CalendarDay struct {
	Date    string
	Day     int
	InMonth bool
	Today   bool
	Events  []CalendarEntry
}

// GetEventCalendarResult carries the month grid and navigation.
type GetEventCalendarResult struct {
	Title      string // e.g. "February 2024"
	Year       int
	Month      int
	Weekdays   []string // column headers starting at WeekStart
	Weeks      [][]CalendarDay
	Days       int // days in the month
	EventCount int // event placements inside the month
	TodayCount int // events on Today when Today falls in the month
	Prev       MonthRef
	Next       MonthRef
}

// QueryGetEventCalendar builds the calendar page for one month.
// PRE: none; out-of-range months normalize (2024-13 is 2025-01)
// POST: every week has 7 days; unparsable event dates are omitted
func QueryGetEventCalendar(ctx context.Context, query GetEventCalendarQuery, deps GetEventCalendarDeps) (GetEventCalendarResult, error) {
	if err := checkContext(ctx); err != nil {
		return GetEventCalendarResult{}, err
	}

	var preds []viewengine.Predicate
	if query.Status != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldStatus, query.Status))
	}
	if query.Category != "" {
		preds = append(preds, viewengine.FieldEquals(records.FieldCategory, query.Category))
	}
	matched := viewengine.Apply(snapshot(deps.Events), viewengine.Query{Predicates: preds}).Records

	opts := []calendargrid.Option{
		calendargrid.WithWeekStart(query.WeekStart),
		calendargrid.WithTimeField(records.FieldStartTime),
		calendargrid.WithEndField(records.FieldEndDate),
	}
	if query.Location != nil {
		opts = append(opts, calendargrid.WithLocation(query.Location))
	}
	grid := calendargrid.Build(query.Year, query.Month, matched, records.FieldDate, opts...)

	first := time.Date(grid.Year, grid.Month, 1, 0, 0, 0, 0, time.UTC)
	prev := first.AddDate(0, -1, 0)
	next := first.AddDate(0, 1, 0)

	result := GetEventCalendarResult{
		Title:      fmt.Sprintf("%s %d", grid.Month, grid.Year),
		Year:       grid.Year,
		Month:      int(grid.Month),
		Days:       grid.InMonthCount(),
		EventCount: grid.RecordCount(),
		Prev:       MonthRef{Year: prev.Year(), Month: int(prev.Month())},
		Next:       MonthRef{Year: next.Year(), Month: int(next.Month())},
	}
	for i := range calendargrid.DaysPerWeek {
		result.Weekdays = append(result.Weekdays, time.Weekday((int(grid.WeekStart)+i)%calendargrid.DaysPerWeek).String()[:3])
	}

	today := ""
	if !query.Today.IsZero() {
		today = query.Today.Format(time.DateOnly)
		if query.Today.Year() == grid.Year && query.Today.Month() == grid.Month {
			if c, ok := grid.Cell(query.Today.Day()); ok {
				result.TodayCount = len(c.Records)
			}
		}
	}
	for _, week := range grid.Weeks() {
		days := make([]CalendarDay, 0, len(week))
		for _, c := range week {
			d := CalendarDay{
				Date:    c.Date.Format(time.DateOnly),
				Day:     c.Day(),
				InMonth: c.InMonth,
				Events:  make([]CalendarEntry, 0, len(c.Records)),
			}
			d.Today = d.Date == today
			for _, r := range c.Records {
				d.Events = append(d.Events, CalendarEntry{
					ID:        r.ID,
					Title:     r.String(records.FieldTitle),
					StartTime: r.String(records.FieldStartTime),
					Status:    r.String(records.FieldStatus),
					Category:  r.String(records.FieldCategory),
				})
			}
			days = append(days, d)
		}
		result.Weeks = append(result.Weeks, days)
	}
	return result, nil
}
