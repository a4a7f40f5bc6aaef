// Package calendargrid buckets date-stamped records into a month grid of
// complete 7-day weeks.
package calendargrid

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"volunteerhub/internal/application/viewengine"
)

// DaysPerWeek is the grid width.
const DaysPerWeek = 7

// Cell is one day in the grid. Cells outside the month carry their real
// adjacent-month date but never hold records.
type Cell struct {
	Date    time.Time
	InMonth bool
	Records []viewengine.Record
}

// Day returns the day of month of the cell's date.
func (c Cell) Day() int { return c.Date.Day() }

// Grid is a month laid out in whole weeks.
// INVARIANT: len(Cells) % 7 == 0
type Grid struct {
	Year      int
	Month     time.Month
	WeekStart time.Weekday
	Cells     []Cell
}

type options struct {
	weekStart time.Weekday
	timeField string
	endField  string
	loc       *time.Location
}

// Option configures Build.
type Option func(*options)

// WithWeekStart sets the first column's weekday (default Sunday).
func WithWeekStart(d time.Weekday) Option {
	return func(o *options) {
		if d >= time.Sunday && d <= time.Saturday {
			o.weekStart = d
		}
	}
}

// WithTimeField orders each day's records by a separate time-of-day field
// ("15:04", "15:04:05", "3:04 PM") instead of the date field's clock time.
func WithTimeField(field string) Option {
	return func(o *options) { o.timeField = field }
}

// WithEndField places records on every day from the date field through the
// end field, inclusive.
func WithEndField(field string) Option {
	return func(o *options) { o.endField = field }
}

// WithLocation converts record instants into loc before taking their calendar date.
// Date-only values (midnight UTC) keep their calendar date in any zone.
// Without it, each instant's own calendar date is used.
func WithLocation(loc *time.Location) Option {
	return func(o *options) { o.loc = loc }
}

// Build lays out year/month and assigns records to their day cells.
// Out-of-range months normalize the way time.Date does.
// PRE: none
// POST: len(Cells) % 7 == 0; records with unparsable dates are omitted;
// each day's records are ordered by time of day, ties in input order
func Build(year int, month time.Month, records []viewengine.Record, dateField string, opts ...Option) Grid {
	o := options{weekStart: time.Sunday}
	for _, opt := range opts {
		opt(&o)
	}
	gridLoc := o.loc
	if gridLoc == nil {
		gridLoc = time.UTC
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, gridLoc)
	days := DaysIn(first.Year(), first.Month())
	leading := (int(first.Weekday()) - int(o.weekStart) + DaysPerWeek) % DaysPerWeek

	total := leading + days
	if rem := total % DaysPerWeek; rem != 0 {
		total += DaysPerWeek - rem
	}

	g := Grid{
		Year:      first.Year(),
		Month:     first.Month(),
		WeekStart: o.weekStart,
		Cells:     make([]Cell, 0, total),
	}
	for i := 0; i < total; i++ {
		date := first.AddDate(0, 0, i-leading)
		g.Cells = append(g.Cells, Cell{
			Date:    date,
			InMonth: i >= leading && i < leading+days,
		})
	}

	perDay := make([][]entry, days)
	for seq, r := range records {
		start, ok := r.Time(dateField)
		if !ok {
			continue
		}
		start = inZone(start, o.loc)
		end := start
		if o.endField != "" {
			if t, ok := r.Time(o.endField); ok {
				t = inZone(t, o.loc)
				if !dateOf(t).Before(dateOf(start)) {
					end = t
				}
			}
		}
		minutes, timed := timeOfDay(r, start, o.timeField)
		d, last := dateOf(start), dateOf(end)
		if monthIndex(d) < monthIndex(first) {
			d = time.Date(g.Year, g.Month, 1, 0, 0, 0, 0, d.Location())
		}
		for ; !d.After(last) && monthIndex(d) == monthIndex(first); d = d.AddDate(0, 0, 1) {
			perDay[d.Day()-1] = append(perDay[d.Day()-1], entry{rec: r, minutes: minutes, timed: timed, seq: seq})
		}
	}

	for day, entries := range perDay {
		if len(entries) == 0 {
			continue
		}
		slices.SortStableFunc(entries, compareEntries)
		recs := make([]viewengine.Record, len(entries))
		for i, e := range entries {
			recs[i] = e.rec
		}
		g.Cells[leading+day].Records = recs
	}
	return g
}

// DaysIn returns the number of days in month, accounting for leap years.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Weeks splits the grid into rows of seven cells.
func (g Grid) Weeks() [][]Cell {
	weeks := make([][]Cell, 0, len(g.Cells)/DaysPerWeek)
	for i := 0; i+DaysPerWeek <= len(g.Cells); i += DaysPerWeek {
		weeks = append(weeks, g.Cells[i:i+DaysPerWeek])
	}
	return weeks
}

// InMonthCount returns the number of cells belonging to the month.
func (g Grid) InMonthCount() int {
	n := 0
	for _, c := range g.Cells {
		if c.InMonth {
			n++
		}
	}
	return n
}

// Cell returns the in-month cell for day (1-based).
func (g Grid) Cell(day int) (Cell, bool) {
	for _, c := range g.Cells {
		if c.InMonth && c.Day() == day {
			return c, true
		}
	}
	return Cell{}, false
}

// RecordCount returns the number of record placements across the grid.
// A multi-day record counts once per day it appears on.
func (g Grid) RecordCount() int {
	n := 0
	for _, c := range g.Cells {
		n += len(c.Records)
	}
	return n
}

type entry struct {
	rec     viewengine.Record
	minutes int
	timed   bool
	seq     int
}

// compareEntries puts timed records first by minute of day; untimed keep input order.
func compareEntries(a, b entry) int {
	switch {
	case a.timed && !b.timed:
		return -1
	case !a.timed && b.timed:
		return 1
	case a.timed && b.timed:
		if c := cmp.Compare(a.minutes, b.minutes); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.seq, b.seq)
}

// inZone moves an instant into loc. Date-only values are floating days and
// keep their calendar date.
func inZone(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		return t
	}
	if viewengine.IsDateOnly(t) {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return t.In(loc)
}

// dateOf truncates t to midnight in its own location.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

var clockLayouts = []string{"15:04", "15:04:05", "3:04 PM", "3:04PM", "3PM", "3 PM"}

// timeOfDay returns minutes after midnight used to order a day's records.
func timeOfDay(r viewengine.Record, start time.Time, timeField string) (int, bool) {
	if timeField == "" {
		return start.Hour()*60 + start.Minute(), true
	}
	raw := strings.ToUpper(strings.TrimSpace(r.String(timeField)))
	if raw == "" {
		return 0, false
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Hour()*60 + t.Minute(), true
		}
	}
	if t, ok := viewengine.ParseTime(raw); ok {
		return t.Hour()*60 + t.Minute(), true
	}
	return 0, false
}
