package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"volunteerhub/internal/application/projections"
	"volunteerhub/internal/application/viewengine"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Lay out one month of events",
	Long:  `Build the month grid served by GET /api/calendar. Year and month default to the current month.`,
	Args:  cobra.NoArgs,
	RunE:  runCalendar,
}

func init() {
	f := calendarCmd.Flags()
	f.Int("year", 0, "calendar year")
	f.Int("month", 0, "calendar month (1-12)")
	f.String("week-start", "sunday", "first column of the grid (sunday or monday)")
	f.String("timezone", "UTC", "IANA zone used to assign events to days")
	f.String("status", "", "only show events with this status")
	f.String("category", "", "only show events in this category")
	rootCmd.AddCommand(calendarCmd)
}

func parseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(s) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	}
	return 0, fmt.Errorf("invalid --week-start %q: want sunday or monday", s)
}

func runCalendar(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	ws, _ := f.GetString("week-start")
	weekStart, err := parseWeekStart(ws)
	if err != nil {
		return err
	}
	tz, _ := f.GetString("timezone")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid --timezone: %w", err)
	}

	set, err := loadSet(cmd)
	if err != nil {
		return err
	}

	now := time.Now().In(loc)
	year, _ := f.GetInt("year")
	month, _ := f.GetInt("month")
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	status, _ := f.GetString("status")
	category, _ := f.GetString("category")

	result, err := projections.QueryGetEventCalendar(cmd.Context(), projections.GetEventCalendarQuery{
		Year:      year,
		Month:     time.Month(month),
		WeekStart: weekStart,
		Location:  loc,
		Status:    status,
		Category:  category,
		Today:     now,
	}, projections.GetEventCalendarDeps{Events: viewengine.NewStaticSource(set.EventRecords()...)})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
