package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"volunteerhub/internal/application/projections"
	"volunteerhub/internal/application/viewengine"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print the administrator dashboard",
	Args:  cobra.NoArgs,
	RunE:  runDashboard,
}

func init() {
	f := dashboardCmd.Flags()
	f.String("now", "", "reference day for upcoming events, YYYY-MM-DD (default today)")
	f.Int("upcoming", projections.DefaultUpcomingLimit, "number of upcoming events")
	f.Int("categories", projections.DefaultTopCategoriesLimit, "number of top categories")
	f.Int("volunteers", projections.DefaultTopVolunteersLimit, "number of top volunteers")
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	now := time.Now()
	if s, _ := f.GetString("now"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
		now = t
	}

	set, err := loadSet(cmd)
	if err != nil {
		return err
	}

	upcoming, _ := f.GetInt("upcoming")
	categories, _ := f.GetInt("categories")
	volunteers, _ := f.GetInt("volunteers")
	result, err := projections.QueryGetDashboard(cmd.Context(), projections.GetDashboardQuery{
		Now:                now,
		UpcomingLimit:      upcoming,
		TopCategoriesLimit: categories,
		TopVolunteersLimit: volunteers,
	}, projections.GetDashboardDeps{
		Events:     viewengine.NewStaticSource(set.EventRecords()...),
		Volunteers: viewengine.NewStaticSource(set.VolunteerRecords()...),
	})
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
