package cmd

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"volunteerhub/internal/application/listutil"
	"volunteerhub/internal/application/projections"
	"volunteerhub/internal/application/viewengine"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List events",
	Long: `Filter, sort and page events the way GET /api/events does.
Dates for --from and --to use YYYY-MM-DD; --to includes the whole day.`,
	Args: cobra.NoArgs,
	RunE: runEvents,
}

func init() {
	f := eventsCmd.Flags()
	f.String("q", "", "search title, description, organization, location and category")
	f.String("status", "", "filter by status (all, draft, published, completed, cancelled)")
	f.String("category", "", "filter by category")
	f.String("organization", "", "filter by organization")
	f.String("from", "", "earliest event date")
	f.String("to", "", "latest event date")
	f.String("sort", "", "sort column (title, date, organization, status, volunteers_registered, volunteers_needed, hours)")
	f.String("dir", "asc", "sort direction (asc or desc)")
	f.Int("page", 1, "page number")
	f.Int("per-page", listutil.DefaultPerPage, "rows per page (10, 20, 50, 100 or 200)")
	rootCmd.AddCommand(eventsCmd)
}

// listValues maps command flags onto the query parameters the list parser reads.
func listValues(cmd *cobra.Command) url.Values {
	q := url.Values{}
	for _, name := range []string{"q", "status", "category", "organization", "from", "to", "sort", "dir"} {
		if v, _ := cmd.Flags().GetString(name); v != "" {
			q.Set(name, v)
		}
	}
	page, _ := cmd.Flags().GetInt("page")
	perPage, _ := cmd.Flags().GetInt("per-page")
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))
	return q
}

func runEvents(cmd *cobra.Command, args []string) error {
	set, err := loadSet(cmd)
	if err != nil {
		return err
	}

	result, err := projections.QueryGetEventList(cmd.Context(),
		projections.GetEventListQuery{Params: listutil.ParseListParams(listValues(cmd), projections.EventListSpec)},
		projections.GetEventListDeps{Events: viewengine.NewStaticSource(set.EventRecords()...)},
	)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
