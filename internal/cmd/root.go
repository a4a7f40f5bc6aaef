// Package cmd implements volunteerctl, which runs the page views against a
// fixture set and prints their results as JSON.
package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"volunteerhub/internal/adapters/fixtures"
)

var rootCmd = &cobra.Command{
	Use:   "volunteerctl",
	Short: "Query volunteer hub views from the command line",
	Long: `volunteerctl evaluates the same views the server exposes (event list,
calendar, dashboard) against a fixture file and prints the result as JSON.
Without --fixtures the embedded demo set is used.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("fixtures", "", "YAML fixture file (default is the embedded demo set)")
}

// loadSet reads the fixture set named by --fixtures.
func loadSet(cmd *cobra.Command) (fixtures.Set, error) {
	path, err := cmd.Flags().GetString("fixtures")
	if err != nil {
		return fixtures.Set{}, err
	}
	set, err := fixtures.Load(path)
	if err != nil {
		return fixtures.Set{}, fmt.Errorf("failed to load fixtures: %w", err)
	}
	return set, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
