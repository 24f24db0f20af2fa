package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"github.com/xifanyan/helpspot"
	"github.com/xifanyan/helpspot/internal/tui"
)

var (
	filterStart int
	filterLimit int
)

var filterCmd = &cobra.Command{
	Use:     "filter",
	Aliases: []string{"filters"},
	Short:   "Work with workspace filters (requires credentials)",
}

var filterListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the filters visible to the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := client.ListFilters(ctx)
		if err != nil {
			return err
		}

		if len(filters) == 0 {
			fmt.Println("No filters found")
			return nil
		}

		for _, f := range filters {
			line := fmt.Sprintf("%-8s  %s", f.ID, f.Name)
			if f.Folder != "" {
				line += fmt.Sprintf("  [%s]", f.Folder)
			}
			if f.Count > 0 {
				line += fmt.Sprintf("  (%d)", f.Count)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var filterGetCmd = &cobra.Command{
	Use:   "get <filter id>",
	Short: "Show the tickets in a filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := helpspot.FilterResultsOptions{Start: filterStart, Length: filterLimit}

		var reqs []helpspot.Request
		if err := spinner.New().Title("Fetching filter...").ActionWithErr(func(ctx context.Context) error {
			var err error
			reqs, err = client.GetFilterResults(ctx, args[0], opts)
			return err
		}).Run(); err != nil {
			return err
		}

		if len(reqs) == 0 {
			fmt.Println("Filter is empty")
			return nil
		}

		for _, r := range reqs {
			fmt.Println(renderRequestLine(r))
		}
		return nil
	},
}

var filterBrowseCmd = &cobra.Command{
	Use:   "browse <filter id>",
	Short: "Browse a filter's tickets interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Run(ctx, client, args[0])
	},
}

func init() {
	filterGetCmd.Flags().IntVar(&filterStart, "start", 0, "result offset")
	filterGetCmd.Flags().IntVarP(&filterLimit, "limit", "l", 50, "number of results")
	filterCmd.AddCommand(filterListCmd, filterGetCmd, filterBrowseCmd)
}
