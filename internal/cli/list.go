package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/filter"
)

func newListCmd() *cobra.Command {
	var c filter.Criteria

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List parks",
		Long:  "List catalog parks merged with the visit log, optionally filtered and sorted.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, c)
		},
	}

	cmd.Flags().StringVarP(&c.Query, "query", "q", "", "free-text search")
	cmd.Flags().StringVar(&c.Region, "region", "", "region to filter by")
	cmd.Flags().StringVar(&c.State, "state", "", "state code or name to filter by")
	cmd.Flags().StringVar(&c.Type, "type", "", "park type to filter by")
	cmd.Flags().StringVar(&c.Status, "status", "", "visit status (visited|unvisited)")
	cmd.Flags().StringVar(&c.Sort, "sort", filter.SortName, "sort key (name|visit_date|rating|state)")

	return cmd
}

func runList(cmd *cobra.Command, c filter.Criteria) error {
	pg, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}

	parks := filter.Apply(pg.Parks, c)

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), parks)
	}

	return printParkTable(cmd.OutOrStdout(), parks)
}
