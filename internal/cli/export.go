package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/db"
	"github.com/ironicbadger/ktz-usa-stamps/internal/export"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the passport to SQLite",
		Long:  "Write the merged parks, visits and stamps into a SQLite snapshot. Existing rows are replaced.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, out)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "SQLite database path (default: ~/.passport/passport.db)")

	return cmd
}

func runExport(cmd *cobra.Command, out string) error {
	if out == "" {
		var err error
		out, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}

	pg, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}

	sum, err := export.Snapshot(cmd.Context(), out, pg.Parks)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), sum)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d parks (%d visited, %d visits, %d stamps) to %s\n",
		sum.Parks, sum.Visited, sum.Entries, sum.Stamps, out)
	return nil
}
