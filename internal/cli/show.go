package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/detail"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show park details",
		Long:  "Show full details for a park, including every logged visit.",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
}

func runShow(cmd *cobra.Command, args []string) error {
	pg, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}

	v := detail.Build(pg, args[0])
	if v.Status != detail.StatusOK {
		return fmt.Errorf("%s: %q", v.Status.Message(), args[0])
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), v)
	}

	printParkDetail(cmd.OutOrStdout(), v)
	return nil
}
