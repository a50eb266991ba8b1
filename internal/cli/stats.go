package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
)

// statsResponse is the JSON form of the progress summary.
type statsResponse struct {
	passport.Stats
	LatestParkID string `json:"latest_park_id,omitempty"`
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show passport progress",
		Long:  "Show how many parks have been visited, stamps collected, the latest visit and the average rating.",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	pg, err := loadPage(cmd.Context())
	if err != nil {
		return err
	}

	if isJSON() {
		resp := statsResponse{Stats: pg.Stats}
		if pg.Stats.LatestPark != nil {
			resp.LatestParkID = pg.Stats.LatestPark.ID
		}
		return printJSON(cmd.OutOrStdout(), resp)
	}

	printStats(cmd.OutOrStdout(), pg.Stats)
	return nil
}
