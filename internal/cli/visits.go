package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/index"
	"github.com/ironicbadger/ktz-usa-stamps/internal/source"
)

// defaultVisitsDir holds the hand-edited per-park visit files.
const defaultVisitsDir = "site/visits"

func newVisitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "Maintain the visit log",
		Long:  "Build visits.json from per-park visit files, seed blank files, or rebuild on every change.",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newVisitsBuildCmd(), newVisitsSeedCmd(), newVisitsWatchCmd())

	return cmd
}

func newVisitsBuildCmd() *cobra.Command {
	var dir, output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build visits.json from per-park files",
		Long:  "Collect every per-park visit file that has content into a single visit log.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitsBuild(cmd, dir, output)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", defaultVisitsDir, "per-park visit files directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "visit log path (default: <data>/"+source.VisitsFile+")")

	return cmd
}

func runVisitsBuild(cmd *cobra.Command, dir, output string) error {
	path, err := dataFile(output, source.VisitsFile)
	if err != nil {
		return err
	}

	n, err := index.Build(dir, path)
	if err != nil {
		return fmt.Errorf("building visit log: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d visits to %s\n", n, path)
	return nil
}

func newVisitsSeedCmd() *cobra.Command {
	var dir, catalog string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create blank visit files for catalog parks",
		Long:  "Write an empty per-park visit file for every catalog park that does not have one. Existing files are left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitsSeed(cmd, dir, catalog)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", defaultVisitsDir, "per-park visit files directory")
	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog path (default: <data>/"+source.CatalogFile+")")

	return cmd
}

func runVisitsSeed(cmd *cobra.Command, dir, catalog string) error {
	path, err := dataFile(catalog, source.CatalogFile)
	if err != nil {
		return err
	}
	cat, err := readCatalog(path)
	if err != nil {
		return err
	}

	created, err := index.Seed(cat.Parks, dir)
	if err != nil {
		return fmt.Errorf("seeding visit files: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %d visit files in %s\n", created, dir)
	return nil
}

func newVisitsWatchCmd() *cobra.Command {
	var dir, output, schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rebuild visits.json when per-park files change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVisitsWatch(cmd, dir, output, schedule)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", defaultVisitsDir, "per-park visit files directory")
	cmd.Flags().StringVarP(&output, "output", "o", "", "visit log path (default: <data>/"+source.VisitsFile+")")
	cmd.Flags().StringVar(&schedule, "schedule", index.DefaultSchedule, "how often to check for changes (cron spec)")

	return cmd
}

func runVisitsWatch(cmd *cobra.Command, dir, output, schedule string) error {
	path, err := dataFile(output, source.VisitsFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return index.Watch(ctx, dir, path, schedule)
}
