package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/index"
	"github.com/ironicbadger/ktz-usa-stamps/internal/nps"
	"github.com/ironicbadger/ktz-usa-stamps/internal/park"
	"github.com/ironicbadger/ktz-usa-stamps/internal/source"
)

// Client constructors, replaced in tests.
var (
	newBoundaryClient = nps.NewBoundaryClient
	newNPSClient      = nps.NewClient
)

func newParksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parks",
		Short: "Maintain the park catalog",
		Long:  "Build parks.json from the NPS boundary service and enrich it with images from the NPS data API.",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newParksBuildCmd(), newParksEnrichCmd())

	return cmd
}

func newParksBuildCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the catalog from the NPS boundary service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParksBuild(cmd, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "catalog path (default: <data>/"+source.CatalogFile+")")

	return cmd
}

func runParksBuild(cmd *cobra.Command, output string) error {
	path, err := dataFile(output, source.CatalogFile)
	if err != nil {
		return err
	}

	cat, err := newBoundaryClient().Catalog(cmd.Context())
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}

	if err := writeCatalog(path, cat); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d parks to %s\n", len(cat.Parks), path)
	return nil
}

func newParksEnrichCmd() *cobra.Command {
	var catalog string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Add hero images and NPS links to the catalog",
		Long:  "Look up every catalog park in the NPS data API and store its first image and official URL. Requires NPS_API_KEY.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParksEnrich(cmd, catalog)
		},
	}

	cmd.Flags().StringVar(&catalog, "catalog", "", "catalog path (default: <data>/"+source.CatalogFile+")")

	return cmd
}

func runParksEnrich(cmd *cobra.Command, catalog string) error {
	client, err := newNPSClient(getNPSAPIKey())
	if err != nil {
		return err
	}

	path, err := dataFile(catalog, source.CatalogFile)
	if err != nil {
		return err
	}
	cat, err := readCatalog(path)
	if err != nil {
		return err
	}

	updated, err := client.Enrich(cmd.Context(), cat)
	if err != nil {
		return fmt.Errorf("enriching catalog: %w", err)
	}

	if err := writeCatalog(path, cat); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %d of %d parks in %s\n", updated, len(cat.Parks), path)
	return nil
}

// dataFile returns path if set, otherwise name inside the local data directory.
func dataFile(path, name string) (string, error) {
	if path != "" {
		return path, nil
	}
	dir, err := localDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func readCatalog(path string) (*park.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	cat, err := park.DecodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return cat, nil
}

func writeCatalog(path string, cat *park.Catalog) error {
	data, err := cat.Encode()
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	return index.WriteFile(path, data)
}
