// Package cli defines the cobra command tree for the passport tool.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironicbadger/ktz-usa-stamps/internal/passport"
	"github.com/ironicbadger/ktz-usa-stamps/internal/source"
)

var (
	flagFormat string
	flagData   string
	flagConfig string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "passport",
		Short:         "Track national park visits and passport stamps",
		Long:          "A national parks passport. Browse the park catalog merged with your visit log from the CLI or the web UI, and maintain the data files behind it.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagData, "data", "", "data source: directory, http(s) URL or s3://bucket/prefix (default: "+defaultDataSource+")")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "config file path (default: ~/.config/passport/config.yaml)")

	root.AddCommand(
		newListCmd(),
		newShowCmd(),
		newStatsCmd(),
		newServeCmd(),
		newExportCmd(),
		newParksCmd(),
		newVisitsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// openSource opens the data source named by --data, the environment or the config file.
func openSource(ctx context.Context) (source.Source, error) {
	return source.New(ctx, getDataSource())
}

// loadPage reads the catalog and visit log and merges them.
func loadPage(ctx context.Context) (*passport.Page, error) {
	src, err := openSource(ctx)
	if err != nil {
		return nil, err
	}
	ds, err := source.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return passport.NewPage(ds.Parks, ds.Visits), nil
}

// localDataDir returns the data source as a directory path. Maintenance
// commands write files and cannot target a remote source.
func localDataDir() (string, error) {
	loc := getDataSource()
	if strings.HasPrefix(loc, "file://") {
		return strings.TrimPrefix(loc, "file://"), nil
	}
	if strings.Contains(loc, "://") {
		return "", fmt.Errorf("data source %s is not a local directory", loc)
	}
	return loc, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
