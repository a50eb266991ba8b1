package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
		Args:  cobra.NoArgs,
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigSetCmd())

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := configPath()
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"path":        path,
			"data_source": cfg.DataSource,
			"site_url":    cfg.SiteURL,
			"blog_host":   cfg.BlogHost,
			"nps_api_key": mask(cfg.NPSAPIKey),
			"dev":         cfg.Dev,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config:      %s\n", path)
	fmt.Fprintf(out, "data_source: %s\n", cfg.DataSource)
	fmt.Fprintf(out, "site_url:    %s\n", cfg.SiteURL)
	fmt.Fprintf(out, "blog_host:   %s\n", cfg.BlogHost)
	fmt.Fprintf(out, "nps_api_key: %s\n", mask(cfg.NPSAPIKey))
	fmt.Fprintf(out, "dev:         %t\n", cfg.Dev)
	return nil
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long:  "Set a config value. Keys: " + strings.Join(configKeys, ", ") + ".",
		Args:  cobra.ExactArgs(2),
		RunE:  runConfigSet,
	}
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.set(args[0], args[1]); err != nil {
		return err
	}
	if err := saveConfig(cfg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s.\n", args[0])
	return nil
}

// mask hides all but the last four characters of a secret.
func mask(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
