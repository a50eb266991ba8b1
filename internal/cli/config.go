package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// defaultDataSource is where the site keeps parks.json and visits.json.
const defaultDataSource = "site/data"

// CLIConfig holds CLI configuration persisted to disk.
type CLIConfig struct {
	DataSource string `yaml:"data_source,omitempty"`
	SiteURL    string `yaml:"site_url,omitempty"`
	BlogHost   string `yaml:"blog_host,omitempty"`
	NPSAPIKey  string `yaml:"nps_api_key,omitempty"`
	Dev        bool   `yaml:"dev,omitempty"`
}

// configKeys lists the settings accepted by "config set".
var configKeys = []string{"data_source", "site_url", "blog_host", "nps_api_key", "dev"}

// set assigns a value by its YAML key.
func (c *CLIConfig) set(key, value string) error {
	switch key {
	case "data_source":
		c.DataSource = value
	case "site_url":
		c.SiteURL = value
	case "blog_host":
		c.BlogHost = value
	case "nps_api_key":
		c.NPSAPIKey = value
	case "dev":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for dev: %s", value)
		}
		c.Dev = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// configPath returns the path to the CLI config file.
func configPath() (string, error) {
	if flagConfig != "" {
		return flagConfig, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "passport", "config.yaml"), nil
}

// loadConfig reads the CLI config from disk.
// Returns a zero-value config if the file doesn't exist.
func loadConfig() (CLIConfig, error) {
	path, err := configPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return CLIConfig{}, nil
	}
	if err != nil {
		return CLIConfig{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return CLIConfig{}, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// saveConfig writes the CLI config to disk.
func saveConfig(cfg CLIConfig) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// lookup returns the env var if set, otherwise the config value.
func lookup(env string, pick func(CLIConfig) string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	cfg, err := loadConfig()
	if err == nil {
		return pick(cfg)
	}
	return ""
}

// getDataSource returns the data source from the --data flag, env var,
// config, or default.
func getDataSource() string {
	if flagData != "" {
		return flagData
	}
	if v := lookup("PASSPORT_DATA", func(c CLIConfig) string { return c.DataSource }); v != "" {
		return v
	}
	return defaultDataSource
}

// getSiteURL returns the public site URL used to resolve relative blog links.
func getSiteURL() string {
	return lookup("PASSPORT_SITE_URL", func(c CLIConfig) string { return c.SiteURL })
}

// getBlogHost returns the extra host blog snippets may be fetched from.
func getBlogHost() string {
	return lookup("PASSPORT_BLOG_HOST", func(c CLIConfig) string { return c.BlogHost })
}

// getNPSAPIKey returns the NPS data API key from env var or config.
func getNPSAPIKey() string {
	return lookup("NPS_API_KEY", func(c CLIConfig) string { return c.NPSAPIKey })
}

// getDevMode reports whether the config enables development logging.
func getDevMode() bool {
	cfg, err := loadConfig()
	return err == nil && cfg.Dev
}
