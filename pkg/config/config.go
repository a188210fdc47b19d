package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the giteasync configuration.
type Config struct {
	Forge     ForgeConfig     `yaml:"forge"`
	Reconcile ReconcileConfig `yaml:"reconcile"`
}

// ForgeConfig represents the connection to the forge instance.
type ForgeConfig struct {
	URL   string `yaml:"url"`
	Token string `yaml:"token"`
}

// ReconcileConfig tunes reconciliation behavior.
type ReconcileConfig struct {
	// EscalateAccountFailures folds account remediation failures into the
	// exit disposition. By default they are only logged, while repository
	// remediation failures are always reported.
	EscalateAccountFailures bool `yaml:"escalate_account_failures"`
}

// LoadConfig loads configuration from the default location and applies
// environment overrides.
func LoadConfig() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFromPath(configPath)
}

// LoadConfigFromPath loads configuration from a specific path and applies
// environment overrides. A missing file yields an empty config so the
// environment alone can carry the connection settings.
func LoadConfigFromPath(path string) (*Config, error) {
	config := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv("GITEASYNC_URL"); v != "" {
		config.Forge.URL = v
	}
	if v := os.Getenv("GITEASYNC_TOKEN"); v != "" {
		config.Forge.Token = v
	}
	return config, nil
}

// GetConfigPath returns the default configuration file path.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".giteasync", "config.yaml"), nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Forge.URL == "" {
		return fmt.Errorf("forge URL is required (forge.url or GITEASYNC_URL)")
	}
	if u, err := url.Parse(c.Forge.URL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("forge URL %q is not a valid URL", c.Forge.URL)
	}
	if c.Forge.Token == "" {
		return fmt.Errorf("forge token is required (forge.token or GITEASYNC_TOKEN)")
	}
	return nil
}
