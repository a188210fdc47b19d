package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
forge:
  url: https://git.example.com
  token: abc123
reconcile:
  escalate_account_failures: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://git.example.com", cfg.Forge.URL)
	assert.Equal(t, "abc123", cfg.Forge.Token)
	assert.True(t, cfg.Reconcile.EscalateAccountFailures)
}

func TestLoadConfigMissingFileIsEmpty(t *testing.T) {
	cfg, err := LoadConfigFromPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Forge.URL)
	assert.False(t, cfg.Reconcile.EscalateAccountFailures)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("forge:\n  url: https://file.example.com\n  token: from-file\n"), 0o600))

	t.Setenv("GITEASYNC_URL", "https://env.example.com")
	t.Setenv("GITEASYNC_TOKEN", "from-env")

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Forge.URL)
	assert.Equal(t, "from-env", cfg.Forge.Token)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.Validate(), "forge URL is required")

	cfg.Forge.URL = "not a url"
	assert.ErrorContains(t, cfg.Validate(), "not a valid URL")

	cfg.Forge.URL = "https://git.example.com"
	assert.ErrorContains(t, cfg.Validate(), "forge token is required")

	cfg.Forge.Token = "abc123"
	assert.NoError(t, cfg.Validate())
}

func TestGetConfigPath(t *testing.T) {
	path, err := GetConfigPath()
	require.NoError(t, err)
	assert.Contains(t, path, filepath.Join(".giteasync", "config.yaml"))
}
