package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.CurrentProfile)

	require.NoError(t, cfg.SaveProfile("work", "https://taskvault.internal", "access-token", "refresh-token"))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "work", loaded.CurrentProfile)

	p, err := loaded.GetProfile("work")
	require.NoError(t, err)
	assert.Equal(t, "https://taskvault.internal", p.ServerURL)
	assert.Equal(t, "access-token", p.AccessToken)
	assert.Equal(t, "refresh-token", p.RefreshToken)
}

func TestConfigFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.SaveProfile("default", "http://localhost:8080", "tok", "ref"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestGetProfileMissing(t *testing.T) {
	cfg := DefaultConfig()

	_, err := cfg.GetProfile("nope")
	assert.Error(t, err)

	// A profile without credentials counts as logged out.
	cfg.Profiles["empty"] = &Profile{ServerURL: "http://localhost:8080"}
	_, err = cfg.GetProfile("empty")
	assert.Error(t, err)
}
