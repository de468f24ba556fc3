package model

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, "1.0.0", cfg.API.Version)
	assert.Equal(t, 120, cfg.Display.RefreshIntervalSec)
	assert.NotEmpty(t, cfg.CachePath)
}

func TestConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &AppConfig{
		API: APIConfig{
			BaseURL: "https://api.example.com",
			Version: "2.1.0",
		},
		Display: DisplayConfig{
			Theme:              "dark",
			RefreshIntervalSec: 45,
		},
		CachePath: filepath.Join(t.TempDir(), "cache.db"),
	}
	require.NoError(t, SaveConfig(path, want))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, want.API, got.API)
	assert.Equal(t, want.Display, got.Display)
	assert.Equal(t, want.CachePath, got.CachePath)
}

func TestSaveConfigCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "config.yaml")
	require.NoError(t, SaveConfig(path, defaultAppConfig()))

	got, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", got.API.BaseURL)
}
