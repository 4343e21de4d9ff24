package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateDirs points every config/data path into a fresh temp directory so
// tests never touch the real user environment.
func isolateDirs(t *testing.T) (configDir, dataDir string) {
	t.Helper()
	configDir = filepath.Join(t.TempDir(), "config")
	dataDir = filepath.Join(t.TempDir(), "data")
	t.Setenv("CLIPVAULT_CONFIG_DIR", configDir)
	t.Setenv("CLIPVAULT_DATA_DIR", dataDir)
	return configDir, dataDir
}

func TestGetConfigPaths(t *testing.T) {
	configDir, dataDir := isolateDirs(t)

	paths, err := GetConfigPaths()
	require.NoError(t, err)

	assert.Equal(t, configDir, paths.BaseDir)
	assert.Equal(t, filepath.Join(configDir, "config.yaml"), paths.ActiveConfig)
	assert.Equal(t, dataDir, paths.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "images"), paths.ImagesDir)
	assert.Equal(t, filepath.Join(dataDir, "clipvault.db"), paths.DBFile)

	// Base and data dirs are created; the images dir is owned by the store
	// and created lazily.
	assert.DirExists(t, paths.BaseDir)
	assert.DirExists(t, paths.DataDir)
	assert.NoDirExists(t, paths.ImagesDir)
}

func TestDefaultConfig(t *testing.T) {
	isolateDirs(t)

	cfg := DefaultConfig()

	_, err := uuid.Parse(cfg.DeviceID)
	assert.NoError(t, err)
	assert.NotEmpty(t, cfg.DeviceName)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, cfg.SystemPaths.ImagesDir, cfg.Storage.ImagesDir)
	assert.Equal(t, cfg.SystemPaths.DBFile, cfg.Storage.DBPath)
	assert.Positive(t, cfg.PollingInterval)
}

func TestLoadCreatesDefault(t *testing.T) {
	isolateDirs(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	paths, err := GetConfigPaths()
	require.NoError(t, err)
	assert.FileExists(t, paths.ActiveConfig)

	// Loading again returns the persisted config, not a freshly generated
	// identity.
	reloaded, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, cfg.DeviceID, reloaded.DeviceID)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	isolateDirs(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.DeviceName = "test-device"
	cfg.PollingInterval = 2500
	require.NoError(t, cfg.Save(configPath))

	loaded, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.DeviceID, loaded.DeviceID)
	assert.Equal(t, "test-device", loaded.DeviceName)
	assert.Equal(t, int64(2500), loaded.PollingInterval)
}

func TestEnvOverrides(t *testing.T) {
	isolateDirs(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, DefaultConfig().Save(configPath))

	override := filepath.Join(t.TempDir(), "elsewhere")
	t.Setenv("CLIPVAULT_DEVICE_NAME", "overridden")
	t.Setenv("CLIPVAULT_LOG_LEVEL", "debug")
	t.Setenv("CLIPVAULT_POLLING_INTERVAL", "42")
	t.Setenv("CLIPVAULT_IMAGES_DIR", override)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "overridden", cfg.DeviceName)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, int64(42), cfg.PollingInterval)
	assert.Equal(t, override, cfg.Storage.ImagesDir)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	isolateDirs(t)

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("device_id: [unclosed\n"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}
