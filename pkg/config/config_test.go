package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "./params", cfg.ArchiveDir)
	assert.Equal(t, "./paramdefs", cfg.DefsDir)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "paramforge.yaml")

	cfg := DefaultConfig()
	cfg.ArchiveDir = "/srv/params"
	cfg.Port = 9200
	cfg.Logging.Level = "debug"
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("::: not yaml"), 0o600))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	assert.False(t, ConfigExists(path))
	require.NoError(t, SaveConfig(DefaultConfig(), path))
	assert.True(t, ConfigExists(path))
}
