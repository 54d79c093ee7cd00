package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".tact"), cfg.BaseDir)
	assert.True(t, cfg.Tokenizer.Offline)
	assert.Equal(t, "GPT-3.5-turbo", cfg.Tokenizer.DefaultModel)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(home, ".tact", "history.db"), cfg.History.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Empty(t, cfg.Models.CSV)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	content := []byte(`tokenizer:
  default_model: GPT-4
models:
  csv: /tmp/models.csv
history:
  enabled: false
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "GPT-4", cfg.Tokenizer.DefaultModel)
	assert.Equal(t, "/tmp/models.csv", cfg.Models.CSV)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults preserved for unset fields
	assert.True(t, cfg.Tokenizer.Offline)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, filepath.Join(dir, "history.db"), cfg.History.Path)
	assert.Equal(t, dir, cfg.BaseDir)
}

func TestLoadConfigFileNotFound(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err, "missing config file should return defaults, not error")
	assert.Equal(t, "GPT-3.5-turbo", cfg.Tokenizer.DefaultModel)
	assert.Equal(t, filepath.Join(dir, "tact.log"), cfg.Log.Output)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("log: [unclosed"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadConfigEmptyValuesBackfilled(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	content := []byte(`tokenizer:
  default_model: ""
log:
  level: ""
  output: ""
`)
	require.NoError(t, os.WriteFile(configPath, content, 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "GPT-3.5-turbo", cfg.Tokenizer.DefaultModel)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, filepath.Join(dir, "tact.log"), cfg.Log.Output)
}

func TestLoadConfigExpandsHome(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("models:\n  csv: ~/models.csv\n"), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)
	home, _ := os.UserHomeDir()
	assert.Equal(t, filepath.Join(home, "models.csv"), cfg.Models.CSV)
}

func TestValidate(t *testing.T) {
	cfg := DefaultIn(t.TempDir())
	cfg.Log.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg = DefaultIn(t.TempDir())
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = DefaultIn(t.TempDir())
	cfg.Tokenizer.DefaultModel = ""
	assert.Error(t, cfg.Validate())
}

func TestEnsureDirs(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", ".tact")
	cfg := DefaultIn(dir)

	require.NoError(t, cfg.EnsureDirs())
	assert.DirExists(t, dir)
}
