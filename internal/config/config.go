package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "GPT-3.5-turbo"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

type TokenizerConfig struct {
	Offline      bool   `yaml:"offline"`
	DefaultModel string `yaml:"default_model"`
}

type ModelsConfig struct {
	CSV string `yaml:"csv"` // imported at startup when set
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

type Config struct {
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Models    ModelsConfig    `yaml:"models"`
	History   HistoryConfig   `yaml:"history"`
	Log       LogConfig       `yaml:"log"`
	BaseDir   string          `yaml:"-"`
}

func Default() *Config {
	home, _ := os.UserHomeDir()
	return DefaultIn(filepath.Join(home, ".tact"))
}

// DefaultIn returns the default config rooted at baseDir.
func DefaultIn(baseDir string) *Config {
	return &Config{
		Tokenizer: TokenizerConfig{
			Offline:      true,
			DefaultModel: DefaultModel,
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(baseDir, "history.db"),
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: filepath.Join(baseDir, "tact.log"),
		},
		BaseDir: baseDir,
	}
}

// Load reads the YAML file at path over the defaults rooted at the file's
// directory. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultIn(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Ensure defaults for zero values
	if cfg.Tokenizer.DefaultModel == "" {
		cfg.Tokenizer.DefaultModel = DefaultModel
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(cfg.BaseDir, "history.db")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = filepath.Join(cfg.BaseDir, "tact.log")
	}
	cfg.Models.CSV = expandHome(cfg.Models.CSV)
	cfg.History.Path = expandHome(cfg.History.Path)
	cfg.Log.Output = expandHome(cfg.Log.Output)

	return cfg, nil
}

// Validate rejects settings the logger cannot honour.
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q must be json or console", c.Log.Format)
	}
	if c.Tokenizer.DefaultModel == "" {
		return fmt.Errorf("config: tokenizer.default_model must not be empty")
	}
	return nil
}

// EnsureDirs creates the directories the config's paths live in.
func (c *Config) EnsureDirs() error {
	dirs := []string{c.BaseDir}
	if c.History.Enabled {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	if c.Log.Output != "" && c.Log.Output != "stderr" && c.Log.Output != "stdout" {
		dirs = append(dirs, filepath.Dir(c.Log.Output))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("config: mkdir %s: %w", d, err)
		}
	}
	return nil
}

func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
