// Package config loads qrcard settings from defaults, an optional YAML file,
// an optional .env file and QRCARD_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	imagepkg "github.com/youruser/qrcard/internal/image"
)

// Config holds all settings of a run.
type Config struct {
	BackgroundDir string          `yaml:"background_dir"`
	Background    string          `yaml:"background"`
	OutputRoot    string          `yaml:"output_root"`
	ColumnOffset  int             `yaml:"column_offset"`
	Mode          string          `yaml:"mode"`
	LogLevel      string          `yaml:"log_level"`
	Addr          string          `yaml:"addr"`
	Layout        imagepkg.Layout `yaml:"layout"`
}

func defaults() *Config {
	return &Config{
		BackgroundDir: filepath.Join("data", "card_background"),
		OutputRoot:    "output",
		Mode:          "card-name",
		LogLevel:      "info",
		Addr:          ":8080",
		Layout:        imagepkg.DefaultLayout(),
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file is
// not an error. envFile is loaded into the environment before overrides are
// applied; it may be empty or missing.
func Load(path, envFile string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("QRCARD_BACKGROUND_DIR"); v != "" {
		cfg.BackgroundDir = v
	}
	if v := os.Getenv("QRCARD_BACKGROUND"); v != "" {
		cfg.Background = v
	}
	if v := os.Getenv("QRCARD_OUTPUT_ROOT"); v != "" {
		cfg.OutputRoot = v
	}
	if v := os.Getenv("QRCARD_COLUMN_OFFSET"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ColumnOffset = n
		}
	}
	if v := os.Getenv("QRCARD_MODE"); v != "" {
		cfg.Mode = v
	}
	if v := os.Getenv("QRCARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QRCARD_FONT"); v != "" {
		cfg.Layout.FontPath = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
}

// OutputDir is the directory cards for group are written to.
func (c *Config) OutputDir(group string) string {
	return filepath.Join(c.OutputRoot, group)
}
