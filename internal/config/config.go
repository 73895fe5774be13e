// Package config resolves client configuration from the environment and an
// optional config file. Precedence: command-line flags (applied by the
// caller) over the config file over environment variables and defaults.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds the settings the CLI and SDK need to reach the API.
type Config struct {
	APIURL         string        `env:"LEADFORM_API_URL, default=http://localhost:8000/api" yaml:"api_url"`
	Timeout        time.Duration `env:"LEADFORM_TIMEOUT, default=30s" yaml:"timeout"`
	CredentialsDir string        `env:"LEADFORM_CREDENTIALS_DIR" yaml:"credentials_dir"`
}

// Load resolves configuration: environment first, then the config file at
// ~/.leadform/config.yaml (when present) overriding non-empty fields.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	path, err := defaultFilePath()
	if err != nil {
		return &cfg, nil
	}

	if err := cfg.applyFile(path); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyFile overlays settings from a YAML config file. A missing file is
// not an error.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var file struct {
		APIURL         string `yaml:"api_url"`
		Timeout        string `yaml:"timeout"`
		CredentialsDir string `yaml:"credentials_dir"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if file.APIURL != "" {
		c.APIURL = file.APIURL
	}
	if file.Timeout != "" {
		timeout, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
		c.Timeout = timeout
	}
	if file.CredentialsDir != "" {
		c.CredentialsDir = file.CredentialsDir
	}

	return nil
}

func defaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".leadform", "config.yaml"), nil
}
