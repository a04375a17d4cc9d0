// Package config loads focus settings from a YAML file and FOCUS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config is the resolved runtime configuration. Precedence, lowest first:
// defaults, config file, environment, command-line flags (applied by the caller).
type Config struct {
	StorageBackend string `yaml:"storage" env:"FOCUS_STORAGE"`
	DBPath         string `yaml:"db_path" env:"FOCUS_DB_PATH"`
	PostgresURL    string `yaml:"postgres_url" env:"FOCUS_POSTGRES_URL"`
	Timezone       string `yaml:"timezone" env:"FOCUS_TZ"`
	LogLevel       string `yaml:"log_level" env:"FOCUS_LOG_LEVEL"`
	LogFormat      string `yaml:"log_format" env:"FOCUS_LOG_FORMAT"`
}

func Default() Config {
	return Config{
		StorageBackend: BackendSQLite,
		Timezone:       "Local",
		LogLevel:       "warn",
		LogFormat:      "text",
	}
}

// DefaultPath returns $FOCUS_CONFIG, or ~/.config/focuspoint/config.yaml.
func DefaultPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv("FOCUS_CONFIG")); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "focuspoint", "config.yaml"), nil
}

// Load reads the file at path (a missing file is fine) and then applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite, BackendMemory:
	case BackendPostgres:
		if strings.TrimSpace(c.PostgresURL) == "" {
			return fmt.Errorf("storage %q requires postgres_url (FOCUS_POSTGRES_URL)", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown storage backend %q (want sqlite, postgres or memory)", c.StorageBackend)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone; empty and "Local" mean the system zone.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" || strings.EqualFold(tz, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return loc, nil
}
