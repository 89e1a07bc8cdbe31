package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/benaskins/seedkeeper/internal/balance"
	"github.com/benaskins/seedkeeper/internal/keychain"
)

// Config holds persistent client configuration loaded from
// ~/.seedkeeper/config.yaml.
type Config struct {
	AuditLog      string `yaml:"audit_log"`
	CredentialKey string `yaml:"credential_key"`
	Language      string `yaml:"language"`
	LogLevel      string `yaml:"log_level"`
	RecentLimit   int    `yaml:"recent_limit"`
	DefaultIndex  int    `yaml:"default_index"`
}

// Home returns the seedkeeper home directory: ~/.seedkeeper.
func Home() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".seedkeeper")
}

// DefaultPath returns the default config file path: ~/.seedkeeper/config.yaml.
func DefaultPath() string {
	h := Home()
	if h == "" {
		return ""
	}
	return filepath.Join(h, "config.yaml")
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{
		CredentialKey: keychain.DefaultCredentialKey,
		Language:      "en",
		LogLevel:      "info",
		RecentLimit:   balance.DefaultRecentLimit,
	}
	if h := Home(); h != "" {
		cfg.AuditLog = filepath.Join(h, "audit.log")
	}
	return cfg
}

// Load reads a YAML config file from path on top of Default. If the file
// does not exist, it returns the defaults and no error. An empty or
// all-comment file also returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.RecentLimit < 0 {
		return fmt.Errorf("recent_limit must not be negative, got %d", c.RecentLimit)
	}
	if c.DefaultIndex < 0 {
		return fmt.Errorf("default_index must not be negative, got %d", c.DefaultIndex)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log level name to slog. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", s)
}
