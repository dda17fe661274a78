// Package config resolves CLI settings from defaults, an optional YAML file,
// the environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-formbuilder/internal/logging"
	"github.com/goliatone/go-formbuilder/pkg/storage"
)

// Environment variables read by LoadEnv.
const (
	EnvDB       = "FORMBUILDER_DB"
	EnvLogLevel = "FORMBUILDER_LOG_LEVEL"
)

// Renderer names accepted by Validate.
const (
	RendererVanilla = "vanilla"
	RendererText    = "text"
)

// Config holds runtime settings for the formbuilder CLI.
//
// Theme is empty unless set explicitly; the stored preference applies then.
type Config struct {
	DBPath    string
	LogLevel  string
	LogFormat string
	Renderer  string
	ShortForm bool
	Theme     string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = defaultDBPath()
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Renderer = RendererVanilla
	c.ShortForm = false
	c.Theme = ""
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "formbuilder.db"
	}
	return filepath.Join(home, ".formbuilder", "formbuilder.db")
}

// Load applies defaults, then the YAML file at path when non-empty, then
// the environment. Flags are applied separately with ApplyFlags.
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	var cfg Config
	cfg.LoadDefaults()
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return Config{}, err
		}
	}
	cfg.LoadEnv(lookup)
	return cfg, nil
}

// LoadEnv overlays FORMBUILDER_DB and FORMBUILDER_LOG_LEVEL. A nil lookup
// reads the process environment.
func (c *Config) LoadEnv(lookup func(string) (string, bool)) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(EnvDB); ok && v != "" {
		c.DBPath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("config: db path is required"))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("config: unknown log format %q", c.LogFormat))
	}
	if c.Renderer != RendererVanilla && c.Renderer != RendererText {
		errs = append(errs, fmt.Errorf("config: unknown renderer %q", c.Renderer))
	}
	if c.Theme != "" && !storage.ValidTheme(c.Theme) {
		errs = append(errs, fmt.Errorf("config: unknown theme %q", c.Theme))
	}
	return errors.Join(errs...)
}
