package config

import "github.com/spf13/pflag"

// Flag names registered by RegisterFlags.
const (
	FlagConfig    = "config"
	FlagDB        = "db"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagRenderer  = "renderer"
	FlagShortForm = "short-form"
	FlagTheme     = "theme"
)

// RegisterFlags adds the config flags to fs. Their values only take effect
// through ApplyFlags, and only when set on the command line.
func RegisterFlags(fs *pflag.FlagSet) {
	var d Config
	d.LoadDefaults()

	fs.String(FlagConfig, "", "path to a YAML config file")
	fs.String(FlagDB, d.DBPath, "SQLite database path (env "+EnvDB+")")
	fs.String(FlagLogLevel, d.LogLevel, "log level: debug, info, warn, error (env "+EnvLogLevel+")")
	fs.String(FlagLogFormat, d.LogFormat, "log format: text or json")
	fs.String(FlagRenderer, d.Renderer, "preview renderer: vanilla or text")
	fs.Bool(FlagShortForm, d.ShortForm, "limit previews and submits to short-form fields")
	fs.String(FlagTheme, d.Theme, "preview theme: light or dark (defaults to the stored preference)")
}

// ApplyFlags overlays the flags that were set explicitly.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) {
	stringFlags := map[string]*string{
		FlagDB:        &c.DBPath,
		FlagLogLevel:  &c.LogLevel,
		FlagLogFormat: &c.LogFormat,
		FlagRenderer:  &c.Renderer,
		FlagTheme:     &c.Theme,
	}
	for name, dst := range stringFlags {
		if !fs.Changed(name) {
			continue
		}
		if v, err := fs.GetString(name); err == nil {
			*dst = v
		}
	}
	if fs.Changed(FlagShortForm) {
		if v, err := fs.GetBool(FlagShortForm); err == nil {
			c.ShortForm = v
		}
	}
}

// ConfigPath returns the --config value, if registered and set.
func ConfigPath(fs *pflag.FlagSet) string {
	v, err := fs.GetString(FlagConfig)
	if err != nil {
		return ""
	}
	return v
}
