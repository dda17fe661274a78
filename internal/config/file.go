package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML shape of a config file. Pointers tell a missing
// key from a zero value.
type fileConfig struct {
	DB        *string `yaml:"db"`
	LogLevel  *string `yaml:"log_level"`
	LogFormat *string `yaml:"log_format"`
	Renderer  *string `yaml:"renderer"`
	ShortForm *bool   `yaml:"short_form"`
	Theme     *string `yaml:"theme"`
}

// LoadFile overlays c with the keys present in the YAML file at path.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&c.DBPath, fc.DB)
	setString(&c.LogLevel, fc.LogLevel)
	setString(&c.LogFormat, fc.LogFormat)
	setString(&c.Renderer, fc.Renderer)
	setString(&c.Theme, fc.Theme)
	if fc.ShortForm != nil {
		c.ShortForm = *fc.ShortForm
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
