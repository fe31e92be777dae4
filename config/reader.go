package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const EnvPrefix = "SITED_"

func ReadYAMLFile(path string) (*Config, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("Failed to read a config file, path=%q, error: %w", path, err)
	}

	c := NewConfig()
	if err = yaml.Unmarshal(bytes, c); err != nil {
		return nil, fmt.Errorf("Failed to parse a YAML config file, path=%q, error: %v", path, err)
	}
	return c, nil
}

// Load reads path and overlays the environment. A missing file falls back
// to defaults unless required is set.
func Load(path string, required bool) (*Config, error) {
	c, err := ReadYAMLFile(path)
	switch {
	case err == nil:
	case !required && errors.Is(err, fs.ErrNotExist):
		c = NewConfig()
	default:
		return nil, err
	}

	if err := c.ReadEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) ReadEnv() error {
	if v, ok := os.LookupEnv(EnvPrefix + "DEBUG"); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("Invalid %sDEBUG=%q, error: %v", EnvPrefix, v, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv(EnvPrefix + "LISTEN"); v != "" {
		c.Http.Listen = v
	}
	if v := os.Getenv(EnvPrefix + "TEMPLATES"); v != "" {
		c.Site.Templates = v
	}
	if v := os.Getenv(EnvPrefix + "STATIC"); v != "" {
		c.Site.Static = v
	}
	return nil
}
