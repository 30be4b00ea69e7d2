package platform

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk settings file (jotter.yaml). Every field is
// optional; command line flags override it.
type Config struct {
	Backend     string `yaml:"backend,omitempty"`
	Store       string `yaml:"store,omitempty"`
	Key         string `yaml:"key,omitempty"`
	Format      string `yaml:"format,omitempty"`
	Versioning  *bool  `yaml:"versioning,omitempty"`
	RedisPrefix string `yaml:"redis_prefix,omitempty"`
	// Locale is requested from the speech transcriber and selects the
	// language of relative dates.
	Locale string `yaml:"locale,omitempty"`
	// SaveCombo saves the draft in the interactive composer.
	SaveCombo string `yaml:"save_combo,omitempty"`
}

// LoadConfig reads a config file. An empty path yields the zero Config.
// Unknown fields are rejected so typos do not go unnoticed.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Options translates the file into session options. Zero fields produce no
// option, leaving the defaults in place.
func (c Config) Options() []Option {
	var opts []Option
	if c.Backend != "" {
		opts = append(opts, WithBackend(c.Backend))
	}
	if c.Key != "" {
		opts = append(opts, WithKey(c.Key))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.Versioning != nil {
		opts = append(opts, WithVersioning(*c.Versioning))
	}
	if c.RedisPrefix != "" {
		opts = append(opts, WithRedisPrefix(c.RedisPrefix))
	}
	return opts
}
