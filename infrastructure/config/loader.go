package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileEnv names the variable pointing at the optional YAML file.
const FileEnv = "CONFIG_FILE"

// Option adjusts the loaded configuration before it is validated.
type Option func(*Config)

// WithoutNotifier is for processes that never publish, such as the HTTP
// entry points. The notifier is forced to none so no broker settings are
// required.
func WithoutNotifier() Option {
	return func(c *Config) {
		c.Notifier = NotifierNone
	}
}

// Load builds the configuration from defaults, the file named by CONFIG_FILE
// and the process environment.
func Load(options ...Option) (*Config, error) {
	return LoadFrom(os.Getenv(FileEnv), options...)
}

// LoadFrom is Load with an explicit file path. An empty path skips the file.
func LoadFrom(path string, options ...Option) (*Config, error) {
	return load(path, env.Options{}, options...)
}

func load(path string, opts env.Options, options ...Option) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	// Variables that are not set leave the current value in place.
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	for _, apply := range options {
		apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
