package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Site describes where a site is mounted and which of its folders are
// served as static files.
type Site struct {
	VirtualPath    string   `env:"VIRTUAL_PATH"    yaml:"virtual_path"`
	PhysicalPath   string   `env:"PHYSICAL_PATH"   yaml:"physical_path"`
	StaticPrefixes []string `env:"STATIC_PREFIXES" yaml:"static_prefixes" envSeparator:","`
	Debug          bool     `env:"DEBUG"           yaml:"debug"`
}

// DefaultEnvPrefix prefixes every environment variable read by Load.
const DefaultEnvPrefix = "SITE_"

type loadConfig struct {
	environment map[string]string
	file        string
	prefix      string
}

// Option configures Load.
type Option func(*loadConfig)

// WithFile reads a YAML file before the environment. A missing file is an error.
func WithFile(path string) Option {
	return func(c *loadConfig) {
		c.file = path
	}
}

// WithEnvPrefix replaces DefaultEnvPrefix.
func WithEnvPrefix(prefix string) Option {
	return func(c *loadConfig) {
		c.prefix = prefix
	}
}

// WithEnvironment reads variables from m instead of the process environment.
func WithEnvironment(m map[string]string) Option {
	return func(c *loadConfig) {
		c.environment = m
	}
}

// Load builds a Site from an optional YAML file, then environment variables.
// Variables that are set override values from the file.
//
//	site, err := config.Load(config.WithFile("site.yaml"))
func Load(opts ...Option) (Site, error) {
	cfg := loadConfig{prefix: DefaultEnvPrefix}
	for _, opt := range opts {
		opt(&cfg)
	}

	var site Site
	if cfg.file != "" {
		data, err := os.ReadFile(cfg.file)
		if err != nil {
			return Site{}, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &site); err != nil {
			return Site{}, errors.Join(ErrParseFile, fmt.Errorf("%s: %w", cfg.file, err))
		}
	}

	envOpts := env.Options{Prefix: cfg.prefix}
	if cfg.environment != nil {
		envOpts.Environment = cfg.environment
	}
	if err := env.ParseWithOptions(&site, envOpts); err != nil {
		return Site{}, errors.Join(ErrParseEnv, err)
	}

	return site, nil
}
