// Package config holds the tool-wide constants and the kindgen.yaml
// project configuration.
//
// kindgen.yaml is optional: a project without one gets the defaults
// (expansions written next to their sources, cache enabled). When
// present it controls:
//   - where expanded output is written
//   - whether the expansion cache is used, and where it lives
//   - which source files or globs a bare `kindgen` invocation processes
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level kindgen.yaml configuration.
type Config struct {
	// OutDir is the directory expanded files are written to, relative
	// to kindgen.yaml. Empty means next to each source file.
	OutDir string `yaml:"out_dir,omitempty"`

	// Cache controls the expansion cache.
	Cache CacheConfig `yaml:"cache,omitempty"`

	// Sources lists the files or globs a bare invocation processes.
	// Ignored when files are given on the command line.
	Sources []string `yaml:"sources,omitempty"`
}

// CacheConfig configures the expansion cache.
type CacheConfig struct {
	// Disabled turns the cache off entirely.
	Disabled bool `yaml:"disabled,omitempty"`

	// Path is the cache database location, relative to kindgen.yaml.
	// Defaults to ".kindgen/cache.db".
	Path string `yaml:"path,omitempty"`
}

// Default returns the configuration used when no kindgen.yaml exists.
func Default() *Config {
	cfg := &Config{}
	cfg.setDefaults()
	return cfg
}

// LoadConfig reads and parses a kindgen.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses kindgen.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for kindgen.yaml starting from dir and walking up
// to parent directories, similar to how .gitignore is found.
// Returns the path to the config file and nil error if found,
// or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		candidate := filepath.Join(dir, "kindgen.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		// Also check kindgen.yml (common alternative)
		candidate = filepath.Join(dir, "kindgen.yml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	for i, src := range c.Sources {
		if src == "" {
			return fmt.Errorf("%s: sources[%d]: empty pattern", path, i)
		}
	}
	if filepath.IsAbs(c.OutDir) {
		return fmt.Errorf("%s: out_dir must be relative to the config file", path)
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(".kindgen", "cache.db")
	}
}
