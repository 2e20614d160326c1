package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the root directory.
const FileName = "tokfilter.yaml"

// Config holds all configuration for tokfilter.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Filter  FilterConfig  `yaml:"filter"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig selects the files to read.
type InputConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// FilterConfig toggles the stages that run after the punctuation filter.
// The punctuation filter itself always runs and has no settings.
type FilterConfig struct {
	Lowercase bool     `yaml:"lowercase"`
	Stopwords bool     `yaml:"stopwords"`
	StopList  []string `yaml:"stop_list,omitempty"` // empty = built-in Dutch list
}

// OutputConfig holds output configuration.
type OutputConfig struct {
	Format   string `yaml:"format"` // "text", "json", "trace"
	Progress bool   `yaml:"progress"`
	Color    bool   `yaml:"color"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text", "json"
}

var (
	outputFormats = []string{"text", "json", "trace"}
	logFormats    = []string{"text", "json"}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.xml", "**/*.html"},
			Excludes: []string{"**/.git/**", "**/node_modules/**", "**/vendor/**"},
		},
		Filter: FilterConfig{
			Lowercase: false,
			Stopwords: false,
		},
		Output: OutputConfig{
			Format:   "text",
			Progress: true,
			Color:    true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format %q (want one of %v)", c.Output.Format, outputFormats)
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("invalid logging format %q (want one of %v)", c.Logging.Format, logFormats)
	}
	return nil
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory, trying tokfilter.yaml
// and then .tokfilter/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".tokfilter", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
