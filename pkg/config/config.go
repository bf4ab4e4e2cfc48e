package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate for unusable settings
var ErrInvalidConfig = errors.New("invalid config")

// Config controls how a netlist file is compiled
type Config struct {
	// HeaderLines is the number of leading lines skipped before gate parsing
	HeaderLines int `yaml:"header_lines"`

	// InputCount is the number of primary inputs declared before parsing
	InputCount int `yaml:"input_count"`

	// InputPrefix names primary inputs as <prefix><index>
	InputPrefix string `yaml:"input_prefix"`

	// OutputPrefixes marks a signal as an exposed output when its name starts with any of them
	OutputPrefixes []string `yaml:"output_prefixes"`
}

// Default returns the settings of the Yale AES S-box netlists
func Default() Config {
	return Config{
		HeaderLines:    6,
		InputCount:     8,
		InputPrefix:    "U",
		OutputPrefixes: []string{"S", "W"},
	}
}

// Load reads a YAML config file. Keys missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML config data over the defaults
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the config can drive a compilation
func (c Config) Validate() error {
	if c.HeaderLines < 0 {
		return fmt.Errorf("%w: header_lines must not be negative, got %d", ErrInvalidConfig, c.HeaderLines)
	}
	if c.InputCount < 0 {
		return fmt.Errorf("%w: input_count must not be negative, got %d", ErrInvalidConfig, c.InputCount)
	}
	if c.InputPrefix == "" {
		return fmt.Errorf("%w: input_prefix is empty", ErrInvalidConfig)
	}
	for _, p := range c.OutputPrefixes {
		if p == "" {
			return fmt.Errorf("%w: empty output prefix", ErrInvalidConfig)
		}
	}
	return nil
}

// Marshal encodes the config as YAML
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
