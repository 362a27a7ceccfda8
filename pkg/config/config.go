// Package config provides configuration loading and management for
// radonfbp. It handles loading configuration from YAML files and
// provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"radonfbp/pkg/filter"
	"radonfbp/pkg/tomo"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Projection geometry parameters
	Geometry struct {
		// Angles is the number of projection angles spread evenly over
		// the half turn
		Angles int `yaml:"angles"`

		// Size is the edge length of the square image in pixels; the
		// detector count always matches it
		Size int `yaml:"size"`

		// Circle masks reconstructed pixels outside the inscribed circle
		Circle bool `yaml:"circle"`
	} `yaml:"geometry"`

	// Reconstruction filter parameters
	Filter struct {
		// Enabled applies the ramp filter before backprojection; when
		// false the reconstruction is the plain adjoint projection
		Enabled bool `yaml:"enabled"`

		// Window names the frequency window applied on top of the ramp:
		// ramp, shepp-logan, cosine, hamming or hann
		Window string `yaml:"window"`
	} `yaml:"filter"`

	// Processing parameters
	Processing struct {
		// NumCores specifies how many CPU cores to use for parallel processing
		NumCores int `yaml:"numCores"`
	} `yaml:"processing"`

	// Output parameters
	Output struct {
		// Dir is the directory where result images are written
		Dir string `yaml:"dir"`

		// SaveSinogram also writes the intermediate sinogram as an image
		SaveSinogram bool `yaml:"saveSinogram"`

		// Verbose controls the level of logging output
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Geometry.Angles = 180
	cfg.Geometry.Size = 256
	cfg.Geometry.Circle = true

	cfg.Filter.Enabled = true
	cfg.Filter.Window = filter.WindowRamp.String()

	cfg.Processing.NumCores = runtime.NumCPU()

	cfg.Output.Dir = "output"
	cfg.Output.SaveSinogram = false
	cfg.Output.Verbose = true

	return cfg
}

// ToParams converts the configuration into operator parameters,
// resolving the window name.
func (cfg *Config) ToParams() (tomo.Params, error) {
	window, err := filter.ParseWindow(cfg.Filter.Window)
	if err != nil {
		return tomo.Params{}, fmt.Errorf("invalid filter window %q: %w", cfg.Filter.Window, err)
	}

	return tomo.Params{
		Angles:   cfg.Geometry.Angles,
		Size:     cfg.Geometry.Size,
		Circle:   cfg.Geometry.Circle,
		Filtered: cfg.Filter.Enabled,
		Window:   window,
		Workers:  cfg.Processing.NumCores,
	}, nil
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
