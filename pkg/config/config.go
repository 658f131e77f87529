// Package config provides configuration loading and management for medphantom.
// It handles loading configuration from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"medphantom/pkg/phantom"
	"medphantom/pkg/signal"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Grid parameters
	Grid struct {
		// NX, NY, NZ are the voxel counts along each axis
		NX int `yaml:"nx"`
		NY int `yaml:"ny"`
		NZ int `yaml:"nz"`

		// FOVcm is the field of view in centimeters along x, y, z
		FOVcm [3]float64 `yaml:"fovCm"`
	} `yaml:"grid"`

	// Timing parameters for the dynamic sequence
	Timing struct {
		// Frames is the number of time points to render
		Frames int `yaml:"frames"`

		// DurationSeconds is the time span covered by the sequence
		DurationSeconds float64 `yaml:"durationSeconds"`

		// NumCores specifies how many CPU cores to use for parallel rendering
		NumCores int `yaml:"numCores"`
	} `yaml:"timing"`

	// Breathing parameters for the respiratory waveform
	Breathing struct {
		// Enabled turns respiratory motion on or off
		Enabled bool `yaml:"enabled"`

		// BaselineLiters is the end-expiration lung volume
		BaselineLiters float64 `yaml:"baselineLiters"`

		// TidalLiters is the inspired volume on top of the baseline
		TidalLiters float64 `yaml:"tidalLiters"`

		// PeriodSeconds is the duration of one breath
		PeriodSeconds float64 `yaml:"periodSeconds"`
	} `yaml:"breathing"`

	// Heart parameters for the cardiac waveform
	Heart struct {
		// Enabled turns cardiac motion on or off
		Enabled bool `yaml:"enabled"`

		// RateBPM is the heart rate in beats per minute
		RateBPM float64 `yaml:"rateBpm"`

		// MeanVolumesML are the cycle-mean chamber volumes in milliliters,
		// ordered LV, RV, LA, RA
		MeanVolumesML [4]float64 `yaml:"meanVolumesMl"`

		// Swing is the fractional volume excursion per chamber,
		// ordered LV, RV, LA, RA
		Swing [4]float64 `yaml:"swing"`
	} `yaml:"heart"`

	// Output parameters
	Output struct {
		// TissuePreset selects the intensity table: "default", "mask"
		// (integer labels), or "mask:<channel>" for a single {0,1} channel
		// (e.g. "mask:lung")
		TissuePreset string `yaml:"tissuePreset"`

		// SliceDir is the directory for exported slice images
		SliceDir string `yaml:"sliceDir"`

		// VolumePrefix names the raw volume dumps; the frame index and
		// a .raw extension are appended per frame
		VolumePrefix string `yaml:"volumePrefix"`

		// Verbose enables progress logging during rendering
		Verbose bool `yaml:"verbose"`
	} `yaml:"output"`
}

// DefaultConfig returns a configuration with reasonable defaults
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Grid.NX = 128
	cfg.Grid.NY = 128
	cfg.Grid.NZ = 128
	cfg.Grid.FOVcm = [3]float64{30, 30, 30}

	cfg.Timing.Frames = 10
	cfg.Timing.DurationSeconds = 5.0
	cfg.Timing.NumCores = runtime.NumCPU()

	breath := signal.DefaultBreathing()
	cfg.Breathing.Enabled = true
	cfg.Breathing.BaselineLiters = breath.Baseline
	cfg.Breathing.TidalLiters = breath.Tidal
	cfg.Breathing.PeriodSeconds = breath.Period

	beat := signal.DefaultHeartBeat()
	cfg.Heart.Enabled = true
	cfg.Heart.RateBPM = beat.RateBPM
	cfg.Heart.MeanVolumesML = beat.MeanVolume
	cfg.Heart.Swing = beat.Swing

	cfg.Output.TissuePreset = "default"
	cfg.Output.SliceDir = "slices"
	cfg.Output.VolumePrefix = "phantom"
	cfg.Output.Verbose = true

	return cfg
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

// SaveConfig saves the configuration to a YAML file
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error serializing config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the specified path
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// RenderOptions converts the configuration into phantom renderer options
func (c *Config) RenderOptions() (phantom.Options, error) {
	opts := phantom.Options{
		NX:       c.Grid.NX,
		NY:       c.Grid.NY,
		NZ:       c.Grid.NZ,
		FOV:      c.Grid.FOVcm,
		Frames:   c.Timing.Frames,
		Duration: c.Timing.DurationSeconds,
	}

	switch preset := c.Output.TissuePreset; {
	case preset == "" || preset == "default":
		opts.Tissues = phantom.DefaultTissues()
	case preset == "mask":
		opts.Tissues = phantom.MaskTissues()
	case strings.HasPrefix(preset, "mask:"):
		tissues, err := phantom.MaskFor(strings.TrimPrefix(preset, "mask:"))
		if err != nil {
			return phantom.Options{}, err
		}
		opts.Tissues = tissues
	default:
		return phantom.Options{}, fmt.Errorf("unknown tissue preset: %q", c.Output.TissuePreset)
	}

	if c.Breathing.Enabled {
		opts.Breathing = &signal.Breathing{
			Baseline: c.Breathing.BaselineLiters,
			Tidal:    c.Breathing.TidalLiters,
			Period:   c.Breathing.PeriodSeconds,
		}
	}

	if c.Heart.Enabled {
		opts.Heart = &signal.HeartBeat{
			RateBPM:    c.Heart.RateBPM,
			MeanVolume: c.Heart.MeanVolumesML,
			Swing:      c.Heart.Swing,
		}
	}

	return opts, nil
}
