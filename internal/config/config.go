package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Sampler   SamplerConfig   `yaml:"sampler"`
	Cue       CueConfig       `yaml:"cue"`
	Heatmap   HeatmapConfig   `yaml:"heatmap"`
	Broadcast BroadcastConfig `yaml:"broadcast"`
}

type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type SamplerConfig struct {
	Interval      time.Duration `yaml:"interval"`
	DetectTimeout time.Duration `yaml:"detect_timeout"`
	Source        string        `yaml:"source"` // "synthetic" or "detector"
	DetectorURL   string        `yaml:"detector_url"`
}

type CueConfig struct {
	Enabled         bool               `yaml:"enabled"`
	Threshold       float64            `yaml:"threshold"`
	BaseFrequencies map[string]float64 `yaml:"base_frequencies"`
}

type HeatmapConfig struct {
	ColumnWidth int `yaml:"column_width"`
}

type BroadcastConfig struct {
	Throttle         time.Duration `yaml:"throttle"`
	SnapshotInterval time.Duration `yaml:"snapshot_interval"`
}

// Default returns the built-in configuration. Numeric defaults (200ms tick,
// 0.2 cue threshold, 6px columns, 880Hz happy) are part of the system's
// documented contract.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: 8422,
			Host: "127.0.0.1",
		},
		Sampler: SamplerConfig{
			Interval:      200 * time.Millisecond,
			DetectTimeout: 150 * time.Millisecond,
			Source:        "synthetic",
			DetectorURL:   "http://127.0.0.1:5123",
		},
		Cue: CueConfig{
			Enabled:   true,
			Threshold: 0.2,
			BaseFrequencies: map[string]float64{
				"neutral":   440,
				"happy":     880,
				"sad":       293.66,
				"angry":     196,
				"fearful":   622.25,
				"disgusted": 233.08,
				"surprised": 1046.5,
			},
		},
		Heatmap: HeatmapConfig{
			ColumnWidth: 6,
		},
		Broadcast: BroadcastConfig{
			Throttle:         100 * time.Millisecond,
			SnapshotInterval: 5 * time.Second,
		},
	}
}

// Load reads a yaml config file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Sampler.Interval <= 0 {
		return fmt.Errorf("sampler interval must be positive, got %s", c.Sampler.Interval)
	}
	if c.Cue.Threshold < 0 || c.Cue.Threshold > 1 {
		return fmt.Errorf("cue threshold must be in [0,1], got %v", c.Cue.Threshold)
	}
	if c.Heatmap.ColumnWidth <= 0 {
		return fmt.Errorf("heatmap column width must be positive, got %d", c.Heatmap.ColumnWidth)
	}
	return nil
}

// BaseFrequency returns the cue base frequency for a label name, falling
// back to the built-in table for labels missing from the file.
func (c *Config) BaseFrequency(label string) float64 {
	if f, ok := c.Cue.BaseFrequencies[label]; ok && f > 0 {
		return f
	}
	if f, ok := Default().Cue.BaseFrequencies[label]; ok {
		return f
	}
	return 440
}
