package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/hotspot"
)

// Config represents the top-level configuration for a detection run or the
// detection service.
type Config struct {
	Input     Input     `yaml:"input"`
	Output    Output    `yaml:"output"`
	Detection Detection `yaml:"detection"`
	Server    Server    `yaml:"server"`
}

// Input describes where observations are read from.
type Input struct {
	Format string `yaml:"format"` // "csv" or "sqlite"; inferred from Path when empty
	Path   string `yaml:"path"`
	Table  string `yaml:"table,omitempty"` // sqlite only
}

// Output describes where and how the classified observations are written.
type Output struct {
	Format string `yaml:"format"` // "json", "geojson" or "csv"
	Path   string `yaml:"path"`   // "-" is stdout
}

// Detection mirrors hotspot.Config. Zero values fall back to the library
// defaults.
type Detection struct {
	Criterion      string  `yaml:"criterion"` // "aicc" or "gcv"
	UserSpan       float64 `yaml:"user_span"` // 0 selects the span automatically
	GridResolution float64 `yaml:"grid_resolution"`
	Degree         int     `yaml:"degree"`
	SpanMin        float64 `yaml:"span_min"`
	SpanMax        float64 `yaml:"span_max"`
	SpanCandidates int     `yaml:"span_candidates"`
	Workers        int     `yaml:"workers"`
}

// Server settings for `hotspot serve`.
type Server struct {
	Addr            string `yaml:"addr"`
	Mode            string `yaml:"mode"`             // gin mode: "release", "debug" or "test"
	MaxObservations int    `yaml:"max_observations"` // requests above this are rejected
}

// Load reads a YAML configuration file and fills in defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a YAML configuration and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Input.Format == "" {
		c.Input.Format = FormatFromPath(c.Input.Path)
	}
	if c.Input.Table == "" {
		c.Input.Table = "observations"
	}
	if c.Output.Format == "" {
		c.Output.Format = "json"
	}
	if c.Output.Path == "" {
		c.Output.Path = "-"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "release"
	}
	if c.Server.MaxObservations == 0 {
		c.Server.MaxObservations = 100000
	}
}

func (c *Config) validate() error {
	switch c.Input.Format {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("config: input format must be \"csv\" or \"sqlite\", got %q", c.Input.Format)
	}
	switch c.Output.Format {
	case "json", "geojson", "csv":
	default:
		return fmt.Errorf("config: output format must be \"json\", \"geojson\" or \"csv\", got %q", c.Output.Format)
	}
	if err := c.Detection.Core().Validate(); err != nil {
		return fmt.Errorf("config: detection: %w", err)
	}
	switch c.Server.Mode {
	case "release", "debug", "test":
	default:
		return fmt.Errorf("config: server mode must be \"release\", \"debug\" or \"test\", got %q", c.Server.Mode)
	}
	if c.Server.MaxObservations < 0 {
		return fmt.Errorf("config: server max_observations must be >= 0, got %d", c.Server.MaxObservations)
	}
	return nil
}

// FormatFromPath guesses an input format from a file extension. Anything
// that is not a SQLite database is read as CSV.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return "sqlite"
	default:
		return "csv"
	}
}

// Core converts the detection settings into a hotspot.Config. Fields left
// at zero keep the library defaults.
func (d Detection) Core() hotspot.Config {
	cfg := hotspot.DefaultConfig()
	if d.Criterion != "" {
		cfg.Criterion = hotspot.Criterion(d.Criterion)
	}
	cfg.UserSpan = d.UserSpan
	if d.GridResolution != 0 {
		cfg.GridResolution = d.GridResolution
	}
	cfg.Degree = d.Degree
	if d.SpanMin != 0 {
		cfg.SpanMin = d.SpanMin
	}
	if d.SpanMax != 0 {
		cfg.SpanMax = d.SpanMax
	}
	if d.SpanCandidates != 0 {
		cfg.SpanCandidates = d.SpanCandidates
	}
	cfg.Workers = d.Workers
	return cfg
}
