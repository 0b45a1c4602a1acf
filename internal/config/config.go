package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"moss-painter/internal/batch"
	"moss-painter/internal/brush"
	"moss-painter/internal/inflate"
)

// Config holds all configurable painter and preview settings.
type Config struct {
	// Moss generation
	MossDistance   float64 `json:"moss_distance"`
	NormalMode     string  `json:"normal_mode"`
	ProbeThreshold int     `json:"probe_threshold"`

	// Brush
	BrushSize  float64 `json:"brush_size"`
	BrushAngle float64 `json:"brush_angle"`
	StrokeMode string  `json:"stroke_mode"`

	// Scheduling
	Workers        int `json:"workers"`
	BatchSize      int `json:"batch_size"`
	PollIntervalMS int `json:"poll_interval_ms"`

	// Preview
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	WebPOutput  string `json:"webp_output"`
	MossTexture string `json:"moss_texture"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	BrushSize    float64
	BrushAngle   float64
	MossDistance float64
	StrokeMode   string
	Workers      int
	OutputPath   string
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.BrushSize > 0 {
		c.BrushSize = flags.BrushSize
	}
	if flags.BrushAngle > 0 {
		c.BrushAngle = flags.BrushAngle
	}
	if flags.MossDistance > 0 {
		c.MossDistance = flags.MossDistance
	}
	if flags.StrokeMode != "" {
		c.StrokeMode = flags.StrokeMode
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.OutputPath != "" {
		c.WebPOutput = flags.OutputPath
	}

	if c.MossDistance <= 0 {
		c.MossDistance = 0.01
	}
	if c.NormalMode == "" {
		c.NormalMode = inflate.DefaultMode.String()
	}
	if c.ProbeThreshold <= 0 {
		c.ProbeThreshold = 1 << 16
	}
	if c.BrushSize <= 0 {
		c.BrushSize = 2
	}
	if c.BrushAngle <= 0 {
		c.BrushAngle = 2
	}
	if c.StrokeMode == "" {
		c.StrokeMode = brush.Immediate.String()
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.BatchSize <= 0 {
		c.BatchSize = batch.DefaultBatchSize
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = 16
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.WebPOutput == "" {
		c.WebPOutput = filepath.Join("out", "moss.webp")
	}
}

// Validate checks the enumerated settings.
func (c *Config) Validate() error {
	if _, err := inflate.ParseNormalMode(c.NormalMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := brush.ParseMode(c.StrokeMode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Pool returns the worker pool settings.
func (c *Config) Pool() batch.Config {
	return batch.Config{Workers: c.Workers, BatchSize: c.BatchSize}
}

// PollInterval returns the foreground tick period.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
