// If you are AI: This file defines the configuration structure for mosaic.
// It uses strict YAML decoding and explicit defaults; command-line flags override fields.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"mosaic/internal/clip"
)

// Config holds the complete render configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Canvas    CanvasConfig    `yaml:"canvas"`
	Layout    string          `yaml:"layout"`  // Layout name or alias
	Sources   []string        `yaml:"sources"` // One entry per folder; '|' joins several paths
	Output    string          `yaml:"output"`  // Output file, extension selects the container
	Order     OrderConfig     `yaml:"order"`
	Grouping  GroupingConfig  `yaml:"grouping"`
	Encoder   EncoderConfig   `yaml:"encoder"`
	Decoder   DecoderConfig   `yaml:"decoder"`
	Audio     AudioConfig     `yaml:"audio"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Log       LogConfig       `yaml:"log"`
	Tools     ToolsConfig     `yaml:"tools"`
}

// CanvasConfig defines the output picture.
type CanvasConfig struct {
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
	FPS    float64 `yaml:"fps"`
}

// OrderConfig defines the playback order within each region.
type OrderConfig struct {
	Mode string `yaml:"mode"` // as-input, random, seeded, seeded-reverse, shortest, longest, random-largest-last
	Seed *int64 `yaml:"seed"` // Seed for the seeded orders; 0 is a valid seed
}

// GroupingConfig defines how clips are balanced across regions.
type GroupingConfig struct {
	Strategy          string `yaml:"strategy"`            // auto, greedy, swap, item-swap
	TimeBudgetSeconds int    `yaml:"time_budget_seconds"` // Backtracking search budget
	KeepUnprobed      bool   `yaml:"keep_unprobed"`       // Deal clips without a duration round-robin
	ProbeWorkers      int    `yaml:"probe_workers"`       // Concurrent ffprobe processes
}

// EncoderConfig defines the output encoder.
type EncoderConfig struct {
	Hardware string   `yaml:"hardware"`       // none, amd, nvidia
	Codec    string   `yaml:"codec"`          // h264, h265, av1
	Args     []string `yaml:"args,omitempty"` // Raw codec arguments, replacing the preset
}

// DecoderConfig defines extra decoder input arguments.
type DecoderConfig struct {
	Args []string `yaml:"args"`
}

// AudioConfig defines the audio pass.
type AudioConfig struct {
	Enabled    *bool  `yaml:"enabled"`
	SampleRate int    `yaml:"sample_rate"`
	ClipFilter string `yaml:"clip_filter"` // Chain applied to each clip before padding
	Workers    int    `yaml:"workers"`     // Concurrent export processes
}

// WorkspaceConfig defines the temporary working directory.
type WorkspaceConfig struct {
	TempRoot string `yaml:"temp_root"`
	KeepTemp bool   `yaml:"keep_temp"`
}

// TelemetryConfig defines progress reporting.
type TelemetryConfig struct {
	IntervalSeconds int  `yaml:"interval_seconds"` // Output seconds between progress lines
	Progress        bool `yaml:"progress"`         // Show a progress bar on terminals
}

// LogConfig defines logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console or json
}

// ToolsConfig names the external binaries.
type ToolsConfig struct {
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`
}

// DefaultClipFilter normalises each clip's loudness and fades it in.
const DefaultClipFilter = "loudnorm,afade=t=in:ss=0:d=2,dynaudnorm=p=0.9:s=5:t=0.4:f=1000:m=2"

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{Telemetry: TelemetryConfig{Progress: true}}
	cfg.setDefaults()
	return cfg
}

// Load reads configuration from a YAML file. An empty path yields the defaults.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Config{Telemetry: TelemetryConfig{Progress: true}}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.setDefaults()
	return &cfg, nil
}

// AudioEnabled reports whether the audio pass runs.
func (c *Config) AudioEnabled() bool {
	return c.Audio.Enabled == nil || *c.Audio.Enabled
}

// OrderSeed returns the configured seed, or clip.DefaultSeed when unset.
func (c *Config) OrderSeed() int64 {
	if c.Order.Seed == nil {
		return clip.DefaultSeed
	}
	return *c.Order.Seed
}

// SetSeed sets the seed for the seeded orders.
func (c *Config) SetSeed(seed int64) {
	c.Order.Seed = &seed
}

// SetAudio enables or disables the audio pass.
func (c *Config) SetAudio(enabled bool) {
	c.Audio.Enabled = &enabled
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Canvas.Width == 0 {
		c.Canvas.Width = 2560
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = 1440
	}
	if c.Canvas.FPS == 0 {
		c.Canvas.FPS = 30
	}
	if c.Layout == "" {
		c.Layout = "dual"
	}
	if c.Order.Mode == "" {
		c.Order.Mode = "random"
	}
	if c.Order.Seed == nil {
		c.SetSeed(clip.DefaultSeed)
	}
	if c.Grouping.Strategy == "" {
		c.Grouping.Strategy = "auto"
	}
	if c.Grouping.TimeBudgetSeconds == 0 {
		c.Grouping.TimeBudgetSeconds = 10
	}
	if c.Grouping.ProbeWorkers == 0 {
		c.Grouping.ProbeWorkers = 8
	}
	if c.Encoder.Hardware == "" {
		c.Encoder.Hardware = "none"
	}
	if c.Encoder.Codec == "" {
		c.Encoder.Codec = "h264"
	}
	if c.Decoder.Args == nil {
		c.Decoder.Args = []string{"-hwaccel", "auto"}
	}
	if c.Audio.Enabled == nil {
		c.SetAudio(true)
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.ClipFilter == "" {
		c.Audio.ClipFilter = DefaultClipFilter
	}
	if c.Audio.Workers == 0 {
		c.Audio.Workers = 4
	}
	if c.Workspace.TempRoot == "" {
		c.Workspace.TempRoot = "TempFolder"
	}
	if c.Telemetry.IntervalSeconds == 0 {
		c.Telemetry.IntervalSeconds = 30
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = "ffmpeg"
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = "ffprobe"
	}
}

// Chain returns the per-clip filter chain; "none" disables it.
func (a *AudioConfig) Chain() string {
	if a.ClipFilter == "none" {
		return ""
	}
	return a.ClipFilter
}
