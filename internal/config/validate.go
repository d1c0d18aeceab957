// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"mosaic/internal/clip"
	"mosaic/internal/ffx"
	"mosaic/internal/grouping"
	"mosaic/internal/layout"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Canvas.Validate(); err != nil {
		return fmt.Errorf("canvas config: %w", err)
	}
	if _, err := layout.Parse(c.Layout); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("sources: at least one folder is required")
	}
	for i, s := range c.Sources {
		if len(clip.SplitFolder(s)) == 0 {
			return fmt.Errorf("sources[%d]: empty folder", i)
		}
	}
	if err := validateOutput(c.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	if _, err := clip.ParseOrder(c.Order.Mode); err != nil {
		return fmt.Errorf("order config: %w", err)
	}
	if err := c.Grouping.Validate(); err != nil {
		return fmt.Errorf("grouping config: %w", err)
	}
	if err := c.Encoder.Validate(); err != nil {
		return fmt.Errorf("encoder config: %w", err)
	}
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}
	if c.Telemetry.IntervalSeconds < 0 {
		return fmt.Errorf("telemetry config: interval_seconds must not be negative, got %d", c.Telemetry.IntervalSeconds)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

// Validate checks canvas dimensions and rate.
func (c *CanvasConfig) Validate() error {
	if c.Width <= 0 || c.Width > 16384 {
		return fmt.Errorf("width must be between 1 and 16384, got %d", c.Width)
	}
	if c.Height <= 0 || c.Height > 16384 {
		return fmt.Errorf("height must be between 1 and 16384, got %d", c.Height)
	}
	if c.FPS <= 0 || c.FPS > 240 {
		return fmt.Errorf("fps must be in (0, 240], got %g", c.FPS)
	}
	return nil
}

// validateOutput requires a file name with an extension.
func validateOutput(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("an output file is required")
	}
	if filepath.Ext(path) == "" {
		return fmt.Errorf("%q needs an extension to select the container", path)
	}
	return nil
}

// Validate checks grouping values.
func (g *GroupingConfig) Validate() error {
	if _, err := grouping.ParseStrategy(g.Strategy); err != nil {
		return err
	}
	if g.TimeBudgetSeconds < 0 {
		return fmt.Errorf("time_budget_seconds must not be negative, got %d", g.TimeBudgetSeconds)
	}
	if g.ProbeWorkers < 0 {
		return fmt.Errorf("probe_workers must not be negative, got %d", g.ProbeWorkers)
	}
	return nil
}

// Validate checks encoder values. Raw args bypass the preset names.
func (e *EncoderConfig) Validate() error {
	if len(e.Args) > 0 {
		return nil
	}
	hw, err := ffx.ParseHardware(e.Hardware)
	if err != nil {
		return err
	}
	codec, err := ffx.ParseCodec(e.Codec)
	if err != nil {
		return err
	}
	_, err = ffx.PresetArgs(hw, codec)
	return err
}

// EncodeArgs returns the encoder arguments: the raw override or the preset.
func (e *EncoderConfig) EncodeArgs() ([]string, error) {
	if len(e.Args) > 0 {
		return e.Args, nil
	}
	hw, err := ffx.ParseHardware(e.Hardware)
	if err != nil {
		return nil, err
	}
	codec, err := ffx.ParseCodec(e.Codec)
	if err != nil {
		return nil, err
	}
	return ffx.PresetArgs(hw, codec)
}

// Validate checks audio values.
func (a *AudioConfig) Validate() error {
	if a.SampleRate < 8000 || a.SampleRate > 192000 {
		return fmt.Errorf("sample_rate must be between 8000 and 192000, got %d", a.SampleRate)
	}
	if a.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", a.Workers)
	}
	return nil
}

// Validate checks logging values.
func (l *LogConfig) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(l.Level)); err != nil {
		return fmt.Errorf("level: %w", err)
	}
	switch l.Format {
	case "console", "json":
		return nil
	}
	return fmt.Errorf("format must be console or json, got %q", l.Format)
}
