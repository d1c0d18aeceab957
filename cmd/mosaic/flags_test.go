// If you are AI: This file contains tests for command-line parsing and config overrides.

package main

import (
	"io"
	"testing"

	"mosaic/internal/config"
	"mosaic/internal/render"
)

func TestParseFlagsOverrides(t *testing.T) {
	opts, err := parseFlags([]string{
		"-f", "a", "-f", "b|c", "-o", "out.mkv", "-s", "quad",
		"-x", "1920", "-y", "1080", "-r", "25",
		"-ord", "seeded", "-ord-opt", "7",
		"-no-audio", "-nvidia", "-h265", "-keep-temp", "-log-level", "debug",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}

	cfg := config.Default()
	cfg.Encoder.Args = []string{"-c:v", "copy"}
	opts.apply(cfg)

	if len(cfg.Sources) != 2 || cfg.Sources[1] != "b|c" {
		t.Errorf("Unexpected sources %v", cfg.Sources)
	}
	if cfg.Output != "out.mkv" || cfg.Layout != "quad" {
		t.Errorf("Unexpected output %q layout %q", cfg.Output, cfg.Layout)
	}
	if cfg.Canvas.Width != 1920 || cfg.Canvas.Height != 1080 || cfg.Canvas.FPS != 25 {
		t.Errorf("Unexpected canvas %+v", cfg.Canvas)
	}
	if cfg.Order.Mode != "seeded" || cfg.OrderSeed() != 7 {
		t.Errorf("Unexpected order %+v", cfg.Order)
	}
	if cfg.AudioEnabled() {
		t.Error("Expected audio disabled")
	}
	if cfg.Encoder.Hardware != "nvidia" || cfg.Encoder.Codec != "h265" || cfg.Encoder.Args != nil {
		t.Errorf("Unexpected encoder %+v", cfg.Encoder)
	}
	if !cfg.Workspace.KeepTemp || cfg.Log.Level != "debug" {
		t.Errorf("Unexpected workspace %+v or log %+v", cfg.Workspace, cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
}

func TestParseFlagsKeepsConfigValues(t *testing.T) {
	opts, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}
	cfg := config.Default()
	cfg.Sources = []string{"from-config"}
	cfg.SetSeed(99)
	opts.apply(cfg)

	if len(cfg.Sources) != 1 || cfg.OrderSeed() != 99 || !cfg.AudioEnabled() {
		t.Errorf("Flags that were not given changed the config: %+v", cfg)
	}
	if opts.report() != render.ReportNone {
		t.Error("Expected no report")
	}
}

func TestSeedZeroFromFlag(t *testing.T) {
	opts, err := parseFlags([]string{"-ord-opt", "0"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() failed: %v", err)
	}
	cfg := config.Default()
	opts.apply(cfg)
	if cfg.OrderSeed() != 0 {
		t.Errorf("Expected seed 0, got %d", cfg.OrderSeed())
	}
}

func TestParseFlagsErrors(t *testing.T) {
	cases := [][]string{
		{"-amd", "-nvidia"},
		{"-h264", "-av1"},
		{"-f", ""},
		{"stray"},
		{"-unknown"},
	}
	for _, args := range cases {
		if _, err := parseFlags(args, io.Discard); err == nil {
			t.Errorf("Expected error for %v", args)
		}
	}
}

func TestReportFlags(t *testing.T) {
	opts, err := parseFlags([]string{"-l"}, io.Discard)
	if err != nil || opts.report() != render.ReportLength {
		t.Errorf("-l: report %v, err %v", opts, err)
	}
	opts, err = parseFlags([]string{"-l", "-L"}, io.Discard)
	if err != nil || opts.report() != render.ReportListing {
		t.Errorf("-L: report %v, err %v", opts, err)
	}
}
