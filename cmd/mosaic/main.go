// If you are AI: This is the main entrypoint for the mosaic renderer.
// It loads configuration, applies flags, checks the ffmpeg tools and runs one render.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"mosaic/internal/config"
	"mosaic/internal/ffx"
	"mosaic/internal/logging"
	"mosaic/internal/render"
)

// main is the entrypoint for the mosaic renderer.
func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mosaic: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "mosaic: %v\n", err)
		os.Exit(1)
	}
}

// run executes one render with the parsed options.
func run(opts *options) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	opts.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	runID := uuid.NewString()
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, RunID: runID})
	if err != nil {
		return err
	}

	settings, err := render.SettingsFromConfig(cfg, runID)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	settings.Report = opts.report()

	tools := ffx.Tools{FFmpeg: cfg.Tools.FFmpeg, FFprobe: cfg.Tools.FFprobe}
	if err := tools.Check(); err != nil {
		return err
	}

	ctx, stop := render.SignalContext(context.Background())
	defer stop()

	logger.Info().
		Str("layout", settings.Layout.String()).
		Int("width", settings.Canvas.Width).
		Int("height", settings.Canvas.Height).
		Float64("fps", settings.Canvas.FPS).
		Str("output", settings.Output).
		Bool("audio", settings.Audio).
		Msg("Starting render")

	r := render.New(settings, render.DefaultDeps(tools, cfg.Decoder.Args), logger)
	if err := r.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn().Msg("Render interrupted")
		}
		return err
	}
	return nil
}
