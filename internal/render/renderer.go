// If you are AI: This file defines the Renderer: it scans and groups clips, runs the
// video pass and then the audio pass or the plain rename of the silent video.

package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"mosaic/internal/clip"
	"mosaic/internal/config"
	"mosaic/internal/ffx"
	"mosaic/internal/grouping"
	"mosaic/internal/layout"
	"mosaic/internal/svc/mixdown"
)

// ErrNoFrames is returned when the video pass produced nothing.
var ErrNoFrames = errors.New("no frames rendered")

// tempPrefix marks the silent intermediate video next to the output.
const tempPrefix = "__temp__"

// Report selects the length report instead of rendering.
type Report int

const (
	ReportNone Report = iota
	ReportLength
	ReportListing
)

// Settings is the resolved render configuration.
type Settings struct {
	RunID        string
	Layout       layout.Layout
	Canvas       layout.Canvas
	Sources      []string
	Output       string
	Order        clip.Order
	Seed         int64
	Grouping     grouping.Options
	KeepUnprobed bool
	ProbeWorkers int
	EncoderArgs  []string
	Audio        bool
	Mixdown      mixdown.Options
	TempRoot     string
	KeepTemp     bool
	Interval     int // Output seconds between progress lines
	Progress     bool
	Report       Report
}

// SettingsFromConfig resolves a validated configuration.
func SettingsFromConfig(cfg *config.Config, runID string) (Settings, error) {
	l, err := layout.Parse(cfg.Layout)
	if err != nil {
		return Settings{}, err
	}
	order, err := clip.ParseOrder(cfg.Order.Mode)
	if err != nil {
		return Settings{}, err
	}
	strategy, err := grouping.ParseStrategy(cfg.Grouping.Strategy)
	if err != nil {
		return Settings{}, err
	}
	args, err := cfg.Encoder.EncodeArgs()
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		RunID:        runID,
		Layout:       l,
		Canvas:       layout.Canvas{Width: cfg.Canvas.Width, Height: cfg.Canvas.Height, FPS: cfg.Canvas.FPS},
		Sources:      cfg.Sources,
		Output:       cfg.Output,
		Order:        order,
		Seed:         cfg.OrderSeed(),
		Grouping:     grouping.Options{Strategy: strategy, TimeBudget: time.Duration(cfg.Grouping.TimeBudgetSeconds) * time.Second},
		KeepUnprobed: cfg.Grouping.KeepUnprobed,
		ProbeWorkers: cfg.Grouping.ProbeWorkers,
		EncoderArgs:  args,
		Audio:        cfg.AudioEnabled(),
		Mixdown: mixdown.Options{
			SampleRate: cfg.Audio.SampleRate,
			ClipFilter: cfg.Audio.Chain(),
			Workers:    cfg.Audio.Workers,
		},
		TempRoot: cfg.Workspace.TempRoot,
		KeepTemp: cfg.Workspace.KeepTemp,
		Interval: cfg.Telemetry.IntervalSeconds,
		Progress: cfg.Telemetry.Progress,
	}, nil
}

// FrameSink consumes composed frames.
type FrameSink interface {
	WriteFrame(data []byte) error
	Close() error
	Bytes() int64
}

// Deps are the external collaborators of a render.
type Deps struct {
	Decoder   ffx.Decoder
	Prober    clip.Prober
	StartSink func(ctx context.Context, opts ffx.EncodeOptions) (FrameSink, error)
	Audio     mixdown.Runner
	Out       io.Writer // Length report output
}

// DefaultDeps wires the ffmpeg-backed implementations.
func DefaultDeps(tools ffx.Tools, decoderArgs []string) Deps {
	return Deps{
		Decoder: ffx.NewDecoder(tools, decoderArgs),
		Prober:  ffx.NewProber(tools),
		StartSink: func(ctx context.Context, opts ffx.EncodeOptions) (FrameSink, error) {
			return ffx.StartEncoder(ctx, tools, opts)
		},
		Audio: tools,
		Out:   os.Stdout,
	}
}

// Renderer runs one mosaic render.
type Renderer struct {
	settings Settings
	deps     Deps
	layout   layout.Layout
	logger   zerolog.Logger
}

// New creates a renderer.
func New(s Settings, d Deps, logger zerolog.Logger) *Renderer {
	if d.Out == nil {
		d.Out = io.Discard
	}
	return &Renderer{settings: s, deps: d, layout: s.Layout, logger: logger}
}

// tempVideoPath returns the silent intermediate path beside output.
func tempVideoPath(output string) string {
	return filepath.Join(filepath.Dir(output), tempPrefix+filepath.Base(output))
}

// Run renders the mosaic, or prints the length report when one is selected.
func (r *Renderer) Run(ctx context.Context) error {
	groups, err := r.prepare(ctx)
	if err != nil {
		return err
	}
	if r.settings.Report != ReportNone {
		return r.report(groups)
	}

	ws, err := newWorkspace(r.settings.TempRoot, r.settings.RunID)
	if err != nil {
		return err
	}
	temp := tempVideoPath(r.settings.Output)
	defer func() {
		if cerr := ws.cleanup(r.settings.KeepTemp, temp); cerr != nil {
			r.logger.Warn().Err(cerr).Msg("Cleanup incomplete")
		}
	}()

	frames, completed, err := r.videoPass(ctx, groups, temp)
	if err != nil {
		return err
	}
	if frames == 0 {
		return ErrNoFrames
	}
	length := float64(frames) / r.settings.Canvas.FPS

	if !r.settings.Audio {
		if err := renameWithRetry(temp, r.settings.Output, renameAttempts, renameDelay); err != nil {
			return err
		}
		r.logger.Info().Str("output", r.settings.Output).Msg("Render complete without audio")
		return nil
	}

	opts := r.settings.Mixdown
	opts.Dir = ws.dir
	opts.FPS = r.settings.Canvas.FPS
	mgr := mixdown.NewManager(r.deps.Audio, opts, r.logger)
	if _, err := mgr.Mix(ctx, r.layout, completed, temp, r.settings.Output, length); err != nil {
		return fmt.Errorf("audio pass: %w", err)
	}
	r.logger.Info().Str("output", r.settings.Output).Msg("Render complete")
	return nil
}

// prepare scans the sources, probes every clip and assigns groups to regions.
func (r *Renderer) prepare(ctx context.Context) ([][]*clip.Clip, error) {
	feeds, err := FeedPlan(r.layout, len(r.settings.Sources))
	if err != nil {
		return nil, err
	}

	folders := make([][]*clip.Clip, len(r.settings.Sources))
	var all []*clip.Clip
	for i, src := range r.settings.Sources {
		clips, err := clip.Scan(src)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		folders[i] = clips
		all = append(all, clips...)
	}
	r.logger.Info().Int("folders", len(folders)).Int("clips", len(all)).Str("layout", r.layout.String()).Msg("Sources scanned")

	failed, err := clip.ProbeAll(ctx, all, r.deps.Prober, r.settings.ProbeWorkers, r.logger)
	if err != nil {
		return nil, fmt.Errorf("probe: %w", err)
	}
	if len(failed) > 0 {
		r.logger.Warn().Int("clips", len(failed)).Msg("Some clips have no known length")
	}

	return r.assign(feeds, folders)
}
