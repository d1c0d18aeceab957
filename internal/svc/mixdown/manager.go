// If you are AI: This file implements the audio pass manager: concurrent per-clip exports,
// per-region concatenation and the final mux onto the silent video.

package mixdown

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mosaic/internal/clip"
	"mosaic/internal/layout"
)

// Runner executes the audio commands. ffx.Tools implements it.
type Runner interface {
	ExportAudio(ctx context.Context, src, out string, length float64, chain string, rate int) error
	Silence(ctx context.Context, out string, length float64, rate int) error
	ConcatAudio(ctx context.Context, files []string, out string) error
	MuxAudio(ctx context.Context, video string, audio []string, graph, out string) error
}

// Options configures the audio pass.
type Options struct {
	Dir        string // Workspace directory for intermediate files
	FPS        float64
	SampleRate int
	ClipFilter string
	Workers    int
}

// Result summarises an audio pass.
type Result struct {
	Segments int // Clips exported
	Silent   int // Clips replaced by silence
	Groups   []string
}

// Manager runs the audio pass for one render.
type Manager struct {
	runner Runner
	opts   Options
	logger zerolog.Logger
}

// NewManager creates an audio pass manager.
func NewManager(r Runner, opts Options, logger zerolog.Logger) *Manager {
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	return &Manager{runner: r, opts: opts, logger: logger.With().Str("component", "mixdown").Logger()}
}

// Mix exports every group's audio, joins it per region and muxes it onto video as out.
// groups holds each region's completed clips in play order; length is the video length.
func (m *Manager) Mix(ctx context.Context, l layout.Layout, groups [][]*clip.Clip, video, out string, length float64) (Result, error) {
	if len(groups) != l.Count() {
		return Result{}, fmt.Errorf("mixdown: %d groups for layout %s with %d regions", len(groups), l, l.Count())
	}

	segments, res, err := m.export(ctx, groups)
	if err != nil {
		return res, err
	}

	res.Groups, err = m.concat(ctx, segments, length)
	if err != nil {
		return res, err
	}

	if err := m.runner.MuxAudio(ctx, video, res.Groups, layout.FilterGraph(l), out); err != nil {
		return res, fmt.Errorf("mux audio: %w", err)
	}
	m.logger.Info().Int("segments", res.Segments).Int("silent", res.Silent).Str("output", out).Msg("Audio muxed")
	return res, nil
}

// export runs every clip task and returns each group's segment files in order.
func (m *Manager) export(ctx context.Context, groups [][]*clip.Clip) ([][]string, Result, error) {
	var (
		res       Result
		mu        sync.Mutex
		fallbacks *multierror.Error
	)
	segments := make([][]string, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)
	for gi, group := range groups {
		for ci, c := range group {
			task, ok := NewTask(m.opts.Dir, gi, ci, c, m.opts.FPS)
			if !ok {
				continue
			}
			segments[gi] = append(segments[gi], task.Out)
			res.Segments++
			g.Go(func() error {
				fallback, err := task.Run(gctx, m.runner, m.opts)
				if fallback != nil {
					mu.Lock()
					res.Silent++
					fallbacks = multierror.Append(fallbacks, fallback)
					mu.Unlock()
				}
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, res, fmt.Errorf("export audio: %w", err)
	}
	if err := fallbacks.ErrorOrNil(); err != nil {
		m.logger.Warn().Err(err).Int("clips", res.Silent).Msg("Clips without usable audio were replaced by silence")
	}
	return segments, res, nil
}

// concat joins each group's segments; a group without segments becomes silence of length.
func (m *Manager) concat(ctx context.Context, segments [][]string, length float64) ([]string, error) {
	outs := make([]string, len(segments))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.opts.Workers)
	for gi, files := range segments {
		gi, files := gi, files
		out := filepath.Join(m.opts.Dir, fmt.Sprintf("g%d.wav", gi))
		outs[gi] = out
		g.Go(func() error {
			if len(files) == 0 {
				if err := m.runner.Silence(gctx, out, length, m.opts.SampleRate); err != nil {
					return fmt.Errorf("silence for region %d: %w", gi, err)
				}
				return nil
			}
			if err := m.runner.ConcatAudio(gctx, files, out); err != nil {
				return fmt.Errorf("concat region %d: %w", gi, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}
