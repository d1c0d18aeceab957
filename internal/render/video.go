// If you are AI: This file implements the video pass: one frame per tick from every
// region's cursor, composed and written to the encoder until the shortest region ends.

package render

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mosaic/internal/clip"
	"mosaic/internal/core/frame"
	"mosaic/internal/cursor"
	"mosaic/internal/ffx"
	"mosaic/internal/layout"
)

// videoPass renders groups into temp and returns the frame count and each region's
// completed clips in play order.
func (r *Renderer) videoPass(ctx context.Context, groups [][]*clip.Clip, temp string) (int64, [][]*clip.Clip, error) {
	if len(groups) != r.layout.Count() {
		return 0, nil, fmt.Errorf("%w: %d groups for layout %s", layout.ErrRegionCount, len(groups), r.layout)
	}
	comp, err := layout.NewCompositor(r.layout, r.settings.Canvas)
	if err != nil {
		return 0, nil, err
	}

	cursors := make([]*cursor.Cursor, len(groups))
	for i, g := range groups {
		if len(g) == 0 {
			return 0, nil, fmt.Errorf("%w: region %d", ErrEmptyGroup, i)
		}
		cursors[i] = cursor.New(i, g, comp.Rects()[i], r.settings.Canvas.FPS, r.deps.Decoder, r.logger)
	}
	defer func() {
		for _, c := range cursors {
			if err := c.Close(); err != nil {
				r.logger.Debug().Err(err).Int("region", c.Region()).Msg("Cursor close failed")
			}
		}
	}()

	sink, err := r.deps.StartSink(ctx, ffx.EncodeOptions{
		Width:  r.settings.Canvas.Width,
		Height: r.settings.Canvas.Height,
		FPS:    r.settings.Canvas.FPS,
		Args:   r.settings.EncoderArgs,
		Output: temp,
	})
	if err != nil {
		return 0, nil, err
	}

	tel := newTelemetry(r.settings, estimateFrames(groups, r.settings.Canvas.FPS), r.logger)
	frames, loopErr := r.loop(ctx, cursors, comp, sink, tel)
	tel.finish(frames, sink.Bytes())

	if loopErr != nil {
		_ = sink.Close()
		return frames, nil, loopErr
	}
	if err := sink.Close(); err != nil {
		return frames, nil, err
	}

	completed := make([][]*clip.Clip, len(cursors))
	for i, c := range cursors {
		c.Finish()
		completed[i] = c.Completed()
	}
	return frames, completed, nil
}

// loop pulls, composes and writes frames until a region ends. A tick in which any
// region ended writes nothing.
func (r *Renderer) loop(ctx context.Context, cursors []*cursor.Cursor, comp *layout.Compositor, sink FrameSink, tel *telemetry) (int64, error) {
	batch := make([]*frame.Frame, len(cursors))
	buf := make([]byte, 0, r.settings.Canvas.FrameBytes())
	release := func(n int) {
		for i := 0; i < n; i++ {
			batch[i].Release()
			batch[i] = nil
		}
	}

	for tick := int64(0); ; tick++ {
		if err := ctx.Err(); err != nil {
			return tick, err
		}
		for i, c := range cursors {
			f, err := c.Next(ctx, tick)
			if err == nil {
				batch[i] = f
				continue
			}
			release(i)
			for _, prev := range cursors[:i] {
				prev.Discard()
			}
			if errors.Is(err, io.EOF) || errors.Is(err, cursor.ErrStalled) {
				r.logger.Info().Int("region", i).Int64("frames", tick).Err(err).Msg("Region ended, stopping output")
				return tick, nil
			}
			return tick, err
		}

		out, err := comp.Compose(batch, buf)
		release(len(batch))
		if err != nil {
			return tick, fmt.Errorf("frame %d: %w", tick, err)
		}
		if err := sink.WriteFrame(out); err != nil {
			return tick, fmt.Errorf("frame %d: %w", tick, err)
		}
		buf = out
		tel.frame(tick+1, sink.Bytes())
	}
}

// estimateFrames returns the expected output frames, or -1 when a region's length is unknown.
func estimateFrames(groups [][]*clip.Clip, fps float64) int64 {
	shortest := int64(-1)
	for _, g := range groups {
		var total int64
		for _, c := range g {
			if !c.Probed {
				return -1
			}
			total += c.Duration
		}
		if shortest < 0 || total < shortest {
			shortest = total
		}
	}
	if shortest < 0 {
		return -1
	}
	return int64(float64(shortest) / 1000 * fps)
}
