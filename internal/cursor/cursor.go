// If you are AI: This file implements the sequence cursor: a group's clips decoded
// back to back as one continuous frame stream.

package cursor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"mosaic/internal/clip"
	"mosaic/internal/core/frame"
	"mosaic/internal/ffx"
	"mosaic/internal/layout"
)

const (
	// MaxIdleEvents is the number of consecutive non-frame events that ends a clip.
	MaxIdleEvents = 1000
	// MaxTransitions bounds clip transitions within one Next call.
	MaxTransitions = 10
)

// ErrStalled is returned when Next moved through MaxTransitions clips without a frame.
var ErrStalled = errors.New("cursor stalled")

// Cursor walks one group's clips in order. It is not safe for concurrent use.
type Cursor struct {
	region int
	rect   layout.Rect
	fps    float64
	dec    ffx.Decoder
	logger zerolog.Logger

	pending   []*clip.Clip
	active    *clip.Clip
	stream    ffx.Stream
	completed []*clip.Clip
}

// New creates a cursor for region over clips, decoding at rect's size and fps.
func New(region int, clips []*clip.Clip, rect layout.Rect, fps float64, dec ffx.Decoder, logger zerolog.Logger) *Cursor {
	return &Cursor{
		region:    region,
		rect:      rect,
		fps:       fps,
		dec:       dec,
		logger:    logger.With().Int("region", region).Logger(),
		pending:   append([]*clip.Clip(nil), clips...),
		completed: make([]*clip.Clip, 0, len(clips)),
	}
}

// Region returns the region index the cursor feeds.
func (c *Cursor) Region() int {
	return c.region
}

// Next returns the next frame for output frame tick.
// It returns io.EOF when every clip is drained and ErrStalled when clips keep ending
// without producing frames. Launch failures are returned as errors.
func (c *Cursor) Next(ctx context.Context, tick int64) (*frame.Frame, error) {
	for attempt := 0; attempt < MaxTransitions; attempt++ {
		if c.stream == nil {
			if len(c.pending) == 0 {
				return nil, io.EOF
			}
			if err := c.launch(ctx, tick); err != nil {
				return nil, err
			}
		}
		if f := c.pull(); f != nil {
			return f, nil
		}
		c.retire()
	}
	if c.stream == nil && len(c.pending) == 0 {
		return nil, io.EOF
	}
	c.logger.Warn().Int64("tick", tick).Int("transitions", MaxTransitions).Msg("No frame after repeated clip transitions")
	return nil, ErrStalled
}

// launch starts the front pending clip.
func (c *Cursor) launch(ctx context.Context, tick int64) error {
	next := c.pending[0]
	stream, err := c.dec.Launch(ctx, next.Path, c.rect.W, c.rect.H, c.fps)
	if err != nil {
		return fmt.Errorf("region %d: launch %s: %w", c.region, next.Path, err)
	}
	c.active = next
	c.stream = stream
	next.State = clip.Decoding
	next.FrameStart = tick
	next.FrameCount = 0
	c.logger.Debug().Str("clip", next.Path).Int64("tick", tick).Msg("Clip started")
	return nil
}

// pull reads events until a frame arrives; nil means the active clip is exhausted.
func (c *Cursor) pull() *frame.Frame {
	for idle := 0; idle < MaxIdleEvents; idle++ {
		ev, err := c.stream.Next()
		if err != nil {
			if err != io.EOF {
				c.logger.Warn().Err(err).Str("clip", c.active.Path).Msg("Decode stream failed")
			}
			return nil
		}
		if ev.Kind == ffx.EventFrame {
			c.active.FrameCount++
			return ev.Frame
		}
		c.log(ev)
	}
	c.logger.Warn().Str("clip", c.active.Path).Int("events", MaxIdleEvents).Msg("Decoder produced no frames, skipping clip")
	return nil
}

// log forwards a decoder log line at a matching level.
func (c *Cursor) log(ev ffx.Event) {
	var e *zerolog.Event
	switch ev.Level {
	case ffx.LevelWarning, ffx.LevelError, ffx.LevelFatal:
		e = c.logger.Warn()
	default:
		e = c.logger.Debug()
	}
	e.Str("clip", c.active.Path).Str("level", ev.Level.String()).Msg(ev.Message)
}

// retire closes the active clip and moves it to the completed list.
func (c *Cursor) retire() {
	if c.active == nil {
		return
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Debug().Err(err).Str("clip", c.active.Path).Msg("Decoder close failed")
	}
	c.active.State = clip.Exhausted
	c.logger.Debug().Str("clip", c.active.Path).Int64("frames", c.active.FrameCount).Msg("Clip finished")
	c.completed = append(c.completed, c.active)
	c.pending = c.pending[1:]
	c.active = nil
	c.stream = nil
}

// Finish retires the active clip so its played part is included in Completed.
// A clip that produced no frames is dropped instead.
func (c *Cursor) Finish() {
	if c.active == nil {
		return
	}
	if c.active.FrameCount > 0 {
		c.retire()
		return
	}
	if err := c.stream.Close(); err != nil {
		c.logger.Debug().Err(err).Str("clip", c.active.Path).Msg("Decoder close failed")
	}
	c.active.State = clip.Unstarted
	c.active = nil
	c.stream = nil
}

// Discard un-counts the last frame returned, for a tick that was abandoned.
func (c *Cursor) Discard() {
	if c.active != nil && c.active.FrameCount > 0 {
		c.active.FrameCount--
	}
}

// Completed returns the clips in completion order.
func (c *Cursor) Completed() []*clip.Clip {
	return c.completed
}

// Pending returns the number of clips not yet completed, including the active one.
func (c *Cursor) Pending() int {
	return len(c.pending)
}

// Close stops any live decoder.
func (c *Cursor) Close() error {
	if c.stream == nil {
		return nil
	}
	err := c.stream.Close()
	c.stream = nil
	c.active = nil
	return err
}
