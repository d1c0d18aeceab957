// If you are AI: This file implements the frame compositor for one layout and canvas.
// It validates region frames, runs the interleave plan and refuses partial output.

package layout

import (
	"errors"
	"fmt"

	"mosaic/internal/core/frame"
)

var (
	// ErrRegionCount is returned when the number of frames does not match the layout.
	ErrRegionCount = errors.New("region count mismatch")
	// ErrFrameShape is returned when a region frame does not match its rectangle.
	ErrFrameShape = errors.New("frame does not match region")
	// ErrIncompleteFrame is returned when the plan produced fewer bytes than the canvas.
	ErrIncompleteFrame = errors.New("incomplete output frame")
)

// Compositor joins one frame per region into a single canvas frame.
// It is not safe for concurrent use.
type Compositor struct {
	layout  Layout
	canvas  Canvas
	rects   []Rect
	plan    Plan
	readers []rowReader
}

// NewCompositor prepares a compositor, checking the layout table against the canvas.
func NewCompositor(l Layout, c Canvas) (*Compositor, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("canvas must be positive, got %dx%d", c.Width, c.Height)
	}
	rects := l.Partition(c.Width, c.Height)
	if len(rects) != l.Count() || l.Interleave().Regions() != l.Count() {
		return nil, fmt.Errorf("%w: layout %s declares %d regions", ErrRegionCount, l, l.Count())
	}
	for i, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("layout %s region %d is empty at %dx%d", l, i, c.Width, c.Height)
		}
	}
	return &Compositor{
		layout:  l,
		canvas:  c,
		rects:   rects,
		plan:    l.Interleave(),
		readers: make([]rowReader, len(rects)),
	}, nil
}

// Rects returns the region rectangles in region order.
func (c *Compositor) Rects() []Rect {
	return c.rects
}

// Canvas returns the output geometry.
func (c *Compositor) Canvas() Canvas {
	return c.canvas
}

// Compose builds one canvas frame into dst (reusing its capacity) and returns it.
// Partial output is never returned: any shortfall yields ErrIncompleteFrame.
func (c *Compositor) Compose(frames []*frame.Frame, dst []byte) ([]byte, error) {
	if len(frames) != len(c.rects) {
		return nil, fmt.Errorf("%w: got %d frames, layout %s needs %d", ErrRegionCount, len(frames), c.layout, len(c.rects))
	}
	for i, f := range frames {
		if f == nil {
			return nil, fmt.Errorf("%w: region %d has no frame", ErrFrameShape, i)
		}
		if f.Width != c.rects[i].W || f.Height != c.rects[i].H {
			return nil, fmt.Errorf("%w: region %d is %dx%d, want %dx%d", ErrFrameShape, i, f.Width, f.Height, c.rects[i].W, c.rects[i].H)
		}
		if err := f.Validate(); err != nil {
			return nil, fmt.Errorf("%w: region %d: %v", ErrFrameShape, i, err)
		}
		c.readers[i] = rowReader{data: f.Data, row: f.RowBytes()}
	}

	want := c.canvas.FrameBytes()
	if cap(dst) < want {
		dst = make([]byte, 0, want)
	}
	out := c.plan.run(c.readers, dst[:0])
	if len(out) != want {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrIncompleteFrame, len(out), want)
	}
	return out, nil
}

// Compose is a convenience wrapper for a single frame.
func Compose(l Layout, c Canvas, frames []*frame.Frame, dst []byte) ([]byte, error) {
	comp, err := NewCompositor(l, c)
	if err != nil {
		return nil, err
	}
	return comp.Compose(frames, dst)
}
