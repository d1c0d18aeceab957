// If you are AI: This file defines the raw RGB24 frame type and pooled frame buffers.
// Decoders fill pooled buffers and the compositor returns them once a tick is written.

package frame

import (
	"fmt"
	"sync"
)

// BytesPerPixel is the packed RGB24 pixel size.
const BytesPerPixel = 3

// Frame is one decoded picture in packed RGB24.
// Ownership: the frame owns Data until Release is called.
type Frame struct {
	Width  int
	Height int
	Data   []byte
}

// Size returns the byte length of a WxH RGB24 picture.
func Size(width, height int) int {
	return width * height * BytesPerPixel
}

// RowBytes returns the byte length of one row of the frame.
func (f *Frame) RowBytes() int {
	return f.Width * BytesPerPixel
}

// Validate checks that the buffer matches the declared dimensions.
func (f *Frame) Validate() error {
	if f == nil {
		return fmt.Errorf("frame is nil")
	}
	if want := Size(f.Width, f.Height); len(f.Data) != want {
		return fmt.Errorf("frame %dx%d holds %d bytes, want %d", f.Width, f.Height, len(f.Data), want)
	}
	return nil
}

// pools holds one *sync.Pool per buffer size. Regions of a layout differ in size,
// so each size reuses only its own buffers.
var pools sync.Map

// maxPooled bounds the buffers kept for reuse (a 4K RGB24 frame is ~25MB).
const maxPooled = 64 << 20

// poolFor returns the pool of buffers with capacity n.
func poolFor(n int) *sync.Pool {
	if p, ok := pools.Load(n); ok {
		return p.(*sync.Pool)
	}
	p, _ := pools.LoadOrStore(n, &sync.Pool{})
	return p.(*sync.Pool)
}

// Acquire returns a buffer of length n, reusing a pooled buffer of the same size.
// The caller must call Release when done.
func Acquire(n int) []byte {
	if n <= 0 || n > maxPooled {
		return make([]byte, n)
	}
	if v := poolFor(n).Get(); v != nil {
		return (*v.(*[]byte))[:n]
	}
	return make([]byte, n)
}

// Release returns a buffer to the pool for its capacity.
// The buffer must not be used after release.
func Release(buf []byte) {
	if cap(buf) == 0 || cap(buf) > maxPooled {
		return
	}
	buf = buf[:cap(buf)]
	poolFor(cap(buf)).Put(&buf)
}

// New allocates a frame with a pooled buffer sized for WxH.
func New(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Data:   Acquire(Size(width, height)),
	}
}

// Release returns the frame buffer to the pool.
func (f *Frame) Release() {
	if f == nil {
		return
	}
	Release(f.Data)
	f.Data = nil
}
