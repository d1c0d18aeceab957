// If you are AI: This file contains fake collaborators for renderer tests.

package render

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"mosaic/internal/clip"
	"mosaic/internal/core/frame"
	"mosaic/internal/ffx"
	"mosaic/internal/grouping"
	"mosaic/internal/layout"
)

// seconds extracts the clip length from names like "7s-name.mp4".
func seconds(path string) int {
	base := filepath.Base(path)
	n := 0
	for _, ch := range base {
		if ch < '0' || ch > '9' {
			break
		}
		n = n*10 + int(ch-'0')
	}
	return n
}

// fakeProber reads the length from the file name; "x" names fail.
type fakeProber struct{}

// Probe returns the encoded length.
func (fakeProber) Probe(ctx context.Context, path string) (time.Duration, error) {
	if strings.HasPrefix(filepath.Base(path), "x") {
		return 0, errors.New("unreadable")
	}
	return time.Duration(seconds(path)) * time.Second, nil
}

// fakeStream yields n frames then io.EOF.
type fakeStream struct {
	left int
	w, h int
}

// Next emits a frame while any remain.
func (s *fakeStream) Next() (ffx.Event, error) {
	if s.left == 0 {
		return ffx.Event{}, io.EOF
	}
	s.left--
	return ffx.Event{Kind: ffx.EventFrame, Frame: frame.New(s.w, s.h)}, nil
}

// Close is a no-op.
func (s *fakeStream) Close() error { return nil }

// fakeDecoder decodes one frame per second of the encoded length at 1 fps.
type fakeDecoder struct {
	fail bool
}

// Launch returns a stream sized to the region.
func (d fakeDecoder) Launch(ctx context.Context, src string, w, h int, fps float64) (ffx.Stream, error) {
	if d.fail {
		return nil, errors.New("ffmpeg missing")
	}
	return &fakeStream{left: int(float64(seconds(src)) * fps), w: w, h: h}, nil
}

// fakeSink records frame sizes and writes the output file on close.
type fakeSink struct {
	path   string
	sizes  []int
	bytes  int64
	closed bool
}

// WriteFrame records the frame.
func (s *fakeSink) WriteFrame(data []byte) error {
	s.sizes = append(s.sizes, len(data))
	s.bytes += int64(len(data))
	return nil
}

// Close creates the output file.
func (s *fakeSink) Close() error {
	s.closed = true
	return os.WriteFile(s.path, []byte("video"), 0o644)
}

// Bytes returns the bytes written.
func (s *fakeSink) Bytes() int64 { return s.bytes }

// fakeAudio records mux calls and writes the output.
type fakeAudio struct {
	mu      sync.Mutex
	exports map[string]float64
	muxed   string
	inputs  []string
}

// ExportAudio records the requested length per source.
func (a *fakeAudio) ExportAudio(ctx context.Context, src, out string, length float64, chain string, rate int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.exports[filepath.Base(src)] = length
	return nil
}

// Silence is a no-op.
func (a *fakeAudio) Silence(ctx context.Context, out string, length float64, rate int) error {
	return nil
}

// ConcatAudio is a no-op.
func (a *fakeAudio) ConcatAudio(ctx context.Context, files []string, out string) error {
	return nil
}

// MuxAudio writes the output file.
func (a *fakeAudio) MuxAudio(ctx context.Context, video string, audio []string, graph, out string) error {
	a.muxed = out
	a.inputs = append([]string{video}, audio...)
	return os.WriteFile(out, []byte("muxed"), 0o644)
}

// harness bundles a renderer and its fakes.
type harness struct {
	r     *Renderer
	sink  *fakeSink
	audio *fakeAudio
	out   *strings.Builder
}

// folder creates a directory of empty clips with the given names.
func folder(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), nil, 0o644); err != nil {
			t.Fatalf("Failed to create clip: %v", err)
		}
	}
	return dir
}

// newHarness builds a renderer over sources at a 1 fps 12x4 canvas.
func newHarness(t *testing.T, l layout.Layout, sources []string, audio bool) *harness {
	t.Helper()
	h := &harness{audio: &fakeAudio{exports: map[string]float64{}}, out: &strings.Builder{}}
	s := Settings{
		RunID:    "run",
		Layout:   l,
		Canvas:   layout.Canvas{Width: 12, Height: 4, FPS: 1},
		Sources:  sources,
		Output:   filepath.Join(t.TempDir(), "out.mp4"),
		Order:    clip.OrderAsInput,
		Grouping: grouping.Options{Strategy: grouping.StrategyAuto, TimeBudget: 50 * time.Millisecond},
		Audio:    audio,
		TempRoot: t.TempDir(),
		Interval: 30,
	}
	d := Deps{
		Decoder: fakeDecoder{},
		Prober:  fakeProber{},
		StartSink: func(ctx context.Context, opts ffx.EncodeOptions) (FrameSink, error) {
			h.sink = &fakeSink{path: opts.Output}
			return h.sink, nil
		},
		Audio: h.audio,
		Out:   h.out,
	}
	h.r = New(s, d, zerolog.Nop())
	return h
}
