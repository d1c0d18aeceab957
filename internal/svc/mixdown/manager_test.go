// If you are AI: This file contains tests for the audio pass manager.
// Tests verify segment lengths, silence fallback, per-region concat and the mux call.

package mixdown

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"mosaic/internal/clip"
	"mosaic/internal/layout"
)

// call records one runner invocation.
type call struct {
	op     string
	out    string
	length float64
	inputs []string
	graph  string
}

// fakeRunner records calls and fails exports for paths in noAudio.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	noAudio map[string]bool
	failMux bool
}

// record appends a call.
func (f *fakeRunner) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

// ExportAudio fails for clips without audio.
func (f *fakeRunner) ExportAudio(ctx context.Context, src, out string, length float64, chain string, rate int) error {
	f.record(call{op: "export", out: out, length: length, inputs: []string{src}})
	if f.noAudio[src] {
		return errors.New("stream specifier matches no streams")
	}
	return nil
}

// Silence records the call.
func (f *fakeRunner) Silence(ctx context.Context, out string, length float64, rate int) error {
	f.record(call{op: "silence", out: out, length: length})
	return nil
}

// ConcatAudio records the call.
func (f *fakeRunner) ConcatAudio(ctx context.Context, files []string, out string) error {
	f.record(call{op: "concat", out: out, inputs: files})
	return nil
}

// MuxAudio records the call.
func (f *fakeRunner) MuxAudio(ctx context.Context, video string, audio []string, graph, out string) error {
	f.record(call{op: "mux", out: out, inputs: append([]string{video}, audio...), graph: graph})
	if f.failMux {
		return errors.New("mux failed")
	}
	return nil
}

// byOp returns the recorded calls of one kind sorted by output.
func (f *fakeRunner) byOp(op string) []call {
	var out []call
	for _, c := range f.calls {
		if c.op == op {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].out < out[j].out })
	return out
}

// played builds a completed clip with a frame count.
func played(path string, frames int64) *clip.Clip {
	return &clip.Clip{Path: path, FrameCount: frames, State: clip.Exhausted}
}

func TestMixExportsConcatsAndMuxes(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{noAudio: map[string]bool{"mute.mp4": true}}
	m := NewManager(r, Options{Dir: dir, FPS: 30, SampleRate: 44100, Workers: 2}, zerolog.Nop())

	groups := [][]*clip.Clip{
		{played("a.mp4", 60), played("skip.mp4", 0), played("b.mp4", 30)},
		{played("mute.mp4", 90)},
	}
	res, err := m.Mix(context.Background(), layout.Dual, groups, "v.mp4", "out.mp4", 3)
	if err != nil {
		t.Fatalf("Mix() failed: %v", err)
	}
	if res.Segments != 3 || res.Silent != 1 {
		t.Errorf("Expected 3 segments with 1 silent, got %+v", res)
	}

	exports := r.byOp("export")
	if len(exports) != 3 {
		t.Fatalf("Expected 3 exports, got %+v", exports)
	}
	wantLen := map[string]float64{"g0f0.wav": 2, "g0f2.wav": 1, "g1f0.wav": 3}
	for _, e := range exports {
		name := filepath.Base(e.out)
		if wantLen[name] != e.length {
			t.Errorf("%s exported %gs, want %gs", name, e.length, wantLen[name])
		}
	}

	silences := r.byOp("silence")
	if len(silences) != 1 || filepath.Base(silences[0].out) != "g1f0.wav" || silences[0].length != 3 {
		t.Errorf("Expected silence for the mute clip, got %+v", silences)
	}

	concats := r.byOp("concat")
	if len(concats) != 2 {
		t.Fatalf("Expected 2 concats, got %+v", concats)
	}
	if got := len(concats[0].inputs); got != 2 || filepath.Base(concats[0].inputs[1]) != "g0f2.wav" {
		t.Errorf("Region 0 concat has wrong inputs %v", concats[0].inputs)
	}

	mux := r.byOp("mux")
	if len(mux) != 1 {
		t.Fatalf("Expected one mux, got %d", len(mux))
	}
	if mux[0].graph != layout.FilterGraph(layout.Dual) {
		t.Errorf("Unexpected graph %s", mux[0].graph)
	}
	if len(mux[0].inputs) != 3 || mux[0].inputs[0] != "v.mp4" || !strings.HasSuffix(mux[0].inputs[2], "g1.wav") {
		t.Errorf("Unexpected mux inputs %v", mux[0].inputs)
	}
}

func TestMixSilentRegion(t *testing.T) {
	r := &fakeRunner{}
	m := NewManager(r, Options{Dir: t.TempDir(), FPS: 25, SampleRate: 44100}, zerolog.Nop())
	groups := [][]*clip.Clip{{played("a.mp4", 50)}, {played("b.mp4", 0)}}

	if _, err := m.Mix(context.Background(), layout.Dual, groups, "v.mp4", "out.mp4", 2); err != nil {
		t.Fatalf("Mix() failed: %v", err)
	}
	silences := r.byOp("silence")
	if len(silences) != 1 || filepath.Base(silences[0].out) != "g1.wav" || silences[0].length != 2 {
		t.Errorf("Expected region 1 filled with 2s of silence, got %+v", silences)
	}
	if len(r.byOp("concat")) != 1 {
		t.Errorf("Expected a single concat, got %+v", r.byOp("concat"))
	}
}

func TestMixErrors(t *testing.T) {
	r := &fakeRunner{failMux: true}
	m := NewManager(r, Options{Dir: t.TempDir(), FPS: 30, SampleRate: 44100}, zerolog.Nop())

	if _, err := m.Mix(context.Background(), layout.Quad, [][]*clip.Clip{{played("a", 1)}}, "v", "o", 1); err == nil {
		t.Error("Expected error for group count mismatch")
	}

	groups := [][]*clip.Clip{{played("a", 30)}}
	if _, err := m.Mix(context.Background(), layout.Mono, groups, "v", "o", 1); err == nil || !strings.Contains(err.Error(), "mux") {
		t.Errorf("Expected mux error, got %v", err)
	}
}

func TestNewTask(t *testing.T) {
	if _, ok := NewTask("d", 0, 0, played("a", 0), 30); ok {
		t.Error("Expected no task for a clip that never played")
	}
	task, ok := NewTask("d", 2, 5, played("a", 45), 30)
	if !ok || task.Out != filepath.Join("d", "g2f5.wav") || task.Length != 1.5 {
		t.Errorf("Unexpected task %+v", task)
	}
}
