// If you are AI: This file contains tests for clip scanning, ordering and probing.

package clip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// touch creates empty files under dir.
func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

// paths returns the clip paths.
func paths(clips []*Clip) []string {
	out := make([]string, len(clips))
	for i, c := range clips {
		out[i] = c.Path
	}
	return out
}

// withDurations builds probed clips named by index.
func withDurations(ms ...int64) []*Clip {
	out := make([]*Clip, len(ms))
	for i, d := range ms {
		out[i] = &Clip{Path: string(rune('a' + i)), Duration: d, Probed: true}
	}
	return out
}

func TestScan(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	touch(t, a, "b.mp4", "a.MKV", "notes.txt", "c.webm")
	touch(t, b, "z.mov")
	if err := os.Mkdir(filepath.Join(a, "sub.mp4"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}

	clips, err := Scan(a + "|" + b)
	if err != nil {
		t.Fatalf("Scan() failed: %v", err)
	}
	want := []string{
		filepath.Join(a, "a.MKV"), filepath.Join(a, "b.mp4"), filepath.Join(a, "c.webm"),
		filepath.Join(b, "z.mov"),
	}
	got := paths(clips)
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Expected clip %d to be %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanErrors(t *testing.T) {
	empty := t.TempDir()
	touch(t, empty, "readme.md")
	if _, err := Scan(empty); !errors.Is(err, ErrNoClips) {
		t.Errorf("Expected ErrNoClips, got %v", err)
	}
	if _, err := Scan(filepath.Join(empty, "missing")); err == nil {
		t.Error("Expected error for missing path")
	}
	if _, err := Scan(" | "); err == nil {
		t.Error("Expected error for empty argument")
	}
}

func TestParseOrder(t *testing.T) {
	cases := map[string]Order{
		"":         OrderRandom,
		"0":        OrderAsInput,
		"2r":       OrderSeededReverse,
		"SeedR":    OrderSeededReverse,
		"Shortest": OrderShortest,
		"4":        OrderLongest,
		"rwll":     OrderRandomLargestLast,
		"as_input": OrderAsInput,
	}
	for in, want := range cases {
		got, err := ParseOrder(in)
		if err != nil || got != want {
			t.Errorf("ParseOrder(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := ParseOrder("sideways"); !errors.Is(err, ErrUnknownOrder) {
		t.Errorf("Expected ErrUnknownOrder, got %v", err)
	}
}

func TestSortOrders(t *testing.T) {
	clips := withDurations(30, 10, 50, 20, 40)

	if got := paths(Sort(clips, OrderAsInput, 0)); got[0] != "a" || got[4] != "e" {
		t.Errorf("as-input changed order: %v", got)
	}

	short := Sort(clips, OrderShortest, 0)
	for i := 1; i < len(short); i++ {
		if short[i-1].Duration > short[i].Duration {
			t.Fatalf("shortest not ascending: %v", paths(short))
		}
	}
	long := Sort(clips, OrderLongest, 0)
	if long[0].Duration != 50 || long[4].Duration != 10 {
		t.Errorf("longest not descending: %v", paths(long))
	}

	s1 := paths(Sort(clips, OrderSeeded, DefaultSeed))
	s2 := paths(Sort(clips, OrderSeeded, DefaultSeed))
	rev := paths(Sort(clips, OrderSeededReverse, DefaultSeed))
	for i := range s1 {
		if s1[i] != s2[i] {
			t.Fatalf("seeded order not deterministic: %v vs %v", s1, s2)
		}
		if s1[i] != rev[len(rev)-1-i] {
			t.Fatalf("seeded-reverse is not the reverse: %v vs %v", s1, rev)
		}
	}

	for i := 0; i < 10; i++ {
		out := Sort(clips, OrderRandomLargestLast, 0)
		if len(out) != len(clips) || out[len(out)-1].Duration != 50 {
			t.Fatalf("random-largest-last did not end with longest: %v", paths(out))
		}
	}

	if paths(clips)[0] != "a" {
		t.Error("Sort modified its input")
	}
}

// fakeProber fails for paths in fail and counts calls.
type fakeProber struct {
	fail  map[string]bool
	calls atomic.Int32
}

// Probe returns one second per path byte.
func (p *fakeProber) Probe(ctx context.Context, path string) (time.Duration, error) {
	p.calls.Add(1)
	if p.fail[path] {
		return 0, errors.New("no duration")
	}
	return time.Duration(len(path)) * time.Second, nil
}

func TestProbeAll(t *testing.T) {
	clips := []*Clip{New("a"), New("bb"), New("ccc"), {Path: "done", Duration: 7, Probed: true}}
	p := &fakeProber{fail: map[string]bool{"bb": true}}

	failed, err := ProbeAll(context.Background(), clips, p, 2, zerolog.Nop())
	if err != nil {
		t.Fatalf("ProbeAll() failed: %v", err)
	}
	if len(failed) != 1 || failed[0].Path != "bb" {
		t.Errorf("Expected only bb to fail, got %v", paths(failed))
	}
	if p.calls.Load() != 3 {
		t.Errorf("Expected 3 probe calls, got %d", p.calls.Load())
	}
	if clips[2].Duration != 3000 || !clips[2].Probed {
		t.Errorf("Expected ccc probed at 3000ms, got %d (%v)", clips[2].Duration, clips[2].Probed)
	}
	if clips[3].Duration != 7 {
		t.Errorf("Already probed clip was re-probed")
	}

	probed, unprobed := Partition(clips)
	if len(probed) != 3 || len(unprobed) != 1 {
		t.Errorf("Expected 3 probed and 1 unprobed, got %d and %d", len(probed), len(unprobed))
	}
	if Total(clips) != 4*time.Second+7*time.Millisecond {
		t.Errorf("Unexpected total %v", Total(clips))
	}
}

func TestProbeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakeProber{fail: map[string]bool{"a": true}}
	if _, err := ProbeAll(ctx, []*Clip{New("a")}, p, 1, zerolog.Nop()); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestItemsAndPlayed(t *testing.T) {
	clips := []*Clip{{Duration: 5000, Probed: true}, {Duration: 9, Probed: false}}
	items := Items(clips)
	if items[0].Duration != 5000 || items[1].Duration != 0 {
		t.Errorf("Unexpected items %v", items)
	}
	c := &Clip{FrameCount: 90}
	if c.Played(30) != 3*time.Second {
		t.Errorf("Expected 3s played, got %v", c.Played(30))
	}
}
