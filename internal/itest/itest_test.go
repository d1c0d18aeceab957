// If you are AI: This file contains end-to-end tests that render real mosaics with ffmpeg.

package itest

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"mosaic/internal/ffx"
)

// smallCanvas keeps renders fast.
var smallCanvas = []string{"-x", "128", "-y", "72", "-r", "10", "-log-format", "json", "-no-progress"}

func TestRenderDualWithAudio(t *testing.T) {
	tools := RequireTools(t)
	bin := BuildBinary(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	left := MakeFolder(t, ctx, tools, 2*time.Second, 1*time.Second)
	right := MakeFolder(t, ctx, tools, 2*time.Second)
	work := t.TempDir()
	out := filepath.Join(work, "out.mp4")

	args := append([]string{"-f", left, "-f", right, "-o", out, "-s", "dual", "-ord", "as-input"}, smallCanvas...)
	if log, err := RunMosaic(ctx, bin, work, args...); err != nil {
		t.Fatalf("Render failed: %v\n%s", err, log)
	}

	got, err := ffx.NewProber(tools).Probe(ctx, out)
	if err != nil {
		t.Fatalf("Failed to probe output: %v", err)
	}
	if math.Abs(got.Seconds()-2) > 0.5 {
		t.Errorf("Expected about 2s of output, got %v", got)
	}
	if _, err := os.Stat(filepath.Join(work, "__temp__out.mp4")); !os.IsNotExist(err) {
		t.Errorf("Expected temp video removed, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(work, "TempFolder")); !os.IsNotExist(err) {
		t.Errorf("Expected workspace removed, got %v", err)
	}
}

func TestRenderBalancedWithoutAudio(t *testing.T) {
	tools := RequireTools(t)
	bin := BuildBinary(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	src := MakeFolder(t, ctx, tools, 2*time.Second, 1*time.Second, 1*time.Second, 2*time.Second)
	work := t.TempDir()
	out := filepath.Join(work, "quad.mkv")

	args := append([]string{"-f", src, "-o", out, "-s", "quad", "-no-audio"}, smallCanvas...)
	if log, err := RunMosaic(ctx, bin, work, args...); err != nil {
		t.Fatalf("Render failed: %v\n%s", err, log)
	}
	got, err := ffx.NewProber(tools).Probe(ctx, out)
	if err != nil {
		t.Fatalf("Failed to probe output: %v", err)
	}
	if math.Abs(got.Seconds()-1) > 0.5 {
		t.Errorf("Expected about 1s of output, got %v", got)
	}
}

func TestLengthReport(t *testing.T) {
	tools := RequireTools(t)
	bin := BuildBinary(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	left := MakeFolder(t, ctx, tools, 3*time.Second)
	right := MakeFolder(t, ctx, tools, 2*time.Second)
	work := t.TempDir()

	log, err := RunMosaic(ctx, bin, work, "-f", left, "-f", right, "-o", "unused.mp4", "-l", "-log-level", "error")
	if err != nil {
		t.Fatalf("Report failed: %v\n%s", err, log)
	}
	for _, want := range []string{"Region 0: 1 clips, 00:00:03", "Region 1: 1 clips, 00:00:02", "Output length: 00:00:02"} {
		if !strings.Contains(log, want) {
			t.Errorf("Report lacks %q:\n%s", want, log)
		}
	}
	if _, err := os.Stat(filepath.Join(work, "unused.mp4")); !os.IsNotExist(err) {
		t.Error("Report mode must not render")
	}
}

func TestRejectsFolderCount(t *testing.T) {
	tools := RequireTools(t)
	bin := BuildBinary(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dirs := []string{
		MakeFolder(t, ctx, tools, time.Second),
		MakeFolder(t, ctx, tools, time.Second),
		MakeFolder(t, ctx, tools, time.Second),
	}
	log, err := RunMosaic(ctx, bin, t.TempDir(), "-f", dirs[0], "-f", dirs[1], "-f", dirs[2], "-o", "x.mp4", "-s", "quad")
	if err == nil {
		t.Fatalf("Expected failure for three folders on quad:\n%s", log)
	}
	if !strings.Contains(log, "unsupported folder count") {
		t.Errorf("Unexpected error output:\n%s", log)
	}
}
