// If you are AI: This file provides helpers for building the mosaic binary and generating test clips.

package itest

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"mosaic/internal/ffx"
)

// RequireTools skips the test when ffmpeg or ffprobe is not installed.
func RequireTools(t *testing.T) ffx.Tools {
	t.Helper()
	tools := ffx.DefaultTools()
	if err := tools.Check(); err != nil {
		t.Skipf("ffmpeg tools unavailable: %v", err)
	}
	return tools
}

// BuildBinary compiles the mosaic command into a temporary directory.
func BuildBinary(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("go"); err != nil {
		t.Skipf("go toolchain unavailable: %v", err)
	}
	binPath := filepath.Join(t.TempDir(), "mosaic")
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../cmd/mosaic")
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		t.Fatalf("Failed to build binary: %v", err)
	}
	return binPath
}

// MakeClip writes a small test-pattern clip with a tone of the given length to dir.
func MakeClip(ctx context.Context, tools ffx.Tools, dir, name string, length time.Duration) (string, error) {
	out := filepath.Join(dir, name)
	secs := fmt.Sprintf("%g", length.Seconds())
	err := tools.Run(ctx,
		"-hide_banner", "-nostdin", "-loglevel", "error", "-y",
		"-f", "lavfi", "-i", "testsrc2=size=160x90:rate=25:duration="+secs,
		"-f", "lavfi", "-i", "sine=frequency=440:sample_rate=44100:duration="+secs,
		"-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
		"-c:a", "aac", "-shortest", out,
	)
	if err != nil {
		return "", fmt.Errorf("make clip %s: %w", name, err)
	}
	return out, nil
}

// MakeFolder creates a folder holding one clip per length.
func MakeFolder(t *testing.T, ctx context.Context, tools ffx.Tools, lengths ...time.Duration) string {
	t.Helper()
	dir := t.TempDir()
	for i, l := range lengths {
		if _, err := MakeClip(ctx, tools, dir, fmt.Sprintf("clip%02d.mp4", i), l); err != nil {
			t.Fatalf("Failed to generate clip: %v", err)
		}
	}
	return dir
}

// RunMosaic runs the binary with args from dir and returns its combined output.
func RunMosaic(ctx context.Context, binPath, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}
