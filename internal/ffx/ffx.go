// If you are AI: This file locates the ffmpeg and ffprobe binaries and runs one-shot commands.
// Every media operation in this package is an ffmpeg subprocess.

package ffx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// ErrNotFound is returned when a tool binary is not on PATH.
var ErrNotFound = errors.New("binary not found")

// Tools names the ffmpeg and ffprobe executables.
type Tools struct {
	FFmpeg  string
	FFprobe string
}

// DefaultTools uses the binaries found on PATH.
func DefaultTools() Tools {
	return Tools{FFmpeg: "ffmpeg", FFprobe: "ffprobe"}
}

// withDefaults fills empty binary names.
func (t Tools) withDefaults() Tools {
	if strings.TrimSpace(t.FFmpeg) == "" {
		t.FFmpeg = "ffmpeg"
	}
	if strings.TrimSpace(t.FFprobe) == "" {
		t.FFprobe = "ffprobe"
	}
	return t
}

// Check verifies both binaries resolve.
func (t Tools) Check() error {
	t = t.withDefaults()
	for _, bin := range []string{t.FFmpeg, t.FFprobe} {
		if _, err := exec.LookPath(bin); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrNotFound, bin, err)
		}
	}
	return nil
}

// Run executes ffmpeg with args and returns an error carrying the stderr tail on failure.
func (t Tools) Run(ctx context.Context, args ...string) error {
	t = t.withDefaults()
	return run(ctx, t.FFmpeg, args...)
}

// run executes bin and waits for it.
func run(ctx context.Context, bin string, args ...string) error {
	cmd := exec.CommandContext(ctx, bin, args...)
	stderr := newTail(tailSize)
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if msg := stderr.String(); msg != "" {
			return fmt.Errorf("%s: %w: %s", bin, err, msg)
		}
		return fmt.Errorf("%s: %w", bin, err)
	}
	return nil
}

// tailSize bounds the stderr text kept for error messages.
const tailSize = 4096

// tail keeps the last bytes written to it.
type tail struct {
	mu  sync.Mutex
	max int
	buf []byte
}

// newTail creates a tail buffer keeping up to max bytes.
func newTail(max int) *tail {
	return &tail{max: max}
}

// Write appends p and drops the oldest bytes past the limit.
func (t *tail) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

// String returns the kept text without surrounding whitespace.
func (t *tail) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(bytes.TrimSpace(t.buf))
}
