// If you are AI: This file runs the output encoder that consumes raw RGB24 frames on stdin.

package ffx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
)

// ErrBrokenPipe is returned when the encoder stops accepting frames.
var ErrBrokenPipe = errors.New("encoder pipe closed")

// brokenPipeHint is appended to broken pipe errors.
const brokenPipeHint = "check that the encoder arguments are supported by this ffmpeg build and that the output path is writable"

// EncodeOptions describes the raw input and the output file.
type EncodeOptions struct {
	Width  int
	Height int
	FPS    float64
	// Args are the codec arguments placed before the output path.
	Args   []string
	Output string
}

// EncodeArgs returns the ffmpeg arguments for the encoder sink.
func EncodeArgs(opts EncodeOptions) []string {
	args := []string{
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-r", fmt.Sprintf("%g", opts.FPS),
		"-i", "pipe:0",
		"-y",
	}
	args = append(args, opts.Args...)
	return append(args, opts.Output)
}

// Encoder writes frames into an ffmpeg process.
type Encoder struct {
	stdin  io.WriteCloser
	wait   func() error
	stderr *tail

	frames int64
	bytes  int64
}

// StartEncoder launches the encoder process.
func StartEncoder(ctx context.Context, t Tools, opts EncodeOptions) (*Encoder, error) {
	if opts.Width <= 0 || opts.Height <= 0 || opts.FPS <= 0 {
		return nil, fmt.Errorf("encoder: invalid canvas %dx%d@%g", opts.Width, opts.Height, opts.FPS)
	}
	cmd := exec.CommandContext(ctx, t.withDefaults().FFmpeg, EncodeArgs(opts)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	stderr := newTail(tailSize)
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("encoder: %w", err)
	}
	return newEncoder(stdin, cmd.Wait, stderr), nil
}

// newEncoder wraps an encoder input and its reaper.
func newEncoder(stdin io.WriteCloser, wait func() error, stderr *tail) *Encoder {
	return &Encoder{stdin: stdin, wait: wait, stderr: stderr}
}

// WriteFrame writes one complete frame.
func (e *Encoder) WriteFrame(data []byte) error {
	n, err := e.stdin.Write(data)
	e.bytes += int64(n)
	if err != nil {
		if isBrokenPipe(err) {
			msg := e.stderr.String()
			if msg != "" {
				return fmt.Errorf("%w after %d frames: %s (%s)", ErrBrokenPipe, e.frames, msg, brokenPipeHint)
			}
			return fmt.Errorf("%w after %d frames (%s)", ErrBrokenPipe, e.frames, brokenPipeHint)
		}
		return fmt.Errorf("encoder write: %w", err)
	}
	e.frames++
	return nil
}

// Frames returns the number of frames written.
func (e *Encoder) Frames() int64 {
	return e.frames
}

// Bytes returns the number of bytes written.
func (e *Encoder) Bytes() int64 {
	return e.bytes
}

// Close ends the input and waits for the encoder to finish the file.
func (e *Encoder) Close() error {
	closeErr := e.stdin.Close()
	if err := e.wait(); err != nil {
		if msg := e.stderr.String(); msg != "" {
			return fmt.Errorf("encoder: %w: %s", err, msg)
		}
		return fmt.Errorf("encoder: %w", err)
	}
	if closeErr != nil && !errors.Is(closeErr, os.ErrClosed) {
		return fmt.Errorf("encoder: %w", closeErr)
	}
	return nil
}

// isBrokenPipe reports whether err means the reader went away.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
