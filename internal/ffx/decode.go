// If you are AI: This file launches per-clip ffmpeg decoders producing raw RGB24 frames.
// Frames are read from stdout and log lines from stderr; both are merged into one event stream.

package ffx

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"mosaic/internal/core/frame"
)

// Event is one item from a decode stream: a frame or a log line.
type Event struct {
	Kind    EventKind
	Frame   *frame.Frame
	Level   LogLevel
	Message string
}

// Stream yields decode events until io.EOF.
type Stream interface {
	Next() (Event, error)
	Close() error
}

// Decoder starts a decode stream scaled and cropped to w by h at fps.
type Decoder interface {
	Launch(ctx context.Context, src string, w, h int, fps float64) (Stream, error)
}

// FFmpegDecoder decodes with an ffmpeg subprocess per clip.
type FFmpegDecoder struct {
	Tools Tools
	// Args are placed before the input, e.g. "-hwaccel auto".
	Args []string
}

// NewDecoder creates a decoder with extra input arguments.
func NewDecoder(t Tools, args []string) *FFmpegDecoder {
	return &FFmpegDecoder{Tools: t.withDefaults(), Args: args}
}

// DecodeFilter scales to cover w by h, centre-crops and resamples to fps.
func DecodeFilter(w, h int, fps float64) string {
	return fmt.Sprintf("[0:v]scale=%d:%d:force_original_aspect_ratio=increase[a];[a]crop=w=%d:h=%d[b];[b]fps=fps=%g[output]",
		w, h, w, h, fps)
}

// DecodeArgs returns the ffmpeg arguments for decoding src.
func DecodeArgs(src string, w, h int, fps float64, extra []string) []string {
	args := []string{"-hide_banner", "-nostdin", "-nostats", "-loglevel", "level+info"}
	args = append(args, extra...)
	return append(args,
		"-i", src,
		"-filter_complex", DecodeFilter(w, h, fps),
		"-map", "[output]",
		"-an",
		"-f", "rawvideo", "-pix_fmt", "rgb24",
		"pipe:1",
	)
}

// Launch starts ffmpeg for src.
func (d *FFmpegDecoder) Launch(ctx context.Context, src string, w, h int, fps float64) (Stream, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("decode %s: invalid size %dx%d", src, w, h)
	}
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, d.Tools.withDefaults().FFmpeg, DecodeArgs(src, w, h, fps, d.Args)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("decode %s: %w", src, err)
	}
	return newPipeStream(stdout, stderr, w, h, cmd.Wait, cancel), nil
}

// pipeStream merges frame and log readers into a single event stream.
type pipeStream struct {
	frames chan *frame.Frame
	logs   chan Event
	done   chan struct{}
	wg     sync.WaitGroup

	wait   func() error
	stop   func()
	waited bool

	closeOnce sync.Once
}

// newPipeStream starts the reader goroutines. wait reaps the process; stop kills it.
func newPipeStream(stdout, stderr io.Reader, w, h int, wait func() error, stop func()) *pipeStream {
	s := &pipeStream{
		frames: make(chan *frame.Frame, 2),
		logs:   make(chan Event, 16),
		done:   make(chan struct{}),
		wait:   wait,
		stop:   stop,
	}
	s.wg.Add(2)
	go s.readFrames(stdout, w, h)
	go s.readLogs(stderr)
	return s
}

// readFrames reads whole frames until the pipe ends. A trailing partial frame is dropped.
func (s *pipeStream) readFrames(r io.Reader, w, h int) {
	defer s.wg.Done()
	defer close(s.frames)
	for {
		f := frame.New(w, h)
		if _, err := io.ReadFull(r, f.Data); err != nil {
			f.Release()
			return
		}
		select {
		case s.frames <- f:
		case <-s.done:
			f.Release()
			return
		}
	}
}

// readLogs turns stderr lines into log events.
func (s *pipeStream) readLogs(r io.Reader) {
	defer s.wg.Done()
	defer close(s.logs)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		level, msg := ParseLogLine(scanner.Text())
		if msg == "" {
			continue
		}
		select {
		case s.logs <- Event{Kind: EventLog, Level: level, Message: msg}:
		case <-s.done:
			return
		}
	}
}

// Next returns the next frame or log event, and io.EOF once both pipes are drained.
// A non-zero exit is reported as one error-level log event before io.EOF.
func (s *pipeStream) Next() (Event, error) {
	frames, logs := s.frames, s.logs
	for frames != nil || logs != nil {
		select {
		case f, ok := <-frames:
			if !ok {
				frames, s.frames = nil, nil
				continue
			}
			return Event{Kind: EventFrame, Frame: f}, nil
		case e, ok := <-logs:
			if !ok {
				logs, s.logs = nil, nil
				continue
			}
			return e, nil
		}
	}

	if !s.waited {
		s.waited = true
		s.wg.Wait()
		if err := s.wait(); err != nil {
			return Event{Kind: EventLog, Level: LevelError, Message: fmt.Sprintf("decoder exited: %v", err)}, nil
		}
	}
	return Event{}, io.EOF
}

// Close stops the decoder and releases any frame still buffered.
func (s *pipeStream) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		s.stop()
		if s.frames != nil {
			for f := range s.frames {
				f.Release()
			}
		}
		if s.logs != nil {
			for range s.logs {
			}
		}
		s.wg.Wait()
		if !s.waited {
			s.waited = true
			_ = s.wait()
		}
	})
	return nil
}
