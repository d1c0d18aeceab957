// If you are AI: This file builds the zerolog logger used across a run.

package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options selects the logger output.
type Options struct {
	Level  string
	Format string // console or json
	RunID  string
}

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// New returns a logger writing to stderr.
func New(opts Options) (zerolog.Logger, error) {
	return NewWithWriter(os.Stderr, IsTerminal(os.Stderr), opts)
}

// NewWithWriter returns a logger writing to w. Colour is used only when tty is set.
func NewWithWriter(w io.Writer, tty bool, opts Options) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("log level: %w", err)
		}
		level = parsed
	}

	out := w
	switch opts.Format {
	case "", "console":
		out = zerolog.ConsoleWriter{Out: w, NoColor: !tty, TimeFormat: time.TimeOnly}
	case "json":
	default:
		return zerolog.Nop(), fmt.Errorf("log format must be console or json, got %q", opts.Format)
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if opts.RunID != "" {
		ctx = ctx.Str("run", opts.RunID)
	}
	return ctx.Logger(), nil
}
