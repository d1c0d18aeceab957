// If you are AI: This file reads media durations with ffprobe's JSON output.

package ffx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// ErrNoDuration is returned when ffprobe reports no usable duration.
var ErrNoDuration = errors.New("no duration reported")

// Prober runs ffprobe against source files.
type Prober struct {
	Tools Tools
}

// NewProber creates a prober using the given binaries.
func NewProber(t Tools) *Prober {
	return &Prober{Tools: t.withDefaults()}
}

// probeOutput is the subset of ffprobe's JSON that carries the duration.
type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// ProbeArgs returns the ffprobe arguments for path.
func ProbeArgs(path string) []string {
	return []string{"-v", "quiet", "-print_format", "json", "-show_format", path}
}

// Probe returns the container duration of path.
func (p *Prober) Probe(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, p.Tools.withDefaults().FFprobe, ProbeArgs(path)...)
	out, err := cmd.Output()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	d, err := ParseProbe(out)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return d, nil
}

// ParseProbe extracts the format duration from ffprobe JSON.
func ParseProbe(data []byte) (time.Duration, error) {
	var parsed probeOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return 0, fmt.Errorf("decode probe output: %w", err)
	}
	raw := strings.TrimSpace(parsed.Format.Duration)
	if raw == "" || raw == "N/A" {
		return 0, ErrNoDuration
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", raw, err)
	}
	if secs < 0 {
		return 0, fmt.Errorf("%w: negative duration %q", ErrNoDuration, raw)
	}
	return time.Duration(secs * float64(time.Second)).Round(time.Millisecond), nil
}
