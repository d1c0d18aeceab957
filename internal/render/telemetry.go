// If you are AI: This file reports video pass progress: periodic log lines and an
// optional progress bar when stderr is a terminal.

package render

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"mosaic/internal/logging"
)

// telemetry tracks throughput for the video pass.
type telemetry struct {
	fps    float64
	every  *rate.Sometimes
	start  time.Time
	last   time.Time
	frames int64
	bar    *progressbar.ProgressBar
	logger zerolog.Logger
}

// newTelemetry logs every Interval seconds of output; expected may be -1 when unknown.
func newTelemetry(s Settings, expected int64, logger zerolog.Logger) *telemetry {
	every := int(s.Canvas.FPS * float64(s.Interval))
	if every < 1 {
		every = 1
	}
	now := time.Now()
	t := &telemetry{
		fps:    s.Canvas.FPS,
		every:  &rate.Sometimes{Every: every},
		start:  now,
		last:   now,
		logger: logger,
	}
	if s.Progress && logging.IsTerminal(os.Stderr) {
		t.bar = progressbar.NewOptions64(expected,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetItsString("frames"),
			progressbar.OptionThrottle(250*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		)
	}
	return t
}

// clock formats a duration as hh:mm:ss.
func clock(d time.Duration) string {
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// videoLength returns the output time covered by frames.
func videoLength(frames int64, fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(frames) / fps * float64(time.Second))
}

// frame records that frames have been written and bytes sent to the encoder.
func (t *telemetry) frame(frames, bytes int64) {
	if t.bar != nil {
		_ = t.bar.Add(1)
	}
	t.every.Do(func() {
		now := time.Now()
		if t.frames == 0 {
			t.last, t.frames = now, frames
			return
		}
		throughput := float64(frames-t.frames) / now.Sub(t.last).Seconds()
		t.last, t.frames = now, frames
		t.logger.Info().
			Str("frames", humanize.Comma(frames)).
			Str("video", clock(videoLength(frames, t.fps))).
			Str("fps", fmt.Sprintf("%.2f", throughput)).
			Str("written", humanize.Bytes(uint64(bytes))).
			Msg("Rendering")
	})
}

// finish closes the bar and logs the pass summary.
func (t *telemetry) finish(frames, bytes int64) {
	if t.bar != nil {
		_ = t.bar.Finish()
	}
	elapsed := time.Since(t.start)
	avg := 0.0
	if elapsed > 0 {
		avg = float64(frames) / elapsed.Seconds()
	}
	t.logger.Info().
		Str("frames", humanize.Comma(frames)).
		Str("video", clock(videoLength(frames, t.fps))).
		Str("elapsed", elapsed.Round(time.Second).String()).
		Str("fps", fmt.Sprintf("%.2f", avg)).
		Str("written", humanize.Bytes(uint64(bytes))).
		Msg("Video pass finished")
}
