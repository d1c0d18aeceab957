// If you are AI: This file builds the audio pass commands: per-clip export, silence,
// per-region concat and the final mux onto the silent video.

package ffx

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultSampleRate is the sample rate of intermediate audio files.
const DefaultSampleRate = 44100

// segmentFormat is the channel count and codec shared by every intermediate segment,
// so the per-region concat can copy streams.
var segmentFormat = []string{"-ac", "2", "-c:a", "pcm_s16le"}

// seconds formats a duration in seconds for ffmpeg.
func seconds(s float64) string {
	return fmt.Sprintf("%.6f", s)
}

// ExportAudioArgs exports src's audio filtered by chain and padded or trimmed to length seconds.
// The segment is stereo PCM at rate, matching SilenceArgs.
func ExportAudioArgs(src, out string, length float64, chain string, rate int) []string {
	filter := "[0:a]"
	if chain = strings.TrimSpace(chain); chain != "" {
		filter += chain + ","
	}
	filter += "apad=whole_dur=" + seconds(length) + "s[a]"
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-vn",
		"-filter_complex", filter,
		"-map", "[a]",
		"-t", seconds(length),
		"-ar", fmt.Sprint(rate),
	}
	args = append(args, segmentFormat...)
	return append(args, "-y", out)
}

// SilenceArgs generates length seconds of stereo silence in the segment format.
func SilenceArgs(out string, length float64, rate int) []string {
	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "lavfi",
		"-i", fmt.Sprintf("anullsrc=r=%d:cl=stereo", rate),
		"-t", seconds(length),
		"-ar", fmt.Sprint(rate),
	}
	args = append(args, segmentFormat...)
	return append(args, "-y", out)
}

// ConcatArgs joins the files named in a concat list.
func ConcatArgs(list, out string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "concat", "-safe", "0",
		"-i", list,
		"-c", "copy",
		"-y", out,
	}
}

// MuxArgs maps the video of the first input and the graph's [d] output into out.
func MuxArgs(video string, audio []string, graph, out string) []string {
	args := []string{"-hide_banner", "-loglevel", "error", "-i", video}
	for _, a := range audio {
		args = append(args, "-i", a)
	}
	return append(args,
		"-filter_complex", graph,
		"-c:v", "copy",
		"-map", "0:v:0",
		"-map", "[d]",
		"-y", out,
	)
}

// ConcatList renders a concat demuxer list for files.
func ConcatList(files []string) string {
	var b strings.Builder
	for _, f := range files {
		if abs, err := filepath.Abs(f); err == nil {
			f = abs
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(f, "'", `'\''`))
	}
	return b.String()
}

// ExportAudio writes one clip's padded audio to out.
func (t Tools) ExportAudio(ctx context.Context, src, out string, length float64, chain string, rate int) error {
	return t.Run(ctx, ExportAudioArgs(src, out, length, chain, rate)...)
}

// Silence writes length seconds of silence to out.
func (t Tools) Silence(ctx context.Context, out string, length float64, rate int) error {
	return t.Run(ctx, SilenceArgs(out, length, rate)...)
}

// ConcatAudio writes a concat list next to out and joins files into out.
func (t Tools) ConcatAudio(ctx context.Context, files []string, out string) error {
	list := strings.TrimSuffix(out, filepath.Ext(out)) + ".txt"
	if err := os.WriteFile(list, []byte(ConcatList(files)), 0o644); err != nil {
		return fmt.Errorf("write concat list: %w", err)
	}
	return t.Run(ctx, ConcatArgs(list, out)...)
}

// MuxAudio combines the silent video with region audio using graph.
func (t Tools) MuxAudio(ctx context.Context, video string, audio []string, graph, out string) error {
	return t.Run(ctx, MuxArgs(video, audio, graph, out)...)
}
