// If you are AI: This file implements one audio export task: a clip's played audio
// padded to the exact time it was on screen, or silence when the clip has no audio.

package mixdown

import (
	"context"
	"fmt"
	"path/filepath"

	"mosaic/internal/clip"
)

// Task exports the audio of one completed clip.
type Task struct {
	Group  int
	Index  int
	Clip   *clip.Clip
	Out    string
	Length float64 // seconds on screen
}

// segmentName is the file name of a clip's exported audio.
func segmentName(group, index int) string {
	return fmt.Sprintf("g%df%d.wav", group, index)
}

// NewTask creates the export task for a group's index-th clip, or false if it never played.
func NewTask(dir string, group, index int, c *clip.Clip, fps float64) (Task, bool) {
	if c.FrameCount < 1 || fps <= 0 {
		return Task{}, false
	}
	return Task{
		Group:  group,
		Index:  index,
		Clip:   c,
		Out:    filepath.Join(dir, segmentName(group, index)),
		Length: float64(c.FrameCount) / fps,
	}, true
}

// Run exports the audio. When export fails the segment is filled with silence and
// the export error is returned as fallback; a silence failure is fatal.
func (t Task) Run(ctx context.Context, r Runner, opts Options) (fallback error, err error) {
	exportErr := r.ExportAudio(ctx, t.Clip.Path, t.Out, t.Length, opts.ClipFilter, opts.SampleRate)
	if exportErr == nil {
		return nil, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err := r.Silence(ctx, t.Out, t.Length, opts.SampleRate); err != nil {
		return exportErr, fmt.Errorf("silence for %s: %w", t.Clip.Path, err)
	}
	return fmt.Errorf("%s: %w", t.Clip.Path, exportErr), nil
}
