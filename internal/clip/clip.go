// If you are AI: This file defines the Clip model shared by grouping, cursors and the audio pass.

package clip

import (
	"fmt"
	"time"

	"mosaic/internal/grouping"
)

// State is the decode state of a clip.
type State int

const (
	Unstarted State = iota
	Decoding
	Exhausted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Unstarted:
		return "unstarted"
	case Decoding:
		return "decoding"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Clip is one source video file.
type Clip struct {
	Path string
	// Duration is the probed length in milliseconds; valid only when Probed is set.
	Duration int64
	Probed   bool

	State      State
	FrameCount int64
	// FrameStart is the output frame index at which the clip became active.
	FrameStart int64
}

// New creates an unprobed clip for path.
func New(path string) *Clip {
	return &Clip{Path: path}
}

// Length returns the probed duration, or zero when unknown.
func (c *Clip) Length() time.Duration {
	if !c.Probed {
		return 0
	}
	return time.Duration(c.Duration) * time.Millisecond
}

// SetLength records a probed duration.
func (c *Clip) SetLength(d time.Duration) {
	c.Duration = d.Milliseconds()
	c.Probed = true
}

// Played returns the output time covered by the clip's produced frames.
func (c *Clip) Played(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(c.FrameCount) / fps * float64(time.Second))
}

// Items converts clips to grouping items; unprobed clips count as zero length.
func Items(clips []*Clip) []grouping.Item {
	items := make([]grouping.Item, len(clips))
	for i, c := range clips {
		items[i] = grouping.Item{Duration: c.Duration}
		if !c.Probed {
			items[i].Duration = 0
		}
	}
	return items
}

// Total returns the summed probed duration of clips.
func Total(clips []*Clip) time.Duration {
	var total time.Duration
	for _, c := range clips {
		total += c.Length()
	}
	return total
}
