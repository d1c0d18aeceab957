// If you are AI: This file prints the length report: per-region totals and the output length.

package render

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"mosaic/internal/clip"
)

// report writes region lengths and, for the listing mode, every clip.
func (r *Renderer) report(groups [][]*clip.Clip) error {
	out := r.deps.Out
	shortest := time.Duration(-1)
	unknown := false
	for i, g := range groups {
		total := clip.Total(g)
		missing := 0
		for _, c := range g {
			if !c.Probed {
				missing++
			}
		}
		if missing > 0 {
			unknown = true
		}
		if shortest < 0 || total < shortest {
			shortest = total
		}

		line := fmt.Sprintf("Region %d: %d clips, %s", i, len(g), clock(total))
		if missing > 0 {
			line += fmt.Sprintf(" (+%d of unknown length)", missing)
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
		if r.settings.Report != ReportListing {
			continue
		}
		for _, c := range g {
			length := "unknown"
			if c.Probed {
				length = clock(c.Length())
			}
			if _, err := fmt.Fprintf(out, "    %s  %s\n", length, c.Path); err != nil {
				return err
			}
		}
	}

	frames := int64(shortest.Seconds() * r.settings.Canvas.FPS)
	suffix := ""
	if unknown {
		suffix = " at least"
	}
	_, err := fmt.Fprintf(out, "Output length:%s %s (%s frames at %g fps)\n",
		suffix, clock(shortest), humanize.Comma(frames), r.settings.Canvas.FPS)
	return err
}
