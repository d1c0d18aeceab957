// If you are AI: This file holds the per-layout audio placement table and renders it
// into an ffmpeg filter_complex graph for the final mux.

package layout

import (
	"fmt"
	"strings"
)

// Pan places one region's audio in the stereo field.
type Pan struct {
	// Balance shifts the input balance, -1 left to 1 right. Zero skips the stage.
	Balance float64
	// Angle is the surround placement in degrees.
	Angle int
	// GainDB attenuates the region. Zero skips the stage.
	GainDB float64
}

// left and right are the common hard side placements.
var (
	left  = Pan{Balance: -0.4, Angle: 270}
	right = Pan{Balance: 0.4, Angle: 90}
)

// gain returns p with an added attenuation.
func (p Pan) gain(db float64) Pan {
	p.GainDB = db
	return p
}

var (
	mixMono   = []Pan{{}}
	mixDual   = []Pan{left, right}
	mixTriple = []Pan{left, {}, right}
	mixQuad   = []Pan{{Angle: 315}, {Angle: 45}, left, right}

	mixVertEmph = []Pan{
		{},
		Pan{Angle: 315}.gain(-5), Pan{Angle: 45}.gain(-5),
		left.gain(-8), right.gain(-8),
	}
	mixHorizEmph = []Pan{left.gain(-5), {}, Pan{}.gain(-2), right.gain(-5)}

	mixSideVert = []Pan{
		{Balance: -0.5, Angle: 270},
		{Balance: 0.1, Angle: 20},
		Pan{Balance: 0.1, Angle: 20}.gain(-5),
	}
	mixSideVert2 = []Pan{
		{Balance: 0.5, Angle: 90},
		{Balance: -0.1, Angle: 340},
		Pan{Balance: -0.1, Angle: 340}.gain(-5),
	}

	mixCentreEmphVert = []Pan{
		{},
		left.gain(-2), right.gain(-2),
		Pan{Balance: 0.4, Angle: 270}.gain(-5), right.gain(-5),
	}
	mixMoreHoriz = []Pan{
		{},
		Pan{Balance: -0.6, Angle: 90}.gain(-2), Pan{Balance: -0.6, Angle: 270}.gain(-2),
		Pan{Balance: -0.2, Angle: 90}.gain(-5), Pan{Balance: -0.2, Angle: 270}.gain(-5),
		Pan{Balance: -0.4, Angle: 90}.gain(-5), Pan{Balance: -0.4, Angle: 270}.gain(-5),
	}
	mixExtendedLandscape = []Pan{
		{},
		Pan{Balance: -0.2, Angle: 90}.gain(-3), Pan{Balance: 0.2, Angle: 270}.gain(-3),
		Pan{Balance: -0.4, Angle: 90}.gain(-5), Pan{Balance: 0.4, Angle: 270}.gain(-5),
		Pan{Balance: -0.4, Angle: 90}.gain(-6), Pan{Balance: 0.4, Angle: 270}.gain(-6),
		Pan{Balance: -0.4, Angle: 90}.gain(-7), Pan{Balance: 0.4, Angle: 270}.gain(-7),
	}
	mixExtendedLandscape2 = []Pan{
		{},
		left.gain(-3), Pan{}.gain(-3), right.gain(-3),
		Pan{Balance: 0.4, Angle: 270}.gain(-5), right.gain(-6),
		left.gain(-5), Pan{Balance: -0.4, Angle: 90}.gain(-6),
	}
	mixOffsetVH4x4 = []Pan{
		Pan{Balance: -0.1, Angle: 315}.gain(-6),
		Pan{Balance: 0.1, Angle: 45}.gain(-6),
		left.gain(-6),
		right.gain(-6),
		left.gain(-3),
		right.gain(-3),
		Pan{Balance: -0.1, Angle: 315}.gain(-3),
		Pan{Balance: 0.1, Angle: 45}.gain(-3),
	}
)

// filter renders the per-input chain for one region.
func (p Pan) filter() string {
	stages := make([]string, 0, 3)
	if p.Balance != 0 {
		stages = append(stages, fmt.Sprintf("stereotools=balance_in=%g", p.Balance))
	}
	stages = append(stages, fmt.Sprintf("surround=chl_out=stereo:chl_in=stereo:angle=%d", p.Angle))
	if p.GainDB != 0 {
		stages = append(stages, fmt.Sprintf("volume=%gdB", p.GainDB))
	}
	return strings.Join(stages, ",")
}

// FilterGraph returns the mux graph for the layout. Input 0 is the silent video and
// input i+1 carries region i's audio; the mixed, normalised stream is labelled [d].
func FilterGraph(l Layout) string {
	mix := l.Mix()
	var b strings.Builder
	for i, p := range mix {
		fmt.Fprintf(&b, "[%d:a]%s[a%d];", i+1, p.filter(), i)
	}
	for i := range mix {
		fmt.Fprintf(&b, "[a%d]", i)
	}
	fmt.Fprintf(&b, "amix=inputs=%d[m];[m]loudnorm[d]", len(mix))
	return b.String()
}
