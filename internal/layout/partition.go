// If you are AI: This file implements the per-layout canvas partition rules.
// All arithmetic is integer; remainders are absorbed by one region so rows and columns tile.

package layout

// Rect is the pixel size of one region.
type Rect struct {
	W int
	H int
}

// Canvas is the output picture geometry.
type Canvas struct {
	Width  int
	Height int
	FPS    float64
}

// FrameBytes returns the size of one packed RGB24 output frame.
func (c Canvas) FrameBytes() int {
	return c.Width * c.Height * 3
}

// partitionMono fills the canvas with one region.
func partitionMono(w, h int) []Rect {
	return []Rect{{w, h}}
}

// partitionDual splits the canvas into halves.
func partitionDual(w, h int) []Rect {
	return []Rect{{w / 2, h}, {w - w/2, h}}
}

// partitionTriple splits into thirds, the centre takes the remainder.
func partitionTriple(w, h int) []Rect {
	ow := w / 3
	return []Rect{{ow, h}, {w - 2*ow, h}, {ow, h}}
}

// partitionQuad splits into a 2x2 grid.
func partitionQuad(w, h int) []Rect {
	w1, h1 := w/2, h/2
	w2, h2 := w-w1, h-h1
	return []Rect{{w1, h1}, {w2, h1}, {w1, h2}, {w2, h2}}
}

// partitionVertEmph puts a tall centre between two columns of stacked thirds.
func partitionVertEmph(w, h int) []Rect {
	w23 := w / 3
	h1 := h / 2
	h2 := h - h1
	return []Rect{{w - 2*w23, h}, {w23, h1}, {w23, h1}, {w23, h2}, {w23, h2}}
}

// partitionVertEmph2 uses eighths: a 2/8 centre between 3/8 stacked columns.
func partitionVertEmph2(w, h int) []Rect {
	owx := w % 8
	ow := (w - owx) / 8
	h1 := h / 2
	h2 := h - h1
	return []Rect{{2*ow + owx, h}, {3 * ow, h1}, {3 * ow, h1}, {3 * ow, h2}, {3 * ow, h2}}
}

// partitionHorizEmph puts a stacked centre between two full-height thirds.
func partitionHorizEmph(w, h int) []Rect {
	w23 := w / 3
	h1 := h / 2
	mid := w - 2*w23
	return []Rect{{w23, h}, {mid, h1}, {mid, h - h1}, {w23, h}}
}

// partitionHorizEmph2 uses quarters: a 2/4 stacked centre between 1/4 sides.
func partitionHorizEmph2(w, h int) []Rect {
	owx := w % 4
	ow := (w - owx) / 4
	h1 := h / 2
	return []Rect{{ow, h}, {2*ow + owx, h1}, {2*ow + owx, h - h1}, {ow, h}}
}

// partitionSideVert puts a full-height third beside a stacked two-thirds column.
func partitionSideVert(w, h int) []Rect {
	owx := w % 3
	ow := (w - owx) / 3
	h1 := h / 2
	return []Rect{{ow, h}, {2*ow + owx, h1}, {2*ow + owx, h - h1}}
}

// centreColumns returns the 3/5 centre width, the side widths, and the centre halves.
func centreColumns(w int) (mid, left, right, midLeft, midRight int) {
	mid = w / 5 * 3
	left = (w - mid) / 2
	right = w - mid - left
	midLeft = mid / 2
	midRight = mid - midLeft
	return
}

// partitionCentreEmphVert puts a 3/5 top centre over two halves between full-height sides.
func partitionCentreEmphVert(w, h int) []Rect {
	mid, left, right, midLeft, midRight := centreColumns(w)
	top := h / 5 * 3
	bottom := h - top
	return []Rect{{mid, top}, {left, h}, {right, h}, {midLeft, bottom}, {midRight, bottom}}
}

// partitionMoreHoriz adds a short region under each side column.
func partitionMoreHoriz(w, h int) []Rect {
	mid, left, right, midLeft, midRight := centreColumns(w)
	midBig := h / 5 * 3
	midSmall := h - midBig
	sideBig := h / 3 * 2
	sideSmall := h - sideBig
	return []Rect{
		{mid, midBig},
		{left, sideBig}, {right, sideBig},
		{midLeft, midSmall}, {midRight, midSmall},
		{left, sideSmall}, {right, sideSmall},
	}
}

// partitionExtendedLandscape stacks three regions in each side column.
// Side regions alternate left and right: 3,5,7 on the left, 4,6,8 on the right.
func partitionExtendedLandscape(w, h int) []Rect {
	mid, left, right, midLeft, midRight := centreColumns(w)
	a := h / 3
	b := h / 3
	c := h - a - b
	midBig := h / 5 * 3
	midSmall := h - midBig
	return []Rect{
		{mid, midBig},
		{midLeft, midSmall}, {midRight, midSmall},
		{left, a}, {right, a},
		{left, b}, {right, b},
		{left, c}, {right, c},
	}
}

// partitionExtendedLandscape2 puts a 2/3-height centre with stacked sides over a row of thirds.
func partitionExtendedLandscape2(w, h int) []Rect {
	third := w / 3
	thirdMid := w - 2*third
	top := h / 3
	bottom := h - 2*top
	mid, left, right, _, _ := centreColumns(w)
	return []Rect{
		{mid, 2 * top},
		{third, bottom}, {thirdMid, bottom}, {third, bottom},
		{left, top}, {right, top},
		{left, top}, {right, top},
	}
}

// partitionOffsetVH4x4 splits into four columns, each with a short and a tall region.
func partitionOffsetVH4x4(w, h int) []Rect {
	col := w / 4
	first := w - 3*col
	short := h / 4
	tall := h - short
	return []Rect{
		{first, short}, {col, short}, {col, short}, {col, short},
		{col, tall}, {col, tall}, {first, tall}, {col, tall},
	}
}
