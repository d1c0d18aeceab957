// If you are AI: This file defines the Layout sum type and its lookup table.
// Region count, partition rule, interleave plan and audio mix all come from one table row.

package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownLayout is returned by Parse for unrecognised names.
var ErrUnknownLayout = errors.New("unknown layout")

// Layout identifies how the canvas is divided into regions.
type Layout int

const (
	Mono Layout = iota
	Dual
	Triple
	Quad
	VertEmph
	VertEmph2
	HorizEmph
	HorizEmph2
	SideVert
	SideVert2
	CentreEmphVert
	CentreEmphVert2
	MoreHoriz
	MoreHoriz2
	ExtendedLandscape
	ExtendedLandscape2
	OffsetVH4x4
)

// definition is one row of the layout table.
type definition struct {
	name      string
	aliases   []string
	count     int
	partition func(w, h int) []Rect
	plan      Plan
	mix       []Pan
}

// All returns every layout in declaration order.
func All() []Layout {
	out := make([]Layout, len(table))
	for i := range table {
		out[i] = Layout(i)
	}
	return out
}

// def returns the table row, panicking on values outside the enum.
func (l Layout) def() *definition {
	if l < 0 || int(l) >= len(table) {
		panic(fmt.Sprintf("layout: invalid value %d", int(l)))
	}
	return &table[l]
}

// Count returns the number of regions the layout composes.
func (l Layout) Count() int {
	return l.def().count
}

// String returns the canonical layout name.
func (l Layout) String() string {
	if l < 0 || int(l) >= len(table) {
		return fmt.Sprintf("Layout(%d)", int(l))
	}
	return table[l].name
}

// Partition returns the region rectangles for a canvas of w by h pixels.
func (l Layout) Partition(w, h int) []Rect {
	return l.def().partition(w, h)
}

// Interleave returns the row visiting plan for the layout.
func (l Layout) Interleave() Plan {
	return l.def().plan
}

// Mix returns the per-region audio placement for the layout.
func (l Layout) Mix() []Pan {
	return l.def().mix
}

// normalize lowercases a name and strips separators.
func normalize(name string) string {
	r := strings.NewReplacer("-", "", "_", "", " ", "")
	return r.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// Parse resolves a layout by name or alias, ignoring case and separators.
func Parse(name string) (Layout, error) {
	key := normalize(name)
	for i := range table {
		if normalize(table[i].name) == key {
			return Layout(i), nil
		}
		for _, alias := range table[i].aliases {
			if normalize(alias) == key {
				return Layout(i), nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
}

// Names returns the canonical names of all layouts.
func Names() []string {
	out := make([]string, len(table))
	for i := range table {
		out[i] = table[i].name
	}
	return out
}

// table holds every layout, indexed by its Layout value.
var table = [...]definition{
	Mono: {name: "mono", aliases: []string{"1up", "single"}, count: 1, partition: partitionMono,
		plan: Plan{{one(0)}}, mix: mixMono},
	Dual: {name: "dual", aliases: []string{"2up"}, count: 2, partition: partitionDual,
		plan: Plan{{one(0), one(1)}}, mix: mixDual},
	Triple: {name: "triple", aliases: []string{"3up"}, count: 3, partition: partitionTriple,
		plan: Plan{{one(0), one(1), one(2)}}, mix: mixTriple},
	Quad: {name: "quad", aliases: []string{"4up"}, count: 4, partition: partitionQuad,
		plan: Plan{{one(0), one(1)}, {one(2), one(3)}}, mix: mixQuad},
	VertEmph: {name: "vert-emph", count: 5, partition: partitionVertEmph,
		plan: planVertEmph, mix: mixVertEmph},
	VertEmph2: {name: "vert-emph2", count: 5, partition: partitionVertEmph2,
		plan: planVertEmph, mix: mixVertEmph},
	HorizEmph: {name: "horiz-emph", count: 4, partition: partitionHorizEmph,
		plan: planHorizEmph, mix: mixHorizEmph},
	HorizEmph2: {name: "horiz-emph2", count: 4, partition: partitionHorizEmph2,
		plan: planHorizEmph, mix: mixHorizEmph},
	SideVert: {name: "side-vert", count: 3, partition: partitionSideVert,
		plan: Plan{{one(0), sw(Stage{1}, Stage{2})}}, mix: mixSideVert},
	SideVert2: {name: "side-vert2", count: 3, partition: partitionSideVert,
		plan: Plan{{sw(Stage{1}, Stage{2}), one(0)}}, mix: mixSideVert2},
	CentreEmphVert: {name: "centre-emph-vert", aliases: []string{"center-emph-vert"}, count: 5,
		partition: partitionCentreEmphVert,
		plan:      Plan{{one(1), sw(Stage{0}, Stage{3, 4}), one(2)}}, mix: mixCentreEmphVert},
	CentreEmphVert2: {name: "centre-emph-vert2", aliases: []string{"center-emph-vert2"}, count: 5,
		partition: partitionCentreEmphVert,
		plan:      Plan{{one(1), sw(Stage{3, 4}, Stage{0}), one(2)}}, mix: mixCentreEmphVert},
	MoreHoriz: {name: "more-horiz", count: 7, partition: partitionMoreHoriz,
		plan: Plan{{sw(Stage{5}, Stage{1}), sw(Stage{0}, Stage{3, 4}), sw(Stage{6}, Stage{2})}},
		mix:  mixMoreHoriz},
	MoreHoriz2: {name: "more-horiz2", count: 7, partition: partitionMoreHoriz,
		plan: Plan{{sw(Stage{1}, Stage{5}), sw(Stage{3, 4}, Stage{0}), sw(Stage{2}, Stage{6})}},
		mix:  mixMoreHoriz},
	ExtendedLandscape: {name: "extended-landscape", count: 9, partition: partitionExtendedLandscape,
		plan: Plan{{sw(Stage{3}, Stage{5}, Stage{7}), sw(Stage{0}, Stage{1, 2}), sw(Stage{4}, Stage{6}, Stage{8})}},
		mix:  mixExtendedLandscape},
	ExtendedLandscape2: {name: "extended-landscape2", count: 8, partition: partitionExtendedLandscape2,
		plan: Plan{
			{sw(Stage{4}, Stage{6}), one(0), sw(Stage{5}, Stage{7})},
			{one(1), one(2), one(3)},
		},
		mix: mixExtendedLandscape2},
	OffsetVH4x4: {name: "offset-vh-4x4", count: 8, partition: partitionOffsetVH4x4,
		plan: Plan{{sw(Stage{4}, Stage{2}), sw(Stage{0}, Stage{6}), sw(Stage{1}, Stage{7}), sw(Stage{5}, Stage{3})}},
		mix:  mixOffsetVH4x4},
}

// planVertEmph visits the tall centre region beside two stacked pairs.
var planVertEmph = Plan{
	{one(1), one(0), one(2)},
	{one(3), one(0), one(4)},
}

// planHorizEmph visits two full-height sides around a stacked centre.
var planHorizEmph = Plan{{one(0), sw(Stage{1}, Stage{2}), one(3)}}
