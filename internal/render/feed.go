// If you are AI: This file decides which source folder feeds which regions for each layout.

package render

import (
	"errors"
	"fmt"

	"mosaic/internal/layout"
)

// ErrFolderCount is returned when a layout has no feed plan for the folder count.
var ErrFolderCount = errors.New("unsupported folder count for layout")

// Feed sends one folder's clips to a set of regions. With several regions the
// folder's clips are balanced across them by duration.
type Feed struct {
	Folder  int
	Regions []int
}

// span returns the regions lo through hi inclusive.
func span(lo, hi int) []int {
	out := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}

// specialFeeds lists the layouts that accept fewer folders than regions.
var specialFeeds = map[layout.Layout]map[int][][]int{
	layout.VertEmph:   {2: {{0}, span(1, 4)}},
	layout.VertEmph2:  {2: {{0}, span(1, 4)}},
	layout.HorizEmph:  {2: {{0, 3}, {1, 2}}},
	layout.HorizEmph2: {2: {{0, 3}, {1, 2}}},
	layout.SideVert:   {2: {{0}, {1, 2}}},
	layout.SideVert2:  {2: {{0}, {1, 2}}},
	layout.CentreEmphVert: {
		2: {{1, 2}, {0, 3, 4}},
		3: {{0}, {1, 2}, {3, 4}},
	},
	layout.CentreEmphVert2: {
		2: {{1, 2}, {0, 3, 4}},
		3: {{0}, {1, 2}, {3, 4}},
	},
	layout.MoreHoriz:  {3: {{0}, {1, 2}, span(3, 6)}},
	layout.MoreHoriz2: {3: {{0}, {1, 2}, span(3, 6)}},
	layout.ExtendedLandscape: {
		2: {{0}, span(1, 8)},
		3: {{0}, {1, 2}, span(3, 8)},
		4: {{0}, {1, 2}, span(3, 5), span(6, 8)},
	},
	layout.ExtendedLandscape2: {
		2: {{0}, span(1, 7)},
		3: {{0}, span(1, 3), span(4, 7)},
	},
	layout.OffsetVH4x4: {2: {span(0, 3), span(4, 7)}},
}

// FeedPlan returns the feeds for l given the number of source folders.
// One folder is balanced over every region; as many folders as regions map one to one.
func FeedPlan(l layout.Layout, folders int) ([]Feed, error) {
	n := l.Count()
	switch {
	case folders <= 0:
		return nil, fmt.Errorf("%w: layout %s needs at least one folder", ErrFolderCount, l)
	case folders == 1:
		return []Feed{{Folder: 0, Regions: span(0, n-1)}}, nil
	case folders == n:
		feeds := make([]Feed, n)
		for i := range feeds {
			feeds[i] = Feed{Folder: i, Regions: []int{i}}
		}
		return feeds, nil
	}

	plan, ok := specialFeeds[l][folders]
	if !ok {
		return nil, fmt.Errorf("%w: layout %s with %d regions cannot take %d folders", ErrFolderCount, l, n, folders)
	}
	feeds := make([]Feed, len(plan))
	for i, regions := range plan {
		feeds[i] = Feed{Folder: i, Regions: append([]int(nil), regions...)}
	}
	return feeds, nil
}
