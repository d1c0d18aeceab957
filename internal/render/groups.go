// If you are AI: This file turns scanned folders into one ordered clip group per region.

package render

import (
	"errors"
	"fmt"

	"mosaic/internal/clip"
	"mosaic/internal/grouping"
)

// ErrEmptyGroup is returned when a region would have no clips.
var ErrEmptyGroup = errors.New("region has no clips")

// assign builds the per-region groups for the layout from folder clip lists.
func (r *Renderer) assign(feeds []Feed, folders [][]*clip.Clip) ([][]*clip.Clip, error) {
	groups := make([][]*clip.Clip, r.layout.Count())
	for _, feed := range feeds {
		clips := folders[feed.Folder]
		if len(feed.Regions) == 1 {
			groups[feed.Regions[0]] = clips
			continue
		}
		split, err := r.balance(clips, len(feed.Regions))
		if err != nil {
			return nil, fmt.Errorf("folder %d: %w", feed.Folder, err)
		}
		for i, region := range feed.Regions {
			groups[region] = split[i]
		}
	}

	for i := range groups {
		if len(groups[i]) == 0 {
			return nil, fmt.Errorf("%w: region %d", ErrEmptyGroup, i)
		}
		groups[i] = clip.Sort(groups[i], r.settings.Order, r.settings.Seed)
	}
	return groups, nil
}

// balance splits clips into k groups of similar total duration. Clips without a
// known length are dropped unless configured to be kept; kept ones go to empty
// groups first and are then dealt round-robin.
func (r *Renderer) balance(clips []*clip.Clip, k int) ([][]*clip.Clip, error) {
	probed, unprobed := clip.Partition(clips)
	if !r.settings.KeepUnprobed {
		if len(unprobed) > 0 {
			r.logger.Warn().Int("clips", len(unprobed)).Msg("Dropping clips without a known length from balancing")
		}
		unprobed = nil
	}

	var split [][]*clip.Clip
	if len(probed) < k && len(probed)+len(unprobed) >= k {
		split = make([][]*clip.Clip, k)
		for i, c := range probed {
			split[i] = []*clip.Clip{c}
		}
	} else {
		a, err := grouping.Balance(clip.Items(probed), k, r.settings.Grouping)
		if err != nil {
			return nil, err
		}
		split = grouping.Split(probed, k, a)
	}
	dealUnprobed(split, unprobed)

	for i, g := range split {
		r.logger.Debug().Int("group", i).Int("clips", len(g)).Dur("length", clip.Total(g)).Msg("Group balanced")
	}
	return split, nil
}

// dealUnprobed fills empty groups with clips first, then deals the rest round-robin.
func dealUnprobed(groups [][]*clip.Clip, clips []*clip.Clip) {
	next := 0
	for i := range groups {
		if next == len(clips) {
			return
		}
		if len(groups[i]) == 0 {
			groups[i] = append(groups[i], clips[next])
			next++
		}
	}
	for i, c := range clips[next:] {
		groups[i%len(groups)] = append(groups[i%len(groups)], c)
	}
}
