// If you are AI: This file defines grouping items, assignments and the group metrics
// shared by every balancing strategy.

package grouping

import (
	"errors"
	"sort"
)

var (
	// ErrNoGroups is returned when the requested group count is not positive.
	ErrNoGroups = errors.New("group count must be positive")
	// ErrTooFewItems is returned when there are fewer items than groups.
	ErrTooFewItems = errors.New("fewer items than groups")
	// ErrUnknownStrategy is returned for an unrecognised strategy name.
	ErrUnknownStrategy = errors.New("unknown grouping strategy")
	// ErrItemSwapGroups is returned when item swapping is asked for outside 2..4 groups.
	ErrItemSwapGroups = errors.New("item swap supports 2 to 4 groups")
)

// Item is one duration to be placed in a group, in milliseconds.
// Items are identified by their position in the input slice.
type Item struct {
	Duration int64
}

// Assignment maps each item index to its group index.
type Assignment []int

// roundRobin assigns positions in order to groups 0..k-1 cyclically.
func roundRobin(order []int, k int) Assignment {
	a := make(Assignment, len(order))
	for rank, idx := range order {
		a[idx] = rank % k
	}
	return a
}

// identity returns the indices 0..n-1.
func identity(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// byDuration returns item indices sorted by duration, ascending or descending.
// Equal durations keep input order.
func byDuration(items []Item, descending bool) []int {
	order := identity(len(items))
	sort.SliceStable(order, func(i, j int) bool {
		if descending {
			return items[order[i]].Duration > items[order[j]].Duration
		}
		return items[order[i]].Duration < items[order[j]].Duration
	})
	return order
}

// clone returns an independent copy of the assignment.
func (a Assignment) clone() Assignment {
	out := make(Assignment, len(a))
	copy(out, a)
	return out
}

// Valid reports whether the assignment covers n items with k non-empty groups.
func (a Assignment) Valid(n, k int) bool {
	if len(a) != n || k <= 0 {
		return false
	}
	counts := make([]int, k)
	for _, g := range a {
		if g < 0 || g >= k {
			return false
		}
		counts[g]++
	}
	for _, c := range counts {
		if c == 0 {
			return false
		}
	}
	return true
}

// counts returns the number of items per group.
func (a Assignment) counts(k int) []int {
	out := make([]int, k)
	for _, g := range a {
		out[g]++
	}
	return out
}

// Sums returns the total duration of each group.
func Sums(items []Item, k int, a Assignment) []int64 {
	sums := make([]int64, k)
	for idx, g := range a {
		sums[g] += items[idx].Duration
	}
	return sums
}

// Spread returns the difference between the largest and smallest group totals.
func Spread(items []Item, k int, a Assignment) int64 {
	sums := Sums(items, k, a)
	lo, hi := minMax(sums)
	return sums[hi] - sums[lo]
}

// minMax returns the indices of the smallest and largest sums.
// Ties resolve to the lowest index.
func minMax(sums []int64) (lo, hi int) {
	for i, s := range sums {
		if s < sums[lo] {
			lo = i
		}
		if s > sums[hi] {
			hi = i
		}
	}
	return lo, hi
}

// spreadOf returns max-min of sums.
func spreadOf(sums []int64) int64 {
	lo, hi := minMax(sums)
	return sums[hi] - sums[lo]
}

// squares returns the sum of squared group totals (in seconds to stay far from overflow).
func squares(sums []int64) float64 {
	var total float64
	for _, s := range sums {
		f := float64(s) / 1000
		total += f * f
	}
	return total
}

// avgDeviation is the mean distance of each group above the smallest group.
func avgDeviation(sums []int64) int64 {
	lo, _ := minMax(sums)
	var total int64
	for _, s := range sums {
		total += s - sums[lo]
	}
	return total / int64(len(sums))
}

// Split distributes values into k groups following the assignment.
// Values keep their relative input order inside each group.
func Split[T any](values []T, k int, a Assignment) [][]T {
	out := make([][]T, k)
	for idx, g := range a {
		out[g] = append(out[g], values[idx])
	}
	return out
}
