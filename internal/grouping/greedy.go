// If you are AI: This file implements the greedy migration heuristic and the swap refinement
// used when the partition search cannot meet its deviation bound.

package grouping

// maxIterations caps the heuristic loops so they terminate on any input.
const maxIterations = 256

// Greedy starts from a round-robin assignment and migrates items into the smallest group
// while the average deviation does not get worse.
// Items are considered longest first; a move never empties its source group.
// The average deviation never exceeds the round-robin start; the spread is not bounded.
func Greedy(items []Item, k int) Assignment {
	a := roundRobin(identity(len(items)), k)
	order := byDuration(items, true)
	last := avgDeviation(Sums(items, k, a))

	for i := 0; i < maxIterations; i++ {
		sums := Sums(items, k, a)
		lo, hi := minMax(sums)
		gap := sums[hi] - sums[lo]
		counts := a.counts(k)

		pick := -1
		for _, idx := range order {
			if a[idx] != lo && items[idx].Duration < gap && counts[a[idx]] > 1 {
				pick = idx
				break
			}
		}
		if pick < 0 {
			break
		}

		prev := a[pick]
		a[pick] = lo
		dev := avgDeviation(Sums(items, k, a))
		if dev > last {
			a[pick] = prev
			break
		}
		last = dev
	}
	return a
}

// candidate is a single refinement: a move of item j (i < 0) or a swap of items i and j.
type candidate struct {
	i, j   int
	spread int64
	sq     float64
}

// better reports whether c improves on the reference spread and square sum.
func (c candidate) better(spread int64, sq float64) bool {
	return c.spread < spread || (c.spread == spread && c.sq < sq)
}

// Swap refines an assignment by moving one item from the largest group to the smallest,
// or swapping a pair between them, picking the change with the lowest resulting spread.
// It stops when no change improves the spread (ties broken by squared totals).
func Swap(items []Item, k int, a Assignment) Assignment {
	a = a.clone()
	for iter := 0; iter < maxIterations; iter++ {
		sums := Sums(items, k, a)
		lo, hi := minMax(sums)
		if lo == hi {
			break
		}
		best := candidate{i: -1, j: -1, spread: spreadOf(sums), sq: squares(sums)}
		counts := a.counts(k)

		try := func(i, j int, delta int64) {
			sums[lo] += delta
			sums[hi] -= delta
			c := candidate{i: i, j: j, spread: spreadOf(sums), sq: squares(sums)}
			sums[lo] -= delta
			sums[hi] += delta
			if c.better(best.spread, best.sq) {
				best = c
			}
		}

		for j, g := range a {
			if g != hi {
				continue
			}
			if counts[hi] > 1 {
				try(-1, j, items[j].Duration)
			}
			for i, h := range a {
				if h == lo && items[j].Duration > items[i].Duration {
					try(i, j, items[j].Duration-items[i].Duration)
				}
			}
		}

		if best.j < 0 {
			break
		}
		a[best.j] = lo
		if best.i >= 0 {
			a[best.i] = hi
		}
	}
	return a
}
