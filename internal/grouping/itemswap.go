// If you are AI: This file implements item-level swapping for two to four groups.
// A short swap history keeps the loop from undoing its own recent swaps.

package grouping

// historySize is the number of recent swap pairs that may not be repeated.
const historySize = 5

// swapHistory is a rolling record of swapped item pairs.
type swapHistory struct {
	pairs [][2]int
}

// contains reports whether the pair was swapped recently, in either order.
func (h *swapHistory) contains(a, b int) bool {
	for _, p := range h.pairs {
		if (p[0] == a && p[1] == b) || (p[0] == b && p[1] == a) {
			return true
		}
	}
	return false
}

// push records a swap and drops the oldest entries beyond historySize.
func (h *swapHistory) push(a, b int) {
	h.pairs = append(h.pairs, [2]int{a, b})
	if len(h.pairs) > historySize {
		h.pairs = h.pairs[len(h.pairs)-historySize:]
	}
}

// ItemSwap balances items into k groups (2 to 4) by swapping a shorter item of the
// smallest group with a longer item of the largest group. The chosen pair has the widest
// duration gap that does not exceed 75% of the current imbalance.
func ItemSwap(items []Item, k int) (Assignment, error) {
	if k < 2 || k > 4 {
		return nil, ErrItemSwapGroups
	}
	if len(items) < k {
		return nil, ErrTooFewItems
	}

	order := byDuration(items, false)
	a := roundRobin(order, k)
	var history swapHistory

	for iter := 0; iter < maxIterations; iter++ {
		sums := Sums(items, k, a)
		lo, hi := minMax(sums)
		limit := (sums[hi] - sums[lo]) * 3 / 4

		from, to := -1, -1
		var widest int64
		for _, i0 := range order {
			if a[i0] != lo {
				continue
			}
			for _, i1 := range order {
				if a[i1] != hi || items[i0].Duration >= items[i1].Duration {
					continue
				}
				gap := items[i1].Duration - items[i0].Duration
				// order is ascending, later candidates only widen the gap
				if gap > limit {
					break
				}
				if history.contains(i0, i1) {
					continue
				}
				if from < 0 || gap > widest {
					from, to, widest = i0, i1, gap
				}
			}
		}
		if from < 0 {
			break
		}

		a[from], a[to] = hi, lo
		history.push(from, to)
	}
	return a, nil
}
