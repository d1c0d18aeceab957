// If you are AI: This file implements the deviation-bounded backtracking partition search.
// Each attempt widens the allowed deviation and gets a shorter slice of the time budget.

package grouping

import (
	"math"
	"time"
)

// maxAttempts is the number of widening attempts the search makes.
const maxAttempts = 9

// search holds the state of one backtracking attempt.
type search struct {
	items    []Item
	k        int
	target   int64
	maxDev   int64
	deadline time.Time
	nodes    int
	expired  bool

	sums   []int64
	counts []int
	assign Assignment

	best    Assignment
	bestDev int64
}

// Backtrack searches for an assignment where every group total is within an escalating
// deviation of total/k. It returns the first in-bound assignment and true, or the
// lowest-deviation complete assignment it visited and false (nil when none was reached).
// budget is split into ten units; attempt n may run for budget minus n units.
func Backtrack(items []Item, k int, budget time.Duration) (Assignment, bool) {
	if k <= 0 || len(items) < k {
		return nil, false
	}

	var total int64
	for _, it := range items {
		total += it.Duration
	}
	target := total / int64(k)
	devUnit := target / 100
	timeUnit := budget / 10

	s := &search{
		items:   items,
		k:       k,
		target:  target,
		bestDev: math.MaxInt64,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		limit := budget - time.Duration(attempt)*timeUnit
		if limit < 0 {
			limit = 0
		}
		s.reset(int64(attempt)*devUnit, time.Now().Add(limit))
		if s.place(0) {
			return s.assign.clone(), true
		}
	}
	return s.best, false
}

// reset prepares the search for a new attempt, keeping the best solution seen.
func (s *search) reset(maxDev int64, deadline time.Time) {
	s.maxDev = maxDev
	s.deadline = deadline
	s.expired = false
	s.nodes = 0
	s.sums = make([]int64, s.k)
	s.counts = make([]int, s.k)
	s.assign = make(Assignment, len(s.items))
}

// timedOut checks the deadline every 64 visited nodes.
func (s *search) timedOut() bool {
	if s.expired {
		return true
	}
	s.nodes++
	if s.nodes&63 == 0 && time.Now().After(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// place assigns item idx and recurses. Returns true once every group is in bound.
func (s *search) place(idx int) bool {
	if s.timedOut() {
		return false
	}
	if idx == len(s.items) {
		return s.complete()
	}

	d := s.items[idx].Duration
	for g := 0; g < s.k; g++ {
		if s.sums[g]+d <= s.target+s.maxDev {
			s.assign[idx] = g
			s.sums[g] += d
			s.counts[g]++

			if s.place(idx + 1) {
				return true
			}

			s.sums[g] -= d
			s.counts[g]--
		}
		// Every empty group is interchangeable; trying one is enough
		if s.counts[g] == 0 {
			break
		}
	}
	return false
}

// complete scores a full assignment and reports whether it satisfies the bound.
func (s *search) complete() bool {
	for _, c := range s.counts {
		if c == 0 {
			return false
		}
	}

	var dev int64
	inBound := true
	for _, sum := range s.sums {
		diff := sum - s.target
		if diff < 0 {
			diff = -diff
		}
		dev += diff
		if diff > s.maxDev {
			inBound = false
		}
	}
	if dev < s.bestDev {
		s.bestDev = dev
		s.best = s.assign.clone()
	}
	return inBound
}
