// If you are AI: This file is the grouping entry point that picks a balancing strategy
// and guarantees exactly k non-empty groups.

package grouping

import (
	"fmt"
	"time"
)

// Strategy names a balancing algorithm.
type Strategy string

const (
	// StrategyAuto runs the partition search and falls back to the heuristics.
	StrategyAuto Strategy = "auto"
	// StrategyGreedy runs only the greedy migration heuristic. Its result is never less
	// balanced than a round-robin deal, but the spread may exceed the largest item.
	StrategyGreedy Strategy = "greedy"
	// StrategySwap runs the greedy heuristic followed by swap refinement.
	StrategySwap Strategy = "swap"
	// StrategyItemSwap runs item-level swapping (2 to 4 groups).
	StrategyItemSwap Strategy = "item-swap"
)

// DefaultTimeBudget is the total time the partition search may use.
const DefaultTimeBudget = 10 * time.Second

// Options configures Balance.
type Options struct {
	Strategy   Strategy
	TimeBudget time.Duration
}

// ParseStrategy validates a strategy name. An empty name selects StrategyAuto.
func ParseStrategy(name string) (Strategy, error) {
	switch s := Strategy(name); s {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyGreedy, StrategySwap, StrategyItemSwap:
		return s, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// Balance partitions items into k groups with totals as close as possible.
// It fails fast when k is not positive or there are fewer items than groups.
func Balance(items []Item, k int, opts Options) (Assignment, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNoGroups, k)
	}
	if len(items) < k {
		return nil, fmt.Errorf("%w: %d items for %d groups", ErrTooFewItems, len(items), k)
	}
	if k == 1 {
		return make(Assignment, len(items)), nil
	}
	if opts.TimeBudget <= 0 {
		opts.TimeBudget = DefaultTimeBudget
	}

	switch opts.Strategy {
	case StrategyGreedy:
		return Greedy(items, k), nil
	case StrategySwap:
		return Swap(items, k, Greedy(items, k)), nil
	case StrategyItemSwap:
		return ItemSwap(items, k)
	case StrategyAuto, "":
		return auto(items, k, opts.TimeBudget), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, opts.Strategy)
	}
}

// auto keeps the better of the refined search result and the refined greedy result.
func auto(items []Item, k int, budget time.Duration) Assignment {
	best := Swap(items, k, Greedy(items, k))

	found, _ := Backtrack(items, k, budget)
	if found.Valid(len(items), k) {
		refined := Swap(items, k, found)
		if Spread(items, k, refined) <= Spread(items, k, best) {
			best = refined
		}
	}
	return best
}
