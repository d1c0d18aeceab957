// If you are AI: This file implements the playback orders applied to each region's clips.

package clip

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"
)

// ErrUnknownOrder is returned by ParseOrder for unrecognised names.
var ErrUnknownOrder = errors.New("unknown sort order")

// Order selects how clips within a region are arranged before playback.
type Order string

const (
	OrderAsInput           Order = "as-input"
	OrderRandom            Order = "random"
	OrderSeeded            Order = "seeded"
	OrderSeededReverse     Order = "seeded-reverse"
	OrderShortest          Order = "shortest"
	OrderLongest           Order = "longest"
	OrderRandomLargestLast Order = "random-largest-last"
)

// DefaultSeed is used by the seeded orders when no seed is configured.
const DefaultSeed = 1337

// orderAliases maps accepted spellings to orders.
var orderAliases = map[string]Order{
	"0": OrderAsInput, "asinput": OrderAsInput, "none": OrderAsInput,
	"1": OrderRandom, "random": OrderRandom, "rand": OrderRandom,
	"2": OrderSeeded, "seeded": OrderSeeded, "randomseeded": OrderSeeded, "seed": OrderSeeded,
	"2r": OrderSeededReverse, "seededreverse": OrderSeededReverse, "randomseededr": OrderSeededReverse, "seedr": OrderSeededReverse,
	"3": OrderShortest, "shortest": OrderShortest, "shortestfirst": OrderShortest,
	"4": OrderLongest, "longest": OrderLongest, "longestfirst": OrderLongest,
	"5": OrderRandomLargestLast, "randomlargestlast": OrderRandomLargestLast, "randomwithlargestlast": OrderRandomLargestLast, "rwll": OrderRandomLargestLast,
}

// ParseOrder resolves an order by name, alias or number. Empty selects random.
func ParseOrder(s string) (Order, error) {
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	if key == "" {
		return OrderRandom, nil
	}
	if o, ok := orderAliases[key]; ok {
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOrder, s)
}

// Sort returns clips rearranged by order. The input slice is not modified.
func Sort(clips []*Clip, order Order, seed int64) []*Clip {
	out := append([]*Clip(nil), clips...)
	switch order {
	case OrderRandom:
		shuffle(out, rand.New(rand.NewSource(time.Now().UnixNano())))
	case OrderSeeded:
		shuffle(out, rand.New(rand.NewSource(seed)))
	case OrderSeededReverse:
		shuffle(out, rand.New(rand.NewSource(seed)))
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	case OrderShortest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Duration < out[j].Duration })
	case OrderLongest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Duration > out[j].Duration })
	case OrderRandomLargestLast:
		shuffle(out, rand.New(rand.NewSource(time.Now().UnixNano())))
		longest := 0
		for i, c := range out {
			if c.Duration > out[longest].Duration {
				longest = i
			}
		}
		if len(out) > 0 {
			c := out[longest]
			out = append(out[:longest], out[longest+1:]...)
			out = append(out, c)
		}
	}
	return out
}

// shuffle permutes clips in place.
func shuffle(clips []*Clip, rng *rand.Rand) {
	rng.Shuffle(len(clips), func(i, j int) { clips[i], clips[j] = clips[j], clips[i] })
}
