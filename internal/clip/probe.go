// If you are AI: This file probes clip durations concurrently.
// Probe failures are logged and leave the clip unprobed; only cancellation aborts.

package clip

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeWorkers bounds concurrent probe processes.
const DefaultProbeWorkers = 8

// Prober reads the duration of a media file.
type Prober interface {
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// ProbeAll fills in durations for every unprobed clip.
// It returns the clips whose probe failed, in input order.
func ProbeAll(ctx context.Context, clips []*Clip, p Prober, workers int, logger zerolog.Logger) ([]*Clip, error) {
	if workers <= 0 {
		workers = DefaultProbeWorkers
	}
	failed := make([]bool, len(clips))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range clips {
		if c.Probed {
			continue
		}
		i, c := i, c
		g.Go(func() error {
			d, err := p.Probe(gctx, c.Path)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				logger.Warn().Err(err).Str("clip", c.Path).Msg("Probe failed, clip has no known length")
				failed[i] = true
				return nil
			}
			c.SetLength(d)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []*Clip
	for i, c := range clips {
		if failed[i] {
			out = append(out, c)
		}
	}
	return out, nil
}

// Partition splits clips into probed and unprobed, preserving order.
func Partition(clips []*Clip) (probed, unprobed []*Clip) {
	for _, c := range clips {
		if c.Probed {
			probed = append(probed, c)
		} else {
			unprobed = append(unprobed, c)
		}
	}
	return probed, unprobed
}
