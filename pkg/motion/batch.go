package motion

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/xkilldash9x/pointerforge/api/schemas"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SynthesizeBatch synthesizes one trace per request concurrently. Every
// request gets its own Synthesizer seeded from (baseSeed, index), so each
// result is bit-deterministic regardless of scheduling and the batch as a
// whole reproduces under the same base seed. Results preserve request
// order. The first failing request cancels the rest.
func SynthesizeBatch(ctx context.Context, cfg Config, baseSeed uint64, reqs []Request, parallelism int, logger *zap.Logger) ([]*schemas.Trace, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	traces := make([]*schemas.Trace, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			seed := deriveSeed(baseSeed, uint64(i))
			local := cfg
			local.Rng = rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))

			trace, err := NewSynthesizer(local, logger).Synthesize(req)
			if err != nil {
				return fmt.Errorf("motion: batch item %d: %w", i, err)
			}
			traces[i] = trace
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug("batch synthesized",
		zap.Int("traces", len(traces)),
		zap.Int("parallelism", parallelism),
	)
	return traces, nil
}

// deriveSeed decorrelates per-item streams with a splitmix64 step, so
// neighboring indices do not produce correlated trajectories.
func deriveSeed(base, index uint64) uint64 {
	z := base + (index+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
