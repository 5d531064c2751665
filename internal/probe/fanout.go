package probe

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ipdash/internal/models"
)

// ProbeAll probes every registered target concurrently and returns exactly
// one result per target, in registry order. Individual failures are
// normalized into their result and never abort the fan-out.
func (p *Prober) ProbeAll(ctx context.Context) []models.ProbeResult {
	results := make([]models.ProbeResult, len(p.targets))

	g, ctx := errgroup.WithContext(ctx)
	for i, target := range p.targets {
		i, target := i, target
		g.Go(func() error {
			results[i] = p.Probe(ctx, target)
			return nil
		})
	}
	// No probe returns an error, so Wait only synchronizes.
	_ = g.Wait()

	return results
}
