package sim

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent worlds concurrently. Each member is stepped only
// by its own goroutine.
type Ensemble struct {
	members    []*World
	newMetrics func() []Metric
}

func NewEnsemble(worlds ...*World) *Ensemble {
	return &Ensemble{members: worlds}
}

// WithMetrics sets the factory used to give every member its own metric
// instances.
func (e *Ensemble) WithMetrics(fn func() []Metric) *Ensemble {
	e.newMetrics = fn
	return e
}

func (e *Ensemble) Len() int { return len(e.members) }

// Run steps every member for cfg.Ticks. Results are in member order. The
// first failing member cancels the others.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, len(e.members))

	g, ctx := errgroup.WithContext(ctx)
	for i, w := range e.members {
		g.Go(func() error {
			r := NewRunner(w)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					r.AddMetric(m)
				}
			}
			res, err := r.Run(ctx, cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
