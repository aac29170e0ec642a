package experiment

import (
	"fmt"
	"slices"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

// Registry maps metric names to constructors bound to a scenario.
type Registry struct {
	metrics map[string]func(*config.Config) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(*config.Config) sim.Metric),
	}

	r.metrics["kinetic_energy"] = func(*config.Config) sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["energy_drift"] = func(c *config.Config) sim.Metric { return metrics.NewEnergyDrift(c.GravityModel()) }
	r.metrics["momentum_drift"] = func(*config.Config) sim.Metric { return metrics.NewMomentumDrift() }
	r.metrics["contacts"] = func(*config.Config) sim.Metric { return metrics.NewContacts() }
	r.metrics["containment"] = func(c *config.Config) sim.Metric { return metrics.NewContainment(c.Viewport) }

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg), nil
}

// Metrics resolves a list of names; an empty list selects the defaults.
func (r *Registry) Metrics(names []string, cfg *config.Config) ([]sim.Metric, error) {
	if len(names) == 0 {
		return metrics.Defaults(cfg.GravityModel(), cfg.Viewport), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name, cfg)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
