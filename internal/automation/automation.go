package automation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

var ErrSweep = errors.New("automation: invalid sweep")

// ParameterSweep runs one scenario across a range of values of a single
// run-level parameter.
type ParameterSweep struct {
	// Param is "gravity" or "step_scale".
	Param    string
	Min, Max float64
	NumSteps int
}

func (s ParameterSweep) values() ([]float64, error) {
	if s.NumSteps < 1 {
		return nil, fmt.Errorf("%w: %d steps", ErrSweep, s.NumSteps)
	}
	if s.NumSteps == 1 {
		return []float64{s.Min}, nil
	}
	step := (s.Max - s.Min) / float64(s.NumSteps-1)
	out := make([]float64, s.NumSteps)
	for i := range out {
		out[i] = s.Min + float64(i)*step
	}
	return out, nil
}

func (s ParameterSweep) apply(cfg *config.Config, v float64) error {
	switch s.Param {
	case "gravity":
		cfg.Gravity = v
	case "step_scale":
		cfg.StepScale = v
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrSweep, s.Param)
	}
	return cfg.Validate()
}

// SweepResult holds results from one sweep member
type SweepResult struct {
	ParamValue  float64
	EnergyDrift float64
	Contacts    int
	Containment float64
	Stable      bool
}

// RunSweep builds one world per parameter value and runs them concurrently.
func RunSweep(ctx context.Context, base *config.Config, sweep ParameterSweep) ([]SweepResult, error) {
	values, err := sweep.values()
	if err != nil {
		return nil, err
	}

	members := make([]*sim.World, len(values))
	for i, v := range values {
		cfg := *base
		if err := sweep.apply(&cfg, v); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		w, err := cfg.NewWorld()
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.Param, v, err)
		}
		members[i] = w
	}

	results, err := runAll(ctx, base, members)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(values))
	for i, r := range results {
		out[i] = SweepResult{
			ParamValue:  values[i],
			EnergyDrift: r.Metrics["energy_drift"],
			Contacts:    r.Contacts,
			Containment: r.Metrics["containment"],
			Stable:      len(r.Errors) == 0,
		}
	}
	return out, nil
}

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	NumTrials int
	// Perturbation is the half-width of the uniform offset added to each
	// body's starting x and y.
	Perturbation float64
	Seed         uint64
}

// MonteCarloResult holds the outcome of one perturbed trial
type MonteCarloResult struct {
	TrialID     int
	Offsets     []dynamo.Vec2
	EnergyDrift float64
	Containment float64
	// Contained is true when every body stayed in the viewport on every tick.
	Contained bool
	Stable    bool
}

// RunMonteCarlo runs the scenario NumTrials times with randomly perturbed
// starting positions. The same seed gives the same offsets.
func RunMonteCarlo(ctx context.Context, base *config.Config, mc MonteCarloConfig) ([]MonteCarloResult, error) {
	if mc.NumTrials < 1 {
		return nil, fmt.Errorf("%w: %d trials", ErrSweep, mc.NumTrials)
	}

	specs, err := base.Specs()
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(mc.Seed, mc.Seed^0x9e3779b97f4a7c15))
	members := make([]*sim.World, mc.NumTrials)
	offsets := make([][]dynamo.Vec2, mc.NumTrials)
	for trial := range members {
		perturbed := slices.Clone(specs)
		offsets[trial] = make([]dynamo.Vec2, len(perturbed))
		for i := range perturbed {
			d := dynamo.V((rng.Float64()-0.5)*2*mc.Perturbation, (rng.Float64()-0.5)*2*mc.Perturbation)
			offsets[trial][i] = d
			perturbed[i].Position = perturbed[i].Position.Add(d)
		}
		w, err := sim.New(perturbed, base.Viewport, base.Options()...)
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", trial, err)
		}
		members[trial] = w
	}

	results, err := runAll(ctx, base, members)
	if err != nil {
		return nil, err
	}

	out := make([]MonteCarloResult, len(results))
	for i, r := range results {
		c := r.Metrics["containment"]
		out[i] = MonteCarloResult{
			TrialID:     i,
			Offsets:     offsets[i],
			EnergyDrift: r.Metrics["energy_drift"],
			Containment: c,
			Contained:   c == 1,
			Stable:      len(r.Errors) == 0,
		}
	}
	return out, nil
}

// MonteCarloStats counts trials that kept every body in view.
func MonteCarloStats(results []MonteCarloResult) (contained int, escaped int) {
	for _, r := range results {
		if r.Contained {
			contained++
		} else {
			escaped++
		}
	}
	return
}

func runAll(ctx context.Context, base *config.Config, members []*sim.World) ([]*sim.Result, error) {
	ens := sim.NewEnsemble(members...).WithMetrics(func() []sim.Metric {
		return metrics.Defaults(base.GravityModel(), base.Viewport)
	})
	return ens.Run(ctx, sim.RunConfig{Ticks: base.Ticks, Every: base.Ticks, ValidateState: true})
}
