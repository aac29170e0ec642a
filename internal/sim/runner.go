package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// Runner drives a World for a fixed number of ticks, feeding metrics and
// observers and recording frames.
type Runner struct {
	world     *World
	metrics   []Metric
	observers []Observer
}

func NewRunner(w *World) *Runner {
	return &Runner{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) World() *World { return r.world }

func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := validateRunConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.Every
	if every < 1 {
		every = 1
	}

	result := &Result{
		Frames:  make([]Frame, 0, cfg.Ticks/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	w := r.world
	result.Frames = append(result.Frames, frameOf(w))

	initial := w.kinematics()
	initialEnergy := w.gravity.TotalEnergy(initial)
	for _, m := range r.metrics {
		m.Observe(w.tick, initial)
	}

	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		w.Step()
		result.StepsTaken++
		result.Contacts += w.contacts

		if cfg.ValidateState && !w.finite() {
			result.Errors = append(result.Errors, &RunError{Tick: w.tick, Time: w.time, Wrapped: ErrUnstable})
			break
		}

		bodies := w.kinematics()
		for _, m := range r.metrics {
			m.Observe(w.tick, bodies)
		}
		for _, obs := range r.observers {
			obs.OnTick(w.tick, bodies)
		}

		if (i+1)%every == 0 || i == cfg.Ticks-1 {
			result.Frames = append(result.Frames, frameOf(w))
		}
	}

	finalEnergy := w.gravity.TotalEnergy(w.kinematics())
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until cfg.Ticks is reached, the callback returns
// false or ctx is done. The callback sees the world after each tick.
func (r *Runner) RunWithCallback(ctx context.Context, cfg RunConfig, callback func(w *World) bool) error {
	if err := validateRunConfig(cfg); err != nil {
		return err
	}

	w := r.world
	for i := 0; i < cfg.Ticks; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		w.Step()

		if cfg.ValidateState && !w.finite() {
			return &RunError{Tick: w.tick, Time: w.time, Wrapped: ErrUnstable}
		}
		if !callback(w) {
			return nil
		}
	}

	return nil
}

func validateRunConfig(cfg RunConfig) error {
	if cfg.Ticks <= 0 {
		return fmt.Errorf("%w, got %d", ErrTicks, cfg.Ticks)
	}
	return nil
}

func frameOf(w *World) Frame {
	f := Frame{
		Tick:       w.tick,
		Time:       w.time,
		Positions:  make([]dynamo.Vec2, len(w.bodies)),
		Velocities: make([]dynamo.Vec2, len(w.bodies)),
	}
	for i, b := range w.bodies {
		f.Positions[i] = b.Position
		f.Velocities[i] = b.Velocity
	}
	return f
}
