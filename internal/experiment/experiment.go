package experiment

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/storage"
)

var ErrNotSetup = errors.New("experiment not setup")

type Options struct {
	// Every records one frame per Every ticks.
	Every int
	// Ticks overrides the scenario's tick count when positive.
	Ticks int
}

// Experiment runs one scenario to completion.
type Experiment struct {
	cfg    *config.Config
	opts   Options
	runner *sim.Runner
	log    *log.Logger
}

func New(cfg *config.Config, opts Options, logger *log.Logger) *Experiment {
	if logger == nil {
		logger = log.Default()
	}
	return &Experiment{cfg: cfg, opts: opts, log: logger.With("scenario", cfg.Name)}
}

// Setup builds the world and attaches metrics. With no metrics the default
// set is used.
func (e *Experiment) Setup(ms ...sim.Metric) error {
	w, err := e.cfg.NewWorld()
	if err != nil {
		return err
	}
	if len(ms) == 0 {
		ms = metrics.Defaults(e.cfg.GravityModel(), e.cfg.Viewport)
	}

	e.runner = sim.NewRunner(w)
	for _, m := range ms {
		e.runner.AddMetric(m)
	}
	e.log.Debug("world ready", "bodies", w.Len(), "metrics", len(ms))
	return nil
}

func (e *Experiment) ticks() int {
	if e.opts.Ticks > 0 {
		return e.opts.Ticks
	}
	return e.cfg.Ticks
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.runner == nil {
		return nil, ErrNotSetup
	}

	runCfg := sim.RunConfig{
		Ticks:         e.ticks(),
		Every:         e.opts.Every,
		ValidateState: true,
	}

	start := time.Now()
	e.log.Info("running", "ticks", runCfg.Ticks, "step_scale", e.cfg.StepScale)

	result, err := e.runner.Run(ctx, runCfg)
	if err != nil {
		return result, err
	}
	for _, rerr := range result.Errors {
		e.log.Warn("run stopped early", "err", rerr)
	}

	e.log.Info("done",
		"steps", result.StepsTaken,
		"frames", len(result.Frames),
		"energy_drift", result.EnergyDrift,
		"contacts", result.Contacts,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return result, nil
}

// Runner returns the underlying runner for adding observers
func (e *Experiment) Runner() *sim.Runner {
	return e.runner
}

// Metadata describes the run for storage.
func (e *Experiment) Metadata() storage.RunMetadata {
	meta := storage.RunMetadata{
		Name:       e.cfg.Name,
		Gravity:    e.cfg.Gravity,
		StepScale:  e.cfg.StepScale,
		Ticks:      e.ticks(),
		Separation: e.cfg.Separation,
		Viewport:   e.cfg.Viewport,
	}
	if e.runner != nil {
		meta.Bodies = storage.BodiesMeta(e.runner.World().Snapshot())
	}
	return meta
}
