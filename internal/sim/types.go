package sim

import "github.com/san-kum/gravsim/internal/dynamo"

// Metric accumulates a scalar over the ticks of a run.
type Metric interface {
	Name() string
	Observe(tick int, bodies []dynamo.BodyState)
	Value() float64
	Reset()
}

// Observer is notified after every tick of a run.
type Observer interface {
	OnTick(tick int, bodies []dynamo.BodyState)
}

type RunConfig struct {
	Ticks int
	// Every records one frame per Every ticks; 0 or 1 records all of them.
	Every         int
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Ticks:         600,
		Every:         1,
		ValidateState: true,
	}
}

// Frame is the recorded kinematic state of every body at one tick.
type Frame struct {
	Tick       int           `json:"tick"`
	Time       float64       `json:"time"`
	Positions  []dynamo.Vec2 `json:"positions"`
	Velocities []dynamo.Vec2 `json:"velocities"`
}

type Result struct {
	Frames      []Frame
	Metrics     map[string]float64
	EnergyDrift float64
	Contacts    int
	StepsTaken  int
	Errors      []error
}
