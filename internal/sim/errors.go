package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrStepScale indicates a step scale that is not a positive finite number.
	ErrStepScale = errors.New("sim: step scale must be positive and finite")

	// ErrGravity indicates a negative or non-finite attraction constant.
	ErrGravity = errors.New("sim: gravity constant must be finite and non-negative")

	// ErrUnstable indicates a body left the finite range during a run.
	ErrUnstable = errors.New("sim: simulation unstable (non-finite body state)")

	// ErrTicks indicates a run configured with no ticks.
	ErrTicks = errors.New("sim: tick count must be positive")
)

// RunError wraps a run failure with the tick it happened on.
type RunError struct {
	Tick    int
	Time    float64
	Wrapped error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("tick %d (t=%.4f): %v", e.Tick, e.Time, e.Wrapped)
}

func (e *RunError) Unwrap() error {
	return e.Wrapped
}
