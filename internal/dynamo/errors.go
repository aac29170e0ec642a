package dynamo

import (
	"errors"
	"fmt"
)

// Precondition errors reported while building a world.
var (
	// ErrNonPositiveMass indicates a body with mass <= 0.
	ErrNonPositiveMass = errors.New("dynamo: mass must be positive")

	// ErrNonPositiveRadius indicates a body with radius <= 0.
	ErrNonPositiveRadius = errors.New("dynamo: radius must be positive")

	// ErrCoincident indicates two bodies starting at the same centre.
	ErrCoincident = errors.New("dynamo: bodies share the same position")

	// ErrNonFinite indicates a NaN or Inf in a body descriptor.
	ErrNonFinite = errors.New("dynamo: non-finite value in body descriptor")

	// ErrTrailCapacity indicates a trail capacity below one.
	ErrTrailCapacity = errors.New("dynamo: trail capacity must be at least 1")
)

// PreconditionError wraps a precondition failure with the offending body
// index. Other is the second body of a pairwise failure, or -1.
type PreconditionError struct {
	Index   int
	Other   int
	Wrapped error
}

func (e *PreconditionError) Error() string {
	if e.Other >= 0 {
		return fmt.Sprintf("body %d and body %d: %v", e.Index, e.Other, e.Wrapped)
	}
	return fmt.Sprintf("body %d: %v", e.Index, e.Wrapped)
}

func (e *PreconditionError) Unwrap() error {
	return e.Wrapped
}
