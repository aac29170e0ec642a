package analysis

import (
	"errors"
	"math"
	"slices"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

var ErrPerturbation = errors.New("analysis: perturbation must be positive")

// Divergence estimates how fast a perturbation of the first body's x
// position grows, by running the original and perturbed layouts side by side:
//
//	rate ≈ ln(d(t)/d(0)) / t
//
// where d is the Euclidean distance between the two layouts' positions.
func Divergence(specs []dynamo.BodySpec, vp dynamo.Viewport, opts []sim.Option, eps float64, ticks int) (float64, error) {
	if eps <= 0 {
		return 0, ErrPerturbation
	}
	if len(specs) == 0 || ticks <= 0 {
		return 0, nil
	}

	a, err := sim.New(specs, vp, opts...)
	if err != nil {
		return 0, err
	}
	perturbed := slices.Clone(specs)
	perturbed[0].Position.X += eps
	b, err := sim.New(perturbed, vp, opts...)
	if err != nil {
		return 0, err
	}

	for range ticks {
		a.Step()
		b.Step()
	}

	sep := 0.0
	for i := range a.Len() {
		d := a.At(i).Position.Sub(b.At(i).Position)
		sep += d.LenSq()
	}
	sep = math.Sqrt(sep)
	if sep == 0 || a.Time() == 0 {
		return 0, nil
	}
	return math.Log(sep/eps) / a.Time(), nil
}
