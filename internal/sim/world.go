package sim

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// World owns a fixed set of bodies and advances them one tick at a time.
// A World is not safe for concurrent use.
type World struct {
	bodies    []dynamo.Body
	gravity   physics.Gravity
	separate  physics.Separator
	stepScale float64
	tick      int
	time      float64
	contacts  int
}

type Option func(*World)

func WithGravity(g physics.Gravity) Option {
	return func(w *World) { w.gravity = g }
}

// WithStepScale sets dt, the simulated time per tick. The default of 1 makes
// one tick the unit of time.
func WithStepScale(dt float64) Option {
	return func(w *World) { w.stepScale = dt }
}

// WithSeparator replaces the default single-body de-penetration nudge.
func WithSeparator(s physics.Separator) Option {
	return func(w *World) {
		if s != nil {
			w.separate = s
		}
	}
}

// New builds a world from specs. The viewport is only used to place centred
// bodies. Construction fails with a *dynamo.PreconditionError on invalid
// mass, radius, trail capacity, non-finite values or coincident centres.
func New(specs []dynamo.BodySpec, vp dynamo.Viewport, opts ...Option) (*World, error) {
	w := &World{
		bodies:    make([]dynamo.Body, 0, len(specs)),
		gravity:   physics.NewGravity(),
		separate:  physics.Separate,
		stepScale: 1,
	}
	for _, opt := range opts {
		opt(w)
	}

	if !validStepScale(w.stepScale) {
		return nil, ErrStepScale
	}
	if math.IsNaN(w.gravity.G) || math.IsInf(w.gravity.G, 0) || w.gravity.G < 0 {
		return nil, ErrGravity
	}

	for i, spec := range specs {
		if err := spec.Validate(); err != nil {
			return nil, &dynamo.PreconditionError{Index: i, Other: -1, Wrapped: err}
		}
		b := spec.Build(vp)
		if !b.Position.IsFinite() {
			return nil, &dynamo.PreconditionError{Index: i, Other: -1, Wrapped: dynamo.ErrNonFinite}
		}
		for j := range w.bodies {
			if w.bodies[j].Position == b.Position {
				return nil, &dynamo.PreconditionError{Index: j, Other: i, Wrapped: dynamo.ErrCoincident}
			}
		}
		w.bodies = append(w.bodies, b)
	}

	return w, nil
}

// Step advances the world by one tick:
//
//  1. accelerations are recomputed from the tick-start positions;
//  2. every overlapping pair (i < j) exchanges momentum and is separated;
//  3. v += a*dt, then p += v*dt;
//  4. accelerations are cleared;
//  5. each position is appended to its body's trail.
func (w *World) Step() {
	acc := w.gravity.Accelerations(w.bodies)
	for i := range w.bodies {
		w.bodies[i].Acceleration = acc[i]
	}

	w.contacts = w.resolveContacts()

	dt := w.stepScale
	for i := range w.bodies {
		b := &w.bodies[i]
		b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
		b.Position = b.Position.Add(b.Velocity.Scale(dt))
	}

	for i := range w.bodies {
		w.bodies[i].Acceleration = dynamo.Vec2{}
	}

	for i := range w.bodies {
		w.bodies[i].Trail.Push(w.bodies[i].Position)
	}

	w.tick++
	w.time += dt
}

// resolveContacts handles each unordered pair once, in index order, on the
// stored bodies so both members see the exchanged velocities.
func (w *World) resolveContacts() int {
	n := 0
	for i := range w.bodies {
		for j := i + 1; j < len(w.bodies); j++ {
			a, b := &w.bodies[i], &w.bodies[j]
			if !physics.IsColliding(a, b) {
				continue
			}
			physics.ExchangeMomentum(a, b)
			w.separate(a, b)
			n++
		}
	}
	return n
}

func (w *World) Len() int { return len(w.bodies) }

// Tick is the number of completed steps.
func (w *World) Tick() int { return w.tick }

// Time is the accumulated simulated time, the sum of dt over all ticks.
func (w *World) Time() float64 { return w.time }

// Contacts is the number of pairs resolved during the last tick.
func (w *World) Contacts() int { return w.contacts }

func (w *World) Gravity() physics.Gravity { return w.gravity }

func (w *World) StepScale() float64 { return w.stepScale }

// SetStepScale changes dt for subsequent ticks.
func (w *World) SetStepScale(dt float64) error {
	if !validStepScale(dt) {
		return ErrStepScale
	}
	w.stepScale = dt
	return nil
}

// At returns a copy of body i, trail included.
func (w *World) At(i int) dynamo.BodyState {
	return w.bodies[i].State()
}

// Snapshot copies every body, trails included.
func (w *World) Snapshot() []dynamo.BodyState {
	out := make([]dynamo.BodyState, len(w.bodies))
	for i := range w.bodies {
		out[i] = w.bodies[i].State()
	}
	return out
}

// kinematics copies bodies without their trails.
func (w *World) kinematics() []dynamo.BodyState {
	out := make([]dynamo.BodyState, len(w.bodies))
	for i, b := range w.bodies {
		out[i] = dynamo.BodyState{
			Name:     b.Name,
			Position: b.Position,
			Velocity: b.Velocity,
			Mass:     b.Mass,
			Radius:   b.Radius,
			Color:    b.Color,
		}
	}
	return out
}

func (w *World) finite() bool {
	for _, b := range w.bodies {
		if !b.Position.IsFinite() || !b.Velocity.IsFinite() {
			return false
		}
	}
	return true
}

func validStepScale(dt float64) bool {
	return dt > 0 && !math.IsInf(dt, 0) && !math.IsNaN(dt)
}
