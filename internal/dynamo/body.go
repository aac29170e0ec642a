package dynamo

import (
	"image/color"
	"math"
)

// DefaultTrailCap is used when a spec leaves TrailCap at zero in presets.
const DefaultTrailCap = 64

// Body is a circular point mass. Mass and Radius are positive for every body
// that passed construction.
type Body struct {
	Name         string
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2
	Mass         float64
	Radius       float64
	Color        color.RGBA
	Trail        *Trail
}

// Momentum returns m*v.
func (b *Body) Momentum() Vec2 { return b.Velocity.Scale(b.Mass) }

func (b *Body) KineticEnergy() float64 { return 0.5 * b.Mass * b.Velocity.LenSq() }

// State copies the body, trail included, for readers outside the owning
// world.
func (b *Body) State() BodyState {
	s := BodyState{
		Name:     b.Name,
		Position: b.Position,
		Velocity: b.Velocity,
		Mass:     b.Mass,
		Radius:   b.Radius,
		Color:    b.Color,
	}
	if b.Trail != nil {
		s.Trail = b.Trail.Points()
		s.TrailCap = b.Trail.Cap()
	}
	return s
}

// BodyState is a detached snapshot of a Body. Trail is oldest first and is
// nil when the snapshot was taken without trails.
type BodyState struct {
	Name     string
	Position Vec2
	Velocity Vec2
	Mass     float64
	Radius   float64
	Color    color.RGBA
	Trail    []Vec2
	TrailCap int
}

// Viewport is the drawing area size used to place centred bodies.
type Viewport struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

func (v Viewport) Center() Vec2 { return Vec2{v.Width / 2, v.Height / 2} }

// Contains reports whether p lies inside [0,Width]x[0,Height].
func (v Viewport) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= v.Width && p.Y >= 0 && p.Y <= v.Height
}

// BodySpec describes a body at construction time. When Centered is set,
// Position is an offset from the viewport centre.
type BodySpec struct {
	Name     string
	Position Vec2
	Velocity Vec2
	Mass     float64
	Radius   float64
	TrailCap int
	Color    color.RGBA
	Centered bool
}

// Validate checks the per-body preconditions. Pairwise checks (coincident
// centres) are done by the world.
func (s BodySpec) Validate() error {
	switch {
	case !s.Position.IsFinite() || !s.Velocity.IsFinite() ||
		math.IsNaN(s.Mass) || math.IsInf(s.Mass, 0) ||
		math.IsNaN(s.Radius) || math.IsInf(s.Radius, 0):
		return ErrNonFinite
	case s.Mass <= 0:
		return ErrNonPositiveMass
	case s.Radius <= 0:
		return ErrNonPositiveRadius
	case s.TrailCap < 1:
		return ErrTrailCapacity
	}
	return nil
}

// Build places the spec in vp and returns the body.
func (s BodySpec) Build(vp Viewport) Body {
	pos := s.Position
	if s.Centered {
		pos = vp.Center().Add(pos)
	}
	return Body{
		Name:     s.Name,
		Position: pos,
		Velocity: s.Velocity,
		Mass:     s.Mass,
		Radius:   s.Radius,
		Color:    s.Color,
		Trail:    NewTrail(s.TrailCap),
	}
}
