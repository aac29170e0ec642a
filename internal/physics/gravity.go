package physics

import "github.com/san-kum/gravsim/internal/dynamo"

const (
	// DefaultG is the attraction constant in simulation units.
	DefaultG = 1.0

	// DefaultMinDistance is the floor applied to centre distances before the
	// inverse-square division.
	DefaultMinDistance = 1e-3
)

// Gravity is the force law F = G*m_a*m_b/d^2 along the a->b direction.
type Gravity struct {
	G           float64
	MinDistance float64
}

func NewGravity() Gravity {
	return Gravity{G: DefaultG, MinDistance: DefaultMinDistance}
}

// ForceOn returns the force exerted on a by b. Distances below MinDistance
// are clamped; coincident centres give a zero force since the direction is
// undefined.
func (g Gravity) ForceOn(a, b *dynamo.Body) dynamo.Vec2 {
	d := b.Position.Sub(a.Position)
	r := d.Len()
	if r == 0 {
		return dynamo.Vec2{}
	}
	rc := r
	if rc < g.minDistance() {
		rc = g.minDistance()
	}
	mag := g.G * a.Mass * b.Mass / (rc * rc)
	return d.Unit().Scale(mag)
}

// Accelerations returns the net acceleration of every body from the current
// positions. The result is computed from scratch; nothing in bodies is
// modified.
func (g Gravity) Accelerations(bodies []dynamo.Body) []dynamo.Vec2 {
	acc := make([]dynamo.Vec2, len(bodies))
	for i := range bodies {
		for j := range bodies {
			if i == j {
				continue
			}
			f := g.ForceOn(&bodies[i], &bodies[j])
			acc[i] = acc[i].Add(f.Scale(1 / bodies[i].Mass))
		}
	}
	return acc
}

// PotentialEnergy is the pairwise sum -G*m_i*m_j/d with the same clamping as
// ForceOn.
func (g Gravity) PotentialEnergy(bodies []dynamo.BodyState) float64 {
	pe := 0.0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(bodies[i].Position).Len()
			if r < g.minDistance() {
				r = g.minDistance()
			}
			pe -= g.G * bodies[i].Mass * bodies[j].Mass / r
		}
	}
	return pe
}

// TotalEnergy is kinetic plus potential energy.
func (g Gravity) TotalEnergy(bodies []dynamo.BodyState) float64 {
	return KineticEnergy(bodies) + g.PotentialEnergy(bodies)
}

func (g Gravity) minDistance() float64 {
	if g.MinDistance > 0 {
		return g.MinDistance
	}
	return DefaultMinDistance
}

func KineticEnergy(bodies []dynamo.BodyState) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.LenSq()
	}
	return ke
}

func TotalMomentum(bodies []dynamo.BodyState) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Velocity.Scale(b.Mass))
	}
	return p
}

// AngularMomentum about the origin.
func AngularMomentum(bodies []dynamo.BodyState) float64 {
	l := 0.0
	for _, b := range bodies {
		l += b.Mass * (b.Position.X*b.Velocity.Y - b.Position.Y*b.Velocity.X)
	}
	return l
}
