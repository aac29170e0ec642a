package physics

import "github.com/san-kum/gravsim/internal/dynamo"

// SeparationStep is the distance a separator moves a body per contact.
const SeparationStep = 1.0

// Separator resolves overlap between two bodies after momentum exchange.
type Separator func(a, b *dynamo.Body)

func Distance(a, b *dynamo.Body) float64 {
	return b.Position.Sub(a.Position).Len()
}

// IsColliding reports strict overlap: r_a + r_b > d. Touching circles do not
// collide.
func IsColliding(a, b *dynamo.Body) bool {
	return a.Radius+b.Radius > Distance(a, b)
}

// ExchangeMomentum applies the 1-D elastic collision formula to each velocity
// component:
//
//	v_a' = (2*m_b*v_b + (m_a-m_b)*v_a) / (m_a+m_b)
//	v_b' = (2*m_a*v_a + (m_b-m_a)*v_b) / (m_a+m_b)
//
// The velocities are not projected onto the line of impact.
func ExchangeMomentum(a, b *dynamo.Body) {
	va, vb := a.Velocity, b.Velocity
	ma, mb := a.Mass, b.Mass
	sum := ma + mb
	a.Velocity = vb.Scale(2 * mb).Add(va.Scale(ma - mb)).Scale(1 / sum)
	b.Velocity = va.Scale(2 * ma).Add(vb.Scale(mb - ma)).Scale(1 / sum)
}

// Separate moves a by SeparationStep along the a->b axis, away from b. b is
// left untouched. Coincident centres have no axis and nothing moves.
func Separate(a, b *dynamo.Body) {
	dir := b.Position.Sub(a.Position).Unit()
	a.Position = a.Position.Sub(dir.Scale(SeparationStep))
}

// SeparateBoth nudges each body SeparationStep away from the other.
func SeparateBoth(a, b *dynamo.Body) {
	dir := b.Position.Sub(a.Position).Unit()
	a.Position = a.Position.Sub(dir.Scale(SeparationStep))
	b.Position = b.Position.Add(dir.Scale(SeparationStep))
}

// SeparatorByName maps a config name to a separator. Unknown names return
// false.
func SeparatorByName(name string) (Separator, bool) {
	switch name {
	case "", "first":
		return Separate, true
	case "both":
		return SeparateBoth, true
	}
	return nil, false
}
