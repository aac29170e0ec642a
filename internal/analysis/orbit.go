package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/sim"
)

type Component int

const (
	X Component = iota
	Y
	VX
	VY
)

// ParseComponent maps "x", "y", "vx" or "vy" to a Component.
func ParseComponent(s string) (Component, bool) {
	switch s {
	case "x":
		return X, true
	case "y":
		return Y, true
	case "vx":
		return VX, true
	case "vy":
		return VY, true
	}
	return 0, false
}

// Series extracts one coordinate of one body from every frame.
func Series(frames []sim.Frame, body int, c Component) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		switch c {
		case X:
			out[i] = f.Positions[body].X
		case Y:
			out[i] = f.Positions[body].Y
		case VX:
			out[i] = f.Velocities[body].X
		case VY:
			out[i] = f.Velocities[body].Y
		}
	}
	return out
}

// Separation is the centre distance between bodies i and j in every frame.
func Separation(frames []sim.Frame, i, j int) []float64 {
	out := make([]float64, len(frames))
	for k, f := range frames {
		out[k] = f.Positions[i].Sub(f.Positions[j]).Len()
	}
	return out
}

type Orbit struct {
	Periapsis    float64
	Apoapsis     float64
	Eccentricity float64
}

// Apsides reports the extreme separations of a pair over a run and the
// eccentricity they imply.
func Apsides(frames []sim.Frame, i, j int) Orbit {
	if len(frames) == 0 {
		return Orbit{}
	}
	o := Orbit{Periapsis: math.Inf(1)}
	for _, d := range Separation(frames, i, j) {
		o.Periapsis = math.Min(o.Periapsis, d)
		o.Apoapsis = math.Max(o.Apoapsis, d)
	}
	if sum := o.Apoapsis + o.Periapsis; sum > 0 {
		o.Eccentricity = (o.Apoapsis - o.Periapsis) / sum
	}
	return o
}
