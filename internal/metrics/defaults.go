package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

// Defaults is the metric set attached to every stored run.
func Defaults(g physics.Gravity, vp dynamo.Viewport) []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewEnergyDrift(g),
		NewMomentumDrift(),
		NewContacts(),
		NewContainment(vp),
	}
}
