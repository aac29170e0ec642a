package metrics

import "github.com/san-kum/gravsim/internal/dynamo"

// Containment is the fraction of observed ticks on which every body centre
// lies inside the viewport.
type Containment struct {
	name       string
	viewport   dynamo.Viewport
	violations int
	samples    int
}

func NewContainment(vp dynamo.Viewport) *Containment {
	return &Containment{
		name:     "containment",
		viewport: vp,
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(tick int, bodies []dynamo.BodyState) {
	c.samples++
	for _, b := range bodies {
		if !c.viewport.Contains(b.Position) {
			c.violations++
			break
		}
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
