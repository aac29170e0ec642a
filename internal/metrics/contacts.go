package metrics

import (
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

// Contacts counts overlapping pairs summed over the observed ticks. Frames
// are observed after separation, so this counts overlaps that one nudge did
// not clear.
type Contacts struct {
	name  string
	count int
}

func NewContacts() *Contacts {
	return &Contacts{name: "contacts"}
}

func (c *Contacts) Name() string {
	return c.name
}

func (c *Contacts) Observe(tick int, bodies []dynamo.BodyState) {
	for i := range bodies {
		a := dynamo.Body{Position: bodies[i].Position, Radius: bodies[i].Radius}
		for j := i + 1; j < len(bodies); j++ {
			b := dynamo.Body{Position: bodies[j].Position, Radius: bodies[j].Radius}
			if physics.IsColliding(&a, &b) {
				c.count++
			}
		}
	}
}

func (c *Contacts) Value() float64 {
	return float64(c.count)
}

func (c *Contacts) Reset() {
	c.count = 0
}
