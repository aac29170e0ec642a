// Package dynamo provides the core primitives of the gravity simulation.
//
// The package defines the value types shared by every layer:
//
//   - [Vec2]: 2-D vector with the arithmetic used throughout
//   - [Body]: circular point mass with kinematic state and a trail
//   - [Trail]: bounded FIFO of recent positions
//   - [BodySpec]: construction-time descriptor of a body
//   - [BodyState]: read-only copy of a body handed to renderers
//
// # Example
//
//	specs := []dynamo.BodySpec{
//		{Mass: 500, Radius: 20, TrailCap: 64, Centered: true},
//		{Position: dynamo.V(80, 0), Mass: 10, Radius: 4, TrailCap: 64, Centered: true},
//	}
//	w, err := sim.New(specs, dynamo.Viewport{Width: 800, Height: 600})
//
// # Thread Safety
//
// Bodies and trails are NOT thread-safe. A world owns its bodies exclusively;
// use separate worlds for concurrent runs.
package dynamo
