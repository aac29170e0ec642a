// Package analysis extracts orbital quantities from recorded runs.
//
//   - [DominantPeriod]: strongest period of a coordinate series via FFT
//   - [Apsides]: closest and farthest approach of a body pair
//   - [Divergence]: growth rate of a small initial perturbation
//
// A positive divergence rate indicates sensitive dependence on the initial
// layout, as is typical for three or more bodies:
//
//	rate, err := analysis.Divergence(specs, vp, opts, 1e-6, 2000)
package analysis
