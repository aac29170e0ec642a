// Package physics implements the pairwise laws of the gravity simulation.
//
//   - [Gravity]: inverse-square attraction with a clamped minimum distance
//   - [Accelerations]: per-tick net acceleration of every body, from scratch
//   - [IsColliding], [ExchangeMomentum], [Separate]: contact handling
//   - [TotalEnergy], [TotalMomentum]: conserved quantities for monitoring
//
// Every function takes bodies by pointer; only ExchangeMomentum and the
// separators mutate them.
package physics
