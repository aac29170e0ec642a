// Package viz provides terminal-based visualization for gravsim worlds.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: steps a world once per frame and draws it
//   - [Picker]: scenario menu that launches a [Model]
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Themes]: colour schemes cycled with T
//
// # Key Bindings
//
//	Space - Pause/Resume simulation
//	.     - Single step while paused
//	R     - Reset to initial state
//	+/-   - Zoom in/out
//	T     - Cycle color themes
//	F     - Cycle target frame rate (15/30/60)
//
// Trails fade toward the theme background; the oldest point of a full
// trail is drawn at alpha 1 and alpha falls by 1/capacity per point.
package viz
