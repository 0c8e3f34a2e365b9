// Package viz renders walk results in the terminal.
//
//   - [PlotDistribution]: asciigraph line plot of a finished distribution
//   - [RenderSummary]: styled table of a run summary
//   - [Model]: Bubble Tea viewer that steps a walk live
//   - [App]: preset picker that launches a [Model]
//   - [Canvas]: Braille-based pixel canvas used for the live bar chart
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial state
//	[ ]   - Replay history backward/forward
//	T     - Cycle color themes
//	?     - Show help
package viz
