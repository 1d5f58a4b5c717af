// Package viz renders runs in the terminal.
//
//   - [RenderSummary]: a lipgloss panel with the solver status and indices
//   - [PlotSeries], [PlotOverlay]: asciigraph line charts of series columns
//   - [WatchModel]: a Bubble Tea program following the steady-state loop
//
// # Key Bindings
//
//	q, Ctrl+C - quit the watch view
package viz
