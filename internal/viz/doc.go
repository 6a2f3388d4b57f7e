// Package viz renders dice sessions in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: choose a scenario and throw count, generate, inspect the report
//   - [Chart]: asciigraph plot of experimental vs theoretical probabilities
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	j/k   - Select dice count
//	h/l   - Select throw count
//	Enter - Generate
//	Tab   - Toggle chart and full report
//	C     - Clear the session
//	E     - Export results
//	T     - Cycle color themes
//	Q     - Quit
//
// Generation runs off the UI goroutine; the session is not read again until
// its completion message arrives.
package viz
