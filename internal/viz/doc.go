// Package viz is a terminal monitor for a running neuron.
//
// [Monitor] is a Bubble Tea model that ticks an [Engine] at its configured
// period, plots the selected variable with asciigraph and draws the x-z
// projection on a Braille [Canvas].
//
// # Key Bindings
//
//	Space    - Pause/Resume
//	Up/Down  - Raise/lower the synaptic input
//	Tab      - Cycle the plotted variable
//	T        - Cycle color themes
//	R        - Reset the state variables
//	?        - Toggle help
//	Q        - Quit
package viz
