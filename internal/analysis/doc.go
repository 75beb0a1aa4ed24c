// Package analysis characterizes neuron traces and trajectories.
//
//   - [DetectSpikes] and [GroupBursts]: spike and burst structure of a trace
//   - [PowerSpectrum] and [DominantFrequency]: spectral content
//   - [LyapunovExponent]: largest exponent via trajectory separation
//   - [Bifurcation]: membrane potential maxima while sweeping a parameter
//   - [PhasePortrait]: x-z projection of a trajectory
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic bursting:
//
//	lambda := analysis.LyapunovExponent(stepper, hr.DefaultVars(), hr.DefaultParams(), cfg)
//	if lambda > 0 {
//	    // irregular bursts
//	}
package analysis
