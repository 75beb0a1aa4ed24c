// Package hr provides the Hindmarsh-Rose neuron model primitives.
//
// The package defines the value types shared by every other package:
//
//   - [Vars]: the dynamical variables (x, y, z)
//   - [Params]: the model constants (e, mu, s, vh)
//   - [Derive]: the pure derivative evaluator
//
// Everything here is a plain value. Nothing allocates and nothing holds
// state, so the types are safe to copy across goroutines.
//
// # Example
//
//	v := hr.DefaultVars()
//	p := hr.DefaultParams()
//	dv := hr.Derive(v, p, 0)
package hr
