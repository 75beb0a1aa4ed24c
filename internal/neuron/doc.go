// Package neuron holds the state record of a single real-time
// Hindmarsh-Rose neuron and the scheduler that sizes each tick.
//
// A Neuron is configured one field at a time with SetConfig. Every call
// replans the timing: in burst mode the step size comes from the
// calibration table, in continuous mode it is derived from the tick period.
// Process then runs a bounded number of integrator sub-steps.
//
//	n := neuron.New(neuron.DefaultOptions())
//	n.SetConfig(neuron.KeyPeriodSeconds, 0.001)
//	n.SetInput(neuron.InputSyn, 0.5)
//	for tick := 0; tick < 1000; tick++ {
//		n.Process()
//	}
//
// Neuron is not safe for concurrent use. Realtime wraps it for hosts that
// configure from one goroutine and tick from another.
package neuron
