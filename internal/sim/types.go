package sim

import "github.com/san-kum/hrneuron/internal/hr"

// Sample is the neuron state after one tick.
type Sample struct {
	Tick int
	// Time is host time, tick index times the tick period.
	Time float64
	// ModelTime is the integrated model time so far.
	ModelTime float64
	Vars      hr.Vars
	Input     float64
	Substeps  int
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Sample)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s Sample)

func (f ObserverFunc) OnTick(s Sample) { f(s) }

type Config struct {
	Ticks int
	// RecordEvery keeps one sample in N; 0 disables recording.
	RecordEvery   int
	ValidateState bool
}

type Result struct {
	Samples   []Sample
	Metrics   map[string]float64
	TicksRun  int
	Substeps  int
	ModelTime float64
}

// Xs returns the recorded membrane potentials.
func (r *Result) Xs() []float64 {
	return r.column(hr.X)
}

func (r *Result) Zs() []float64 {
	return r.column(hr.Z)
}

func (r *Result) Times() []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Time
	}
	return out
}

func (r *Result) column(i int) []float64 {
	out := make([]float64, len(r.Samples))
	for j, s := range r.Samples {
		out[j] = s.Vars[i]
	}
	return out
}
