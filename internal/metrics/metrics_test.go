package metrics

import (
	"context"
	"testing"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/neuron"
	"github.com/san-kum/hrneuron/internal/sim"
)

func sample(x, modelTime float64, substeps int) sim.Sample {
	return sim.Sample{Vars: hr.Vars{x, 0, 0}, ModelTime: modelTime, Substeps: substeps}
}

func feed(m sim.Metric, xs []float64, dt float64) {
	for i, x := range xs {
		m.Observe(sample(x, float64(i)*dt, 1))
	}
}

func TestSpikeCount(t *testing.T) {
	m := NewSpikeCount(0)
	feed(m, []float64{-1, 1, -1, 1, 1, -1, 0.5}, 1)

	if m.Value() != 3 {
		t.Errorf("expected 3 spikes, got %f", m.Value())
	}

	m.Reset()
	feed(m, []float64{1, 1}, 1)
	if m.Value() != 0 {
		t.Errorf("a trace starting above threshold has no crossing, got %f", m.Value())
	}
}

func TestBurstCount(t *testing.T) {
	m := NewBurstCount(0, 5)
	// spikes at t=1, 3 and 20, 22: two bursts
	xs := make([]float64, 30)
	for i := range xs {
		xs[i] = -1
	}
	for _, i := range []int{1, 3, 20, 22} {
		xs[i] = 1
	}
	feed(m, xs, 1)

	if m.Value() != 2 {
		t.Errorf("expected 2 bursts, got %f", m.Value())
	}
}

func TestPotentialMetrics(t *testing.T) {
	peak := NewPeakPotential()
	mean := NewMeanPotential()
	if peak.Value() != 0 || mean.Value() != 0 {
		t.Error("expected zero before observations")
	}

	for _, m := range []sim.Metric{peak, mean} {
		feed(m, []float64{-1, 2, 0.5}, 1)
	}

	if peak.Value() != 2 {
		t.Errorf("expected peak 2, got %f", peak.Value())
	}
	if mean.Value() != 0.5 {
		t.Errorf("expected mean 0.5, got %f", mean.Value())
	}
}

func TestSubsteps(t *testing.T) {
	m := NewSubsteps()
	m.Observe(sample(0, 0, 3))
	m.Observe(sample(0, 0, 5))

	if m.Value() != 8 || m.Max() != 5 {
		t.Errorf("expected total 8 max 5, got %f %d", m.Value(), m.Max())
	}
	m.Reset()
	if m.Value() != 0 || m.Max() != 0 {
		t.Error("expected reset to clear")
	}
}

func TestDefaultsOnBurstingRun(t *testing.T) {
	n := neuron.New(neuron.DefaultOptions())
	n.SetConfig(neuron.KeyPeriodSeconds, 0)
	n.SetConfig(neuron.KeyTimeIncrement, 0.01)

	s := sim.New(n, nil)
	for _, m := range Defaults() {
		s.AddMetric(m)
	}

	result, err := s.Run(context.Background(), sim.Config{Ticks: 100000})
	if err != nil {
		t.Fatal(err)
	}

	if result.Metrics["bursts"] < 5 {
		t.Errorf("expected several bursts over 1000 time units, got %f", result.Metrics["bursts"])
	}
	if result.Metrics["spikes"] < result.Metrics["bursts"] {
		t.Errorf("expected at least one spike per burst")
	}
	if result.Metrics["peak_x"] < 1 {
		t.Errorf("expected spikes to peak above 1, got %f", result.Metrics["peak_x"])
	}
	if result.Metrics["substeps"] != 100000 {
		t.Errorf("expected one substep per tick, got %f", result.Metrics["substeps"])
	}
}
