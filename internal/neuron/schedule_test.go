package neuron_test

import (
	"testing"

	"github.com/san-kum/hrneuron/internal/neuron"
)

func TestSchedulerPlan(t *testing.T) {
	tests := []struct {
		name     string
		in       neuron.Timing
		wantDt   float64
		wantStep int
		wantMode neuron.Mode
	}{
		{"burst", neuron.Timing{Dt: 0.0015, BurstDuration: 1, PeriodSeconds: 0.001}, 0.0933, 3, neuron.ModeBurst},
		{"idle", neuron.Timing{Dt: 0.0015, BurstDuration: 1, PeriodSeconds: 0}, 0.0015, 1, neuron.ModeIdle},
		{"continuous", neuron.Timing{Dt: 0.0001, PeriodSeconds: 0.001}, 0.0001, 10, neuron.ModeContinuous},
		{"coarse continuous", neuron.Timing{Dt: 0.0015, PeriodSeconds: 0.001}, 0.0015, 1, neuron.ModeContinuous},
	}

	s := neuron.Scheduler{MaxSubsteps: neuron.DefaultMaxSubsteps}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Plan(tt.in)
			if got.Dt != tt.wantDt {
				t.Errorf("expected dt %v, got %v", tt.wantDt, got.Dt)
			}
			if got.Substeps != tt.wantStep {
				t.Errorf("expected %d substeps, got %d", tt.wantStep, got.Substeps)
			}
			if got.Mode != tt.wantMode {
				t.Errorf("expected mode %v, got %v", tt.wantMode, got.Mode)
			}
		})
	}
}

func TestParsePolicy(t *testing.T) {
	if p, err := neuron.ParsePolicy("strict"); err != nil || p != neuron.Strict {
		t.Errorf("expected strict, got %v (%v)", p, err)
	}
	if _, err := neuron.ParsePolicy("lazy"); err == nil {
		t.Error("expected error for unknown policy")
	}
}

func TestSchedulerClearsStaleBurstDensity(t *testing.T) {
	s := neuron.Scheduler{MaxSubsteps: neuron.DefaultMaxSubsteps}
	burst := s.Plan(neuron.Timing{Dt: 0.0015, BurstDuration: 1, PeriodSeconds: 0.001})
	if burst.PointsBurst != 3032.899696 {
		t.Fatalf("expected burst density 3032.899696, got %v", burst.PointsBurst)
	}

	tests := []struct {
		name   string
		change func(*neuron.Timing)
		mode   neuron.Mode
	}{
		{"idle", func(tm *neuron.Timing) { tm.PeriodSeconds = 0 }, neuron.ModeIdle},
		{"unmatched", func(tm *neuron.Timing) { tm.BurstDuration = 600 }, neuron.ModeBurst},
		{"continuous", func(tm *neuron.Timing) { tm.BurstDuration = 0 }, neuron.ModeContinuous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := burst
			tt.change(&in)
			got := s.Plan(in)
			if got.Mode != tt.mode {
				t.Errorf("expected mode %v, got %v", tt.mode, got.Mode)
			}
			if got.Matched {
				t.Error("expected no table match")
			}
			if got.PointsBurst != 0 {
				t.Errorf("expected burst density cleared, got %v", got.PointsBurst)
			}
		})
	}
}
