package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/san-kum/hrneuron/internal/neuron"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid run config")
	ErrDiverged      = errors.New("sim: state diverged (NaN or Inf)")
)

// TickError carries the tick at which a run failed.
type TickError struct {
	Tick    int
	Wrapped error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("tick %d: %v", e.Tick, e.Wrapped)
}

func (e *TickError) Unwrap() error {
	return e.Wrapped
}

// Simulator drives a neuron tick by tick, as a host loop would.
type Simulator struct {
	n         *neuron.Neuron
	stim      Stimulus
	metrics   []Metric
	observers []Observer
}

func New(n *neuron.Neuron, stim Stimulus) *Simulator {
	if stim == nil {
		stim = Constant(0)
	}
	return &Simulator{
		n:         n,
		stim:      stim,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Neuron() *neuron.Neuron { return s.n }

func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Ticks <= 0 {
		return nil, fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalidConfig, cfg.Ticks)
	}
	if cfg.RecordEvery < 0 {
		return nil, fmt.Errorf("%w: record interval must not be negative", ErrInvalidConfig)
	}

	capacity := 0
	if cfg.RecordEvery > 0 {
		capacity = cfg.Ticks/cfg.RecordEvery + 1
	}
	result := &Result{
		Samples: make([]Sample, 0, capacity),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var runErr error
	for tick := 0; tick < cfg.Ticks; tick++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		timing := s.n.Timing()
		t := float64(tick) * timing.PeriodSeconds
		in := s.stim.Input(tick, t)
		s.n.SetInput(neuron.InputSyn, in)

		steps := s.n.Process()
		result.Substeps += steps
		result.ModelTime += float64(steps) * timing.Dt
		result.TicksRun++

		sample := Sample{
			Tick:      tick,
			Time:      t,
			ModelTime: result.ModelTime,
			Vars:      s.n.Vars(),
			Input:     in,
			Substeps:  steps,
		}

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnTick(sample)
		}
		if cfg.RecordEvery > 0 && tick%cfg.RecordEvery == 0 {
			result.Samples = append(result.Samples, sample)
		}

		if cfg.ValidateState && !sample.Vars.IsValid() {
			runErr = &TickError{Tick: tick, Wrapped: ErrDiverged}
			break
		}
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}
