package neuron

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/hrneuron/internal/calib"
)

// DefaultMaxSubsteps bounds the work of a single tick.
const DefaultMaxSubsteps = 10000

var ErrUnknownPolicy = errors.New("neuron: unknown substep policy")

// Policy decides how many sub-steps a burst-mode tick runs.
type Policy int

const (
	// Calibrated runs the table-derived count, capped at MaxSubsteps.
	Calibrated Policy = iota
	// Strict always runs one sub-step per tick in burst mode.
	Strict
)

func (p Policy) String() string {
	switch p {
	case Calibrated:
		return "calibrated"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "calibrated":
		return Calibrated, nil
	case "strict":
		return Strict, nil
	}
	return Calibrated, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Mode is the timing regime picked by the last plan.
type Mode int

const (
	// ModeIdle means no usable tick period; one sub-step per tick.
	ModeIdle Mode = iota
	ModeBurst
	ModeContinuous
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeBurst:
		return "burst"
	case ModeContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Timing is the integration step and per-tick workload.
type Timing struct {
	Dt            float64 `json:"dt"`
	BurstDuration float64 `json:"burst_duration"`
	PeriodSeconds float64 `json:"period_seconds"`
	Substeps      int     `json:"substeps"`
	PointsBurst   float64 `json:"points_burst"`
	Matched       bool    `json:"matched"`
	Mode          Mode    `json:"mode"`
}

// DefaultTiming is the timing after Init, before any plan.
func DefaultTiming() Timing {
	return Timing{
		Dt:            0.0015,
		BurstDuration: 1.0,
		PeriodSeconds: 0.001,
		Substeps:      1,
	}
}

// Scheduler turns configured durations into a step size and sub-step count.
type Scheduler struct {
	Table       *calib.Table
	Strategy    calib.Strategy
	Policy      Policy
	MaxSubsteps int
}

// Plan recomputes derived timing from t.Dt, t.BurstDuration and
// t.PeriodSeconds. The result always has Substeps in [1, MaxSubsteps].
func (s Scheduler) Plan(t Timing) Timing {
	limit := s.limit()

	switch {
	case !(t.PeriodSeconds > 0):
		t.Mode = ModeIdle
		t.Matched = false
		t.PointsBurst = 0
		t.Substeps = 1

	case t.BurstDuration > 0:
		t.Mode = ModeBurst
		sel := s.table().Select(t.BurstDuration, t.PeriodSeconds, s.Strategy)
		t.Matched = sel.Matched
		if !sel.Matched {
			t.PointsBurst = 0
			t.Substeps = 1
			break
		}
		t.Dt = sel.Dt
		t.PointsBurst = sel.PointsBurst
		if s.Policy == Strict {
			t.Substeps = 1
		} else {
			t.Substeps = clampSteps(math.Round(sel.Ratio()), limit)
		}

	default:
		t.Mode = ModeContinuous
		t.Matched = false
		t.PointsBurst = 0
		steps := math.Round(t.PeriodSeconds / t.Dt)
		if steps > float64(limit) {
			t.Dt = t.PeriodSeconds / float64(limit)
			t.Substeps = limit
			break
		}
		t.Substeps = clampSteps(steps, limit)
	}

	return t
}

func (s Scheduler) limit() int {
	if s.MaxSubsteps < 1 {
		return DefaultMaxSubsteps
	}
	return s.MaxSubsteps
}

func (s Scheduler) table() *calib.Table {
	if s.Table == nil {
		return calib.Default()
	}
	return s.Table
}

func clampSteps(steps float64, limit int) int {
	if !(steps >= 1) {
		return 1
	}
	if steps > float64(limit) {
		return limit
	}
	return int(steps)
}
