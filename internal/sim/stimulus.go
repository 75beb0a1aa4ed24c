package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrUnknownStimulus = errors.New("sim: unknown stimulus kind")

// Stimulus produces the synaptic input for a tick at host time t.
type Stimulus interface {
	Input(tick int, t float64) float64
}

type Constant float64

func (c Constant) Input(int, float64) float64 { return float64(c) }

// Step switches from 0 to Amplitude at Start.
type Step struct {
	Amplitude float64
	Start     float64
}

func (s Step) Input(_ int, t float64) float64 {
	if t >= s.Start {
		return s.Amplitude
	}
	return 0
}

// Pulse is a train of rectangular pulses. A zero Period gives one pulse.
type Pulse struct {
	Amplitude float64
	Start     float64
	Width     float64
	Period    float64
}

func (p Pulse) Input(_ int, t float64) float64 {
	if t < p.Start {
		return 0
	}
	phase := t - p.Start
	if p.Period > 0 {
		phase = math.Mod(phase, p.Period)
	}
	if phase < p.Width {
		return p.Amplitude
	}
	return 0
}

// Noise is Gaussian input around Amplitude. The sequence is fixed by the
// seed so runs stay reproducible.
type Noise struct {
	Amplitude float64
	Std       float64
	rng       *rand.Rand
}

func NewNoise(amplitude, std float64, seed int64) *Noise {
	return &Noise{Amplitude: amplitude, Std: std, rng: rand.New(rand.NewSource(seed))}
}

func (n *Noise) Input(int, float64) float64 {
	return n.Amplitude + n.Std*n.rng.NormFloat64()
}

// StimulusSpec is the serializable form of a stimulus.
type StimulusSpec struct {
	Kind      string  `yaml:"kind" json:"kind"`
	Amplitude float64 `yaml:"amplitude" json:"amplitude"`
	Start     float64 `yaml:"start" json:"start"`
	Width     float64 `yaml:"width" json:"width"`
	Period    float64 `yaml:"period" json:"period"`
	Std       float64 `yaml:"std" json:"std"`
}

// Build creates the stimulus. seed only affects noise.
func (s StimulusSpec) Build(seed int64) (Stimulus, error) {
	switch s.Kind {
	case "noise":
		return NewNoise(s.Amplitude, s.Std, seed), nil
	case "", "const":
		return Constant(s.Amplitude), nil
	case "step":
		return Step{Amplitude: s.Amplitude, Start: s.Start}, nil
	case "pulse":
		return Pulse{Amplitude: s.Amplitude, Start: s.Start, Width: s.Width, Period: s.Period}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStimulus, s.Kind)
}
