package metrics

import (
	"math"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/sim"
)

type PeakPotential struct {
	peak float64
}

func NewPeakPotential() *PeakPotential {
	return &PeakPotential{peak: math.Inf(-1)}
}

func (p *PeakPotential) Name() string { return "peak_x" }

func (p *PeakPotential) Observe(s sim.Sample) {
	if x := s.Vars[hr.X]; x > p.peak {
		p.peak = x
	}
}

func (p *PeakPotential) Value() float64 {
	if math.IsInf(p.peak, -1) {
		return 0
	}
	return p.peak
}

func (p *PeakPotential) Reset() { p.peak = math.Inf(-1) }

type MeanPotential struct {
	sum     float64
	samples int
}

func NewMeanPotential() *MeanPotential {
	return &MeanPotential{}
}

func (m *MeanPotential) Name() string { return "mean_x" }

func (m *MeanPotential) Observe(s sim.Sample) {
	m.sum += s.Vars[hr.X]
	m.samples++
}

func (m *MeanPotential) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanPotential) Reset() {
	m.sum = 0
	m.samples = 0
}

// Substeps totals integrator calls, the per-tick compute load.
type Substeps struct {
	total, max int
}

func NewSubsteps() *Substeps {
	return &Substeps{}
}

func (s *Substeps) Name() string { return "substeps" }

func (s *Substeps) Observe(smp sim.Sample) {
	s.total += smp.Substeps
	if smp.Substeps > s.max {
		s.max = smp.Substeps
	}
}

func (s *Substeps) Value() float64 { return float64(s.total) }

// Max is the largest sub-step count seen in a single tick.
func (s *Substeps) Max() int { return s.max }

func (s *Substeps) Reset() {
	s.total = 0
	s.max = 0
}

// Defaults is the metric set the CLI attaches to every run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewSpikeCount(0),
		NewBurstCount(0, 35),
		NewPeakPotential(),
		NewMeanPotential(),
		NewSubsteps(),
	}
}
