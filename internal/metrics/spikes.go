package metrics

import (
	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/sim"
)

// SpikeCount counts upward crossings of the membrane potential threshold.
type SpikeCount struct {
	threshold float64
	prev      float64
	started   bool
	count     int
}

func NewSpikeCount(threshold float64) *SpikeCount {
	return &SpikeCount{threshold: threshold}
}

func (s *SpikeCount) Name() string { return "spikes" }

func (s *SpikeCount) Observe(smp sim.Sample) {
	x := smp.Vars[hr.X]
	if s.started && s.prev < s.threshold && x >= s.threshold {
		s.count++
	}
	s.prev = x
	s.started = true
}

func (s *SpikeCount) Value() float64 { return float64(s.count) }

func (s *SpikeCount) Reset() {
	s.count = 0
	s.started = false
}

// BurstCount counts groups of spikes separated by at least gap units of
// model time.
type BurstCount struct {
	threshold float64
	gap       float64
	prev      float64
	started   bool
	lastSpike float64
	seen      bool
	count     int
}

func NewBurstCount(threshold, gap float64) *BurstCount {
	return &BurstCount{threshold: threshold, gap: gap}
}

func (b *BurstCount) Name() string { return "bursts" }

func (b *BurstCount) Observe(smp sim.Sample) {
	x := smp.Vars[hr.X]
	if b.started && b.prev < b.threshold && x >= b.threshold {
		if !b.seen || smp.ModelTime-b.lastSpike > b.gap {
			b.count++
		}
		b.lastSpike = smp.ModelTime
		b.seen = true
	}
	b.prev = x
	b.started = true
}

func (b *BurstCount) Value() float64 { return float64(b.count) }

func (b *BurstCount) Reset() {
	b.count = 0
	b.started = false
	b.seen = false
}
