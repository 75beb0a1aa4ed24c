package analysis

import (
	"math"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
)

type LyapunovConfig struct {
	Dt           float64
	Duration     float64
	Transient    float64
	Perturbation float64
	// RenormEvery is the number of steps between renormalizations.
	RenormEvery int
}

func DefaultLyapunovConfig() LyapunovConfig {
	return LyapunovConfig{
		Dt:           0.01,
		Duration:     2000,
		Transient:    200,
		Perturbation: 1e-8,
		RenormEvery:  10,
	}
}

// LyapunovExponent estimates the largest Lyapunov exponent by following
// two nearby trajectories and renormalizing their separation.
func LyapunovExponent(stepper integrators.Stepper, x0 hr.Vars, p hr.Params, cfg LyapunovConfig) float64 {
	if cfg.Dt <= 0 || cfg.Duration <= 0 || cfg.Perturbation <= 0 {
		return 0
	}
	if cfg.RenormEvery < 1 {
		cfg.RenormEvery = 1
	}

	x := x0
	for t := 0.0; t < cfg.Transient; t += cfg.Dt {
		x = stepper.Step(x, p, 0, cfg.Dt)
	}

	xp := x
	xp[hr.X] += cfg.Perturbation
	d0 := cfg.Perturbation

	steps := int(cfg.Duration / cfg.Dt)
	sumLog := 0.0
	elapsed := 0.0

	for i := 1; i <= steps; i++ {
		x = stepper.Step(x, p, 0, cfg.Dt)
		xp = stepper.Step(xp, p, 0, cfg.Dt)

		if i%cfg.RenormEvery != 0 {
			continue
		}

		sep := separation(x, xp)
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return 0
		}
		sumLog += math.Log(sep / d0)
		elapsed = float64(i) * cfg.Dt

		scale := d0 / sep
		for j := range xp {
			xp[j] = x[j] + (xp[j]-x[j])*scale
		}
	}

	if elapsed == 0 {
		return 0
	}
	return sumLog / elapsed
}

func separation(a, b hr.Vars) float64 {
	s := 0.0
	for i := range a {
		d := b[i] - a[i]
		s += d * d
	}
	return math.Sqrt(s)
}
