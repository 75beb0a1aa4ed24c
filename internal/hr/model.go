package hr

import "math"

// Indices into Vars.
const (
	X = iota
	Y
	Z
	NumVars
)

// Vars holds the membrane potential like variable x and the two gating
// variables y and z.
type Vars [NumVars]float64

// Params holds the constants read by every derivative evaluation.
type Params struct {
	E  float64 `yaml:"e" json:"e"`
	Mu float64 `yaml:"mu" json:"mu"`
	S  float64 `yaml:"s" json:"s"`
	Vh float64 `yaml:"vh" json:"vh"`
}

// Default initial conditions sit close to the resting equilibrium for
// the default parameters.
const (
	DefaultX = -0.9013747551021072
	DefaultY = -3.15948829665501
	DefaultZ = 3.247826955037619

	DefaultE  = 3.25
	DefaultMu = 0.006
	DefaultS  = 4.0
	DefaultVh = 1.0
)

func DefaultVars() Vars {
	return Vars{DefaultX, DefaultY, DefaultZ}
}

func DefaultParams() Params {
	return Params{E: DefaultE, Mu: DefaultMu, S: DefaultS, Vh: DefaultVh}
}

// Derive returns dx/dt, dy/dt and dz/dt. The synaptic input is subtracted
// from the x derivative.
func Derive(v Vars, p Params, iSyn float64) Vars {
	x, y, z := v[X], v[Y], v[Z]
	return Vars{
		y + 3.0*x*x - x*x*x - p.Vh*z + p.E - iSyn,
		1.0 - 5.0*x*x - y,
		p.Mu * (-p.Vh*z + p.S*(x+1.6)),
	}
}

// IsValid reports whether every variable is finite.
func (v Vars) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// Slice copies the variables into a new slice, used by the storage and
// plotting layers.
func (v Vars) Slice() []float64 {
	return []float64{v[X], v[Y], v[Z]}
}

// Get returns the named model constant.
func (p Params) Get(name string) (float64, bool) {
	switch name {
	case "e":
		return p.E, true
	case "mu":
		return p.Mu, true
	case "s":
		return p.S, true
	case "vh":
		return p.Vh, true
	}
	return 0, false
}

// With returns a copy of p with the named constant replaced. Unknown names
// return p unchanged.
func (p Params) With(name string, v float64) Params {
	switch name {
	case "e":
		p.E = v
	case "mu":
		p.Mu = v
	case "s":
		p.S = v
	case "vh":
		p.Vh = v
	}
	return p
}

// ParamNames lists the model constants in display order.
func ParamNames() []string {
	return []string{"e", "mu", "s", "vh"}
}
