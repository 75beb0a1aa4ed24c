package integrators

import "github.com/san-kum/hrneuron/internal/hr"

type Euler struct{}

func NewEuler() Euler {
	return Euler{}
}

func (Euler) Name() string { return "euler" }
func (Euler) Stages() int  { return 1 }

func (Euler) Step(v hr.Vars, p hr.Params, iSyn, dt float64) hr.Vars {
	dv := hr.Derive(v, p, iSyn)
	for i := range v {
		v[i] += dt * dv[i]
	}
	return v
}
