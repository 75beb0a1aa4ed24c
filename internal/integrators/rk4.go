package integrators

import "github.com/san-kum/hrneuron/internal/hr"

// RK4 is the classic four-stage Runge-Kutta method. It is kept for
// accuracy comparisons; the calibration table does not apply to it.
type RK4 struct{}

func NewRK4() RK4 {
	return RK4{}
}

func (RK4) Name() string { return "rk4" }
func (RK4) Stages() int  { return 4 }

func (RK4) Step(v hr.Vars, p hr.Params, iSyn, dt float64) hr.Vars {
	var scratch hr.Vars

	k1 := hr.Derive(v, p, iSyn)
	for i := range v {
		scratch[i] = v[i] + dt*0.5*k1[i]
	}
	k2 := hr.Derive(scratch, p, iSyn)

	for i := range v {
		scratch[i] = v[i] + dt*0.5*k2[i]
	}
	k3 := hr.Derive(scratch, p, iSyn)

	for i := range v {
		scratch[i] = v[i] + dt*k3[i]
	}
	k4 := hr.Derive(scratch, p, iSyn)

	var out hr.Vars
	dt6 := dt / 6.0
	for i := range v {
		out[i] = v[i] + dt6*(k1[i]+2*k2[i]+2*k3[i]+k4[i])
	}
	return out
}
