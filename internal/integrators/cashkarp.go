package integrators

import "github.com/san-kum/hrneuron/internal/hr"

// Stage and weight coefficients of the six-stage embedded scheme. These are
// the truncated decimals the calibration table was measured against; do not
// replace them with exact rationals.
var (
	ck21 = 0.2

	ck31 = 0.075
	ck32 = 0.225

	ck41 = 0.3
	ck42 = -0.9
	ck43 = 1.2

	ck51 = 0.075
	ck52 = 0.675
	ck53 = -0.6
	ck54 = 0.75

	ck61 = 0.660493827160493
	ck62 = 2.5
	ck63 = -5.185185185185185
	ck64 = 3.888888888888889
	ck65 = -0.864197530864197

	ck1 = 0.098765432098765
	ck3 = 0.396825396825396
	ck4 = 0.231481481481481
	ck5 = 0.308641975308641
	ck6 = -0.035714285714285
)

// CashKarp advances the model with the fifth-order combination of six
// derivative evaluations. The embedded lower-order estimate is never formed:
// the step size is fixed by the caller.
type CashKarp struct{}

func NewCashKarp() CashKarp {
	return CashKarp{}
}

func (CashKarp) Name() string { return "cashkarp" }
func (CashKarp) Stages() int  { return 6 }

// Step returns the state one dt later. It works on fixed size arrays and
// never allocates.
func (CashKarp) Step(v hr.Vars, p hr.Params, iSyn, dt float64) hr.Vars {
	var k0, k1, k2, k3, k4, k5, aux hr.Vars

	r := hr.Derive(v, p, iSyn)
	for j := range v {
		k0[j] = dt * r[j]
		aux[j] = v[j] + k0[j]*ck21
	}

	r = hr.Derive(aux, p, iSyn)
	for j := range v {
		k1[j] = dt * r[j]
		aux[j] = v[j] + k0[j]*ck31 + k1[j]*ck32
	}

	r = hr.Derive(aux, p, iSyn)
	for j := range v {
		k2[j] = dt * r[j]
		aux[j] = v[j] + k0[j]*ck41 + k1[j]*ck42 + k2[j]*ck43
	}

	r = hr.Derive(aux, p, iSyn)
	for j := range v {
		k3[j] = dt * r[j]
		aux[j] = v[j] + k0[j]*ck51 + k1[j]*ck52 + k2[j]*ck53 + k3[j]*ck54
	}

	r = hr.Derive(aux, p, iSyn)
	for j := range v {
		k4[j] = dt * r[j]
		aux[j] = v[j] + k0[j]*ck61 + k1[j]*ck62 + k2[j]*ck63 + k3[j]*ck64 + k4[j]*ck65
	}

	r = hr.Derive(aux, p, iSyn)
	for j := range v {
		k5[j] = dt * r[j]
	}

	// k1 only feeds the intermediate stages. The weighted sum is formed
	// before it is added to the state.
	var out hr.Vars
	for j := range v {
		out[j] = v[j] + (k0[j]*ck1 + k2[j]*ck3 + k3[j]*ck4 + k4[j]*ck5 + k5[j]*ck6)
	}
	return out
}
