package integrators

import (
	"testing"

	"github.com/san-kum/hrneuron/internal/hr"
)

func benchStepper(b *testing.B, s Stepper) {
	p := hr.DefaultParams()
	v := hr.DefaultVars()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		v = s.Step(v, p, 0, 0.001)
	}
}

func BenchmarkCashKarp(b *testing.B) { benchStepper(b, NewCashKarp()) }
func BenchmarkRK4(b *testing.B)      { benchStepper(b, NewRK4()) }
func BenchmarkEuler(b *testing.B)    { benchStepper(b, NewEuler()) }
