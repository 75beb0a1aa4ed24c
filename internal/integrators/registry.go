package integrators

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/hrneuron/internal/hr"
)

// ErrUnknownIntegrator is returned by Get for names missing from the registry.
var ErrUnknownIntegrator = errors.New("integrators: unknown integrator")

// Stepper advances the model state by one fixed step.
type Stepper interface {
	Name() string
	// Stages is the number of derivative evaluations per step.
	Stages() int
	Step(v hr.Vars, p hr.Params, iSyn, dt float64) hr.Vars
}

// Default is the stepper every calibrated code path uses.
const Default = "cashkarp"

var registry = map[string]func() Stepper{
	"cashkarp": func() Stepper { return NewCashKarp() },
	"rk4":      func() Stepper { return NewRK4() },
	"euler":    func() Stepper { return NewEuler() },
}

func Get(name string) (Stepper, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIntegrator, name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
