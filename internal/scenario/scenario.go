// Package scenario replays scripted sequences of configuration, input and
// tick calls against a neuron.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hrneuron/internal/hr"
)

var (
	ErrUnknownKey  = errors.New("scenario: unknown key")
	ErrInvalidStep = errors.New("scenario: step must name exactly one action")
)

// Scenario is an ordered script.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	// Strict turns unknown keys and inputs into errors instead of no-ops.
	Strict bool   `yaml:"strict"`
	Steps  []Step `yaml:"steps"`
}

// Step performs one action: set, input, process, reset or init.
type Step struct {
	Set     string  `yaml:"set,omitempty"`
	Input   string  `yaml:"input,omitempty"`
	Value   float64 `yaml:"value,omitempty"`
	Process int     `yaml:"process,omitempty"`
	Reset   bool    `yaml:"reset,omitempty"`
	Init    bool    `yaml:"init,omitempty"`
}

func (s Step) actions() int {
	n := 0
	for _, on := range []bool{s.Set != "", s.Input != "", s.Process > 0, s.Reset, s.Init} {
		if on {
			n++
		}
	}
	return n
}

// Target is the neuron surface a scenario drives.
type Target interface {
	Init()
	Reset()
	SetConfigName(name string, v float64) bool
	SetInputName(name string, v float64) bool
	Process() int
	Vars() hr.Vars
}

// Result holds the state after every process step.
type Result struct {
	Trace    []hr.Vars
	Ticks    int
	Substeps int
	Final    hr.Vars
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return &sc, nil
}

func (sc *Scenario) Validate() error {
	for i, st := range sc.Steps {
		if st.actions() != 1 {
			return fmt.Errorf("step %d: %w", i+1, ErrInvalidStep)
		}
	}
	return nil
}

// Run executes the steps in order. Cancellation is checked between ticks.
func Run(ctx context.Context, sc *Scenario, t Target) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	res := &Result{}
	for i, st := range sc.Steps {
		switch {
		case st.Init:
			t.Init()
		case st.Reset:
			t.Reset()
		case st.Set != "":
			if !t.SetConfigName(st.Set, st.Value) && sc.Strict {
				return res, fmt.Errorf("step %d: %w: %s", i+1, ErrUnknownKey, st.Set)
			}
		case st.Input != "":
			if !t.SetInputName(st.Input, st.Value) && sc.Strict {
				return res, fmt.Errorf("step %d: %w: input %s", i+1, ErrUnknownKey, st.Input)
			}
		case st.Process > 0:
			for k := 0; k < st.Process; k++ {
				if err := ctx.Err(); err != nil {
					return res, err
				}
				res.Substeps += t.Process()
				res.Ticks++
			}
			res.Trace = append(res.Trace, t.Vars())
		}
	}

	res.Final = t.Vars()
	return res, nil
}

// Replay runs the scenario n times on fresh targets and reports whether
// every run ended in a bit-identical state.
func Replay(ctx context.Context, sc *Scenario, newTarget func() Target, n int) (bool, error) {
	var first hr.Vars
	for i := 0; i < n; i++ {
		res, err := Run(ctx, sc, newTarget())
		if err != nil {
			return false, err
		}
		if i == 0 {
			first = res.Final
			continue
		}
		if res.Final != first {
			return false, nil
		}
	}
	return true, nil
}
