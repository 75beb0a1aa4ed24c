// Package plugin exposes a neuron through the JSON surface a real-time
// host uses to discover, configure and drive it.
package plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/neuron"
)

const Name = "Hindmarsh Rose v2"

var ErrInvalidConfig = errors.New("plugin: config must be a JSON object")

// NamedValue encodes as a two element [name, value] array.
type NamedValue struct {
	Name  string
	Value float64
}

func (nv NamedValue) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{nv.Name, nv.Value})
}

func (nv *NamedValue) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("plugin: expected [name, value], got %d elements", len(pair))
	}
	if err := json.Unmarshal(pair[0], &nv.Name); err != nil {
		return err
	}
	return json.Unmarshal(pair[1], &nv.Value)
}

type Meta struct {
	Name        string       `json:"name"`
	DefaultVars []NamedValue `json:"default_vars"`
}

type ExtendableInputs struct {
	Type string `json:"type"`
}

type Behavior struct {
	SupportsStartStop bool             `json:"supports_start_stop"`
	SupportsRestart   bool             `json:"supports_restart"`
	ExtendableInputs  ExtendableInputs `json:"extendable_inputs"`
	LoadsStarted      bool             `json:"loads_started"`
}

type UISchema struct {
	Outputs   []string `json:"outputs"`
	Inputs    []string `json:"inputs"`
	Variables []string `json:"variables"`
}

var (
	inputs  = []string{neuron.InputSyn.String()}
	outputs = []string{neuron.VoltsName, neuron.MillivoltsName}
)

// Plugin is one host-managed neuron instance.
type Plugin struct {
	rt *neuron.Realtime
}

// New creates an initialised instance.
func New(opts neuron.Options) *Plugin {
	return &Plugin{rt: neuron.NewRealtime(opts)}
}

func (p *Plugin) Meta() Meta {
	return Meta{
		Name: Name,
		DefaultVars: []NamedValue{
			{"x", -0.9013},
			{"y", -3.1594},
			{"z", 3.24782},
			{"e", 3.0},
			{"mu", hr.DefaultMu},
			{"s", hr.DefaultS},
			{"vh", hr.DefaultVh},
			{"burst_duration", 1.0},
		},
	}
}

func (p *Plugin) Inputs() []string  { return append([]string(nil), inputs...) }
func (p *Plugin) Outputs() []string { return append([]string(nil), outputs...) }

func (p *Plugin) Behavior() Behavior {
	return Behavior{
		SupportsStartStop: true,
		SupportsRestart:   true,
		ExtendableInputs:  ExtendableInputs{Type: "none"},
		LoadsStarted:      true,
	}
}

func (p *Plugin) UISchema() UISchema {
	return UISchema{
		Outputs:   p.Outputs(),
		Inputs:    p.Inputs(),
		Variables: []string{"x", "y", "z"},
	}
}

// SetConfigJSON applies every numeric member of a JSON object in key order.
// Other members are skipped. The applied keys are returned.
func (p *Plugin) SetConfigJSON(data []byte) ([]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if raw == nil {
		return nil, ErrInvalidConfig
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var applied []string
	for _, k := range keys {
		var v float64
		if err := json.Unmarshal(raw[k], &v); err != nil {
			continue
		}
		p.rt.SetConfigName(k, v)
		applied = append(applied, k)
	}
	return applied, nil
}

func (p *Plugin) SetConfig(key string, v float64) bool {
	return p.rt.SetConfigName(key, v)
}

func (p *Plugin) SetInput(name string, v float64) bool {
	return p.rt.SetInputName(name, v)
}

// Process runs one tick. The host tick counter and period are not used;
// timing comes from the period_seconds configuration.
func (p *Plugin) Process(tick uint64, periodSeconds float64) int {
	return p.rt.Process()
}

// Output reads a named output. Unknown names read 0.
func (p *Plugin) Output(name string) float64 {
	o, ok := neuron.ParseOutput(name)
	if !ok {
		return 0
	}
	return p.rt.Output(o)
}

// Restart returns the variables to their configured values.
func (p *Plugin) Restart() {
	p.rt.Reset()
}

func (p *Plugin) Timing() neuron.Timing {
	return p.rt.Timing()
}

// Descriptor bundles every discovery document for hosts that want one blob.
type Descriptor struct {
	Meta     Meta     `json:"meta"`
	Inputs   []string `json:"inputs"`
	Outputs  []string `json:"outputs"`
	Behavior Behavior `json:"behavior"`
	UISchema UISchema `json:"ui_schema"`
}

func (p *Plugin) Describe() Descriptor {
	return Descriptor{
		Meta:     p.Meta(),
		Inputs:   p.Inputs(),
		Outputs:  p.Outputs(),
		Behavior: p.Behavior(),
		UISchema: p.UISchema(),
	}
}
