package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/hrneuron/internal/calib"
	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
	"github.com/san-kum/hrneuron/internal/neuron"
	"github.com/san-kum/hrneuron/internal/sim"
)

const (
	DefaultTicks         = 20000
	DefaultTimeIncrement = 0.0015
	DefaultBurstDuration = 1.0
	DefaultPeriodSeconds = 0.001
)

var (
	ErrInvalid       = errors.New("config: invalid configuration")
	ErrUnknownPreset = errors.New("config: unknown preset")
)

type Config struct {
	Integrator string           `yaml:"integrator"`
	Ticks      int              `yaml:"ticks"`
	Seed       int64            `yaml:"seed"`
	Neuron     NeuronConfig     `yaml:"neuron"`
	Timing     TimingConfig     `yaml:"timing"`
	Stimulus   sim.StimulusSpec `yaml:"stimulus"`
}

type NeuronConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
	E  float64 `yaml:"e"`
	Mu float64 `yaml:"mu"`
	S  float64 `yaml:"s"`
	Vh float64 `yaml:"vh"`
}

type TimingConfig struct {
	TimeIncrement float64 `yaml:"time_increment"`
	BurstDuration float64 `yaml:"burst_duration"`
	PeriodSeconds float64 `yaml:"period_seconds"`
	Policy        string  `yaml:"policy"`
	Strategy      string  `yaml:"strategy"`
	MaxSubsteps   int     `yaml:"max_substeps"`
	// Table is an optional CSV calibration table replacing the built-in one.
	Table         string  `yaml:"table,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: integrators.Default,
		Ticks:      DefaultTicks,
		Neuron: NeuronConfig{
			X:  hr.DefaultX,
			Y:  hr.DefaultY,
			Z:  hr.DefaultZ,
			E:  hr.DefaultE,
			Mu: hr.DefaultMu,
			S:  hr.DefaultS,
			Vh: hr.DefaultVh,
		},
		Timing: TimingConfig{
			TimeIncrement: DefaultTimeIncrement,
			BurstDuration: DefaultBurstDuration,
			PeriodSeconds: DefaultPeriodSeconds,
			Policy:        neuron.Calibrated.String(),
			Strategy:      calib.Tolerance.String(),
			MaxSubsteps:   neuron.DefaultMaxSubsteps,
		},
		Stimulus: sim.StimulusSpec{Kind: "const"},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Ticks <= 0 {
		return fmt.Errorf("%w: ticks must be positive, got %d", ErrInvalid, c.Ticks)
	}
	if c.Timing.MaxSubsteps < 0 {
		return fmt.Errorf("%w: max_substeps must not be negative", ErrInvalid)
	}
	if _, err := integrators.Get(c.Integrator); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := neuron.ParsePolicy(c.Timing.Policy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := calib.ParseStrategy(c.Timing.Strategy); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.Stimulus.Build(c.Seed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	values := []struct {
		name string
		v    float64
	}{
		{"neuron.x", c.Neuron.X},
		{"neuron.y", c.Neuron.Y},
		{"neuron.z", c.Neuron.Z},
		{"neuron.e", c.Neuron.E},
		{"neuron.mu", c.Neuron.Mu},
		{"neuron.s", c.Neuron.S},
		{"neuron.vh", c.Neuron.Vh},
		{"timing.time_increment", c.Timing.TimeIncrement},
		{"timing.burst_duration", c.Timing.BurstDuration},
		{"timing.period_seconds", c.Timing.PeriodSeconds},
	}
	for _, f := range values {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalid, f.name)
		}
	}
	return nil
}

// Options resolves the names in the config into neuron options.
func (c *Config) Options(log *slog.Logger) (neuron.Options, error) {
	opts := neuron.DefaultOptions()
	opts.Logger = log

	var err error
	if opts.Policy, err = neuron.ParsePolicy(c.Timing.Policy); err != nil {
		return opts, err
	}
	if opts.Strategy, err = calib.ParseStrategy(c.Timing.Strategy); err != nil {
		return opts, err
	}
	if opts.Stepper, err = integrators.Get(c.Integrator); err != nil {
		return opts, err
	}
	if c.Timing.MaxSubsteps > 0 {
		opts.MaxSubsteps = c.Timing.MaxSubsteps
	}
	if c.Timing.Table != "" {
		if opts.Table, err = calib.LoadCSV(c.Timing.Table); err != nil {
			return opts, fmt.Errorf("config: load table: %w", err)
		}
	}
	return opts, nil
}

// Calls returns the configuration calls Apply issues, in order.
func (c *Config) Calls() []Call {
	calls := []Call{
		{neuron.KeyX, c.Neuron.X},
		{neuron.KeyY, c.Neuron.Y},
		{neuron.KeyZ, c.Neuron.Z},
		{neuron.KeyE, c.Neuron.E},
		{neuron.KeyMu, c.Neuron.Mu},
		{neuron.KeyS, c.Neuron.S},
		{neuron.KeyVh, c.Neuron.Vh},
		{neuron.KeyPeriodSeconds, c.Timing.PeriodSeconds},
		{neuron.KeyBurstDuration, c.Timing.BurstDuration},
	}
	// burst mode takes dt from the table
	if c.Timing.TimeIncrement > 0 && c.Timing.BurstDuration <= 0 {
		calls = append(calls, Call{neuron.KeyTimeIncrement, c.Timing.TimeIncrement})
	}
	return calls
}

// Call is one set_config invocation.
type Call struct {
	Key   neuron.Key
	Value float64
}

// Configurer is satisfied by neuron.Neuron and neuron.Realtime.
type Configurer interface {
	SetConfig(k neuron.Key, v float64)
}

func (c *Config) Apply(n Configurer) {
	for _, call := range c.Calls() {
		n.SetConfig(call.Key, call.Value)
	}
}

// Build creates a neuron with the configured options and applies the config.
func (c *Config) Build(log *slog.Logger) (*neuron.Neuron, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	opts, err := c.Options(log)
	if err != nil {
		return nil, err
	}
	n := neuron.New(opts)
	c.Apply(n)
	return n, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
