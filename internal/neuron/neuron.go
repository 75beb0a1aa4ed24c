package neuron

import (
	"io"
	"log/slog"
	"math"

	"github.com/san-kum/hrneuron/internal/calib"
	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
)

// State is the lifecycle of a Neuron.
type State int

const (
	Unconfigured State = iota
	Configured
)

func (s State) String() string {
	if s == Configured {
		return "configured"
	}
	return "unconfigured"
}

type Options struct {
	Policy      Policy
	Strategy    calib.Strategy
	MaxSubsteps int
	// Table defaults to calib.Default.
	Table *calib.Table
	// Stepper defaults to the six-stage scheme the table was measured with.
	Stepper integrators.Stepper
	Logger  *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Policy:      Calibrated,
		Strategy:    calib.Tolerance,
		MaxSubsteps: DefaultMaxSubsteps,
	}
}

type Neuron struct {
	vars    hr.Vars
	initial hr.Vars
	params  hr.Params
	iSyn    float64
	timing  Timing
	state   State

	sched   Scheduler
	stepper integrators.Stepper
	log     *slog.Logger
}

func New(opts Options) *Neuron {
	n := &Neuron{
		sched: Scheduler{
			Table:       opts.Table,
			Strategy:    opts.Strategy,
			Policy:      opts.Policy,
			MaxSubsteps: opts.MaxSubsteps,
		},
		stepper: opts.Stepper,
		log:     opts.Logger,
	}
	if n.sched.MaxSubsteps < 1 {
		n.sched.MaxSubsteps = DefaultMaxSubsteps
	}
	if n.stepper == nil {
		n.stepper = integrators.NewCashKarp()
	}
	if n.log == nil {
		n.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	n.Init()
	return n
}

// Init restores default state, parameters and timing. No plan is run.
func (n *Neuron) Init() {
	n.vars = hr.DefaultVars()
	n.initial = n.vars
	n.params = hr.DefaultParams()
	n.iSyn = 0
	n.timing = DefaultTiming()
	n.state = Unconfigured
}

// Reset moves the live variables back to their configured values.
func (n *Neuron) Reset() {
	n.vars = n.initial
}

// SetConfig applies one configuration value and replans the timing.
// Non-finite values leave the field unchanged.
func (n *Neuron) SetConfig(k Key, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		n.log.Warn("ignoring non-finite config value", "key", k, "value", v)
	} else {
		n.apply(k, v)
	}
	n.replan()
}

// SetConfigName is SetConfig for a key given by name. Unknown names only
// replan; the result reports whether the name was recognized.
func (n *Neuron) SetConfigName(name string, v float64) bool {
	k, ok := ParseKey(name)
	if !ok {
		n.log.Debug("ignoring unknown config key", "key", name)
		n.replan()
		return false
	}
	n.SetConfig(k, v)
	return true
}

func (n *Neuron) apply(k Key, v float64) {
	switch k {
	case KeyX, KeyY, KeyZ:
		i := int(k - KeyX)
		n.vars[i] = v
		n.initial[i] = v
	case KeyE:
		n.params.E = v
	case KeyMu:
		n.params.Mu = v
	case KeyS:
		n.params.S = v
	case KeyVh:
		n.params.Vh = v
	case KeyTimeIncrement:
		if v < 0 {
			n.log.Warn("clamping negative time increment", "value", v)
			v = 0
		}
		n.timing.Dt = v
	case KeyBurstDuration:
		n.timing.BurstDuration = v
	case KeyPeriodSeconds:
		n.timing.PeriodSeconds = v
	}
}

func (n *Neuron) replan() {
	n.timing = n.sched.Plan(n.timing)
	n.state = Configured

	t := n.timing
	if t.Mode == ModeBurst && !t.Matched {
		n.log.Warn("no calibration entry for burst", "burst_duration", t.BurstDuration,
			"period_seconds", t.PeriodSeconds)
	}
	if t.Dt == 0 && t.Mode != ModeContinuous {
		n.log.Warn("zero time increment freezes the state")
	}
	n.log.Debug("timing recomputed", "dt", t.Dt, "substeps", t.Substeps,
		"matched", t.Matched, "mode", t.Mode)
}

// SetInput sets an external drive. It does not replan.
func (n *Neuron) SetInput(in Input, v float64) {
	if in == InputSyn && !math.IsNaN(v) && !math.IsInf(v, 0) {
		n.iSyn = v
	}
}

func (n *Neuron) SetInputName(name string, v float64) bool {
	in, ok := ParseInput(name)
	if ok {
		n.SetInput(in, v)
	}
	return ok
}

// Process runs one tick and returns the number of sub-steps taken.
func (n *Neuron) Process() int {
	steps := n.timing.Substeps
	if steps < 1 {
		steps = 1
	}
	if steps > n.sched.MaxSubsteps {
		steps = n.sched.MaxSubsteps
	}

	v := n.vars
	for i := 0; i < steps; i++ {
		v = n.stepper.Step(v, n.params, n.iSyn, n.timing.Dt)
	}
	n.vars = v
	return steps
}

func (n *Neuron) Vars() hr.Vars           { return n.vars }
func (n *Neuron) Initial() hr.Vars        { return n.initial }
func (n *Neuron) Params() hr.Params       { return n.params }
func (n *Neuron) Input() float64          { return n.iSyn }
func (n *Neuron) Timing() Timing          { return n.timing }
func (n *Neuron) State() State            { return n.state }
func (n *Neuron) MaxSubsteps() int        { return n.sched.MaxSubsteps }
func (n *Neuron) Stepper() string         { return n.stepper.Name() }
func (n *Neuron) Output(o Output) float64 { return ReadOutput(n.vars, o) }
