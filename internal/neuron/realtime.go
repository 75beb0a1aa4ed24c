package neuron

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/san-kum/hrneuron/internal/hr"
)

// settings is an immutable snapshot published by the control side.
type settings struct {
	params hr.Params
	timing Timing
	iSyn   float64
	vars   hr.Vars
	// seq advances whenever the matching variable is written by config.
	seq [hr.NumVars]uint64
}

// Realtime lets configuration run on any goroutine while ticks run on one
// dedicated goroutine. Configuration is serialized and published as a
// snapshot; Process picks the latest snapshot up at the start of a tick
// without locking or allocating.
//
// Process, Vars and Output must only be called from the tick goroutine.
type Realtime struct {
	mu  sync.Mutex
	ctl *Neuron
	seq [hr.NumVars]uint64

	snap atomic.Pointer[settings]

	live *Neuron
	cur  *settings
}

func NewRealtime(opts Options) *Realtime {
	r := &Realtime{
		ctl:  New(opts),
		live: New(opts),
	}
	r.publish()
	return r
}

func (r *Realtime) publish() {
	r.snap.Store(&settings{
		params: r.ctl.params,
		timing: r.ctl.timing,
		iSyn:   r.ctl.iSyn,
		vars:   r.ctl.vars,
		seq:    r.seq,
	})
}

func (r *Realtime) touchAll() {
	for i := range r.seq {
		r.seq[i]++
	}
}

func (r *Realtime) Init() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctl.Init()
	r.touchAll()
	r.publish()
}

// Reset restores the configured initial variables on the next tick.
func (r *Realtime) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctl.Reset()
	r.touchAll()
	r.publish()
}

func (r *Realtime) SetConfig(k Key, v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctl.SetConfig(k, v)
	r.markVar(k, v)
	r.publish()
}

func (r *Realtime) SetConfigName(name string, v float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.ctl.SetConfigName(name, v)
	if k, found := ParseKey(name); found {
		r.markVar(k, v)
	}
	r.publish()
	return ok
}

// markVar advances the sequence of a variable written by config. A write of
// the current value still counts so that the live state follows it.
func (r *Realtime) markVar(k Key, v float64) {
	if k < KeyX || k > KeyZ || math.IsNaN(v) || math.IsInf(v, 0) {
		return
	}
	r.seq[k-KeyX]++
}

func (r *Realtime) SetInput(in Input, v float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctl.SetInput(in, v)
	r.publish()
}

func (r *Realtime) SetInputName(name string, v float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	ok := r.ctl.SetInputName(name, v)
	r.publish()
	return ok
}

// Process applies pending configuration and runs one tick.
func (r *Realtime) Process() int {
	if s := r.snap.Load(); s != r.cur {
		r.live.params = s.params
		r.live.timing = s.timing
		r.live.iSyn = s.iSyn
		for i := range s.seq {
			if r.cur == nil || s.seq[i] != r.cur.seq[i] {
				r.live.vars[i] = s.vars[i]
			}
		}
		r.cur = s
	}
	return r.live.Process()
}

func (r *Realtime) Vars() hr.Vars           { return r.live.vars }
func (r *Realtime) Output(o Output) float64 { return ReadOutput(r.live.vars, o) }

// Timing returns the most recently published timing.
func (r *Realtime) Timing() Timing { return r.snap.Load().timing }

func (r *Realtime) Params() hr.Params { return r.snap.Load().params }

func (r *Realtime) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ctl.state
}
