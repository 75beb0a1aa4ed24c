package calib

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
)

var (
	ErrInvalidStep = errors.New("calib: step size must be finite and positive")
	ErrNoBursts    = errors.New("calib: fewer than two bursts observed")
)

// MeasureOptions controls an empirical points-per-burst measurement.
type MeasureOptions struct {
	// Duration is the simulated model time to integrate.
	Duration float64
	// Threshold is the membrane potential an upward crossing must reach.
	Threshold float64
	// MinGap is the quiet interval (model time) that separates bursts.
	MinGap  float64
	Params  hr.Params
	Initial hr.Vars
}

func DefaultMeasureOptions() MeasureOptions {
	return MeasureOptions{
		Duration:  3000,
		Threshold: 0,
		MinGap:    35,
		Params:    hr.DefaultParams(),
		Initial:   hr.DefaultVars(),
	}
}

const cancelCheckEvery = 4096

// Measure integrates the model at a fixed dt and returns the mean number of
// steps between consecutive burst onsets.
func Measure(ctx context.Context, dt float64, opts MeasureOptions) (float64, error) {
	if !positive(dt) {
		return 0, fmt.Errorf("%w: %g", ErrInvalidStep, dt)
	}

	stepper := integrators.NewCashKarp()
	n := int(opts.Duration / dt)
	v := opts.Initial
	prev := v[hr.X]

	first, last, lastSpike := -1, -1, -1
	onsets := 0

	for i := 1; i <= n; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return 0, err
			}
		}

		v = stepper.Step(v, opts.Params, 0, dt)
		if !v.IsValid() {
			return 0, fmt.Errorf("calib: state diverged at step %d (dt=%g)", i, dt)
		}

		x := v[hr.X]
		if prev < opts.Threshold && x >= opts.Threshold {
			if lastSpike < 0 || float64(i-lastSpike)*dt > opts.MinGap {
				if first < 0 {
					first = i
				}
				last = i
				onsets++
			}
			lastSpike = i
		}
		prev = x
	}

	if onsets < 2 {
		return 0, fmt.Errorf("%w: dt=%g, onsets=%d", ErrNoBursts, dt, onsets)
	}
	return float64(last-first) / float64(onsets-1), nil
}

// Sweep measures every dt concurrently and assembles a validated table.
// workers <= 0 uses GOMAXPROCS.
func Sweep(ctx context.Context, dts []float64, opts MeasureOptions, workers int) (*Table, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	sorted := make([]float64, len(dts))
	copy(sorted, dts)
	sort.Float64s(sorted)

	entries := make([]Entry, len(sorted))
	errs := make([]error, len(sorted))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				pts, err := Measure(ctx, sorted[idx], opts)
				entries[idx] = Entry{Dt: sorted[idx], Points: pts}
				errs[idx] = err
			}
		}()
	}

	for i := range sorted {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return NewTable(entries)
}

// LogSpace returns n step sizes spaced evenly in log scale over [lo, hi].
func LogSpace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	a, b := math.Log(lo), math.Log(hi)
	for i := range out {
		out[i] = math.Exp(a + (b-a)*float64(i)/float64(n-1))
	}
	return out
}
