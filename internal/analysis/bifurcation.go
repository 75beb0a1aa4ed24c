package analysis

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/san-kum/hrneuron/internal/hr"
	"github.com/san-kum/hrneuron/internal/integrators"
)

// BifurcationPoint holds the membrane potential maxima found for one
// parameter value.
type BifurcationPoint struct {
	Param  float64
	Maxima []float64
}

type BifurcationConfig struct {
	Param     string
	Min, Max  float64
	Steps     int
	Dt        float64
	Transient float64
	Record    float64
	Workers   int
}

// Bifurcation sweeps one model parameter and records local maxima of x
// after the transient. Parameter values run concurrently.
func Bifurcation(ctx context.Context, stepper integrators.Stepper, base hr.Params, x0 hr.Vars, cfg BifurcationConfig) ([]BifurcationPoint, error) {
	if _, ok := base.Get(cfg.Param); !ok {
		return nil, fmt.Errorf("analysis: unknown parameter %q", cfg.Param)
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("analysis: dt must be positive, got %g", cfg.Dt)
	}
	if cfg.Steps < 2 {
		cfg.Steps = 2
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	results := make([]BifurcationPoint, cfg.Steps)
	step := (cfg.Max - cfg.Min) / float64(cfg.Steps-1)

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				v := cfg.Min + float64(i)*step
				results[i] = BifurcationPoint{
					Param:  v,
					Maxima: maxima(stepper, base.With(cfg.Param, v), x0, cfg),
				}
			}
		}()
	}

	var err error
	for i := 0; i < cfg.Steps && err == nil; i++ {
		select {
		case jobs <- i:
		case <-ctx.Done():
			err = ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return results, nil
}

func maxima(stepper integrators.Stepper, p hr.Params, x0 hr.Vars, cfg BifurcationConfig) []float64 {
	x := x0
	for t := 0.0; t < cfg.Transient; t += cfg.Dt {
		x = stepper.Step(x, p, 0, cfg.Dt)
	}

	var out []float64
	prev2, prev1 := x[hr.X], x[hr.X]
	for t := 0.0; t < cfg.Record; t += cfg.Dt {
		x = stepper.Step(x, p, 0, cfg.Dt)
		cur := x[hr.X]
		if prev1 > prev2 && prev1 >= cur {
			out = append(out, prev1)
		}
		prev2, prev1 = prev1, cur
	}
	return out
}

// BifurcationToASCII renders the diagram on a width by height grid.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Maxima {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := newCanvas(width, height)
	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Maxima {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}
	return render(canvas)
}

func newCanvas(width, height int) [][]rune {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}
	return canvas
}

func render(canvas [][]rune) string {
	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
