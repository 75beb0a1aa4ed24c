package sim

import (
	"context"
	"sync"
)

// Job is one independent run of an ensemble.
type Job struct {
	Name  string
	Build func() (*Simulator, error)
}

// Ensemble runs jobs concurrently, each on its own neuron.
type Ensemble struct {
	jobs    []Job
	workers int
}

func NewEnsemble(jobs []Job, workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{jobs: jobs, workers: workers}
}

// Run returns results in job order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.jobs))
	errs := make([]error, len(e.jobs))

	sem := make(chan struct{}, e.workers)
	var wg sync.WaitGroup
	for i := range e.jobs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			s, err := e.jobs[idx].Build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
