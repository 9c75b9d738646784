package sim

import (
	"context"
	"sync"
)

// Ensemble runs several independent runners in parallel. Each runner owns
// its own system, so no coordination beyond the final join is needed.
type Ensemble struct {
	runners []*Runner
}

func NewEnsemble(runners ...*Runner) *Ensemble {
	return &Ensemble{runners: runners}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(e.runners))
	errs := make([]error, len(e.runners))

	var wg sync.WaitGroup
	for i, r := range e.runners {
		wg.Add(1)
		go func(idx int, r *Runner) {
			defer wg.Done()
			results[idx], errs[idx] = r.Run(ctx, cfg)
		}(i, r)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
