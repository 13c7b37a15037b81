package sim

import (
	"context"
	"sync"
)

// RunEnsemble runs every integrator for duration seconds in its own
// goroutine. Members must not share a system or observers: each goroutine
// owns its integrator outright.
func RunEnsemble(ctx context.Context, members []*Integrator, duration float64) ([]*Result, error) {
	results := make([]*Result, len(members))
	errs := make([]error, len(members))

	var wg sync.WaitGroup
	for i, in := range members {
		wg.Add(1)
		go func(idx int, in *Integrator) {
			defer wg.Done()
			results[idx], errs[idx] = Run(ctx, in, duration)
		}(i, in)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}

	return results, nil
}
