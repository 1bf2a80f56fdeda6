// Package workerpool provides the bounded goroutine fan-out used at every
// data-parallel stage of training: rotation bank construction, BMU search
// and the neuron update pass (§5). It is a thin wrapper over
// sourcegraph/conc/pool, the same concurrency primitive the teacher
// simulation engine uses to fan sessions out across a configured max
// worker count (tpm_controllers.SimulationController.SimulateOnStart).
package workerpool

import "github.com/sourcegraph/conc/pool"

// Pool runs indexed work items across a bounded number of goroutines. A
// Driver creates one Pool per training run and reuses it across every step;
// each ForEachIndex call still starts a fresh conc pool and one goroutine per
// work item, so every fan-out allocates.
type Pool struct {
	maxGoroutines int
}

// New returns a Pool bounded to maxGoroutines concurrent workers. A value
// <= 0 means "unbounded" (one goroutine per work item), matching
// conc/pool's own default when WithMaxGoroutines is not called.
func New(maxGoroutines int) *Pool {
	return &Pool{maxGoroutines: maxGoroutines}
}

// ForEachIndex runs fn(i) for every i in [0, n), fanned out across the
// pool's bounded goroutines, and blocks until all of them complete. Callers
// give each index a disjoint write target so no synchronization is needed
// between invocations of fn (§5's "no mutex required on any hot path").
func (p *Pool) ForEachIndex(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	wp := pool.New()
	if p.maxGoroutines > 0 {
		wp = wp.WithMaxGoroutines(p.maxGoroutines)
	}
	for i := 0; i < n; i++ {
		i := i
		wp.Go(func() { fn(i) })
	}
	wp.Wait()
}
