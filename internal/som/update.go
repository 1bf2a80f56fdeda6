package som

import (
	"pinksom/internal/neighborhood"
	"pinksom/internal/rotbank"
	"pinksom/internal/workerpool"
)

// Update moves every neuron toward its best-rotated variant, weighted by
// the configured neighborhood functor evaluated at that neuron's layout
// distance from the BMU coordinate (§4.7). w is not clamped to [0,1]:
// Mexican-hat weights can be negative, producing repulsion. Work is fanned
// out per-neuron across pool (nil runs sequentially); each neuron's
// destination variant is fixed by rot[i], so neurons are independent and no
// lock is required.
func Update(s SOM, bank rotbank.Bank, rot RotationMatrix, bmu int, fn neighborhood.Functor, sigma, eta float64, pool *workerpool.Pool) {
	bmuCoord := s.Layout.Coord(bmu)

	apply := func(i int) {
		neuron := s.Neuron(i)
		variant := bank.Variant(rot[i])

		r := s.Layout.Distance(bmuCoord, s.Layout.Coord(i))
		w := float32(fn.Weight(r, sigma) * eta)

		for p, v := range variant {
			neuron[p] -= (neuron[p] - v) * w
		}
	}

	n := s.Layout.Size()
	if pool == nil {
		for i := 0; i < n; i++ {
			apply(i)
		}
		return
	}
	pool.ForEachIndex(n, apply)
}
