package som

import (
	"pinksom/internal/rotbank"
	"pinksom/internal/vecmath"
	"pinksom/internal/workerpool"
)

// DistanceMatrix holds one float per neuron, lower = closer. Scratch,
// allocated once and overwritten every step (§3).
type DistanceMatrix []float32

// RotationMatrix holds one best-variant index per neuron, in [0, K) (§3).
type RotationMatrix []int

// Search fills dist[i] = min_j distance(neuron_i, bank.Variant(j)) and
// rot[i] = argmin_j, breaking ties toward the smallest j (§4.6, Invariant
// 1). dist and rot must already be sized to som.Layout.Size() and are
// reused scratch buffers. Work is fanned out per-neuron across pool (which
// may be nil to run sequentially); each goroutine owns a disjoint neuron
// index so the strict less-than tie rule is preserved exactly regardless of
// scheduling order (§5, §9).
func Search(s SOM, bank rotbank.Bank, dist DistanceMatrix, rot RotationMatrix, pool *workerpool.Pool) {
	search := func(i int) {
		neuron := s.Neuron(i)
		best := float32(0)
		bestJ := 0
		bestSet := false
		for j := 0; j < bank.K; j++ {
			d := vecmath.SumSquaredDiff(neuron, bank.Variant(j))
			if !bestSet || d < best {
				best = d
				bestJ = j
				bestSet = true
			}
		}
		dist[i] = best
		rot[i] = bestJ
	}

	n := s.Layout.Size()
	if pool == nil {
		for i := 0; i < n; i++ {
			search(i)
		}
		return
	}
	pool.ForEachIndex(n, search)
}

// BMU returns the layout-linear index of the neuron with the smallest
// distance, ties broken toward the smallest index (§4.6).
func BMU(dist DistanceMatrix) int {
	best := 0
	for i := 1; i < len(dist); i++ {
		if dist[i] < dist[best] {
			best = i
		}
	}
	return best
}
