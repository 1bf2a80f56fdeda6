// Package convergence implements the convergence sanity check (§8,
// scenario S6): after training on inputs drawn from distinct clusters, the
// trained neurons should themselves partition cleanly under k-means.
// Grounded on the teacher pack's k-means usage in
// setanarut-layerbuilder/utils.ExtractKMeansPalette.
package convergence

import (
	"fmt"

	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"

	"pinksom/internal/som"
)

// Partition runs k-means with k clusters over every trained neuron's pixel
// vector, treating each neuron as a point in N*N-dimensional space exactly
// as ExtractKMeansPalette treats each pixel as a point in RGB space.
func Partition(s som.SOM, k int) (clusters.Clusters, error) {
	if k <= 0 {
		return nil, fmt.Errorf("convergence: k must be positive, got %d", k)
	}

	size := s.Layout.Size()
	dataset := make(clusters.Observations, 0, size)
	for i := 0; i < size; i++ {
		neuron := s.Neuron(i)
		coord := make(clusters.Coordinates, len(neuron))
		for p, v := range neuron {
			coord[p] = float64(v)
		}
		dataset = append(dataset, coord)
	}

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("convergence: k-means partition failed: %w", err)
	}
	return cc, nil
}

// Assignments maps each neuron (by layout-linear index) to the id of its
// nearest cluster in cc, giving a per-neuron assignment independent of the
// internal identity clusters.Cluster.Observations retains.
func Assignments(s som.SOM, cc clusters.Clusters) []int {
	size := s.Layout.Size()
	out := make([]int, size)
	for i := 0; i < size; i++ {
		neuron := s.Neuron(i)
		best, bestDist := 0, -1.0
		for ci, c := range cc {
			d := sumSquaredDiff64(neuron, c.Center)
			if bestDist < 0 || d < bestDist {
				best, bestDist = ci, d
			}
		}
		out[i] = best
	}
	return out
}

// Purity reports the fraction of neurons whose k-means assignment agrees
// with the majority ground-truth label within that same cluster (§8 S6:
// "recover the input clusters with >= 90% assignment purity"). assignments
// and labels are both indexed by layout-linear neuron index.
func Purity(assignments []int, labels []int) float64 {
	if len(assignments) == 0 {
		return 0
	}

	byCluster := map[int]map[int]int{}
	for i, a := range assignments {
		if byCluster[a] == nil {
			byCluster[a] = map[int]int{}
		}
		byCluster[a][labels[i]]++
	}

	correct := 0
	for _, counts := range byCluster {
		best := 0
		for _, n := range counts {
			if n > best {
				best = n
			}
		}
		correct += best
	}
	return float64(correct) / float64(len(assignments))
}

func sumSquaredDiff64(a []float32, b clusters.Coordinates) float64 {
	var sum float64
	for i, v := range a {
		d := float64(v) - b[i]
		sum += d * d
	}
	return sum
}
