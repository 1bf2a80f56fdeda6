// Package som implements the SOM storage, BMU search, neuron update and
// training driver (§4.4-§4.8): the performance-critical core of the
// training engine.
package som

import (
	"math/rand"

	"pinksom/internal/layout"
)

// InitMode selects how SOM storage is seeded at training start (§4.8).
type InitMode int

const (
	// InitZero zero-initializes every neuron.
	InitZero InitMode = iota
	// InitRandom seeds every neuron pixel uniformly in [0,1) from a
	// configurable seed.
	InitRandom
)

// SOM is the trained map: S neurons of N*N float32 pixels each, laid out by
// Layout, stored contiguously in layout-linear order (§3). It is created
// once at training start and mutated in place by every update pass.
type SOM struct {
	Layout layout.Layout
	N      int
	Pix    []float32
}

// New allocates and initializes SOM storage for the given layout and patch
// size, per mode.
func New(l layout.Layout, n int, mode InitMode, seed int64) SOM {
	s := l.Size()
	p := n * n
	pix := make([]float32, s*p)
	if mode == InitRandom {
		r := rand.New(rand.NewSource(seed))
		for i := range pix {
			pix[i] = r.Float32()
		}
	}
	return SOM{Layout: l, N: n, Pix: pix}
}

// Neuron returns the pixel slice for neuron i, a view into SOM.Pix.
func (s SOM) Neuron(i int) []float32 {
	p := s.N * s.N
	return s.Pix[i*p : (i+1)*p]
}
