// Package rotbank builds the oriented variant bank for one input image: the
// 2R (or R, flip disabled) rotated/flipped N×N crops that BMU search
// matches against every neuron (§4.5).
package rotbank

import (
	"math"

	"pinksom/internal/geometry"
	"pinksom/internal/workerpool"
)

// Bank holds K contiguous N×N variants, variant i at offset i*N*N in Pix.
type Bank struct {
	N   int
	K   int
	Pix []float32
}

// Variant returns the pixel slice for variant i, a view into Bank.Pix.
func (b Bank) Variant(i int) []float32 {
	p := b.N * b.N
	return b.Pix[i*p : (i+1)*p]
}

// Size returns the variant count (K) and total float count for a bank of
// patch size n built with r rotations and the given flip setting.
func Size(n, r int, flip bool) (k, floats int) {
	k = r
	if flip {
		k = 2 * r
	}
	return k, k * n * n
}

// NewBank allocates a bank of patch size n sized for r rotations and the
// given flip setting.
func NewBank(n, r int, flip bool) Bank {
	k, floats := Size(n, r, flip)
	return Bank{N: n, K: k, Pix: make([]float32, floats)}
}

// Build allocates and fills a fresh bank for img. Driver-level callers that
// run many steps against same-sized inputs should prefer BuildInto with a
// reused Bank and flip scratch image to avoid per-input allocation.
func Build(img geometry.Image, n, r int, flip bool, pool *workerpool.Pool) Bank {
	bank := NewBank(n, r, flip)
	flipScratch := geometry.NewImage(img.W, img.H)
	BuildInto(bank, flipScratch, img, r, flip, pool)
	return bank
}

// BuildInto fills dst in place (dst must already be sized per Size(n,r,flip)
// for dst.N == n) for img: variant 0 is the centered crop, variants 1..r-1
// are rotations by j*(2*pi/r), and if flip is enabled variants r..2r-1
// repeat that sequence over the horizontally mirrored image (§4.5). flipScratch
// is reusable W x H scratch for the mirrored image, ignored when flip is
// false. Rotation steps (and the mirrored sequence) are fanned out across
// pool, which may be nil to run sequentially.
func BuildInto(dst Bank, flipScratch geometry.Image, img geometry.Image, r int, flip bool, pool *workerpool.Pool) {
	n := dst.N

	buildSequence := func(src geometry.Image, offset int) {
		fill := func(j int) {
			variant := geometry.Image{W: n, H: n, Pix: dst.Variant(offset + j)}
			if j == 0 {
				geometry.Crop(src, variant)
				return
			}
			theta := float64(j) * (2 * math.Pi / float64(r))
			geometry.RotateAndCrop(src, variant, theta)
		}

		if pool == nil {
			for j := 0; j < r; j++ {
				fill(j)
			}
			return
		}
		pool.ForEachIndex(r, fill)
	}

	buildSequence(img, 0)

	if flip {
		geometry.Flip(img, flipScratch)
		buildSequence(flipScratch, r)
	}
}
