// Package geometry implements the pixel-level primitives the training
// engine needs to build an oriented variant bank from one input image:
// cropping, horizontal flipping and bilinear rotate-and-crop.
package geometry

import "math"

// Image is a rectangular W×H array of single-precision floats, row-major,
// origin top-left, x right and y down. Pixel values are unconstrained.
type Image struct {
	W, H int
	Pix  []float32
}

// NewImage allocates a zeroed W×H image.
func NewImage(w, h int) Image {
	return Image{W: w, H: h, Pix: make([]float32, w*h)}
}

func (img Image) at(x, y int) float32 {
	if x < 0 || x >= img.W || y < 0 || y >= img.H {
		return 0
	}
	return img.Pix[y*img.W+x]
}

// Crop copies the centered N×N window of src into dst, which must already
// be sized N×N. The window's top-left corner is ((W-N)/2, (H-N)/2) using
// floor division, per §4.1.
func Crop(src Image, dst Image) {
	n := dst.W
	x0 := (src.W - n) / 2
	y0 := (src.H - n) / 2
	for v := 0; v < n; v++ {
		srcRow := (y0 + v) * src.W
		dstRow := v * n
		for u := 0; u < n; u++ {
			dst.Pix[dstRow+u] = src.Pix[srcRow+x0+u]
		}
	}
}

// Flip mirrors src horizontally into dst: dst[x,y] = src[W-1-x, y]. src and
// dst must share the same dimensions.
func Flip(src Image, dst Image) {
	w, h := src.W, src.H
	for y := 0; y < h; y++ {
		srcRow := y * w
		dstRow := y * w
		for x := 0; x < w; x++ {
			dst.Pix[dstRow+x] = src.Pix[srcRow+w-1-x]
		}
	}
}

// RotateAndCrop samples src by bilinear interpolation under an inverse
// rotation of theta radians (positive counterclockwise) about the source
// image's center, writing an N×N window centered on that same point into
// dst. Out-of-bounds samples contribute zero. theta == 0 short-circuits to
// an exact Crop so that the unrotated variant matches bit-for-bit (§4.1,
// Testable Property 3).
func RotateAndCrop(src Image, dst Image, theta float64) {
	if theta == 0 {
		Crop(src, dst)
		return
	}

	n := dst.W
	cx := float64(src.W-1) / 2
	cy := float64(src.H-1) / 2

	cos, sin := math.Cos(theta), math.Sin(theta)

	for v := 0; v < n; v++ {
		// Destination pixel center relative to the patch center.
		dy := float64(v) - float64(n-1)/2
		dstRow := v * n
		for u := 0; u < n; u++ {
			dx := float64(u) - float64(n-1)/2

			// Inverse rotation: destination was produced by rotating the
			// source by +theta, so we sample the source at -theta.
			sx := cx + dx*cos - dy*sin
			sy := cy + dx*sin + dy*cos

			dst.Pix[dstRow+u] = bilinear(src, sx, sy)
		}
	}
}

func bilinear(src Image, x, y float64) float32 {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := float32(x - float64(x0))
	fy := float32(y - float64(y0))

	v00 := src.at(x0, y0)
	v10 := src.at(x0+1, y0)
	v01 := src.at(x0, y0+1)
	v11 := src.at(x0+1, y0+1)

	top := v00 + (v10-v00)*fx
	bot := v01 + (v11-v01)*fx
	return top + (bot-top)*fy
}
