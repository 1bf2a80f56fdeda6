// Package layout implements the SOM topology capability (§4.4, §9): a type
// providing neuron count, coordinate <-> linear index mapping and pairwise
// neuron-to-neuron distance. The training engine depends only on this
// capability, never on a concrete Cartesian type, so a hexagonal or other
// topology can be substituted without touching the search/update passes.
package layout

import "gonum.org/v1/gonum/floats"

// Coord is a non-negative integer coordinate on a Layout, dimension-agnostic
// so layouts of degree other than 2 remain expressible.
type Coord []int

// Layout is the topology capability the training engine depends on.
type Layout interface {
	// Size returns the number of neurons S.
	Size() int
	// Index returns the layout-linear index of a coordinate.
	Index(c Coord) int
	// Coord returns the coordinate for a layout-linear index.
	Coord(i int) Coord
	// Distance returns the Euclidean distance between two coordinates.
	Distance(a, b Coord) float64
}

// Cartesian2D is the rectangular Dx x Dy grid layout, the only topology
// specified in full (§4.4). Linearization is row-major stride (y*Dx + x),
// not the original reference's "Σ position[i]*i" formula — that formula is
// degenerate for more than two dimensions and is treated here as a latent
// bug in the reference, not reproduced (see DESIGN.md).
type Cartesian2D struct {
	Dx, Dy int
}

// NewCartesian2D constructs a Dx x Dy grid. It does not validate the
// dimensions.
func NewCartesian2D(dx, dy int) Cartesian2D {
	return Cartesian2D{Dx: dx, Dy: dy}
}

func (c Cartesian2D) Size() int { return c.Dx * c.Dy }

func (c Cartesian2D) Index(pos Coord) int {
	return pos[1]*c.Dx + pos[0]
}

func (c Cartesian2D) Coord(i int) Coord {
	return Coord{i % c.Dx, i / c.Dx}
}

func (c Cartesian2D) Distance(a, b Coord) float64 {
	pa := []float64{float64(a[0]), float64(a[1])}
	pb := []float64{float64(b[0]), float64(b[1])}
	return floats.Distance(pa, pb, 2)
}
