package pinkio

import (
	"encoding/binary"
	"io"

	"pinksom/internal/som"
)

// WriteMap serializes s as the single composite (Dx*N)x(Dy*N) float32
// image described in §6: the neuron at grid coordinate (x,y) occupies
// columns [x*N,(x+1)*N) and rows [y*N,(y+1)*N) of the composite, row-major,
// little-endian, no header. Byte-compatible with the reference output
// format.
func WriteMap(w io.Writer, s som.SOM) error {
	n := s.N
	dx, dy := gridDims(s)

	compositeW := dx * n
	row := make([]float32, compositeW)

	for gy := 0; gy < dy; gy++ {
		for py := 0; py < n; py++ {
			for gx := 0; gx < dx; gx++ {
				idx := s.Layout.Index([]int{gx, gy})
				neuron := s.Neuron(idx)
				copy(row[gx*n:(gx+1)*n], neuron[py*n:(py+1)*n])
			}
			if err := binary.Write(w, binary.LittleEndian, row); err != nil {
				return &som.IOError{Op: "write composite map row", Err: err}
			}
		}
	}
	return nil
}

// gridDims recovers the Dx, Dy grid dimensions a Cartesian2D layout was
// constructed with, by probing Coord at the last valid index. Layout has no
// accessor for its extents, so this is the general way to recover the two
// grid extents without depending on the concrete Cartesian2D type.
func gridDims(s som.SOM) (dx, dy int) {
	size := s.Layout.Size()
	if size == 0 {
		return 0, 0
	}
	last := s.Layout.Coord(size - 1)
	dx = last[0] + 1
	dy = last[1] + 1
	return dx, dy
}
