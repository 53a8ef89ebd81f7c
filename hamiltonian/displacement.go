package hamiltonian

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sarchlab/kpmham/lattice"
)

// DisplacementResolver computes real-space vectors between orbitals.
type DisplacementResolver struct {
	geometry lattice.Geometry
}

// NewDisplacementResolver creates a resolver for g.
func NewDisplacementResolver(g lattice.Geometry) DisplacementResolver {
	return DisplacementResolver{geometry: g}
}

// Displacement returns pos[target] - pos[origin] + basis * offset.
func (r DisplacementResolver) Displacement(
	origin, target int,
	offset []int,
) (*mat.VecDense, error) {
	dim := r.geometry.Dim()
	orbitals := r.geometry.Orbitals()

	for _, o := range [2]int{origin, target} {
		if o < 0 || o >= orbitals {
			return nil, fmt.Errorf("%w: orbital %d not in [0, %d)",
				ErrIndex, o, orbitals)
		}
	}

	if len(offset) != dim {
		return nil, fmt.Errorf("%w: offset %v has %d dimensions, want %d",
			ErrIndex, offset, len(offset), dim)
	}

	cells := mat.NewVecDense(dim, nil)
	for k, v := range offset {
		cells.SetVec(k, float64(v))
	}

	dr := mat.NewVecDense(dim, nil)
	dr.MulVec(r.geometry.Basis(), cells)
	dr.AddVec(dr, r.geometry.OrbitalPosition(target))
	dr.SubVec(dr, r.geometry.OrbitalPosition(origin))

	return dr, nil
}
