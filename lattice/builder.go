package lattice

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sarchlab/kpmham/radix"
)

// Builder can build lattices.
type Builder struct {
	extents   []int
	periodic  []bool
	vectors   [][]float64
	positions [][]float64
}

// MakeBuilder returns a Builder for a lattice with unit orthogonal lattice
// vectors, one orbital at the origin, and periodic boundaries.
func MakeBuilder() Builder {
	return Builder{}
}

// WithExtents sets the number of unit cells along each dimension.
func (b Builder) WithExtents(extents ...int) Builder {
	b.extents = append([]int(nil), extents...)
	return b
}

// WithBoundaries sets which dimensions are periodic.
func (b Builder) WithBoundaries(periodic ...bool) Builder {
	b.periodic = append([]bool(nil), periodic...)
	return b
}

// WithLatticeVectors sets the lattice vectors, one per dimension.
func (b Builder) WithLatticeVectors(vectors ...[]float64) Builder {
	b.vectors = copyRows(vectors)
	return b
}

// WithOrbitalPositions sets the orbitals and their positions in the unit
// cell.
func (b Builder) WithOrbitalPositions(positions ...[]float64) Builder {
	b.positions = copyRows(positions)
	return b
}

// Build builds a new Lattice.
func (b Builder) Build() (*Lattice, error) {
	d := len(b.extents)
	if d == 0 {
		return nil, fmt.Errorf("%w: no extents", ErrGeometry)
	}

	l := &Lattice{
		extents:  append([]int(nil), b.extents...),
		periodic: b.boundaries(d),
	}

	if len(l.periodic) != d {
		return nil, fmt.Errorf("%w: %d boundaries for %d dimensions",
			ErrGeometry, len(l.periodic), d)
	}

	basis, err := b.basis(d)
	if err != nil {
		return nil, err
	}

	l.basis = basis

	positions, err := b.orbitals(d)
	if err != nil {
		return nil, err
	}

	l.positions = positions

	radices := append(append([]int(nil), b.extents...), len(positions))

	sites, err := radix.New(radices...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeometry, err)
	}

	l.sites = sites

	return l, nil
}

func (b Builder) boundaries(d int) []bool {
	if b.periodic == nil {
		periodic := make([]bool, d)
		for i := range periodic {
			periodic[i] = true
		}

		return periodic
	}

	return append([]bool(nil), b.periodic...)
}

func (b Builder) basis(d int) (*mat.Dense, error) {
	basis := mat.NewDense(d, d, nil)

	if b.vectors == nil {
		for i := 0; i < d; i++ {
			basis.Set(i, i, 1)
		}

		return basis, nil
	}

	if len(b.vectors) != d {
		return nil, fmt.Errorf("%w: %d lattice vectors for %d dimensions",
			ErrGeometry, len(b.vectors), d)
	}

	for k, v := range b.vectors {
		if len(v) != d {
			return nil, fmt.Errorf("%w: lattice vector %d has %d components",
				ErrGeometry, k, len(v))
		}

		basis.SetCol(k, v)
	}

	return basis, nil
}

func (b Builder) orbitals(d int) ([]*mat.VecDense, error) {
	if b.positions == nil {
		return []*mat.VecDense{mat.NewVecDense(d, nil)}, nil
	}

	if len(b.positions) == 0 {
		return nil, fmt.Errorf("%w: no orbitals", ErrGeometry)
	}

	positions := make([]*mat.VecDense, len(b.positions))

	for o, p := range b.positions {
		if len(p) != d {
			return nil, fmt.Errorf("%w: orbital %d position has %d components",
				ErrGeometry, o, len(p))
		}

		positions[o] = mat.NewVecDense(d, append([]float64(nil), p...))
	}

	return positions, nil
}

func copyRows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}

	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = append([]float64(nil), r...)
	}

	return out
}
