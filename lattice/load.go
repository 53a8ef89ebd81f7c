package lattice

import (
	"errors"
	"fmt"

	"github.com/sarchlab/kpmham/store"
)

// Load reads a lattice from the /Lattice datasets of a store. The
// /Lattice/Boundaries dataset is optional; without it every dimension is
// periodic.
func Load(s store.Store) (*Lattice, error) {
	access := store.Acquire(s)
	defer access.Release()

	dim, err := readScalar(s, store.PathLatticeDim)
	if err != nil {
		return nil, err
	}

	if dim < 1 {
		return nil, fmt.Errorf("%w: dimension %d", ErrGeometry, dim)
	}

	norb, err := readScalar(s, store.PathLatticeOrbitals)
	if err != nil {
		return nil, err
	}

	if norb < 1 {
		return nil, fmt.Errorf("%w: %d orbitals", ErrGeometry, norb)
	}

	extents, err := s.ReadInts(store.PathLatticeSize)
	if err != nil {
		return nil, err
	}

	if len(extents) != dim {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d",
			store.ErrShape, store.PathLatticeSize, len(extents), dim)
	}

	b := MakeBuilder().WithExtents(extents...)

	boundaries, err := readBoundaries(s, dim)
	if err != nil {
		return nil, err
	}

	if boundaries != nil {
		b = b.WithBoundaries(boundaries...)
	}

	vectors, err := readRows(s, store.PathLatticeVectors, dim, dim)
	if err != nil {
		return nil, err
	}

	positions, err := readRows(s, store.PathLatticePositions, norb, dim)
	if err != nil {
		return nil, err
	}

	return b.WithLatticeVectors(vectors...).
		WithOrbitalPositions(positions...).
		Build()
}

// Save writes the lattice into the /Lattice datasets of a store.
func Save(l *Lattice, w store.Writer) error {
	d := l.Dim()

	boundaries := make([]int, d)
	for k := range boundaries {
		if l.periodic[k] {
			boundaries[k] = 1
		}
	}

	vectors := make([]float64, 0, d*d)
	for k := 0; k < d; k++ {
		for i := 0; i < d; i++ {
			vectors = append(vectors, l.basis.At(i, k))
		}
	}

	positions := make([]float64, 0, l.Orbitals()*d)
	for _, p := range l.positions {
		positions = append(positions, p.RawVector().Data...)
	}

	writes := []func() error{
		func() error { return w.WriteInts(store.PathLatticeDim, nil, []int{d}) },
		func() error {
			return w.WriteInts(store.PathLatticeOrbitals, nil, []int{l.Orbitals()})
		},
		func() error { return w.WriteInts(store.PathLatticeSize, []int{d}, l.extents) },
		func() error {
			return w.WriteInts(store.PathLatticeBoundaries, []int{d}, boundaries)
		},
		func() error {
			return w.WriteFloats(store.PathLatticeVectors, []int{d, d}, vectors)
		},
		func() error {
			return w.WriteFloats(store.PathLatticePositions,
				[]int{l.Orbitals(), d}, positions)
		},
	}

	for _, write := range writes {
		err := write()
		if err != nil {
			return err
		}
	}

	return nil
}

func readScalar(s store.Store, path string) (int, error) {
	v, err := s.ReadInts(path)
	if err != nil {
		return 0, err
	}

	if len(v) != 1 {
		return 0, fmt.Errorf("%w: %s has %d entries, want 1",
			store.ErrShape, path, len(v))
	}

	return v[0], nil
}

func readBoundaries(s store.Store, dim int) ([]bool, error) {
	_, err := s.Info(store.PathLatticeBoundaries)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	v, err := s.ReadInts(store.PathLatticeBoundaries)
	if err != nil {
		return nil, err
	}

	if len(v) != dim {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d",
			store.ErrShape, store.PathLatticeBoundaries, len(v), dim)
	}

	periodic := make([]bool, dim)
	for k, b := range v {
		periodic[k] = b != 0
	}

	return periodic, nil
}

func readRows(s store.Store, path string, rows, cols int) ([][]float64, error) {
	v, err := s.ReadFloats(path)
	if err != nil {
		return nil, err
	}

	if len(v) != rows*cols {
		return nil, fmt.Errorf("%w: %s has %d entries, want %d x %d",
			store.ErrShape, path, len(v), rows, cols)
	}

	out := make([][]float64, rows)
	for r := range out {
		out[r] = v[r*cols : (r+1)*cols]
	}

	return out, nil
}
