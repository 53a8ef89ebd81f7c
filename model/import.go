package model

import (
	"fmt"

	"github.com/sarchlab/kpmham/hamiltonian"
	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/store"
)

// BuildLattice builds the lattice the model lives on.
func (m *Model) BuildLattice() (*lattice.Lattice, error) {
	spec := m.Lattice

	b := lattice.MakeBuilder().WithExtents(spec.Extents...)

	if spec.Periodic != nil {
		b = b.WithBoundaries(spec.Periodic...)
	}

	if spec.Vectors != nil {
		b = b.WithLatticeVectors(spec.Vectors...)
	}

	if spec.Orbitals != nil {
		b = b.WithOrbitalPositions(spec.Orbitals...)
	}

	l, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}

	return l, nil
}

// Import writes the lattice, the hopping tables, and the disorder sources of
// m into w. Hoppings keep their file order within each origin orbital. The
// hopping dataset is complex only when some hopping has an imaginary part.
func Import(m *Model, w store.Writer) (*lattice.Lattice, error) {
	l, err := m.BuildLattice()
	if err != nil {
		return nil, err
	}

	t, err := m.tables(l)
	if err != nil {
		return nil, err
	}

	disorder, err := m.disorder(l.Orbitals())
	if err != nil {
		return nil, err
	}

	err = lattice.Save(l, w)
	if err != nil {
		return nil, err
	}

	err = t.write(w)
	if err != nil {
		return nil, err
	}

	err = disorder.write(w)
	if err != nil {
		return nil, err
	}

	return l, nil
}

type hoppingTables struct {
	rows      int
	orbitals  int
	counts    []int
	codes     []int
	values    []complex128
	isComplex bool
}

func (m *Model) tables(l *lattice.Lattice) (*hoppingTables, error) {
	codec, err := hamiltonian.NewCoordinateCodec(l)
	if err != nil {
		return nil, err
	}

	orbitals := l.Orbitals()
	counts := make([]int, orbitals)

	for k, h := range m.Hoppings {
		if h.From < 0 || h.From >= orbitals {
			return nil, fmt.Errorf("%w: hopping %d starts on orbital %d, "+
				"lattice has %d", ErrModel, k, h.From, orbitals)
		}

		counts[h.From]++
	}

	rows := 0
	for _, n := range counts {
		rows = max(rows, n)
	}

	t := &hoppingTables{
		rows:     rows,
		orbitals: orbitals,
		counts:   counts,
		codes:    make([]int, rows*orbitals),
		values:   make([]complex128, rows*orbitals),
	}

	next := make([]int, orbitals)

	for k, h := range m.Hoppings {
		code, err := codec.Encode(h.Offset, h.To)
		if err != nil {
			return nil, fmt.Errorf("%w: hopping %d: %v", ErrModel, k, err)
		}

		i := next[h.From]
		next[h.From]++

		t.codes[i*orbitals+h.From] = code
		t.values[i*orbitals+h.From] = h.Amplitude()

		if h.Imag != 0 {
			t.isComplex = true
		}
	}

	return t, nil
}

func (t *hoppingTables) write(w store.Writer) error {
	shape := []int{t.rows, t.orbitals}

	err := w.WriteInts(store.PathNHoppings, []int{t.orbitals}, t.counts)
	if err != nil {
		return err
	}

	err = w.WriteInts(store.PathDistances, shape, t.codes)
	if err != nil {
		return err
	}

	if t.isComplex {
		return w.WriteComplex(store.PathHoppings, shape, t.values)
	}

	reals := make([]float64, len(t.values))
	for i, v := range t.values {
		reals[i] = real(v)
	}

	return w.WriteFloats(store.PathHoppings, shape, reals)
}

type disorderTables struct {
	orbitals []int
	tags     []int
	means    []float64
	spreads  []float64
}

func (m *Model) disorder(orbitals int) (*disorderTables, error) {
	n := len(m.Disorder)
	d := &disorderTables{
		orbitals: make([]int, n),
		tags:     make([]int, n),
		means:    make([]float64, n),
		spreads:  make([]float64, n),
	}

	for k, e := range m.Disorder {
		if e.Orbital < 0 || e.Orbital >= orbitals {
			return nil, fmt.Errorf("%w: disorder entry %d targets orbital %d, "+
				"lattice has %d", ErrModel, k, e.Orbital, orbitals)
		}

		d.orbitals[k] = e.Orbital
		d.tags[k] = int(e.Model)
		d.means[k] = e.Mean
		d.spreads[k] = e.Spread
	}

	return d, nil
}

func (d *disorderTables) write(w store.Writer) error {
	shape := []int{len(d.orbitals)}

	err := w.WriteInts(store.PathDisorderOrb, shape, d.orbitals)
	if err != nil {
		return err
	}

	err = w.WriteInts(store.PathDisorderModel, shape, d.tags)
	if err != nil {
		return err
	}

	err = w.WriteFloats(store.PathDisorderMean, shape, d.means)
	if err != nil {
		return err
	}

	return w.WriteFloats(store.PathDisorderStdv, shape, d.spreads)
}
