// Package lattice describes the geometry of a periodic tight-binding lattice:
// its extents, lattice vectors, orbital positions, and the mixed-radix
// indexing of its sites.
package lattice

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/sarchlab/kpmham/radix"
)

// ErrGeometry is returned when a lattice description is inconsistent.
var ErrGeometry = errors.New("invalid lattice geometry")

// ErrOffset is returned when an offset cannot be placed on the lattice.
var ErrOffset = errors.New("offset out of lattice")

// A Geometry provides the lattice information needed to assemble a
// Hamiltonian.
type Geometry interface {
	// Dim returns the number of spatial dimensions.
	Dim() int

	// Orbitals returns the number of orbitals per unit cell.
	Orbitals() int

	// Extents returns the number of unit cells along each dimension.
	Extents() []int

	// OrbitalPosition returns the position of orbital o inside the unit
	// cell.
	OrbitalPosition(o int) mat.Vector

	// Basis returns the D x D matrix whose column k is lattice vector k.
	Basis() mat.Matrix

	// SitesPerOrbital returns the number of unit cells.
	SitesPerOrbital() int

	// Sites returns the total number of sites.
	Sites() int

	// Index composes a cell offset and an orbital difference into the
	// lattice's global distance index.
	Index(offset []int, orbitalDelta int) (int, error)
}

// Lattice is a hypercubic arrangement of unit cells with optional periodic
// boundaries.
type Lattice struct {
	extents   []int
	periodic  []bool
	basis     *mat.Dense
	positions []*mat.VecDense
	sites     radix.Radix
}

// Dim returns the number of spatial dimensions.
func (l *Lattice) Dim() int {
	return len(l.extents)
}

// Orbitals returns the number of orbitals per unit cell.
func (l *Lattice) Orbitals() int {
	return len(l.positions)
}

// Extents returns a copy of the per-dimension cell counts.
func (l *Lattice) Extents() []int {
	return append([]int(nil), l.extents...)
}

// Periodic reports whether dimension k wraps around.
func (l *Lattice) Periodic(k int) bool {
	return l.periodic[k]
}

// OrbitalPosition returns the position of orbital o.
func (l *Lattice) OrbitalPosition(o int) mat.Vector {
	return l.positions[o]
}

// Basis returns the lattice vectors as matrix columns.
func (l *Lattice) Basis() mat.Matrix {
	return l.basis
}

// SitesPerOrbital returns the number of unit cells.
func (l *Lattice) SitesPerOrbital() int {
	return l.sites.Size() / l.Orbitals()
}

// Sites returns the number of sites.
func (l *Lattice) Sites() int {
	return l.sites.Size()
}

// Index wraps the offset and orbital difference onto the lattice and packs
// them with radices [extents..., orbitals]. Periodic dimensions accept any
// offset. Open dimensions accept offsets with magnitude below the extent.
// The result always lies in [0, Sites()).
func (l *Lattice) Index(offset []int, orbitalDelta int) (int, error) {
	if len(offset) != l.Dim() {
		return 0, fmt.Errorf("%w: offset %v has %d dimensions, want %d",
			ErrOffset, offset, len(offset), l.Dim())
	}

	digits := make([]int, l.Dim()+1)

	for k, c := range offset {
		n := l.extents[k]
		if !l.periodic[k] && (c >= n || c <= -n) {
			return 0, fmt.Errorf("%w: offset %d along open dimension %d "+
				"with extent %d", ErrOffset, c, k, n)
		}

		digits[k] = mod(c, n)
	}

	digits[l.Dim()] = mod(orbitalDelta, l.Orbitals())

	return l.sites.Encode(digits)
}

// Site returns the index of the site at the given cell and orbital.
func (l *Lattice) Site(cell []int, orbital int) (int, error) {
	digits := append(append([]int(nil), cell...), orbital)
	return l.sites.Encode(digits)
}

// Decode splits a site index into its cell coordinates and orbital.
func (l *Lattice) Decode(index int) (cell []int, orbital int, err error) {
	digits, err := l.sites.Decode(index)
	if err != nil {
		return nil, 0, err
	}

	return digits[:l.Dim()], digits[l.Dim()], nil
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}

	return m
}
