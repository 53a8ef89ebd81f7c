// Package hamiltonian builds the distance-encoded tight-binding Hamiltonian
// consumed by Chebyshev spectral solvers.
//
// The store holds, for every orbital, a list of hoppings. Each hopping has a
// magnitude and a local distance code naming a neighbouring unit cell (one
// step at most along each dimension) and a destination orbital. Building a
// Hamiltonian turns each local code into a global distance index of the
// lattice and derives the velocity components, hopping times displacement,
// along every dimension. The on-site potential is drawn separately from the
// stored disorder sources.
package hamiltonian

import (
	"go.uber.org/zap"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/rng"
)

// Hamiltonian is a lattice Hamiltonian with its velocity operators and
// on-site potential.
type Hamiltonian[T Scalar] struct {
	name      string
	geometry  lattice.Geometry
	random    rng.Source
	logger    *zap.Logger
	nHoppings []int
	distances *Table[int]
	tensor    []*Table[T]
	potential []T
	disorder  []DisorderEntry
}

// Name returns the name of the Hamiltonian.
func (h *Hamiltonian[T]) Name() string {
	return h.name
}

// Geometry returns the lattice the Hamiltonian lives on.
func (h *Hamiltonian[T]) Geometry() lattice.Geometry {
	return h.geometry
}

// Dim returns the number of spatial dimensions.
func (h *Hamiltonian[T]) Dim() int {
	return len(h.tensor) - 1
}

// Orbitals returns the number of orbitals per unit cell.
func (h *Hamiltonian[T]) Orbitals() int {
	return len(h.nHoppings)
}

// NHoppings returns the number of valid slots of orbital io.
func (h *Hamiltonian[T]) NHoppings(io int) int {
	return h.nHoppings[io]
}

// MaxHoppings returns the number of rows of every table.
func (h *Hamiltonian[T]) MaxHoppings() int {
	return h.distances.Rows()
}

// Distance returns the global distance index of slot i of orbital io.
func (h *Hamiltonian[T]) Distance(i, io int) int {
	return h.distances.At(i, io)
}

// Distances returns the distance table. Rows at or past NHoppings(io) of
// column io are unspecified.
func (h *Hamiltonian[T]) Distances() *Table[int] {
	return h.distances
}

// Hopping returns the magnitude of slot i of orbital io.
func (h *Hamiltonian[T]) Hopping(i, io int) T {
	return h.tensor[0].At(i, io)
}

// Velocity returns the velocity component along dim of slot i of orbital
// io.
func (h *Hamiltonian[T]) Velocity(dim, i, io int) T {
	return h.tensor[1+dim].At(i, io)
}

// Tensor returns table k: 0 is the hopping magnitude, 1+dim the velocity
// along dim.
func (h *Hamiltonian[T]) Tensor(k int) *Table[T] {
	return h.tensor[k]
}

// Potential returns the on-site potential, one value per site. Site j of
// orbital o is at SitesPerOrbital*o + j.
func (h *Hamiltonian[T]) Potential() []T {
	return h.potential
}

// Disorder returns a copy of the disorder sources.
func (h *Hamiltonian[T]) Disorder() []DisorderEntry {
	return append([]DisorderEntry(nil), h.disorder...)
}

// DisorderGenerator returns a generator bound to this Hamiltonian's lattice
// and random source.
func (h *Hamiltonian[T]) DisorderGenerator() DisorderGenerator[T] {
	return NewDisorderGenerator[T](
		h.disorder,
		h.geometry.Orbitals(),
		h.geometry.SitesPerOrbital(),
		h.random,
		h.logger,
	)
}

// DistributeDisorder draws a new disorder realization into the potential,
// replacing the previous one. Sites of orbitals without a disorder source
// keep their value. It must not run concurrently with itself or with readers
// of Potential.
func (h *Hamiltonian[T]) DistributeDisorder() error {
	return h.DisorderGenerator().Distribute(h.potential)
}

// ResetPotential sets every site of the potential to zero.
func (h *Hamiltonian[T]) ResetPotential() {
	clear(h.potential)
}
