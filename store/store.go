// Package store defines the persistent store that holds lattice and
// Hamiltonian datasets.
//
// A store is a flat namespace of datasets addressed by slash-separated paths
// such as "/Hamiltonian/Hoppings". Each dataset is a row-major array with a
// shape and an element kind.
package store

import (
	"errors"
	"fmt"
)

// Dataset paths read by the lattice and Hamiltonian loaders.
const (
	PathNHoppings     = "/Hamiltonian/NHoppings"
	PathHoppings      = "/Hamiltonian/Hoppings"
	PathDistances     = "/Hamiltonian/d"
	PathDisorderOrb   = "/Hamiltonian/Disorder/OrbitalNum"
	PathDisorderModel = "/Hamiltonian/Disorder/OnsiteDisorderModelType"
	PathDisorderMean  = "/Hamiltonian/Disorder/OnsiteDisorderMeanValue"
	PathDisorderStdv  = "/Hamiltonian/Disorder/OnsiteDisorderMeanStdv"

	PathLatticeDim        = "/Lattice/Dim"
	PathLatticeOrbitals   = "/Lattice/NOrbitals"
	PathLatticeSize       = "/Lattice/Size"
	PathLatticeBoundaries = "/Lattice/Boundaries"
	PathLatticeVectors    = "/Lattice/LattVectors"
	PathLatticePositions  = "/Lattice/OrbPositions"
)

// ErrNotFound is returned when a dataset does not exist.
var ErrNotFound = errors.New("dataset not found")

// ErrKind is returned when a dataset is read as an incompatible kind.
var ErrKind = errors.New("dataset kind mismatch")

// ErrShape is returned when the data length does not match the shape.
var ErrShape = errors.New("dataset shape mismatch")

// Kind is the element type of a dataset.
type Kind int

// Element kinds.
const (
	KindInt Kind = iota + 1
	KindFloat
	KindComplex
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindComplex:
		return "complex"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Info describes a dataset without reading its values.
type Info struct {
	Kind  Kind
	Shape []int
}

// Len returns the number of elements described by the shape.
func (i Info) Len() int {
	return ShapeLen(i.Shape)
}

// A Store provides read access to datasets.
//
// ReadFloats accepts int datasets. ReadComplex accepts int and float
// datasets, with zero imaginary parts. Any other combination returns ErrKind.
type Store interface {
	Info(path string) (Info, error)
	ReadInts(path string) ([]int, error)
	ReadFloats(path string) ([]float64, error)
	ReadComplex(path string) ([]complex128, error)

	// Reentrant reports whether the store tolerates concurrent load
	// sequences. Loads from non-reentrant stores are serialized process-wide
	// by Acquire.
	Reentrant() bool
}

// A Writer creates datasets. Writing an existing path replaces it.
type Writer interface {
	WriteInts(path string, shape []int, data []int) error
	WriteFloats(path string, shape []int, data []float64) error
	WriteComplex(path string, shape []int, data []complex128) error
}

// ShapeLen returns the product of the shape dimensions.
func ShapeLen(shape []int) int {
	n := 1
	for _, s := range shape {
		n *= s
	}

	return n
}

// CheckShape verifies that a shape is well formed and matches n elements.
func CheckShape(path string, shape []int, n int) error {
	for _, s := range shape {
		if s < 0 {
			return fmt.Errorf("%w: %s has negative extent in %v",
				ErrShape, path, shape)
		}
	}

	if ShapeLen(shape) != n {
		return fmt.Errorf("%w: %s has shape %v but %d elements",
			ErrShape, path, shape, n)
	}

	return nil
}
