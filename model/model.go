// Package model describes tight-binding models in YAML and imports them into
// a store in the layout the hamiltonian package reads.
package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrModel is returned for model files that cannot describe a lattice or a
// Hamiltonian.
var ErrModel = errors.New("invalid model")

// Model is a tight-binding model file.
type Model struct {
	Lattice  LatticeSpec    `yaml:"lattice"`
	Hoppings []HoppingSpec  `yaml:"hoppings"`
	Disorder []DisorderSpec `yaml:"disorder"`
}

// LatticeSpec describes the unit cell and the number of cells.
type LatticeSpec struct {
	// Extents is the number of unit cells along each dimension.
	Extents []int `yaml:"extents"`

	// Periodic marks periodic dimensions. When omitted every dimension is
	// periodic.
	Periodic []bool `yaml:"periodic"`

	// Vectors lists the lattice vectors. When omitted the basis is the
	// identity.
	Vectors [][]float64 `yaml:"vectors"`

	// Orbitals lists orbital positions within the unit cell.
	Orbitals [][]float64 `yaml:"orbitals"`
}

// HoppingSpec is a hopping from orbital From of one cell to orbital To of
// the cell at Offset.
type HoppingSpec struct {
	From   int     `yaml:"from"`
	To     int     `yaml:"to"`
	Offset []int   `yaml:"offset"`
	Value  float64 `yaml:"value"`
	Imag   float64 `yaml:"imag"`
}

// Amplitude returns the hopping as a complex number.
func (h HoppingSpec) Amplitude() complex128 {
	return complex(h.Value, h.Imag)
}

// DisorderSpec is an on-site disorder source acting on one orbital.
type DisorderSpec struct {
	Orbital int      `yaml:"orbital"`
	Model   ModelTag `yaml:"model"`
	Mean    float64  `yaml:"mean"`
	Spread  float64  `yaml:"spread"`
}

// ModelTag is a stored disorder model tag. In YAML it is written either as
// a model name or as the raw integer tag.
type ModelTag int

var modelNames = map[string]ModelTag{
	"gaussian":      1,
	"uniform":       2,
	"deterministic": 3,
}

// UnmarshalYAML accepts "gaussian", "uniform", "deterministic", or an
// integer. Integers are kept as they are so that files can carry tags this
// version does not know.
func (t *ModelTag) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: disorder model must be a scalar",
			ErrModel, value.Line)
	}

	if value.Tag == "!!int" {
		var n int
		if err := value.Decode(&n); err != nil {
			return err
		}

		*t = ModelTag(n)

		return nil
	}

	tag, ok := modelNames[value.Value]
	if !ok {
		return fmt.Errorf("%w: line %d: unknown disorder model %q",
			ErrModel, value.Line, value.Value)
	}

	*t = tag

	return nil
}

// Parse decodes a model. Unknown fields are rejected.
func Parse(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := &Model{}
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrModel)
		}

		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}

	return m, nil
}

// ParseFile decodes the model stored at path.
func ParseFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	m, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}
