package hamiltonian

import (
	"fmt"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/radix"
)

// Hop is a decoded hopping destination.
type Hop struct {
	// Offset is the unit-cell offset, each component in {-1, 0, 1}.
	Offset []int

	// Target is the destination orbital.
	Target int

	// Distance is the global distance index on the lattice.
	Distance int
}

// CoordinateCodec converts local distance codes into global distance
// indices.
//
// A local code packs D cell offsets and the destination orbital with radices
// [3, ..., 3, Orb]; digit k stores offset k shifted by one. The destination
// orbital is absolute. The lattice receives the signed offset and the
// orbital difference (destination minus origin).
type CoordinateCodec struct {
	geometry lattice.Geometry
	local    radix.Radix
	dim      int
	orbitals int
}

// NewCoordinateCodec creates a codec for g.
func NewCoordinateCodec(g lattice.Geometry) (*CoordinateCodec, error) {
	dim := g.Dim()
	orbitals := g.Orbitals()

	radices := make([]int, dim+1)
	for k := 0; k < dim; k++ {
		radices[k] = 3
	}

	radices[dim] = orbitals

	local, err := radix.New(radices...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	return &CoordinateCodec{
		geometry: g,
		local:    local,
		dim:      dim,
		orbitals: orbitals,
	}, nil
}

// Size returns the number of distinct local codes.
func (c *CoordinateCodec) Size() int {
	return c.local.Size()
}

// Decode resolves a local code of a hopping that starts on orbital origin.
func (c *CoordinateCodec) Decode(code, origin int) (Hop, error) {
	if origin < 0 || origin >= c.orbitals {
		return Hop{}, fmt.Errorf("%w: origin orbital %d not in [0, %d)",
			ErrIndex, origin, c.orbitals)
	}

	digits, err := c.local.Decode(code)
	if err != nil {
		return Hop{}, fmt.Errorf("%w: %v", ErrIndex, err)
	}

	offset := digits[:c.dim]
	for k := range offset {
		offset[k]--
	}

	target := digits[c.dim]
	if target < 0 || target >= c.orbitals {
		return Hop{}, fmt.Errorf("%w: target orbital %d not in [0, %d)",
			ErrIndex, target, c.orbitals)
	}

	distance, err := c.geometry.Index(offset, target-origin)
	if err != nil {
		return Hop{}, fmt.Errorf("%w: %v", ErrIndex, err)
	}

	return Hop{Offset: offset, Target: target, Distance: distance}, nil
}

// Encode packs a cell offset and destination orbital into a local code.
func (c *CoordinateCodec) Encode(offset []int, target int) (int, error) {
	if len(offset) != c.dim {
		return 0, fmt.Errorf("%w: offset %v has %d dimensions, want %d",
			ErrIndex, offset, len(offset), c.dim)
	}

	digits := make([]int, c.dim+1)
	for k, v := range offset {
		digits[k] = v + 1
	}

	digits[c.dim] = target

	code, err := c.local.Encode(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIndex, err)
	}

	return code, nil
}
