package hamiltonian

import (
	"errors"
	"fmt"
)

// ErrLoad marks failures to read the Hamiltonian from its store.
var ErrLoad = errors.New("cannot load hamiltonian")

// ErrIndex marks decoded orbitals or distances outside their bounds.
var ErrIndex = errors.New("index out of bounds")

// ErrConfig marks unusable builder or disorder configuration.
var ErrConfig = errors.New("invalid configuration")

// LoadError reports a dataset that is missing, malformed, or unreadable.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cannot load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes LoadError match ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// IndexError reports a hopping entry that decodes outside the lattice.
type IndexError struct {
	Orbital int
	Slot    int
	Code    int
	Err     error
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("hopping %d of orbital %d (code %d): %v",
		e.Slot, e.Orbital, e.Code, e.Err)
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

// Is makes IndexError match ErrIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}
