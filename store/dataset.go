package store

import "fmt"

// Dataset is a fully materialized dataset. Exactly one of the value slices
// is populated, selected by Kind.
type Dataset struct {
	Info

	Ints    []int
	Floats  []float64
	Complex []complex128
}

// AsInts returns the values of an int dataset.
func (d Dataset) AsInts(path string) ([]int, error) {
	if d.Kind != KindInt {
		return nil, fmt.Errorf("%w: %s is %s, read as int", ErrKind, path, d.Kind)
	}

	out := make([]int, len(d.Ints))
	copy(out, d.Ints)

	return out, nil
}

// AsFloats returns the values of an int or float dataset.
func (d Dataset) AsFloats(path string) ([]float64, error) {
	switch d.Kind {
	case KindInt:
		out := make([]float64, len(d.Ints))
		for i, v := range d.Ints {
			out[i] = float64(v)
		}

		return out, nil
	case KindFloat:
		out := make([]float64, len(d.Floats))
		copy(out, d.Floats)

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s is %s, read as float",
			ErrKind, path, d.Kind)
	}
}

// AsComplex returns the values of any dataset as complex numbers.
func (d Dataset) AsComplex(path string) ([]complex128, error) {
	if d.Kind == KindComplex {
		out := make([]complex128, len(d.Complex))
		copy(out, d.Complex)

		return out, nil
	}

	floats, err := d.AsFloats(path)
	if err != nil {
		return nil, err
	}

	out := make([]complex128, len(floats))
	for i, v := range floats {
		out[i] = complex(v, 0)
	}

	return out, nil
}
