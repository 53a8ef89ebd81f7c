// Package radix packs integer vectors into single integer codes using a
// mixed-radix positional system.
package radix

import (
	"errors"
	"fmt"
)

// ErrRadix is returned when a radix vector is empty or contains a radix
// smaller than one.
var ErrRadix = errors.New("invalid radix")

// ErrDigit is returned when a digit does not fit its radix.
var ErrDigit = errors.New("digit out of range")

// ErrCode is returned when a code lies outside [0, Size()).
var ErrCode = errors.New("code out of range")

// A Radix is a bijection between digit vectors and integer codes. Digit 0
// varies fastest, so code = d0 + r0*(d1 + r1*(d2 + ...)).
type Radix struct {
	radices []int
	strides []int
	size    int
}

// New creates a Radix with the given radices.
func New(radices ...int) (Radix, error) {
	if len(radices) == 0 {
		return Radix{}, fmt.Errorf("%w: no radices given", ErrRadix)
	}

	r := Radix{
		radices: make([]int, len(radices)),
		strides: make([]int, len(radices)),
		size:    1,
	}

	for i, v := range radices {
		if v < 1 {
			return Radix{}, fmt.Errorf("%w: radix %d is %d", ErrRadix, i, v)
		}

		r.radices[i] = v
		r.strides[i] = r.size
		r.size *= v
	}

	return r, nil
}

// MustNew is like New but panics on invalid radices.
func MustNew(radices ...int) Radix {
	r, err := New(radices...)
	if err != nil {
		panic(err)
	}

	return r
}

// Len returns the number of digits.
func (r Radix) Len() int {
	return len(r.radices)
}

// Size returns the number of distinct codes.
func (r Radix) Size() int {
	return r.size
}

// Radix returns the radix of digit k.
func (r Radix) Radix(k int) int {
	return r.radices[k]
}

// Stride returns the code increment of a unit step in digit k.
func (r Radix) Stride(k int) int {
	return r.strides[k]
}

// Radices returns a copy of the radix vector.
func (r Radix) Radices() []int {
	out := make([]int, len(r.radices))
	copy(out, r.radices)

	return out
}

// Encode packs digits into a code. Every digit must lie in [0, radix).
func (r Radix) Encode(digits []int) (int, error) {
	if len(digits) != len(r.radices) {
		return 0, fmt.Errorf("%w: got %d digits, want %d",
			ErrDigit, len(digits), len(r.radices))
	}

	code := 0
	for i, d := range digits {
		if d < 0 || d >= r.radices[i] {
			return 0, fmt.Errorf("%w: digit %d is %d, radix %d",
				ErrDigit, i, d, r.radices[i])
		}

		code += d * r.strides[i]
	}

	return code, nil
}

// Compose packs digits without range checks. Digits may be negative or
// exceed their radix, in which case the result is the signed linear offset
// d0*s0 + d1*s1 + ... .
func (r Radix) Compose(digits []int) int {
	code := 0
	for i, d := range digits {
		code += d * r.strides[i]
	}

	return code
}

// Decode unpacks a code into a fresh digit vector.
func (r Radix) Decode(code int) ([]int, error) {
	digits := make([]int, len(r.radices))

	err := r.DecodeInto(code, digits)
	if err != nil {
		return nil, err
	}

	return digits, nil
}

// DecodeInto unpacks a code into digits, which must have Len() elements.
func (r Radix) DecodeInto(code int, digits []int) error {
	if len(digits) != len(r.radices) {
		return fmt.Errorf("%w: buffer has %d digits, want %d",
			ErrDigit, len(digits), len(r.radices))
	}

	if code < 0 || code >= r.size {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrCode, code, r.size)
	}

	for i, v := range r.radices {
		digits[i] = code % v
		code /= v
	}

	return nil
}
