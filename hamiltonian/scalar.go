package hamiltonian

import (
	"fmt"

	"github.com/sarchlab/kpmham/store"
)

// Scalar is the element type of hopping tables.
type Scalar interface {
	float32 | float64 | complex64 | complex128
}

// scale multiplies t by the real number x. Complex values are scaled
// componentwise, without conjugation.
func scale[T Scalar](t T, x float64) T {
	switch v := any(t).(type) {
	case float32:
		return any(v * float32(x)).(T)
	case float64:
		return any(v * x).(T)
	case complex64:
		return any(complex(real(v)*float32(x), imag(v)*float32(x))).(T)
	case complex128:
		return any(complex(real(v)*x, imag(v)*x)).(T)
	}

	panic(fmt.Sprintf("unsupported scalar %T", t))
}

// fromReal converts a real number to T.
func fromReal[T Scalar](x float64) T {
	var zero T

	switch any(zero).(type) {
	case float32:
		return any(float32(x)).(T)
	case float64:
		return any(x).(T)
	case complex64:
		return any(complex(float32(x), 0)).(T)
	case complex128:
		return any(complex(x, 0)).(T)
	}

	panic(fmt.Sprintf("unsupported scalar %T", zero))
}

// readScalars reads a dataset as T. Complex datasets cannot be read into
// real tables.
func readScalars[T Scalar](s store.Store, path string) ([]T, error) {
	var zero T

	switch any(zero).(type) {
	case float32, float64:
		v, err := s.ReadFloats(path)
		if err != nil {
			return nil, err
		}

		out := make([]T, len(v))
		for i, x := range v {
			out[i] = fromReal[T](x)
		}

		return out, nil
	default:
		v, err := s.ReadComplex(path)
		if err != nil {
			return nil, err
		}

		out := make([]T, len(v))
		for i, c := range v {
			out[i] = fromComplex[T](c)
		}

		return out, nil
	}
}

func fromComplex[T Scalar](c complex128) T {
	var zero T

	switch any(zero).(type) {
	case complex64:
		return any(complex64(c)).(T)
	case complex128:
		return any(c).(T)
	}

	panic(fmt.Sprintf("cannot store complex value in %T", zero))
}
