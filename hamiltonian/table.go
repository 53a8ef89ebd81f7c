package hamiltonian

import "fmt"

// Table is a dense [slot, orbital] array stored row-major, so element
// (i, io) lives at i*Cols() + io.
type Table[T any] struct {
	rows, cols int
	data       []T
}

// NewTable allocates a zeroed table.
func NewTable[T any](rows, cols int) *Table[T] {
	return &Table[T]{
		rows: rows,
		cols: cols,
		data: make([]T, rows*cols),
	}
}

func tableFromData[T any](rows, cols int, data []T) (*Table[T], error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("got %d elements for a %d x %d table",
			len(data), rows, cols)
	}

	return &Table[T]{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the number of slots.
func (t *Table[T]) Rows() int {
	return t.rows
}

// Cols returns the number of orbitals.
func (t *Table[T]) Cols() int {
	return t.cols
}

// At returns element (i, io).
func (t *Table[T]) At(i, io int) T {
	return t.data[t.offset(i, io)]
}

// Set sets element (i, io).
func (t *Table[T]) Set(i, io int, v T) {
	t.data[t.offset(i, io)] = v
}

// Data returns the row-major backing slice.
func (t *Table[T]) Data() []T {
	return t.data
}

func (t *Table[T]) offset(i, io int) int {
	if i < 0 || i >= t.rows || io < 0 || io >= t.cols {
		panic(fmt.Sprintf("index (%d, %d) out of %d x %d table",
			i, io, t.rows, t.cols))
	}

	return i*t.cols + io
}
