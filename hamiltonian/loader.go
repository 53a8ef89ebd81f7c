package hamiltonian

import (
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/sarchlab/kpmham/logging"
	"github.com/sarchlab/kpmham/store"
)

// Tables holds the raw Hamiltonian datasets as read from a store.
type Tables[T Scalar] struct {
	// NHoppings is the number of valid slots of each orbital.
	NHoppings []int

	// Hoppings has max(NHoppings) rows and one column per orbital.
	Hoppings *Table[T]

	// Distances has the shape of Hoppings and holds local distance codes.
	Distances *Table[int]

	// Disorder lists the on-site disorder sources in stored order.
	Disorder []DisorderEntry
}

// MaxHoppings returns the number of table rows.
func (t *Tables[T]) MaxHoppings() int {
	return t.Hoppings.Rows()
}

// LoadTables reads the /Hamiltonian datasets for a lattice with the given
// number of orbitals. The store is held through store.Acquire for the whole
// read. Any failure returns a *LoadError and no tables.
func LoadTables[T Scalar](
	s store.Store,
	orbitals int,
	logger *zap.Logger,
) (*Tables[T], error) {
	logger = logging.OrNop(logger)

	access := store.Acquire(s)
	defer access.Release()

	l := tableLoader[T]{store: access.Store(), orbitals: orbitals, logger: logger}

	return l.load()
}

type tableLoader[T Scalar] struct {
	store    store.Store
	orbitals int
	logger   *zap.Logger
}

func (l tableLoader[T]) load() (*Tables[T], error) {
	nHoppings, err := l.loadCounts()
	if err != nil {
		return nil, err
	}

	maxHoppings := 0
	if len(nHoppings) > 0 {
		maxHoppings = slices.Max(nHoppings)
	}

	shape := []int{maxHoppings, l.orbitals}

	hoppings, err := l.loadHoppings(shape)
	if err != nil {
		return nil, err
	}

	distances, err := l.loadDistances(shape)
	if err != nil {
		return nil, err
	}

	disorder, err := l.loadDisorder()
	if err != nil {
		return nil, err
	}

	l.logger.Debug("hamiltonian tables loaded",
		zap.Int("orbitals", l.orbitals),
		zap.Int("max_hoppings", maxHoppings),
		zap.Int("disorder_entries", len(disorder)))

	return &Tables[T]{
		NHoppings: nHoppings,
		Hoppings:  hoppings,
		Distances: distances,
		Disorder:  disorder,
	}, nil
}

func (l tableLoader[T]) loadCounts() ([]int, error) {
	path := store.PathNHoppings

	counts, err := l.store.ReadInts(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(counts) != l.orbitals {
		return nil, &LoadError{Path: path, Err: fmt.Errorf(
			"%w: %d counts for %d orbitals",
			store.ErrShape, len(counts), l.orbitals)}
	}

	for io, n := range counts {
		if n < 0 {
			return nil, &LoadError{Path: path, Err: fmt.Errorf(
				"orbital %d has negative hopping count %d", io, n)}
		}
	}

	return counts, nil
}

func (l tableLoader[T]) checkShape(path string, want []int) error {
	info, err := l.store.Info(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}

	if !slices.Equal(info.Shape, want) {
		return &LoadError{Path: path, Err: fmt.Errorf(
			"%w: shape %v, want %v", store.ErrShape, info.Shape, want)}
	}

	return nil
}

func (l tableLoader[T]) loadHoppings(shape []int) (*Table[T], error) {
	path := store.PathHoppings

	err := l.checkShape(path, shape)
	if err != nil {
		return nil, err
	}

	data, err := readScalars[T](l.store, path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	t, err := tableFromData(shape[0], shape[1], data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return t, nil
}

func (l tableLoader[T]) loadDistances(shape []int) (*Table[int], error) {
	path := store.PathDistances

	err := l.checkShape(path, shape)
	if err != nil {
		return nil, err
	}

	data, err := l.store.ReadInts(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	t, err := tableFromData(shape[0], shape[1], data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	return t, nil
}

func (l tableLoader[T]) loadDisorder() ([]DisorderEntry, error) {
	info, err := l.store.Info(store.PathDisorderOrb)
	if err != nil {
		return nil, &LoadError{Path: store.PathDisorderOrb, Err: err}
	}

	m := info.Len()

	orbitals, err := l.readIntsOfLen(store.PathDisorderOrb, m)
	if err != nil {
		return nil, err
	}

	tags, err := l.readIntsOfLen(store.PathDisorderModel, m)
	if err != nil {
		return nil, err
	}

	means, err := l.readFloatsOfLen(store.PathDisorderMean, m)
	if err != nil {
		return nil, err
	}

	spreads, err := l.readFloatsOfLen(store.PathDisorderStdv, m)
	if err != nil {
		return nil, err
	}

	entries := make([]DisorderEntry, m)
	for k := range entries {
		entries[k] = DisorderEntry{
			Orbital: orbitals[k],
			Model:   ModelFromTag(tags[k]),
			Tag:     tags[k],
			Mean:    means[k],
			Spread:  spreads[k],
		}

		if entries[k].Model == Fallback {
			l.logger.Warn("unrecognized disorder model, using deterministic",
				zap.Int("entry", k),
				zap.Int("tag", tags[k]),
				zap.Int("orbital", orbitals[k]),
				zap.Float64("mean", means[k]))
		}
	}

	return entries, nil
}

func (l tableLoader[T]) readIntsOfLen(path string, n int) ([]int, error) {
	v, err := l.store.ReadInts(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(v) != n {
		return nil, &LoadError{Path: path, Err: fmt.Errorf(
			"%w: %d entries, want %d", store.ErrShape, len(v), n)}
	}

	return v, nil
}

func (l tableLoader[T]) readFloatsOfLen(path string, n int) ([]float64, error) {
	v, err := l.store.ReadFloats(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	if len(v) != n {
		return nil, &LoadError{Path: path, Err: fmt.Errorf(
			"%w: %d entries, want %d", store.ErrShape, len(v), n)}
	}

	return v, nil
}
