// Package memstore provides an in-memory dataset store.
package memstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/sarchlab/kpmham/store"
)

// Store keeps datasets in memory. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	datasets map[string]store.Dataset
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		datasets: make(map[string]store.Dataset),
	}
}

// Reentrant returns true.
func (s *Store) Reentrant() bool {
	return true
}

// Paths returns the sorted paths of all datasets.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.datasets))
	for p := range s.datasets {
		paths = append(paths, p)
	}

	sort.Strings(paths)

	return paths
}

// Delete removes a dataset if it exists.
func (s *Store) Delete(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.datasets, path)
}

func (s *Store) get(path string) (store.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.datasets[path]
	if !ok {
		return store.Dataset{}, fmt.Errorf("%w: %s", store.ErrNotFound, path)
	}

	return d, nil
}

// Info returns the kind and shape of a dataset.
func (s *Store) Info(path string) (store.Info, error) {
	d, err := s.get(path)
	if err != nil {
		return store.Info{}, err
	}

	info := d.Info
	info.Shape = append([]int(nil), d.Shape...)

	return info, nil
}

// ReadInts reads an int dataset.
func (s *Store) ReadInts(path string) ([]int, error) {
	d, err := s.get(path)
	if err != nil {
		return nil, err
	}

	return d.AsInts(path)
}

// ReadFloats reads an int or float dataset.
func (s *Store) ReadFloats(path string) ([]float64, error) {
	d, err := s.get(path)
	if err != nil {
		return nil, err
	}

	return d.AsFloats(path)
}

// ReadComplex reads any dataset as complex values.
func (s *Store) ReadComplex(path string) ([]complex128, error) {
	d, err := s.get(path)
	if err != nil {
		return nil, err
	}

	return d.AsComplex(path)
}

// WriteInts stores an int dataset.
func (s *Store) WriteInts(path string, shape []int, data []int) error {
	return s.put(path, store.Dataset{
		Info: store.Info{Kind: store.KindInt},
		Ints: append([]int(nil), data...),
	}, shape, len(data))
}

// WriteFloats stores a float dataset.
func (s *Store) WriteFloats(path string, shape []int, data []float64) error {
	return s.put(path, store.Dataset{
		Info:   store.Info{Kind: store.KindFloat},
		Floats: append([]float64(nil), data...),
	}, shape, len(data))
}

// WriteComplex stores a complex dataset.
func (s *Store) WriteComplex(path string, shape []int, data []complex128) error {
	return s.put(path, store.Dataset{
		Info:    store.Info{Kind: store.KindComplex},
		Complex: append([]complex128(nil), data...),
	}, shape, len(data))
}

func (s *Store) put(path string, d store.Dataset, shape []int, n int) error {
	err := store.CheckShape(path, shape, n)
	if err != nil {
		return err
	}

	d.Shape = append([]int(nil), shape...)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.datasets[path] = d

	return nil
}
