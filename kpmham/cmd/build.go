package cmd

import (
	"context"

	"github.com/sarchlab/kpmham/hamiltonian"
	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/rng"
	"github.com/sarchlab/kpmham/store"
)

func buildHamiltonian[T hamiltonian.Scalar](
	ctx context.Context,
	a *app,
	l *lattice.Lattice,
	s store.Store,
	random rng.Source,
) (*hamiltonian.Hamiltonian[T], error) {
	b := hamiltonian.MakeBuilder[T]().
		WithGeometry(l).
		WithStore(s).
		WithRandomSource(random).
		WithLogger(a.logger)

	if a.parallelism > 0 {
		b = b.WithParallelism(a.parallelism)
	}

	return b.Build(ctx)
}
