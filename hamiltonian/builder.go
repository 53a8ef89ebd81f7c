package hamiltonian

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/xid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/logging"
	"github.com/sarchlab/kpmham/rng"
	"github.com/sarchlab/kpmham/store"
)

// Builder can build Hamiltonians.
type Builder[T Scalar] struct {
	geometry    lattice.Geometry
	store       store.Store
	random      rng.Source
	logger      *zap.Logger
	parallelism int
	name        string
}

// MakeBuilder returns a Builder that converts orbitals on up to GOMAXPROCS
// goroutines.
func MakeBuilder[T Scalar]() Builder[T] {
	return Builder[T]{
		parallelism: runtime.GOMAXPROCS(0),
	}
}

// WithGeometry sets the lattice. The lattice must outlive the Hamiltonian.
func (b Builder[T]) WithGeometry(g lattice.Geometry) Builder[T] {
	b.geometry = g
	return b
}

// WithStore sets the store to read the hopping tables from.
func (b Builder[T]) WithStore(s store.Store) Builder[T] {
	b.store = s
	return b
}

// WithRandomSource sets the source used to draw disorder. The source must
// outlive the Hamiltonian.
func (b Builder[T]) WithRandomSource(r rng.Source) Builder[T] {
	b.random = r
	return b
}

// WithLogger sets the logger.
func (b Builder[T]) WithLogger(l *zap.Logger) Builder[T] {
	b.logger = l
	return b
}

// WithParallelism sets the number of orbitals converted concurrently.
func (b Builder[T]) WithParallelism(n int) Builder[T] {
	b.parallelism = n
	return b
}

// WithName sets the name used in logs. By default a unique name is
// generated.
func (b Builder[T]) WithName(name string) Builder[T] {
	b.name = name
	return b
}

// Build loads the hopping tables, converts every local distance code into a
// global distance index, and derives one velocity table per dimension. The
// on-site potential is allocated and zeroed; call DistributeDisorder to fill
// it. Build returns no Hamiltonian on any error.
func (b Builder[T]) Build(ctx context.Context) (*Hamiltonian[T], error) {
	if b.geometry == nil {
		return nil, fmt.Errorf("%w: no geometry", ErrConfig)
	}

	if b.store == nil {
		return nil, fmt.Errorf("%w: no store", ErrConfig)
	}

	if b.parallelism < 1 {
		return nil, fmt.Errorf("%w: parallelism %d", ErrConfig, b.parallelism)
	}

	name := b.name
	if name == "" {
		name = "hamiltonian_" + xid.New().String()
	}

	logger := logging.OrNop(b.logger).With(zap.String("hamiltonian", name))

	codec, err := NewCoordinateCodec(b.geometry)
	if err != nil {
		return nil, err
	}

	tables, err := LoadTables[T](b.store, b.geometry.Orbitals(), logger)
	if err != nil {
		return nil, err
	}

	h := &Hamiltonian[T]{
		name:      name,
		geometry:  b.geometry,
		random:    b.random,
		logger:    logger,
		nHoppings: tables.NHoppings,
		distances: tables.Distances,
		disorder:  tables.Disorder,
	}

	h.tensor = make([]*Table[T], b.geometry.Dim()+1)
	h.tensor[0] = tables.Hoppings

	for k := 1; k < len(h.tensor); k++ {
		h.tensor[k] = NewTable[T](tables.MaxHoppings(), b.geometry.Orbitals())
	}

	err = b.convert(ctx, h, codec)
	if err != nil {
		return nil, err
	}

	h.potential = make([]T, b.geometry.Sites())

	logger.Info("hamiltonian assembled",
		zap.Int("dim", b.geometry.Dim()),
		zap.Int("orbitals", b.geometry.Orbitals()),
		zap.Int("sites", b.geometry.Sites()),
		zap.Int("max_hoppings", tables.MaxHoppings()),
		zap.Int("disorder_entries", len(tables.Disorder)))

	return h, nil
}

// convert rewrites the distance table and fills the velocity tables. Each
// orbital owns its column in every table, so orbitals are converted
// independently.
func (b Builder[T]) convert(
	ctx context.Context,
	h *Hamiltonian[T],
	codec *CoordinateCodec,
) error {
	resolver := NewDisplacementResolver(b.geometry)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.parallelism)

	for io := range h.nHoppings {
		g.Go(func() error {
			return b.convertOrbital(ctx, h, codec, resolver, io)
		})
	}

	return g.Wait()
}

func (b Builder[T]) convertOrbital(
	ctx context.Context,
	h *Hamiltonian[T],
	codec *CoordinateCodec,
	resolver DisplacementResolver,
	io int,
) error {
	for i := 0; i < h.nHoppings[io]; i++ {
		err := ctx.Err()
		if err != nil {
			return err
		}

		code := h.distances.At(i, io)

		hop, err := codec.Decode(code, io)
		if err != nil {
			return &IndexError{Orbital: io, Slot: i, Code: code, Err: err}
		}

		h.distances.Set(i, io, hop.Distance)

		dr, err := resolver.Displacement(io, hop.Target, hop.Offset)
		if err != nil {
			return &IndexError{Orbital: io, Slot: i, Code: code, Err: err}
		}

		t := h.tensor[0].At(i, io)
		for dim := 0; dim < dr.Len(); dim++ {
			h.tensor[1+dim].Set(i, io, scale(t, dr.AtVec(dim)))
		}
	}

	return nil
}
