package hamiltonian

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sarchlab/kpmham/logging"
	"github.com/sarchlab/kpmham/rng"
)

// DisorderModel is the statistical model of an on-site disorder source.
type DisorderModel int

// Disorder models. Fallback stands for any unrecognized tag and behaves as
// Deterministic.
const (
	Fallback DisorderModel = iota
	Gaussian
	Uniform
	Deterministic
)

// ModelFromTag maps the stored integer tag to a model: 1 is Gaussian, 2 is
// Uniform, 3 is Deterministic, and everything else is Fallback.
func ModelFromTag(tag int) DisorderModel {
	switch tag {
	case 1:
		return Gaussian
	case 2:
		return Uniform
	case 3:
		return Deterministic
	default:
		return Fallback
	}
}

// Tag returns the stored integer tag of the model. Fallback has no tag of
// its own and returns 0.
func (m DisorderModel) Tag() int {
	switch m {
	case Gaussian, Uniform, Deterministic:
		return int(m)
	default:
		return 0
	}
}

func (m DisorderModel) String() string {
	switch m {
	case Gaussian:
		return "gaussian"
	case Uniform:
		return "uniform"
	case Deterministic:
		return "deterministic"
	default:
		return "fallback"
	}
}

// IsRandom reports whether the model draws from a random source.
func (m DisorderModel) IsRandom() bool {
	return m == Gaussian || m == Uniform
}

// DisorderEntry is one on-site disorder source acting on every site of an
// orbital.
type DisorderEntry struct {
	Orbital int
	Model   DisorderModel
	Tag     int
	Mean    float64
	Spread  float64
}

// DisorderGenerator writes on-site potentials from disorder entries.
type DisorderGenerator[T Scalar] struct {
	entries         []DisorderEntry
	orbitals        int
	sitesPerOrbital int
	random          rng.Source
	logger          *zap.Logger
}

// Validate checks that every entry targets an existing orbital and that a
// random source is present when an entry needs one.
func (g DisorderGenerator[T]) Validate() error {
	for k, e := range g.entries {
		if e.Orbital < 0 || e.Orbital >= g.orbitals {
			return fmt.Errorf("%w: disorder entry %d targets orbital %d, "+
				"lattice has %d", ErrIndex, k, e.Orbital, g.orbitals)
		}

		if e.Model.IsRandom() && g.random == nil {
			return fmt.Errorf("%w: disorder entry %d is %s but no random "+
				"source is set", ErrConfig, k, e.Model)
		}
	}

	return nil
}

// Distribute overwrites the sites of each targeted orbital in u, entry by
// entry in configuration order. Later entries win on shared orbitals.
// Distribute does not synchronize access to u or to the random source.
func (g DisorderGenerator[T]) Distribute(u []T) error {
	err := g.Validate()
	if err != nil {
		return err
	}

	if len(u) < g.orbitals*g.sitesPerOrbital {
		return fmt.Errorf("%w: potential has %d sites, want %d",
			ErrIndex, len(u), g.orbitals*g.sitesPerOrbital)
	}

	for _, e := range g.entries {
		sites := u[g.sitesPerOrbital*e.Orbital : g.sitesPerOrbital*(e.Orbital+1)]

		switch e.Model {
		case Gaussian:
			for j := range sites {
				sites[j] = fromReal[T](g.random.Gaussian(e.Mean, e.Spread))
			}
		case Uniform:
			for j := range sites {
				sites[j] = fromReal[T](g.random.Uniform(e.Mean, e.Spread))
			}
		default:
			v := fromReal[T](e.Mean)
			for j := range sites {
				sites[j] = v
			}
		}
	}

	g.logger.Debug("disorder distributed", zap.Int("entries", len(g.entries)))

	return nil
}

// NewDisorderGenerator creates a generator for a lattice with the given
// number of orbitals and sites per orbital. A nil logger discards output.
func NewDisorderGenerator[T Scalar](
	entries []DisorderEntry,
	orbitals, sitesPerOrbital int,
	random rng.Source,
	logger *zap.Logger,
) DisorderGenerator[T] {
	return DisorderGenerator[T]{
		entries:         append([]DisorderEntry(nil), entries...),
		orbitals:        orbitals,
		sitesPerOrbital: sitesPerOrbital,
		random:          random,
		logger:          logging.OrNop(logger),
	}
}
