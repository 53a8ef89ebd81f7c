package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/rng"
)

type disorderOptions struct {
	seed         uint64
	realizations int
}

func newDisorderCmd(a *app) *cobra.Command {
	opts := &disorderOptions{}

	cmd := &cobra.Command{
		Use:   "disorder",
		Short: "Draw disorder realizations and report on-site statistics.",
		Long: "`disorder --store FILE` builds the Hamiltonian, draws the " +
			"on-site potential the given number of times, and prints the " +
			"mean and standard deviation of every orbital's sites over all " +
			"realizations.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDisorder(cmd, opts)
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 1,
		"seed of the random stream ($"+EnvSeed+")")
	cmd.Flags().IntVar(&opts.realizations, "realizations", 1,
		"number of disorder realizations")

	return cmd
}

func (a *app) runDisorder(cmd *cobra.Command, opts *disorderOptions) error {
	if opts.realizations < 1 {
		return fmt.Errorf("need at least one realization, got %d",
			opts.realizations)
	}

	s, err := a.openStore()
	if err != nil {
		return err
	}

	l, err := lattice.Load(s)
	if err != nil {
		return err
	}

	random := rng.NewStream(opts.seed)

	h, err := buildHamiltonian[float64](cmd.Context(), a, l, s, random)
	if err != nil {
		return err
	}

	spo := l.SitesPerOrbital()
	samples := make([][]float64, l.Orbitals())

	for r := 0; r < opts.realizations; r++ {
		err = h.DistributeDisorder()
		if err != nil {
			return err
		}

		u := h.Potential()
		for orb := range samples {
			samples[orb] = append(samples[orb], u[orb*spo:(orb+1)*spo]...)
		}
	}

	a.logger.Info("disorder drawn",
		zap.String("hamiltonian", h.Name()),
		zap.Uint64("seed", random.Seed()),
		zap.Int("realizations", opts.realizations))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Disorder of %s: seed %d, %d realizations, %d sites each\n",
		h.Name(), random.Seed(), opts.realizations, l.Sites())

	for orb, v := range samples {
		mean, std := stat.MeanStdDev(v, nil)
		fmt.Fprintf(w, "  orbital %d: mean %.6g std %.6g\n", orb, mean, std)
	}

	return nil
}
