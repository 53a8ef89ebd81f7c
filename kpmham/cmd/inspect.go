package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/shirou/gopsutil/process"
	"github.com/spf13/cobra"

	"github.com/sarchlab/kpmham/hamiltonian"
	"github.com/sarchlab/kpmham/lattice"
	"github.com/sarchlab/kpmham/store"
)

type inspectOptions struct {
	complex   bool
	hoppings  bool
	resources bool
}

func newInspectCmd(a *app) *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Build the Hamiltonian of a store and summarize it.",
		Long: "`inspect --store FILE` loads the lattice and the hopping " +
			"tables, resolves every distance code, and prints the lattice, " +
			"the hopping counts, and the disorder sources.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInspect(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.complex, "complex", false,
		"build with complex hoppings")
	cmd.Flags().BoolVar(&opts.hoppings, "hoppings", false,
		"list every hopping with its distance index and velocity")
	cmd.Flags().BoolVar(&opts.resources, "resources", false,
		"report the CPU and memory used by this process")

	return cmd
}

func (a *app) runInspect(cmd *cobra.Command, opts *inspectOptions) error {
	s, err := a.openStore()
	if err != nil {
		return err
	}

	l, err := lattice.Load(s)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	printLattice(w, l)

	if opts.complex {
		err = inspect[complex128](cmd.Context(), a, w, l, s, opts)
	} else {
		err = inspect[float64](cmd.Context(), a, w, l, s, opts)
	}

	if err != nil {
		return err
	}

	if opts.resources {
		return printResources(w)
	}

	return nil
}

func inspect[T hamiltonian.Scalar](
	ctx context.Context,
	a *app,
	w io.Writer,
	l *lattice.Lattice,
	s store.Store,
	opts *inspectOptions,
) error {
	h, err := buildHamiltonian[T](ctx, a, l, s, nil)
	if err != nil {
		return err
	}

	printHamiltonian(w, h, opts.hoppings)

	return nil
}

func printLattice(w io.Writer, l *lattice.Lattice) {
	fmt.Fprintf(w, "Lattice: %d dimensions, extents %v, %d orbitals, %d sites\n",
		l.Dim(), l.Extents(), l.Orbitals(), l.Sites())

	for k := 0; k < l.Dim(); k++ {
		boundary := "open"
		if l.Periodic(k) {
			boundary = "periodic"
		}

		fmt.Fprintf(w, "  a%d = %v (%s)\n", k, column(l, k), boundary)
	}
}

func column(l *lattice.Lattice, k int) []float64 {
	v := make([]float64, l.Dim())
	for i := range v {
		v[i] = l.Basis().At(i, k)
	}

	return v
}

func printHamiltonian[T hamiltonian.Scalar](
	w io.Writer,
	h *hamiltonian.Hamiltonian[T],
	hoppings bool,
) {
	fmt.Fprintf(w, "Hamiltonian %s: max %d hoppings per orbital\n",
		h.Name(), h.MaxHoppings())

	for orb := 0; orb < h.Orbitals(); orb++ {
		pos := h.Geometry().OrbitalPosition(orb)

		r := make([]float64, pos.Len())
		for k := range r {
			r[k] = pos.AtVec(k)
		}

		fmt.Fprintf(w, "  orbital %d at %v: %d hoppings\n",
			orb, r, h.NHoppings(orb))

		if !hoppings {
			continue
		}

		for i := 0; i < h.NHoppings(orb); i++ {
			v := make([]T, h.Dim())
			for dim := range v {
				v[dim] = h.Velocity(dim, i, orb)
			}

			fmt.Fprintf(w, "    d=%d t=%v v=%v\n",
				h.Distance(i, orb), h.Hopping(i, orb), v)
		}
	}

	disorder := h.Disorder()
	fmt.Fprintf(w, "Disorder: %d sources\n", len(disorder))

	for _, e := range disorder {
		fmt.Fprintf(w, "  orbital %d: %s (tag %d) mean %g spread %g\n",
			e.Orbital, e.Model, e.Tag, e.Mean, e.Spread)
	}
}

func printResources(w io.Writer) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return err
	}

	mem, err := p.MemoryInfo()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Resources: %.1f%% CPU, %d bytes resident\n",
		cpuPercent, mem.RSS)

	return nil
}
