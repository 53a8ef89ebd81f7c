// Package cmd provides the command-line interface for kpmham.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tebeka/atexit"
	"go.uber.org/zap"

	"github.com/sarchlab/kpmham/logging"
	"github.com/sarchlab/kpmham/store/sqlitestore"
)

// Environment variables that provide flag defaults. They may also be set in
// a .env file in the working directory.
const (
	EnvStore    = "KPMHAM_STORE"
	EnvSeed     = "KPMHAM_SEED"
	EnvLogLevel = "KPMHAM_LOG_LEVEL"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	logger *zap.Logger

	logLevel    string
	logFormat   string
	storePath   string
	parallelism int
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use: "kpmham",
		Short: "kpmham prepares distance-encoded tight-binding Hamiltonians " +
			"for Chebyshev spectral solvers.",
		Long: `kpmham imports tight-binding models into SQLite stores and ` +
			`builds the Hamiltonians, velocity operators, and disorder ` +
			`realizations that spectral solvers consume.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "info",
		"debug, info, warn, or error ($"+EnvLogLevel+")")
	flags.StringVar(&a.logFormat, "log-format", "console",
		"console or json")
	flags.StringVar(&a.storePath, "store", "",
		"SQLite store holding the model ($"+EnvStore+")")
	flags.IntVar(&a.parallelism, "parallelism", 0,
		"orbitals converted concurrently, 0 for one per CPU")

	root.AddCommand(newImportCmd(a), newInspectCmd(a), newDisorderCmd(a))

	return root
}

// Execute runs the command line and exits the process.
func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func (a *app) setup(flags *pflag.FlagSet) error {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}

	envDefaults := map[string]string{
		"store":     EnvStore,
		"seed":      EnvSeed,
		"log-level": EnvLogLevel,
	}

	for name, env := range envDefaults {
		err = applyEnv(flags, name, env)
		if err != nil {
			return err
		}
	}

	logger, err := logging.New(logging.Config{
		Level:  a.logLevel,
		Format: a.logFormat,
	})
	if err != nil {
		return err
	}

	a.logger = logger
	atexit.Register(func() { _ = logger.Sync() })

	return nil
}

// applyEnv sets flag name from environment variable env unless the flag was
// given on the command line.
func applyEnv(flags *pflag.FlagSet, name, env string) error {
	f := flags.Lookup(name)
	if f == nil || f.Changed {
		return nil
	}

	v, ok := os.LookupEnv(env)
	if !ok {
		return nil
	}

	err := f.Value.Set(v)
	if err != nil {
		return fmt.Errorf("$%s: %w", env, err)
	}

	return nil
}

// openStore opens the store given by --store. The store is closed when the
// process exits.
func (a *app) openStore() (*sqlitestore.Store, error) {
	if a.storePath == "" {
		return nil, fmt.Errorf("no store given, use --store or $%s", EnvStore)
	}

	s, err := sqlitestore.Open(a.storePath)
	if err != nil {
		return nil, err
	}

	a.closeAtExit(s)

	return s, nil
}

func (a *app) closeAtExit(s *sqlitestore.Store) {
	atexit.Register(func() {
		err := s.Close()
		if err != nil {
			a.logger.Warn("cannot close store",
				zap.String("store", s.Filename()), zap.Error(err))
		}
	})
}
