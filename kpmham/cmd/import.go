package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarchlab/kpmham/model"
	"github.com/sarchlab/kpmham/store/sqlitestore"
)

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import MODEL.yaml OUT.sqlite3",
		Short: "Write a YAML model into a new SQLite store.",
		Long: "`import MODEL.yaml OUT.sqlite3` encodes the lattice, hoppings, " +
			"and disorder sources of a model file into a new store. The " +
			"store file must not exist.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runImport(cmd, args[0], args[1])
		},
	}
}

func (a *app) runImport(cmd *cobra.Command, modelPath, storePath string) error {
	m, err := model.ParseFile(modelPath)
	if err != nil {
		return err
	}

	s, err := sqlitestore.Create(storePath)
	if err != nil {
		return err
	}

	a.closeAtExit(s)

	l, err := model.Import(m, s)
	if err != nil {
		return fmt.Errorf("cannot import %s: %w", modelPath, err)
	}

	a.logger.Info("model imported",
		zap.String("model", modelPath),
		zap.String("store", storePath),
		zap.Int("sites", l.Sites()),
		zap.Int("hoppings", len(m.Hoppings)),
		zap.Int("disorder_entries", len(m.Disorder)))

	fmt.Fprintf(cmd.OutOrStdout(),
		"Imported %d hoppings and %d disorder sources on %d sites into %s\n",
		len(m.Hoppings), len(m.Disorder), l.Sites(), storePath)

	return nil
}
