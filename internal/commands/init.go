package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/config"
	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/store"
)

func newInitCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new fechamento data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "profile name (required)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runInit(cmd *cobra.Command, dir, name string) error {
	// Create directory structure.
	dirs := []string{
		"logs",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write fechamento.yaml.
	cfg := config.Default(name)
	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the database schema and seed the income targets.
	st, err := store.Open(filepath.Join(dir, cfg.Store.Path))
	if err != nil {
		return fmt.Errorf("creating database: %w", err)
	}
	defer st.Close()

	if err := st.SaveTargets(cmd.Context(), model.DefaultTargets()); err != nil {
		return fmt.Errorf("seeding targets: %w", err)
	}

	// Write .gitignore.
	gitignore := "*.db\n*.db-wal\n*.db-shm\nlogs/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Printf("Initialized fechamento data directory at %s\n", dir)
	return nil
}
