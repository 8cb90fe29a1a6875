package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/buildinfo"
	"github.com/pcfiz73/fechamento/internal/config"
	"github.com/pcfiz73/fechamento/internal/ledger"
	"github.com/pcfiz73/fechamento/internal/store"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var dataDir string

	rootCmd := &cobra.Command{
		Use:     "fechamento",
		Short:   "Personal finance tracking for delivery work",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "dir", ".", "data directory")

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newIncomeCommand())
	rootCmd.AddCommand(newExpenseCommand())
	rootCmd.AddCommand(newTransferCommand())
	rootCmd.AddCommand(newGoalCommand())
	rootCmd.AddCommand(newTargetsCommand())
	rootCmd.AddCommand(newImportCommand())
	rootCmd.AddCommand(newLogCommand())

	return rootCmd
}

// env holds everything a subcommand needs against one data directory.
type env struct {
	dir string
	cfg *config.Config
	st  *store.SQLite
	svc *ledger.Service
}

func (e *env) close() {
	if err := e.st.Close(); err != nil {
		slog.Warn("closing store", "error", err)
	}
}

// openEnv resolves the --dir flag, loads the config, sets up logging, opens
// the store and returns a reloaded ledger service. Callers must close().
func openEnv(cmd *cobra.Command) (*env, error) {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return nil, err
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("loading config (run \"fechamento init\" first): %w", err)
	}

	if err := setupLogging(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}

	dbPath := cfg.Store.Path
	if !filepath.IsAbs(dbPath) {
		dbPath = filepath.Join(absDir, dbPath)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	svc := ledger.NewService(st, absDir)
	if err := svc.Reload(cmd.Context()); err != nil {
		_ = st.Close()
		return nil, err
	}

	return &env{dir: absDir, cfg: cfg, st: st, svc: svc}, nil
}

func setupLogging(level, format string) error {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "", "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	var handler slog.Handler
	switch format {
	case "", "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}
