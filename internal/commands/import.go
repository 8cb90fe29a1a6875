package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/importer"
	"github.com/pcfiz73/fechamento/internal/ledger"
)

func newImportCommand() *cobra.Command {
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Import platform earnings statements",
	}
	importCmd.AddCommand(newImportListCommand())
	importCmd.AddCommand(newImportRunCommand())
	return importCmd
}

func newImportListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List statement files waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			files, err := importer.Scan(e.dir)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println("No files to import.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE")
			for _, f := range files {
				fmt.Fprintf(w, "%s\t%d\n", f.Name, f.Size)
			}
			return w.Flush()
		},
	}
}

func newImportRunCommand() *cobra.Command {
	var format string
	var accountID int64

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Import a statement file as income entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if accountID == 0 {
				accountID = e.cfg.Import.DefaultID
			}
			if accountID == 0 {
				return fmt.Errorf("no account: pass --account or set import.default_account_id")
			}

			reg := importer.DefaultRegistry()
			p := reg.Get(format)
			if p == nil {
				return fmt.Errorf("unknown format %q (have: %s)",
					format, strings.Join(reg.Formats(), ", "))
			}

			fileName := args[0]
			files, err := importer.Scan(e.dir)
			if err != nil {
				return err
			}
			var path string
			for _, f := range files {
				if f.Name == fileName {
					path = f.Path
					break
				}
			}
			if path == "" {
				return fmt.Errorf("file %s not found in import/", fileName)
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", fileName, err)
			}
			earnings, err := p.Parse(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("parsing %s: %w", fileName, err)
			}

			imported, skipped := 0, 0
			for _, earning := range earnings {
				if !earning.Amount.IsPositive() {
					skipped++
					continue
				}
				_, err := e.svc.AddIncome(cmd.Context(), ledger.AddIncomeParams{
					Platform:  earning.Platform,
					Amount:    earning.Amount,
					Date:      earning.Date,
					Notes:     earning.Notes,
					AccountID: accountID,
				})
				if err != nil {
					return fmt.Errorf("importing row dated %s: %w",
						earning.Date.Format(dateFormat), err)
				}
				imported++
			}

			if err := importer.MarkProcessed(e.dir, fileName); err != nil {
				return err
			}

			fmt.Printf("Imported %d income entries from %s (%d rows skipped)\n",
				imported, fileName, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "generic", "statement format")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id to credit")

	return cmd
}
