package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/auditlog"
)

func newLogCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the mutation audit trail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cmd.Flags().GetString("dir")
			if err != nil {
				return err
			}
			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			entries, err := auditlog.Read(absDir)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No mutations recorded.")
				return nil
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[len(entries)-limit:]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIMESTAMP\tACTION\tDETAILS\tRECORD")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
					e.Timestamp.Format(time.RFC3339), e.Action, e.Details, e.RecordID)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show only the last N entries")

	return cmd
}
