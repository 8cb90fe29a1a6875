package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/period"
)

func newTargetsCommand() *cobra.Command {
	targetsCmd := &cobra.Command{
		Use:     "targets",
		Aliases: []string{"metas"},
		Short:   "Manage income targets",
	}
	targetsCmd.AddCommand(newTargetsShowCommand())
	targetsCmd.AddCommand(newTargetsSetCommand())
	return targetsCmd
}

func newTargetsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show income targets and current progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.svc.Snapshot()
			now := time.Now()
			earned := func(p period.Period) decimal.Decimal {
				total := decimal.Zero
				for _, i := range snap.Incomes {
					if p.Contains(i.Date, now) {
						total = total.Add(i.Amount)
					}
				}
				return total
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PERIOD\tTARGET\tEARNED")
			fmt.Fprintf(w, "daily\t%s\t%s\n", brl(snap.Targets.Daily), brl(earned(period.Today)))
			fmt.Fprintf(w, "weekly\t%s\t%s\n", brl(snap.Targets.Weekly), brl(earned(period.Week)))
			fmt.Fprintf(w, "monthly\t%s\t%s\n", brl(snap.Targets.Monthly), brl(earned(period.Month)))
			return w.Flush()
		},
	}
}

func newTargetsSetCommand() *cobra.Command {
	var dailyStr, weeklyStr, monthlyStr string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set income targets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			t := e.svc.Snapshot().Targets
			if t.ID == 0 {
				t = model.DefaultTargets()
			}
			if cmd.Flags().Changed("daily") {
				if t.Daily, err = parseAmount(dailyStr); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("weekly") {
				if t.Weekly, err = parseAmount(weeklyStr); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("monthly") {
				if t.Monthly, err = parseAmount(monthlyStr); err != nil {
					return err
				}
			}

			if err := e.svc.SaveTargets(cmd.Context(), t); err != nil {
				return err
			}

			fmt.Printf("Targets: daily %s, weekly %s, monthly %s\n",
				brl(t.Daily), brl(t.Weekly), brl(t.Monthly))
			return nil
		},
	}

	cmd.Flags().StringVar(&dailyStr, "daily", "", "daily target")
	cmd.Flags().StringVar(&weeklyStr, "weekly", "", "weekly target")
	cmd.Flags().StringVar(&monthlyStr, "monthly", "", "monthly target")

	return cmd
}
