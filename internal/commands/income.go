package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/installment"
	"github.com/pcfiz73/fechamento/internal/ledger"
	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/period"
)

func newIncomeCommand() *cobra.Command {
	incomeCmd := &cobra.Command{
		Use:     "income",
		Aliases: []string{"receita"},
		Short:   "Manage income entries",
	}
	incomeCmd.AddCommand(newIncomeAddCommand())
	incomeCmd.AddCommand(newIncomeListCommand())
	incomeCmd.AddCommand(newIncomeEditCommand())
	incomeCmd.AddCommand(newIncomeDeleteCommand())
	return incomeCmd
}

// entryAmount resolves the per-installment amount from the --amount/--total
// pair: --total divides by the installment count before anything is stored.
func entryAmount(amountStr, totalStr, marker string) (decimal.Decimal, error) {
	if amountStr != "" && totalStr != "" {
		return decimal.Decimal{}, fmt.Errorf("pass either --amount or --total, not both")
	}
	if totalStr != "" {
		if marker == "" {
			return decimal.Decimal{}, fmt.Errorf("--total requires --installment")
		}
		m, err := installment.Parse(marker)
		if err != nil {
			return decimal.Decimal{}, err
		}
		total, err := parseAmount(totalStr)
		if err != nil {
			return decimal.Decimal{}, err
		}
		return total.Div(decimal.NewFromInt(int64(m.Total))).Round(2), nil
	}
	if amountStr == "" {
		return decimal.Decimal{}, fmt.Errorf("--amount is required")
	}
	return parseAmount(amountStr)
}

func newIncomeAddCommand() *cobra.Command {
	var (
		platform   string
		amountStr  string
		totalStr   string
		dateStr    string
		notes      string
		accountID  int64
		instMarker string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record income and credit the account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := entryAmount(amountStr, totalStr, instMarker)
			if err != nil {
				return err
			}
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			inc, err := e.svc.AddIncome(cmd.Context(), ledger.AddIncomeParams{
				Platform:    platform,
				Amount:      amount,
				Date:        date,
				Notes:       notes,
				AccountID:   accountID,
				Installment: instMarker,
			})
			if err != nil {
				return err
			}

			acc, _ := e.svc.Snapshot().Account(accountID)
			fmt.Printf("Recorded income %d: %s %s (account %s now %s)\n",
				inc.ID, inc.Description, brl(inc.Amount), acc.Name, brl(acc.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "delivery platform (required)")
	_ = cmd.MarkFlagRequired("platform")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (per installment)")
	cmd.Flags().StringVar(&totalStr, "total", "", "total amount, divided across installments")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&instMarker, "installment", "", `installment marker, e.g. "2/12"`)

	return cmd
}

func newIncomeListCommand() *cobra.Command {
	var periodStr string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List income entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.Parse(periodStr)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.svc.Snapshot()
			incomes := period.Filter(snap.Incomes, func(i model.Income) time.Time { return i.Date }, p, time.Now())
			if len(incomes) == 0 {
				fmt.Println("No income entries.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tPLATFORM\tAMOUNT\tACCOUNT\tINSTALLMENT\tNOTES")
			total := decimal.Zero
			for _, i := range incomes {
				acc, _ := snap.Account(i.AccountID)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					i.ID, i.Date.Format(dateFormat), i.Description, brl(i.Amount),
					acc.Name, i.Installment, i.Notes)
				total = total.Add(i.Amount)
			}
			fmt.Fprintf(w, "\t\tTOTAL\t%s\n", brl(total))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&periodStr, "period", "", "filter: hoje, semana or mes")

	return cmd
}

func newIncomeEditCommand() *cobra.Command {
	var (
		platform   string
		amountStr  string
		totalStr   string
		dateStr    string
		notes      string
		accountID  int64
		instMarker string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an income entry, rebalancing accounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			old, ok := e.svc.Snapshot().Income(id)
			if !ok {
				return fmt.Errorf("income %d: %w", id, ledger.ErrIncomeNotFound)
			}

			// Unset flags keep the stored value.
			p := ledger.UpdateIncomeParams{
				ID:          id,
				Platform:    old.Description,
				Amount:      old.Amount,
				Date:        old.Date,
				Notes:       old.Notes,
				AccountID:   old.AccountID,
				Installment: old.Installment,
			}
			if cmd.Flags().Changed("platform") {
				p.Platform = platform
			}
			if cmd.Flags().Changed("notes") {
				p.Notes = notes
			}
			if cmd.Flags().Changed("account") {
				p.AccountID = accountID
			}
			if cmd.Flags().Changed("installment") {
				p.Installment = instMarker
			}
			if cmd.Flags().Changed("date") {
				if p.Date, err = parseDate(dateStr); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("amount") || cmd.Flags().Changed("total") {
				if p.Amount, err = entryAmount(amountStr, totalStr, p.Installment); err != nil {
					return err
				}
			}

			if err := e.svc.UpdateIncome(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Printf("Updated income %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "delivery platform")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (per installment)")
	cmd.Flags().StringVar(&totalStr, "total", "", "total amount, divided across installments")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id")
	cmd.Flags().StringVar(&instMarker, "installment", "", `installment marker, e.g. "2/12"`)

	return cmd
}

func newIncomeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an income entry, reversing the credit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.DeleteIncome(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted income %d\n", id)
			return nil
		},
	}
}
