package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/ledger"
	"github.com/pcfiz73/fechamento/internal/model"
	"github.com/pcfiz73/fechamento/internal/period"
)

func newExpenseCommand() *cobra.Command {
	expenseCmd := &cobra.Command{
		Use:     "expense",
		Aliases: []string{"despesa"},
		Short:   "Manage expense entries",
	}
	expenseCmd.AddCommand(newExpenseAddCommand())
	expenseCmd.AddCommand(newExpenseListCommand())
	expenseCmd.AddCommand(newExpenseEditCommand())
	expenseCmd.AddCommand(newExpenseDeleteCommand())
	expenseCmd.AddCommand(newExpenseCategoriesCommand())
	return expenseCmd
}

func newExpenseAddCommand() *cobra.Command {
	var (
		category   string
		amountStr  string
		totalStr   string
		dateStr    string
		notes      string
		accountID  int64
		instMarker string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an expense and debit the account",
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

			exp, err := e.svc.AddExpense(cmd.Context(), ledger.AddExpenseParams{
				Category:    category,
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
			fmt.Printf("Recorded expense %d: %s %s (account %s now %s)\n",
				exp.ID, exp.Description, brl(exp.Amount), acc.Name, brl(acc.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "expense category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (per installment)")
	cmd.Flags().StringVar(&totalStr, "total", "", "total amount, divided across installments")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&instMarker, "installment", "", `installment marker, e.g. "2/12"`)

	return cmd
}

func newExpenseListCommand() *cobra.Command {
	var periodStr string
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expense entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := period.Parse(periodStr)
			if err != nil {
				return err
			}
			if category != "" && !model.ValidExpenseCategory(category) {
				return fmt.Errorf("category %q: %w", category, ledger.ErrUnknownCategory)
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.svc.Snapshot()
			expenses := period.Filter(snap.Expenses, func(x model.Expense) time.Time { return x.Date }, p, time.Now())
			if len(expenses) == 0 {
				fmt.Println("No expense entries.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tAMOUNT\tACCOUNT\tINSTALLMENT\tNOTES")
			total := decimal.Zero
			for _, x := range expenses {
				if category != "" && x.Category != category {
					continue
				}
				acc, _ := snap.Account(x.AccountID)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					x.ID, x.Date.Format(dateFormat), x.Description, brl(x.Amount),
					acc.Name, x.Installment, x.Notes)
				total = total.Add(x.Amount)
			}
			fmt.Fprintf(w, "\t\tTOTAL\t%s\n", brl(total))
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&periodStr, "period", "", "filter: hoje, semana or mes")
	cmd.Flags().StringVar(&category, "category", "", "filter by category value")

	return cmd
}

func newExpenseEditCommand() *cobra.Command {
	var (
		category   string
		amountStr  string
		totalStr   string
		dateStr    string
		notes      string
		accountID  int64
		instMarker string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense entry, rebalancing accounts",
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

			old, ok := e.svc.Snapshot().Expense(id)
			if !ok {
				return fmt.Errorf("expense %d: %w", id, ledger.ErrExpenseNotFound)
			}

			// Unset flags keep the stored value.
			p := ledger.UpdateExpenseParams{
				ID:          id,
				Category:    old.Category,
				Amount:      old.Amount,
				Date:        old.Date,
				Notes:       old.Notes,
				AccountID:   old.AccountID,
				Installment: old.Installment,
			}
			if cmd.Flags().Changed("category") {
				p.Category = category
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

			if err := e.svc.UpdateExpense(cmd.Context(), p); err != nil {
				return err
			}

			fmt.Printf("Updated expense %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "expense category")
	cmd.Flags().StringVar(&amountStr, "amount", "", "amount (per installment)")
	cmd.Flags().StringVar(&totalStr, "total", "", "total amount, divided across installments")
	cmd.Flags().StringVar(&dateStr, "date", "", "date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&notes, "notes", "", "free-form notes")
	cmd.Flags().Int64Var(&accountID, "account", 0, "account id")
	cmd.Flags().StringVar(&instMarker, "installment", "", `installment marker, e.g. "2/12"`)

	return cmd
}

func newExpenseDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense entry, returning the amount",
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

			if err := e.svc.DeleteExpense(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted expense %d\n", id)
			return nil
		},
	}
}

func newExpenseCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List recognized expense categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tLABEL")
			for _, c := range model.ExpenseCategories {
				fmt.Fprintf(w, "%s\t%s\n", c.Value, c.Label)
			}
			return w.Flush()
		},
	}
}
