package commands

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/ledger"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:     "account",
		Aliases: []string{"banco"},
		Short:   "Manage bank accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand())
	accountCmd.AddCommand(newAccountListCommand())
	accountCmd.AddCommand(newAccountEditCommand())
	accountCmd.AddCommand(newAccountDeleteCommand())
	accountCmd.AddCommand(newAccountDepositCommand())
	return accountCmd
}

func newAccountAddCommand() *cobra.Command {
	var number string
	var balance string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a bank account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			initial, err := parseAmount(balance)
			if err != nil {
				return err
			}

			acc, err := e.svc.AddAccount(cmd.Context(), ledger.AddAccountParams{
				Name:    args[0],
				Number:  number,
				Balance: initial,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added account %d: %s (%s)\n", acc.ID, acc.Name, brl(acc.Balance))
			return nil
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "account number")
	cmd.Flags().StringVar(&balance, "balance", "0", "initial balance")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bank accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			snap := e.svc.Snapshot()
			if len(snap.Accounts) == 0 {
				fmt.Println("No accounts.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tNUMBER\tBALANCE")
			total := decimal.Zero
			for _, a := range snap.Accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", a.ID, a.Name, a.Number, brl(a.Balance))
				total = total.Add(a.Balance)
			}
			fmt.Fprintf(w, "\tTOTAL\t\t%s\n", brl(total))
			return w.Flush()
		},
	}
}

func newAccountEditCommand() *cobra.Command {
	var name string
	var number string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a bank account",
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

			acc, ok := e.svc.Snapshot().Account(id)
			if !ok {
				return fmt.Errorf("account %d: %w", id, ledger.ErrAccountNotFound)
			}
			if name == "" {
				name = acc.Name
			}
			if !cmd.Flags().Changed("number") {
				number = acc.Number
			}

			if err := e.svc.UpdateAccount(cmd.Context(), ledger.UpdateAccountParams{
				ID: id, Name: name, Number: number,
			}); err != nil {
				return err
			}

			fmt.Printf("Updated account %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new account name")
	cmd.Flags().StringVar(&number, "number", "", "new account number")

	return cmd
}

func newAccountDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a bank account",
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

			if err := e.svc.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted account %d\n", id)
			return nil
		},
	}
}

func newAccountDepositCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deposit <id> <amount>",
		Short: "Deposit directly into an account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[1])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.Deposit(cmd.Context(), id, amount); err != nil {
				return err
			}

			acc, _ := e.svc.Snapshot().Account(id)
			fmt.Printf("Deposited %s into %s (balance %s)\n", brl(amount), acc.Name, brl(acc.Balance))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}
