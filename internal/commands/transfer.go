package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTransferCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <from-id> <to-id> <amount>",
		Short: "Transfer money between two accounts",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fromID, err := parseID(args[0])
			if err != nil {
				return err
			}
			toID, err := parseID(args[1])
			if err != nil {
				return err
			}
			amount, err := parseAmount(args[2])
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			if err := e.svc.Transfer(cmd.Context(), fromID, toID, amount); err != nil {
				return err
			}

			snap := e.svc.Snapshot()
			from, _ := snap.Account(fromID)
			to, _ := snap.Account(toID)
			fmt.Printf("Transferred %s from %s (%s) to %s (%s)\n",
				brl(amount), from.Name, brl(from.Balance), to.Name, brl(to.Balance))
			return nil
		},
	}
}
