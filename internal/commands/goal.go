package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pcfiz73/fechamento/internal/ledger"
)

func newGoalCommand() *cobra.Command {
	goalCmd := &cobra.Command{
		Use:     "goal",
		Aliases: []string{"objetivo"},
		Short:   "Manage savings goals",
	}
	goalCmd.AddCommand(newGoalAddCommand())
	goalCmd.AddCommand(newGoalListCommand())
	goalCmd.AddCommand(newGoalEditCommand())
	goalCmd.AddCommand(newGoalDeleteCommand())
	return goalCmd
}

func goalFlags(cmd *cobra.Command, target, current, deadline *string) {
	cmd.Flags().StringVar(target, "target", "", "target amount")
	cmd.Flags().StringVar(current, "current", "0", "amount saved so far")
	cmd.Flags().StringVar(deadline, "deadline", "", "deadline (YYYY-MM-DD)")
}

func newGoalAddCommand() *cobra.Command {
	var targetStr, currentStr, deadlineStr string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a savings goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseAmount(targetStr)
			if err != nil {
				return err
			}
			current, err := parseAmount(currentStr)
			if err != nil {
				return err
			}
			deadline, err := parseDate(deadlineStr)
			if err != nil {
				return err
			}

			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			g, err := e.svc.AddGoal(cmd.Context(), ledger.GoalParams{
				Title:    args[0],
				Target:   target,
				Current:  current,
				Deadline: deadline,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Added goal %d: %s (%s of %s)\n", g.ID, g.Title, brl(g.Current), brl(g.Target))
			return nil
		},
	}

	goalFlags(cmd, &targetStr, &currentStr, &deadlineStr)
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func newGoalListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.close()

			goals := e.svc.Snapshot().Goals
			if len(goals) == 0 {
				fmt.Println("No goals.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tSAVED\tTARGET\tPROGRESS\tDEADLINE")
			for _, g := range goals {
				pct := g.Current.Div(g.Target).Mul(hundred).Round(1)
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s%%\t%s\n",
					g.ID, g.Title, brl(g.Current), brl(g.Target), pct, g.Deadline.Format(dateFormat))
			}
			return w.Flush()
		},
	}
}

func newGoalEditCommand() *cobra.Command {
	var title, targetStr, currentStr, deadlineStr string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a savings goal",
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

			old, ok := e.svc.Snapshot().Goal(id)
			if !ok {
				return fmt.Errorf("goal %d: %w", id, ledger.ErrGoalNotFound)
			}

			p := ledger.GoalParams{
				Title:    old.Title,
				Target:   old.Target,
				Current:  old.Current,
				Deadline: old.Deadline,
			}
			if cmd.Flags().Changed("title") {
				p.Title = title
			}
			if cmd.Flags().Changed("target") {
				if p.Target, err = parseAmount(targetStr); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("current") {
				if p.Current, err = parseAmount(currentStr); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("deadline") {
				if p.Deadline, err = parseDate(deadlineStr); err != nil {
					return err
				}
			}

			if err := e.svc.UpdateGoal(cmd.Context(), id, p); err != nil {
				return err
			}

			fmt.Printf("Updated goal %d\n", id)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "goal title")
	goalFlags(cmd, &targetStr, &currentStr, &deadlineStr)

	return cmd
}

func newGoalDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a savings goal",
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

			if err := e.svc.DeleteGoal(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Printf("Deleted goal %d\n", id)
			return nil
		},
	}
}
