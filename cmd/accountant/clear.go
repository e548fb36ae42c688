package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
)

func clearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all transactions",
		Long: `Delete every transaction. This cannot be undone; export first if you want
to keep a copy.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")
	return cmd
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	force, _ := cmd.Flags().GetBool("force")

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	out := cmd.OutOrStdout()
	count := sess.store.Len()
	if count == 0 {
		fmt.Fprintln(out, "No transactions found. Nothing to clear.")
		return nil
	}

	if !force {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("This will delete all %d transactions.", count)))
		ok, err := cli.NewPrompter(cmd.InOrStdin(), out).Confirm(ctx, "Are you sure you want to continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Canceled.")
			return nil
		}
	}

	if err := sess.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d transactions", count)))
	return nil
}
