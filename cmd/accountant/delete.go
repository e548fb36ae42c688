package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/model"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <#row|id>...",
		Short: "Delete one or more transactions",
		Long: `Delete transactions by row number (#N) or id.

Row numbers refer to "accountant list" run with the same --type and
--category flags, so rows of a filtered list can be deleted directly.

Examples:
  accountant delete '#1' '#3'
  accountant delete --type expense --category Food '#2'
  accountant delete 5f1c9e`,
		Aliases: []string{"rm"},
		Args:    cobra.MinimumNArgs(1),
		RunE:    runDelete,
	}

	addFilterFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	view := sess.store.Filter(filter)

	seen := make(map[string]bool, len(args))
	targets := make([]model.Transaction, 0, len(args))
	for _, ref := range args {
		txn, err := resolveTransaction(sess.store, view, ref)
		if err != nil {
			return err
		}
		if seen[txn.ID] {
			continue
		}
		seen[txn.ID] = true
		targets = append(targets, txn)
	}

	indices := make([]int, len(targets))
	for i := range targets {
		indices[i] = i
	}

	removed, err := sess.store.DeleteAt(ctx, targets, indices)
	if err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, txn := range targets {
		fmt.Fprintf(out, "  %s %s %s\n", txn.Date.Format("2006-01-02"), txn.Description,
			sess.money.Signed(txn.Type, txn.Amount))
	}
	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Deleted %d transaction(s)", removed)))
	return nil
}
