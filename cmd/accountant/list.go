package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List transactions, newest first",
		Long: `List transactions newest first.

The row numbers can be passed to "edit" and "delete" (with the same filter
flags).`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	addFilterFlags(cmd)
	cmd.Flags().IntP("limit", "n", 0, "show at most this many transactions (0 for all)")
	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	limit, _ := cmd.Flags().GetInt("limit")

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.warnIfCorrupt(cmd)

	txns := sess.store.Filter(filter)

	out := cmd.OutOrStdout()
	if len(txns) == 0 {
		fmt.Fprintln(out, cli.InfoStyle.Render("No transactions found. Use 'accountant add' to record one."))
		return nil
	}

	total := len(txns)
	if limit > 0 && limit < total {
		txns = txns[:limit]
	}

	if err := cli.TransactionTable(out, txns, sess.money); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	if len(txns) < total {
		fmt.Fprintln(out, cli.SubtleStyle.Render(fmt.Sprintf("… %d more", total-len(txns))))
	}
	return nil
}
