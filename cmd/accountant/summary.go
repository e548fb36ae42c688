package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/ledger"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show balance, category breakdowns and recent transactions",
		Args:  cobra.NoArgs,
		RunE:  runSummary,
	}
	cmd.Flags().IntP("recent", "r", ledger.DefaultRecentLimit, "number of recent transactions to show (0 hides them)")
	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.warnIfCorrupt(cmd)

	sum := sess.store.Summary()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, cli.SummaryView(sum, sess.money))
	fmt.Fprintln(out, cli.TodayView(sum, sess.money))
	fmt.Fprintln(out, cli.BreakdownView("Expenses by category", sum.ExpenseByCategory, sess.money))
	fmt.Fprintln(out, cli.BreakdownView("Income by category", sum.IncomeByCategory, sess.money))

	limit, _ := cmd.Flags().GetInt("recent")
	if recent := sess.store.Recent(limit); len(recent) > 0 {
		fmt.Fprintln(out, cli.FormatTitle(fmt.Sprintf("Recent transactions (last %d)", len(recent))))
		if err := cli.TransactionTable(out, recent, sess.money); err != nil {
			return fmt.Errorf("failed to write table: %w", err)
		}
	}
	return nil
}
