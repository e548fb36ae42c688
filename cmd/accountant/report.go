package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/ledger"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show today's income, expenses and balance",
		Long: `Show the daily report: income, expenses and balance of transactions dated
today in the configured time zone, followed by today's transactions.`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.warnIfCorrupt(cmd)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.TodayView(sess.store.Summary(), sess.money))

	today := ledger.SortByDateDesc(ledger.OnDay(sess.store.Transactions(), time.Now(), sess.location))
	if len(today) == 0 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("No transactions today."))
		return nil
	}
	return cli.TransactionTable(out, today, sess.money)
}
