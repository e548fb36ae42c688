package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show suggested categories and the ones in use",
		Long: `Show the categories offered when adding a transaction, and the totals of
every category used so far. Any name can be used as a category.`,
		Args: cobra.NoArgs,
		RunE: runCategories,
	}

	cmd.Flags().Bool("suggested", false, "only show the suggested categories")
	return cmd
}

func runCategories(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	suggestedOnly, _ := cmd.Flags().GetBool("suggested")

	for _, t := range []model.TransactionType{model.TypeExpense, model.TypeIncome} {
		names := make([]string, 0)
		for _, c := range model.SuggestedCategories(t) {
			names = append(names, c.Icon+" "+c.Name)
		}
		fmt.Fprintf(out, "%s %s\n", cli.BoldStyle.Render(t.String()+":"), strings.Join(names, ", "))
	}

	if suggestedOnly {
		return nil
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	fmt.Fprintln(out)
	fmt.Fprintln(out, cli.BreakdownView("Expenses by category", sess.store.ExpenseByCategory(), sess.money))
	fmt.Fprintln(out, cli.BreakdownView("Income by category", sess.store.IncomeByCategory(), sess.money))

	if used := sess.store.Categories(ledger.FilterAll); len(used) > 1 {
		fmt.Fprintln(out, cli.SubtleStyle.Render("In use: "+strings.Join(used[1:], ", ")))
	}
	return nil
}
