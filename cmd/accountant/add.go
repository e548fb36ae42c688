package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/model"
)

func addCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Long: `Record a new transaction.

With no flags you are asked for each field. With flags the transaction is
added directly; --amount and --description are required, the type defaults
to expense, the category to the type's default and the date to today.

Examples:
  accountant add
  accountant add --amount 12,50 --description Lunch
  accountant add --type income --amount 2500 --description "November pay" --category Salary`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAdd(cmd, flags)
		},
	}

	addTransactionFlags(cmd, &flags)
	return cmd
}

func runAdd(cmd *cobra.Command, flags transactionFlags) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	sess.warnIfCorrupt(cmd)

	now := time.Now().In(sess.location)

	var txn model.Transaction
	if flags.given() {
		txn, err = transactionFromFlags(flags, now)
		if err != nil {
			return validationError(err)
		}
	} else {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).
			WithClock(time.Now, sess.location)
		txn, err = prompter.PromptTransaction(ctx, model.Transaction{})
		if err != nil {
			return err
		}
	}

	if err := sess.store.Add(ctx, txn); err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Added %s %s (%s)",
		txn.Description, sess.money.Signed(txn.Type, txn.Amount), txn.Category)))
	fmt.Fprintln(cmd.OutOrStdout(), cli.SubtleStyle.Render("Balance: "+sess.money.Format(sess.store.Balance())))
	return nil
}

// transactionFromFlags builds a new transaction from command line values.
func transactionFromFlags(flags transactionFlags, now time.Time) (model.Transaction, error) {
	if flags.amount == "" {
		return model.Transaction{}, fmt.Errorf("%w: --amount is required", model.ErrInvalidAmount)
	}
	if flags.description == "" {
		return model.Transaction{}, fmt.Errorf("%w: --description is required", model.ErrEmptyDescription)
	}

	txn := model.Transaction{
		ID:   model.NewID(),
		Type: model.TypeExpense,
		Date: now,
	}
	txn, err := flags.apply(txn, now)
	if err != nil {
		return model.Transaction{}, err
	}
	if txn.Category == "" {
		txn.Category = model.DefaultCategory(txn.Type)
	}
	return txn, txn.Validate()
}
