package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
)

func editCmd() *cobra.Command {
	var flags transactionFlags

	cmd := &cobra.Command{
		Use:   "edit <#row|id>",
		Short: "Change a transaction",
		Long: `Change a transaction, keeping its id.

The transaction is chosen by its row number in "accountant list" (#N) or by
id (a unique prefix is enough; a bare number is a row only when no id starts
with it). Fields given as flags are replaced; with no
flags you are asked for each field with the current value as default.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], flags)
		},
	}

	addTransactionFlags(cmd, &flags)
	return cmd
}

func runEdit(cmd *cobra.Command, ref string, flags transactionFlags) error {
	ctx := cmd.Context()

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()

	current, err := resolveTransaction(sess.store, sess.store.Sorted(), ref)
	if err != nil {
		return err
	}

	updated := current
	if flags.given() {
		updated, err = flags.apply(current, time.Now().In(sess.location))
		if err == nil {
			err = updated.Validate()
		}
		if err != nil {
			return validationError(err)
		}
	} else {
		prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout()).
			WithClock(time.Now, sess.location)
		updated, err = prompter.PromptTransaction(ctx, current)
		if err != nil {
			return err
		}
	}

	if err := sess.store.Update(ctx, updated); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Updated %s %s (%s)",
		updated.Description, sess.money.Signed(updated.Type, updated.Amount), updated.Category)))
	return nil
}
