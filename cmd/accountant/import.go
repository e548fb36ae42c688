package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [files...]",
		Short: "Import transactions from OFX/QFX files",
		Long: `Import transactions from OFX or QFX (Quicken) statements exported from your bank.

Debits become expenses and credits income. Each statement line gets an id
derived from the account and the bank's transaction id, so importing the same
file twice adds nothing the second time.

Examples:
  # Import single file
  accountant import ~/Downloads/checking_nov.qfx

  # Import all QFX files in a directory
  accountant import ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImport,
	}

	cmd.Flags().BoolP("dry-run", "n", false, "preview import without saving")
	return cmd
}

// importResult counts what happened to the parsed transactions.
type importResult struct {
	added      int
	duplicates int
}

func runImport(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandFiles(args)
	if err != nil {
		return err
	}

	parser := ofx.NewParser(slog.Default())
	var parsed []model.Transaction
	var accounts []string
	for _, path := range files {
		txns, accts, err := parseOFXFile(cmd.Context(), parser, path)
		if err != nil {
			common.LogError(err, "Failed to parse OFX file", common.Fields{"file": path})
			continue
		}
		common.LogInfo("Processed file", common.Fields{
			"file":               filepath.Base(path),
			"transactions_found": len(txns),
			"accounts":           accts,
		})
		parsed = append(parsed, txns...)
		accounts = mergeAccounts(accounts, accts)
	}

	out := cmd.OutOrStdout()
	if len(parsed) == 0 {
		return common.NewUserError("No transactions found in the given files.", common.ErrNoTransactions)
	}

	fmt.Fprintln(out, cli.SubtleStyle.Render("Accounts: "+strings.Join(accounts, ", ")))

	if dryRun {
		fmt.Fprintln(out, cli.FormatInfo(fmt.Sprintf("Dry run: %d transactions parsed, nothing saved", len(parsed))))
		return cli.TransactionTable(out, ledger.SortByDateDesc(parsed), cli.DefaultMoney())
	}

	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer sess.Close()

	handler := cli.NewInterruptHandler(cmd.ErrOrStderr())
	ctx := handler.Watch(cmd.Context(), "Transactions imported so far have been saved.")

	bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(parsed), "Importing")
	result, err := importTransactions(ctx, sess.store, parsed, func() { _ = bar.Add(1) })
	if err != nil {
		if handler.WasInterrupted() {
			fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Imported %d of %d transactions", result.added, len(parsed))))
			return nil
		}
		return err
	}

	fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Imported %d transactions (%d already present)", result.added, result.duplicates)))
	fmt.Fprintln(out, cli.SubtleStyle.Render("Balance: "+sess.money.Format(sess.store.Balance())))
	return nil
}

// importTransactions adds each transaction, skipping ids already present.
func importTransactions(ctx context.Context, store *ledger.Store, txns []model.Transaction, step func()) (importResult, error) {
	var result importResult
	for _, txn := range txns {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := store.Add(ctx, txn)
		switch {
		case err == nil:
			result.added++
		case errors.Is(err, common.ErrDuplicateEntry):
			result.duplicates++
		default:
			return result, fmt.Errorf("failed to import %s: %w", txn.ID, err)
		}
		if step != nil {
			step()
		}
	}
	return result, nil
}

// parseOFXFile reads one statement and returns its transactions and the
// account ids it covers.
func parseOFXFile(ctx context.Context, parser *ofx.Parser, path string) ([]model.Transaction, []string, error) {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		return nil, nil, err
	}

	txns, err := parser.ParseFile(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	accounts, err := parser.GetAccounts(ctx, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	return txns, accounts, nil
}

// mergeAccounts adds the ids in more that are not in accounts yet.
func mergeAccounts(accounts, more []string) []string {
	for _, acct := range more {
		if !slices.Contains(accounts, acct) {
			accounts = append(accounts, acct)
		}
	}
	return accounts
}

// expandFiles resolves glob patterns, keeping plain paths that exist.
func expandFiles(patterns []string) ([]string, error) {
	var files []string
	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) > 0 {
			files = append(files, matches...)
			continue
		}
		if _, err := os.Stat(pattern); err == nil {
			files = append(files, pattern)
		} else {
			slog.Warn("No files found matching pattern", "pattern", pattern)
		}
	}

	if len(files) == 0 {
		return nil, common.NewUserError("No files found to import.", common.ErrNoTransactions)
	}
	return files, nil
}
