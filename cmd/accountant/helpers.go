package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/config"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
	"github.com/Veraticus/accountant/internal/storage"
)

var envKeyReplacer = strings.NewReplacer(".", "_")

// session is an open ledger plus everything needed to display it.
type session struct {
	settings *config.Settings
	blobs    storage.BlobStore
	store    *ledger.Store
	money    *cli.Money
	location *time.Location
}

// openSession loads settings and opens the configured ledger.
func openSession(ctx context.Context) (*session, error) {
	settings := config.Load(nil)
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}
	money, err := cli.NewMoney(settings.Display.Locale, settings.Display.CurrencySymbol)
	if err != nil {
		return nil, err
	}

	blobs, err := storage.Open(ctx, settings.StorageOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	logger := slog.Default()
	repo := storage.NewTransactionRepository(blobs, settings.Storage.Key).WithLogger(logger)
	store, err := ledger.Open(ctx, repo,
		ledger.WithLocation(loc),
		ledger.WithLogger(logger),
	)
	if err != nil {
		_ = blobs.Close()
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	return &session{
		settings: settings,
		blobs:    blobs,
		store:    store,
		money:    money,
		location: loc,
	}, nil
}

func (s *session) Close() {
	if err := s.blobs.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// warnIfCorrupt tells the user the saved data could not be read.
func (s *session) warnIfCorrupt(cmd *cobra.Command) {
	if s.store.LoadState() == ledger.LoadCorrupt {
		fmt.Fprintln(cmd.ErrOrStderr(), cli.FormatWarning(
			"Saved transactions could not be read and were backed up under "+s.settings.Storage.Key+".corrupt"))
	}
}

// addFilterFlags registers --type and --category.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "all", "only show transactions of this type (all, income, expense)")
	cmd.Flags().StringP("category", "c", ledger.AllCategories, "only show transactions in this category (default all)")
}

// filterFromFlags reads the flags registered by addFilterFlags.
func filterFromFlags(cmd *cobra.Command) (ledger.Filter, error) {
	typeFlag, _ := cmd.Flags().GetString("type")
	category, _ := cmd.Flags().GetString("category")

	t, err := ledger.ParseTypeFilter(typeFlag)
	if err != nil {
		return ledger.Filter{}, common.NewUserError(err.Error(), err)
	}
	return ledger.Filter{Type: t, Category: category}, nil
}

// resolveTransaction finds a transaction by full id, by a unique id prefix or
// by row number in view (1-based, as printed by list). "#N" is always a row
// number; a bare number is one only when no id starts with it.
func resolveTransaction(store *ledger.Store, view []model.Transaction, ref string) (model.Transaction, error) {
	if row, ok := strings.CutPrefix(ref, "#"); ok {
		return rowAt(view, row)
	}

	if txn, ok := store.Get(ref); ok {
		return txn, nil
	}

	var matches []model.Transaction
	for _, txn := range store.Transactions() {
		if strings.HasPrefix(txn.ID, ref) {
			matches = append(matches, txn)
		}
	}
	switch len(matches) {
	case 0:
		if _, err := strconv.Atoi(ref); err == nil {
			return rowAt(view, ref)
		}
		return model.Transaction{}, common.NewUserError(fmt.Sprintf("no transaction %q", ref), common.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Transaction{}, common.NewUserError(
			fmt.Sprintf("%q matches %d transactions; use more of the id", ref, len(matches)),
			errors.New("ambiguous id prefix"))
	}
}

func rowAt(view []model.Transaction, row string) (model.Transaction, error) {
	n, err := strconv.Atoi(row)
	if err != nil || n < 1 || n > len(view) {
		return model.Transaction{}, common.NewUserError(
			fmt.Sprintf("no transaction #%s (list shows %d)", row, len(view)), common.ErrNotFound)
	}
	return view[n-1], nil
}

// transactionFlags holds the values given on the command line for add/edit.
type transactionFlags struct {
	kind        string
	amount      string
	description string
	category    string
	date        string
}

func addTransactionFlags(cmd *cobra.Command, f *transactionFlags) {
	cmd.Flags().StringVar(&f.kind, "type", "", "income or expense")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 12.50 or 12,50")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "what the transaction was")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "category (defaults to Salary for income, Food for expense)")
	cmd.Flags().StringVar(&f.date, "date", "", "date as YYYY-MM-DD, today or yesterday (default today)")
}

// given reports whether at least one field was set.
func (f transactionFlags) given() bool {
	return f.kind != "" || f.amount != "" || f.description != "" || f.category != "" || f.date != ""
}

// apply overwrites the fields of txn that were given on the command line.
func (f transactionFlags) apply(txn model.Transaction, now time.Time) (model.Transaction, error) {
	if f.kind != "" {
		t, err := model.ParseType(f.kind)
		if err != nil {
			return txn, err
		}
		txn.Type = t
	}
	if f.amount != "" {
		amount, err := model.ParseAmount(f.amount)
		if err != nil {
			return txn, err
		}
		txn.Amount = amount
	}
	if f.description != "" {
		txn.Description = strings.TrimSpace(f.description)
	}
	if f.category != "" {
		txn.Category = strings.TrimSpace(f.category)
	}
	if f.date != "" {
		day, err := cli.ParseDay(f.date, now)
		if err != nil {
			return txn, err
		}
		txn.Date = day
	}
	return txn, nil
}

// validationError turns an entry error into a message for the user.
func validationError(err error) error {
	return common.NewUserError("Invalid transaction: "+err.Error(), err)
}
