package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/accountant/internal/common"
	"github.com/Veraticus/accountant/internal/storage"
)

// setupCLI points the configuration at a fresh data directory.
func setupCLI(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	home := t.TempDir()
	dataDir := filepath.Join(home, "data")
	t.Setenv("HOME", home)
	t.Setenv("ACCOUNTANT_STORAGE_PATH", dataDir)
	t.Setenv("ACCOUNTANT_TIMEZONE", "UTC")
	return dataDir
}

func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--log-level", "error"))

	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := runCLI(t, stdin, args...)
	require.NoError(t, err, out)
	return out
}

func seed(t *testing.T) {
	t.Helper()
	mustRun(t, "", "add", "--type", "income", "--amount", "1000", "--description", "Salary", "--date", "2025-10-31")
	mustRun(t, "", "add", "--amount", "1200", "--description", "Rent, Nov", "--category", "Bills", "--date", "2025-11-01")
	mustRun(t, "", "add", "--amount", "12,50", "--description", "Lunch", "--date", "2025-11-02")
}

func TestVersionCmd(t *testing.T) {
	setupCLI(t)
	out := mustRun(t, "", "version")
	assert.Equal(t, "accountant dev\n", out)
}

func TestAddAndList(t *testing.T) {
	dataDir := setupCLI(t)

	out := mustRun(t, "", "add", "--amount", "12,50", "--description", "Lunch")
	assert.Contains(t, out, "Added Lunch -₺12,50 (Food)")
	assert.Contains(t, out, "Balance: -₺12,50")

	_, err := os.Stat(filepath.Join(dataDir, storage.DefaultKey+".json"))
	require.NoError(t, err, "the ledger is written on every change")

	out = mustRun(t, "", "list")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Food")
}

func TestAddInteractive(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "income\n2500\nNovember pay\n2\n2025-11-01\n", "add")
	assert.Contains(t, out, "Added November pay +₺2.500,00 (Freelance)")

	out = mustRun(t, "", "list", "--type", "income")
	assert.Contains(t, out, "2025-11-01")
}

func TestAddRejectsInvalidInput(t *testing.T) {
	setupCLI(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing description", args: []string{"add", "--amount", "5"}},
		{name: "negative amount", args: []string{"add", "--amount", "-5", "--description", "x"}},
		{name: "bad type", args: []string{"add", "--type", "transfer", "--amount", "5", "--description", "x"}},
		{name: "bad date", args: []string{"add", "--amount", "5", "--description", "x", "--date", "11/02/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, "", tt.args...)
			var userErr *common.UserError
			require.ErrorAs(t, err, &userErr)
			assert.Contains(t, userErr.UserMessage, "Invalid transaction")
		})
	}

	out := mustRun(t, "", "list")
	assert.Contains(t, out, "No transactions found")
}

func TestListFiltersAndLimit(t *testing.T) {
	setupCLI(t)
	seed(t)

	out := mustRun(t, "", "list", "--type", "expense")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Rent, Nov")
	assert.NotContains(t, out, "Salary")

	out = mustRun(t, "", "list", "--category", "Bills")
	assert.Contains(t, out, "Rent, Nov")
	assert.NotContains(t, out, "Lunch")

	out = mustRun(t, "", "list", "-n", "1")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "… 2 more")

	_, err := runCLI(t, "", "list", "--type", "transfers")
	assert.Error(t, err)
}

func TestEdit(t *testing.T) {
	setupCLI(t)
	seed(t)

	out := mustRun(t, "", "edit", "#1", "--amount", "15", "--category", "Dining")
	assert.Contains(t, out, "Updated Lunch -₺15,00 (Dining)")

	out = mustRun(t, "", "list", "--category", "Dining")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "-₺15,00")

	_, err := runCLI(t, "", "edit", "#9", "--amount", "1")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDelete(t *testing.T) {
	setupCLI(t)
	seed(t)

	// Row 2 of the expense list is the rent.
	out := mustRun(t, "", "delete", "--type", "expense", "#2")
	assert.Contains(t, out, "Rent, Nov")
	assert.Contains(t, out, "Deleted 1 transaction(s)")

	out = mustRun(t, "", "list")
	assert.NotContains(t, out, "Rent, Nov")
	assert.Contains(t, out, "Lunch")
	assert.Contains(t, out, "Salary")

	out = mustRun(t, "", "delete", "#1", "#1", "#2")
	assert.Contains(t, out, "Deleted 2 transaction(s)")

	out = mustRun(t, "", "list")
	assert.Contains(t, out, "No transactions found")
}

func TestClear(t *testing.T) {
	setupCLI(t)
	seed(t)

	out := mustRun(t, "n\n", "clear")
	assert.Contains(t, out, "This will delete all 3 transactions.")
	assert.Contains(t, out, "Canceled.")
	assert.Contains(t, mustRun(t, "", "list"), "Lunch")

	out = mustRun(t, "y\n", "clear")
	assert.Contains(t, out, "Deleted 3 transactions")
	assert.Contains(t, mustRun(t, "", "list"), "No transactions found")

	seed(t)
	out = mustRun(t, "", "clear", "--force")
	assert.Contains(t, out, "Deleted 3 transactions")

	out = mustRun(t, "", "clear")
	assert.Contains(t, out, "Nothing to clear")
}

func TestExportCSV(t *testing.T) {
	setupCLI(t)
	seed(t)

	path := filepath.Join(t.TempDir(), "out.csv")
	out := mustRun(t, "", "export", "--output", path)
	assert.Contains(t, out, "Exported 3 transactions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Name,Category,Type,Amount\n"+
		"2025-11-02,Lunch,Food,Expense,12.50\n"+
		`2025-11-01,"Rent, Nov",Bills,Expense,1200.00`+"\n"+
		"2025-10-31,Salary,Salary,Income,1000.00", string(data))

	out = mustRun(t, "", "export", "-o", "-", "--type", "income")
	assert.Equal(t, "Date,Name,Category,Type,Amount\n2025-10-31,Salary,Salary,Income,1000.00", out)
}

func TestExportErrors(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "", "export", "-o", "-")
	assert.ErrorIs(t, err, common.ErrNoTransactions)

	seed(t)
	_, err = runCLI(t, "", "export", "--format", "pdf")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	for _, name := range []string{"GOOGLE_SHEETS_CLIENT_ID", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "GOOGLE_SHEETS_TOKEN_FILE"} {
		t.Setenv(name, "")
	}
	_, err = runCLI(t, "", "export", "--format", "sheets")
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestSummaryAndReport(t *testing.T) {
	setupCLI(t)
	seed(t)

	out := mustRun(t, "", "summary")
	assert.Contains(t, out, "Balance:")
	assert.Contains(t, out, "-₺212,50")
	assert.Contains(t, out, "Expenses by category")
	assert.Contains(t, out, "Bills")
	assert.Contains(t, out, "Recent transactions (last 3)")

	out = mustRun(t, "", "summary", "--recent", "1")
	assert.Contains(t, out, "Recent transactions (last 1)")
	assert.NotContains(t, mustRun(t, "", "summary", "-r", "0"), "Recent transactions")

	out = mustRun(t, "", "report")
	assert.Contains(t, out, "Today")
	assert.Contains(t, out, "No transactions today.")
}

func TestCategories(t *testing.T) {
	setupCLI(t)

	out := mustRun(t, "", "categories", "--suggested")
	assert.Contains(t, out, "Expense:")
	assert.Contains(t, out, "Education")
	assert.Contains(t, out, "Freelance")

	seed(t)
	out = mustRun(t, "", "categories")
	assert.Contains(t, out, "In use: Bills, Food, Salary")
}

func TestCorruptLedgerIsReported(t *testing.T) {
	dataDir := setupCLI(t)
	require.NoError(t, os.MkdirAll(dataDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, storage.DefaultKey+".json"), []byte("{not json"), 0o600))

	out := mustRun(t, "", "list")
	assert.Contains(t, out, "could not be read")
	assert.Contains(t, out, "No transactions found")

	backup, err := os.ReadFile(filepath.Join(dataDir, storage.DefaultKey+".corrupt.json"))
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(backup))
}

func TestBackendFlag(t *testing.T) {
	setupCLI(t)

	_, err := runCLI(t, "", "list", "--backend", "postgres")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	out := mustRun(t, "", "add", "--backend", "sqlite", "--amount", "3", "--description", "Tea")
	assert.Contains(t, out, "Added Tea")
	assert.Contains(t, mustRun(t, "", "list", "--backend", "sqlite"), "Tea")
	assert.Contains(t, mustRun(t, "", "list"), "No transactions found")
}
