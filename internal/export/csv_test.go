package export

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/accountant/internal/model"
)

func txn(desc, cat string, typ model.TransactionType, amount float64, date time.Time) model.Transaction {
	return model.Transaction{
		ID:          model.NewID(),
		Description: desc,
		Category:    cat,
		Type:        typ,
		Amount:      amount,
		Date:        date,
	}
}

func TestCSV(t *testing.T) {
	nov3 := time.Date(2025, 11, 3, 23, 59, 0, 0, time.UTC)
	txns := []model.Transaction{
		txn("Rent, Nov", "Bills", model.TypeExpense, 1200, nov3),
		txn(`He said "hi"`, "Gift", model.TypeIncome, 50.5, nov3.AddDate(0, 0, -1)),
		txn("Coffee", "Food", model.TypeExpense, 3, nov3.AddDate(0, -1, 0)),
	}

	want := strings.Join([]string{
		"Date,Name,Category,Type,Amount",
		`2025-11-03,"Rent, Nov",Bills,Expense,1200.00`,
		`2025-11-02,"He said ""hi""",Gift,Income,50.50`,
		"2025-10-03,Coffee,Food,Expense,3.00",
	}, "\n")

	assert.Equal(t, want, CSV(txns))
}

func TestCSV_Empty(t *testing.T) {
	assert.Equal(t, "Date,Name,Category,Type,Amount", CSV(nil))
}

func TestCSV_DateUsesOwnLocation(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	out := CSV([]model.Transaction{
		txn("Late", "Food", model.TypeExpense, 1, time.Date(2025, 11, 4, 1, 0, 0, 0, istanbul)),
	})
	assert.Contains(t, out, "\n2025-11-04,")
}

func TestInLocation(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	txns := []model.Transaction{
		txn("Late", "Food", model.TypeExpense, 1, time.Date(2025, 11, 4, 1, 0, 0, 0, istanbul)),
	}

	out := CSV(InLocation(txns, time.UTC))
	assert.Contains(t, out, "\n2025-11-03,Late,")
	assert.Equal(t, istanbul, txns[0].Date.Location(), "input left untouched")

	assert.Equal(t, txns, InLocation(txns, nil))
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "plain", want: "plain"},
		{in: "", want: ""},
		{in: " leading space", want: " leading space"},
		{in: "Rent, Nov", want: `"Rent, Nov"`},
		{in: `He said "hi"`, want: `"He said ""hi"""`},
		{in: "two\nlines", want: "\"two\nlines\""},
		{in: "cr\r", want: "\"cr\r\""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Escape(tt.in))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "12.35", FormatAmount(12.345000001))
	assert.Equal(t, "1234567.10", FormatAmount(1234567.1))
}

func TestWriteCSV(t *testing.T) {
	txns := []model.Transaction{
		txn("Salary", "Salary", model.TypeIncome, 1000, time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txns))
	assert.Equal(t, CSV(txns), buf.String())
	assert.False(t, strings.HasSuffix(buf.String(), "\n"))
}

type failingWriter struct{ after int }

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.after <= 0 {
		return 0, errors.New("write failed")
	}
	w.after--
	return len(p), nil
}

func TestWriteCSV_PropagatesErrors(t *testing.T) {
	txns := []model.Transaction{
		txn("a", "b", model.TypeExpense, 1, time.Now()),
	}
	assert.Error(t, WriteCSV(&failingWriter{after: 0}, txns))
	assert.Error(t, WriteCSV(&failingWriter{after: 1}, txns))
	assert.NoError(t, WriteCSV(&failingWriter{after: 2}, txns))
}
