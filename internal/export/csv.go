// Package export renders transactions for use outside the application.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/accountant/internal/model"
)

const (
	// DefaultFilename is the suggested name for an exported file.
	DefaultFilename = "transactions.csv"
	// ContentType is the MIME type of the exported text.
	ContentType = "text/csv; charset=utf-8"
	// DateLayout formats the Date column.
	DateLayout = "2006-01-02"
)

// Header lists the exported columns in order.
var Header = []string{"Date", "Name", "Category", "Type", "Amount"}

// Row returns the exported fields of one transaction, unescaped.
func Row(txn model.Transaction) []string {
	return []string{
		txn.Date.Format(DateLayout),
		txn.Description,
		txn.Category,
		txn.Type.String(),
		FormatAmount(txn.Amount),
	}
}

// InLocation returns copies of txns with their dates converted to loc, so the
// Date column matches the day they fall on in loc. A nil loc returns txns
// unchanged.
func InLocation(txns []model.Transaction, loc *time.Location) []model.Transaction {
	if loc == nil {
		return txns
	}
	out := make([]model.Transaction, len(txns))
	for i, txn := range txns {
		txn.Date = txn.Date.In(loc)
		out[i] = txn
	}
	return out
}

// FormatAmount renders an amount with exactly two fraction digits.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// CSV renders txns, in the given order, as comma separated text. Lines are
// separated by "\n" with no trailing newline. Dates are written in each
// timestamp's own location; use InLocation to export the calendar days a
// ledger counts them on.
func CSV(txns []model.Transaction) string {
	var b strings.Builder
	_ = WriteCSV(&b, txns)
	return b.String()
}

// WriteCSV streams the same text CSV returns.
func WriteCSV(w io.Writer, txns []model.Transaction) error {
	if _, err := io.WriteString(w, strings.Join(Header, ",")); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, txn := range txns {
		fields := Row(txn)
		// Free-text columns are the only ones that can need quoting.
		fields[1] = Escape(fields[1])
		fields[2] = Escape(fields[2])

		if _, err := io.WriteString(w, "\n"+strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("failed to write csv row for %s: %w", txn.ID, err)
		}
	}
	return nil
}

// Escape quotes s when it contains a comma, a double quote or a line break,
// doubling any embedded quotes. Other values are returned unchanged.
func Escape(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
