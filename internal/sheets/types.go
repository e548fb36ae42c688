package sheets

import (
	"context"
	"slices"
	"time"

	"github.com/Veraticus/accountant/internal/export"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

// Report is everything written to the spreadsheet in one export.
type Report struct {
	GeneratedAt  time.Time
	Transactions []model.Transaction
	Summary      ledger.Summary
}

// NewReport builds a Report over txns. The summary covers exactly the
// exported transactions, which are written newest first with dates in loc.
func NewReport(txns []model.Transaction, now time.Time, loc *time.Location) Report {
	return Report{
		GeneratedAt:  now,
		Transactions: ledger.SortByDateDesc(export.InLocation(slices.Clone(txns), loc)),
		Summary:      ledger.Summarize(txns, now, loc),
	}
}

// ReportWriter writes a report somewhere.
type ReportWriter interface {
	Write(ctx context.Context, report Report) error
}
