package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

const barWidth = 20

// TransactionTable writes txns as an aligned table. Rows are numbered from 1
// so the numbers can be passed back to commands that delete by position.
func TransactionTable(w io.Writer, txns []model.Transaction, money *Money) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "#\tDate\tDescription\tCategory\tAmount\tID")
	fmt.Fprintln(tw, "-\t----\t-----------\t--------\t------\t--")
	for i, txn := range txns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Category,
			money.Signed(txn.Type, txn.Amount),
			shortID(txn.ID))
	}
	return tw.Flush()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// SummaryView renders the balance card shown by the summary command.
func SummaryView(sum ledger.Summary, money *Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", BoldStyle.Render("Balance:"), money.Balance(sum.Balance))
	fmt.Fprintf(&b, "%s Income:  %s\n", IncomeIcon, money.Colored(model.TypeIncome, sum.TotalIncome))
	fmt.Fprintf(&b, "%s Expense: %s\n", ExpenseIcon, money.Colored(model.TypeExpense, sum.TotalExpense))
	fmt.Fprintf(&b, "%s", SubtleStyle.Render(fmt.Sprintf("%d transactions", sum.Count)))
	return RenderBox(FormatTitle("Summary"), b.String())
}

// TodayView renders today's income, expense and balance.
func TodayView(sum ledger.Summary, money *Money) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Income:  %s\n", money.Colored(model.TypeIncome, sum.TodayIncome))
	fmt.Fprintf(&b, "Expense: %s\n", money.Colored(model.TypeExpense, sum.TodayExpense))
	fmt.Fprintf(&b, "Balance: %s", money.Balance(sum.TodayBalance))
	return RenderBox(CalendarIcon+" Today", b.String())
}

// BreakdownView renders category totals with a proportional bar each.
func BreakdownView(title string, totals []ledger.CategoryTotal, money *Money) string {
	if len(totals) == 0 {
		return RenderBox(ChartIcon+" "+title, SubtleStyle.Render("No data"))
	}

	width := 0
	for _, ct := range totals {
		if n := lipgloss.Width(ct.Category); n > width {
			width = n
		}
	}

	lines := make([]string, 0, len(totals))
	for _, ct := range CategoryPalette(totals) {
		filled := int(ct.Share/100*barWidth + 0.5)
		bar := lipgloss.NewStyle().Foreground(ct.Color).Render(strings.Repeat("█", filled)) +
			SubtleStyle.Render(strings.Repeat("░", barWidth-filled))
		lines = append(lines, fmt.Sprintf("%-*s %s %5.1f%%  %s",
			width, ct.Category, bar, ct.Share, money.Format(ct.Amount)))
	}
	return RenderBox(ChartIcon+" "+title, strings.Join(lines, "\n"))
}
