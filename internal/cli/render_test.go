package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

func TestCategoryPalette_Cycles(t *testing.T) {
	totals := make([]ledger.CategoryTotal, len(Palette)+2)
	for i := range totals {
		totals[i] = ledger.CategoryTotal{Category: string(rune('A' + i))}
	}

	colored := CategoryPalette(totals)
	require.Len(t, colored, len(totals))
	assert.Equal(t, Palette[0], colored[0].Color)
	assert.Equal(t, Palette[0], colored[len(Palette)].Color)
	assert.Equal(t, Palette[1], colored[len(Palette)+1].Color)
	assert.Equal(t, "A", colored[0].Category)
}

func TestTransactionTable(t *testing.T) {
	day := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
	txns := []model.Transaction{
		{ID: "0123456789abcdef", Amount: 12.5, Description: "Lunch", Category: "Food", Type: model.TypeExpense, Date: day},
		{ID: "salary", Amount: 1000, Description: "Salary", Category: "Salary", Type: model.TypeIncome, Date: day},
	}

	var buf bytes.Buffer
	require.NoError(t, TransactionTable(&buf, txns, DefaultMoney()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[2], "1 "))
	assert.Contains(t, lines[2], "2025-11-03")
	assert.Contains(t, lines[2], "-₺12,50")
	assert.Contains(t, lines[2], "01234567")
	assert.NotContains(t, lines[2], "89abcdef")
	assert.Contains(t, lines[3], "+₺1.000,00")
}

func TestBreakdownView(t *testing.T) {
	out := BreakdownView("Expenses", []ledger.CategoryTotal{
		{Category: "Food", Amount: 75, Share: 75},
		{Category: "Transport", Amount: 25, Share: 25},
	}, DefaultMoney())

	assert.Contains(t, out, "Expenses")
	assert.Contains(t, out, "Food")
	assert.Contains(t, out, "75.0%")
	assert.Contains(t, out, "₺25,00")
}

func TestBreakdownView_Empty(t *testing.T) {
	assert.Contains(t, BreakdownView("Income", nil, DefaultMoney()), "No data")
}

func TestSummaryViews(t *testing.T) {
	sum := ledger.Summary{
		TotalIncome:  1000,
		TotalExpense: 250,
		Balance:      750,
		TodayExpense: 200,
		TodayBalance: -200,
		Count:        3,
	}

	summary := SummaryView(sum, DefaultMoney())
	assert.Contains(t, summary, "₺750,00")
	assert.Contains(t, summary, "3 transactions")

	today := TodayView(sum, DefaultMoney())
	assert.Contains(t, today, "-₺200,00")
}
