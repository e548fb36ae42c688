package cli

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/accountant/internal/model"
)

// Display defaults.
const (
	DefaultLocale         = "tr"
	DefaultCurrencySymbol = "₺"
)

// Money formats amounts for display with locale-specific grouping and decimal
// separators. Exports never use it; they always write the plain form.
type Money struct {
	printer *message.Printer
	symbol  string
}

// NewMoney creates a formatter for a BCP 47 locale such as "tr" or "en-US".
func NewMoney(locale, symbol string) (*Money, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}
	return &Money{
		printer: message.NewPrinter(tag),
		symbol:  symbol,
	}, nil
}

// DefaultMoney formats in Turkish lira.
func DefaultMoney() *Money {
	m, _ := NewMoney(DefaultLocale, DefaultCurrencySymbol)
	return m
}

// Format renders v with two fraction digits, e.g. "₺1.234,50" or "-₺12,00".
func (m *Money) Format(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	// avoid "-₺0,00" for tiny negative values that round to zero
	if math.Round(v*100) == 0 {
		sign = ""
	}
	return sign + m.symbol + m.printer.Sprintf("%.2f", v)
}

// Signed renders an amount with "+" for income and "-" for expense.
func (m *Money) Signed(t model.TransactionType, amount float64) string {
	if t == model.TypeExpense {
		return "-" + m.Format(math.Abs(amount))
	}
	return "+" + m.Format(math.Abs(amount))
}

// Colored renders Signed in the income or expense color.
func (m *Money) Colored(t model.TransactionType, amount float64) string {
	if t == model.TypeExpense {
		return ExpenseStyle.Render(m.Signed(t, amount))
	}
	return IncomeStyle.Render(m.Signed(t, amount))
}

// Balance renders v colored by its sign.
func (m *Money) Balance(v float64) string {
	if v < 0 {
		return ExpenseStyle.Render(m.Format(v))
	}
	return IncomeStyle.Render(m.Format(v))
}
