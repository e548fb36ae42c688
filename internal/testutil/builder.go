package testutil

import (
	"time"

	"github.com/Veraticus/accountant/internal/model"
)

// DefaultDate is the date builders use when none is given.
var DefaultDate = time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)

// TxnBuilder builds transactions with a fluent API.
//
// Example:
//
//	txn := testutil.Txn().Expense(200).Description("Lunch").Category("Food").Build()
type TxnBuilder struct {
	txn model.Transaction
}

// Txn starts a builder for a valid 10.00 "Food" expense dated DefaultDate.
func Txn() *TxnBuilder {
	return &TxnBuilder{txn: model.Transaction{
		ID:          model.NewID(),
		Amount:      10,
		Description: "Test transaction",
		Category:    "Food",
		Type:        model.TypeExpense,
		Date:        DefaultDate,
	}}
}

// ID sets a fixed identifier.
func (b *TxnBuilder) ID(id string) *TxnBuilder {
	b.txn.ID = id
	return b
}

// Income makes the transaction income of the given amount.
func (b *TxnBuilder) Income(amount float64) *TxnBuilder {
	b.txn.Type = model.TypeIncome
	b.txn.Amount = amount
	return b
}

// Expense makes the transaction an expense of the given amount.
func (b *TxnBuilder) Expense(amount float64) *TxnBuilder {
	b.txn.Type = model.TypeExpense
	b.txn.Amount = amount
	return b
}

// Description sets the description.
func (b *TxnBuilder) Description(desc string) *TxnBuilder {
	b.txn.Description = desc
	return b
}

// Category sets the category.
func (b *TxnBuilder) Category(cat string) *TxnBuilder {
	b.txn.Category = cat
	return b
}

// On sets the date.
func (b *TxnBuilder) On(date time.Time) *TxnBuilder {
	b.txn.Date = date
	return b
}

// Build returns the transaction.
func (b *TxnBuilder) Build() model.Transaction {
	return b.txn
}
