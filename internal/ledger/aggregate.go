package ledger

import (
	"sort"
	"time"

	"github.com/Veraticus/accountant/internal/model"
)

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string
	Amount   float64
	// Share is the percentage (0-100) of the type total this category makes up.
	Share float64
}

// Summary is a snapshot of every aggregate the store computes.
type Summary struct {
	ExpenseByCategory []CategoryTotal
	IncomeByCategory  []CategoryTotal
	TotalIncome       float64
	TotalExpense      float64
	Balance           float64
	TodayIncome       float64
	TodayExpense      float64
	TodayBalance      float64
	Count             int
}

// SumByType sums the amounts of all transactions of type t.
func SumByType(txns []model.Transaction, t model.TransactionType) float64 {
	var total float64
	for _, txn := range txns {
		if txn.Type == t {
			total += txn.Amount
		}
	}
	return total
}

// OnDay returns the transactions dated on the same calendar day as day,
// with both interpreted in loc.
func OnDay(txns []model.Transaction, day time.Time, loc *time.Location) []model.Transaction {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := day.In(loc).Date()

	var out []model.Transaction
	for _, txn := range txns {
		ty, tm, td := txn.Date.In(loc).Date()
		if ty == y && tm == m && td == d {
			out = append(out, txn)
		}
	}
	return out
}

// ByCategory groups transactions of type t by category and sums them, largest
// first. Equal sums keep the order in which their categories first appeared.
func ByCategory(txns []model.Transaction, t model.TransactionType) []CategoryTotal {
	index := make(map[string]int)
	var totals []CategoryTotal
	var grand float64

	for _, txn := range txns {
		if txn.Type != t {
			continue
		}
		grand += txn.Amount
		i, ok := index[txn.Category]
		if !ok {
			i = len(totals)
			index[txn.Category] = i
			totals = append(totals, CategoryTotal{Category: txn.Category})
		}
		totals[i].Amount += txn.Amount
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Amount > totals[j].Amount
	})

	if grand > 0 {
		for i := range totals {
			totals[i].Share = totals[i].Amount / grand * 100
		}
	}
	return totals
}

// TotalIncome sums every income transaction.
func (s *Store) TotalIncome() float64 {
	return SumByType(s.Transactions(), model.TypeIncome)
}

// TotalExpense sums every expense transaction.
func (s *Store) TotalExpense() float64 {
	return SumByType(s.Transactions(), model.TypeExpense)
}

// Balance is total income minus total expense.
func (s *Store) Balance() float64 {
	txns := s.Transactions()
	return SumByType(txns, model.TypeIncome) - SumByType(txns, model.TypeExpense)
}

func (s *Store) today() []model.Transaction {
	return OnDay(s.Transactions(), s.now(), s.location)
}

// TodayIncome sums income dated on the current calendar day.
func (s *Store) TodayIncome() float64 {
	return SumByType(s.today(), model.TypeIncome)
}

// TodayExpense sums expenses dated on the current calendar day.
func (s *Store) TodayExpense() float64 {
	return SumByType(s.today(), model.TypeExpense)
}

// TodayBalance is today's income minus today's expense.
func (s *Store) TodayBalance() float64 {
	today := s.today()
	return SumByType(today, model.TypeIncome) - SumByType(today, model.TypeExpense)
}

// ExpenseByCategory totals expenses per category, largest first.
func (s *Store) ExpenseByCategory() []CategoryTotal {
	return ByCategory(s.Transactions(), model.TypeExpense)
}

// IncomeByCategory totals income per category, largest first.
func (s *Store) IncomeByCategory() []CategoryTotal {
	return ByCategory(s.Transactions(), model.TypeIncome)
}

// Summary computes all aggregates from a single snapshot.
func (s *Store) Summary() Summary {
	return Summarize(s.Transactions(), s.now(), s.location)
}

// Summarize computes the aggregates of txns. Today totals cover the calendar
// day of now in loc.
func Summarize(txns []model.Transaction, now time.Time, loc *time.Location) Summary {
	today := OnDay(txns, now, loc)

	sum := Summary{
		Count:             len(txns),
		TotalIncome:       SumByType(txns, model.TypeIncome),
		TotalExpense:      SumByType(txns, model.TypeExpense),
		TodayIncome:       SumByType(today, model.TypeIncome),
		TodayExpense:      SumByType(today, model.TypeExpense),
		ExpenseByCategory: ByCategory(txns, model.TypeExpense),
		IncomeByCategory:  ByCategory(txns, model.TypeIncome),
	}
	sum.Balance = sum.TotalIncome - sum.TotalExpense
	sum.TodayBalance = sum.TodayIncome - sum.TodayExpense
	return sum
}
