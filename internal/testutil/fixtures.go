package testutil

import (
	"time"

	"github.com/Veraticus/accountant/internal/model"
)

// Fixture is a named, reusable set of transactions.
type Fixture struct {
	Name         string
	Description  string
	Transactions func(day time.Time) []model.Transaction
}

// FixtureDailyMix is one salary and two food expenses split across day and the
// day before. Its balance is 750, today's expense on day is 200 and food totals 250.
var FixtureDailyMix = Fixture{
	Name:        "DailyMix",
	Description: "salary today, lunch today, coffee yesterday",
	Transactions: func(day time.Time) []model.Transaction {
		return []model.Transaction{
			Txn().ID("salary").Income(1000).Description("Salary").Category("Salary").On(day).Build(),
			Txn().ID("lunch").Expense(200).Description("Lunch").Category("Food").On(day).Build(),
			Txn().ID("coffee").Expense(50).Description("Coffee").Category("Food").On(day.AddDate(0, 0, -1)).Build(),
		}
	},
}

// FixtureMonth spreads income and expenses across several categories and days.
var FixtureMonth = Fixture{
	Name:        "Month",
	Description: "a month of mixed income and expenses",
	Transactions: func(day time.Time) []model.Transaction {
		return []model.Transaction{
			Txn().ID("m1").Income(3000).Description("Paycheck").Category("Salary").On(day.AddDate(0, 0, -20)).Build(),
			Txn().ID("m2").Expense(1200).Description("Rent, Nov").Category("Bills").On(day.AddDate(0, 0, -19)).Build(),
			Txn().ID("m3").Expense(85.5).Description("Groceries").Category("Food").On(day.AddDate(0, 0, -10)).Build(),
			Txn().ID("m4").Income(400).Description("Logo design").Category("Freelance").On(day.AddDate(0, 0, -7)).Build(),
			Txn().ID("m5").Expense(45).Description("Bus pass").Category("Transport").On(day.AddDate(0, 0, -5)).Build(),
			Txn().ID("m6").Expense(60).Description(`He said "hi"`).Category("Entertainment").On(day.AddDate(0, 0, -2)).Build(),
			Txn().ID("m7").Expense(14.5).Description("Dinner").Category("Food").On(day).Build(),
		}
	},
}
