package model

// Category is a suggested label offered when entering a transaction.
type Category struct {
	Name string
	Icon string
}

// OtherCategory is offered for both transaction types.
const OtherCategory = "Other"

var expenseCategories = []Category{
	{Name: "Food", Icon: "🍴"},
	{Name: "Transport", Icon: "🚗"},
	{Name: "Shopping", Icon: "🛍"},
	{Name: "Bills", Icon: "🧾"},
	{Name: "Entertainment", Icon: "📺"},
	{Name: "Health", Icon: "❤"},
	{Name: "Education", Icon: "📚"},
	{Name: OtherCategory, Icon: "…"},
}

var incomeCategories = []Category{
	{Name: "Salary", Icon: "💵"},
	{Name: "Freelance", Icon: "💼"},
	{Name: "Investment", Icon: "📈"},
	{Name: "Gift", Icon: "🎁"},
	{Name: OtherCategory, Icon: "…"},
}

// SuggestedCategories returns the categories offered for a transaction type.
// Categories are suggestions only; any non-empty label is accepted.
func SuggestedCategories(t TransactionType) []Category {
	var src []Category
	switch t {
	case TypeIncome:
		src = incomeCategories
	case TypeExpense:
		src = expenseCategories
	default:
		return nil
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// DefaultCategory returns the category preselected for a new transaction.
func DefaultCategory(t TransactionType) string {
	if t == TypeIncome {
		return "Salary"
	}
	return "Food"
}

// IsSuggestedCategory reports whether name is one of the suggestions for t.
func IsSuggestedCategory(t TransactionType, name string) bool {
	for _, c := range SuggestedCategories(t) {
		if c.Name == name {
			return true
		}
	}
	return false
}
