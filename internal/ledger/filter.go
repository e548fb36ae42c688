package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Veraticus/accountant/internal/model"
)

// AllCategories is the category selection that matches every category. It
// is kept out of the category namespace so a category named "All" stays
// selectable; use CategoryLabel to display a selection.
const AllCategories = ""

// AllCategoriesLabel is how the AllCategories selection is displayed.
const AllCategoriesLabel = "All"

// CategoryLabel returns the display text for a category selection.
func CategoryLabel(category string) string {
	if category == AllCategories {
		return AllCategoriesLabel
	}
	return category
}

// TypeFilter restricts a view to one transaction type, or none.
type TypeFilter string

// Type filters.
const (
	FilterAll     TypeFilter = "All"
	FilterIncome  TypeFilter = "Income"
	FilterExpense TypeFilter = "Expense"
)

// TypeFilters lists the filters in display order.
var TypeFilters = []TypeFilter{FilterAll, FilterIncome, FilterExpense}

// ParseTypeFilter parses "all", "income" or "expense" case-insensitively.
// An empty string means FilterAll.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return FilterAll, nil
	case "income":
		return FilterIncome, nil
	case "expense":
		return FilterExpense, nil
	default:
		return "", fmt.Errorf("unknown type filter %q (want all, income or expense)", s)
	}
}

// Matches reports whether txn passes the type filter.
func (f TypeFilter) Matches(txn model.Transaction) bool {
	switch f {
	case FilterIncome:
		return txn.Type == model.TypeIncome
	case FilterExpense:
		return txn.Type == model.TypeExpense
	default:
		return true
	}
}

// Next cycles All -> Income -> Expense -> All.
func (f TypeFilter) Next() TypeFilter {
	switch f {
	case FilterAll, "":
		return FilterIncome
	case FilterIncome:
		return FilterExpense
	default:
		return FilterAll
	}
}

// Filter selects the visible subset of transactions.
type Filter struct {
	Type     TypeFilter
	Category string
}

func (f Filter) matchesCategory(txn model.Transaction) bool {
	return f.Category == AllCategories || txn.Category == f.Category
}

// Normalize resets the category selection to AllCategories when it is not
// one of the available categories.
func (f Filter) Normalize(available []string) Filter {
	if f.Category == AllCategories {
		return f
	}
	for _, c := range available {
		if c == f.Category {
			return f
		}
	}
	f.Category = AllCategories
	return f
}

// ApplyFilter returns the transactions matching f, newest first.
func ApplyFilter(txns []model.Transaction, f Filter) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, txn := range txns {
		if f.Type.Matches(txn) && f.matchesCategory(txn) {
			out = append(out, txn)
		}
	}
	return SortByDateDesc(out)
}

// CategoriesFor returns AllCategories followed by the distinct categories of
// the transactions passing t, sorted alphabetically.
func CategoriesFor(txns []model.Transaction, t TypeFilter) []string {
	seen := make(map[string]struct{})
	var names []string
	for _, txn := range txns {
		if !t.Matches(txn) {
			continue
		}
		if _, ok := seen[txn.Category]; ok {
			continue
		}
		seen[txn.Category] = struct{}{}
		names = append(names, txn.Category)
	}
	sort.Strings(names)
	return append([]string{AllCategories}, names...)
}

// Filter returns the stored transactions matching f, newest first.
func (s *Store) Filter(f Filter) []model.Transaction {
	return ApplyFilter(s.Transactions(), f)
}

// Categories returns the category choices for the type filter t.
func (s *Store) Categories(t TypeFilter) []string {
	return CategoriesFor(s.Transactions(), t)
}
