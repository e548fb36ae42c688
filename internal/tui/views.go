package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("👛 Transactions"),
		m.renderFilters(),
		m.renderTotals(),
		"",
		m.renderList(),
		"",
		m.renderStatus(),
		m.help.View(m.keymap),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderFilters() string {
	types := make([]string, len(ledger.TypeFilters))
	for i, t := range ledger.TypeFilters {
		if t == m.filter.Type {
			types[i] = m.theme.Active.Render("[" + string(t) + "]")
		} else {
			types[i] = m.theme.Filter.Render(string(t))
		}
	}
	return fmt.Sprintf("Type: %s   Category: %s",
		strings.Join(types, " "),
		m.theme.Active.Render(ledger.CategoryLabel(m.filter.Category)))
}

func (m Model) renderTotals() string {
	income := ledger.SumByType(m.visible, model.TypeIncome)
	expense := ledger.SumByType(m.visible, model.TypeExpense)
	return m.theme.Muted.Render(fmt.Sprintf("%d shown  ", len(m.visible))) +
		m.theme.Income.Render(m.money.Signed(model.TypeIncome, income)) + "  " +
		m.theme.Expense.Render(m.money.Signed(model.TypeExpense, expense))
}

func (m Model) renderList() string {
	if len(m.visible) == 0 {
		return m.theme.Muted.Render("No transactions")
	}

	end := min(m.offset+m.listHeight(), len(m.visible))
	lines := make([]string, 0, end-m.offset+1)
	lines = append(lines, m.theme.Header.Render(
		fmt.Sprintf("   %-10s  %-24s  %-14s  %s", "Date", "Description", "Category", "Amount")))

	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i, m.visible[i]))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int, txn model.Transaction) string {
	cursor := " "
	if i == m.cursor {
		cursor = ">"
	}
	mark := " "
	if m.marked[i] {
		mark = m.theme.Marked.Render("●")
	}

	amountStyle := m.theme.Expense
	if txn.IsIncome() {
		amountStyle = m.theme.Income
	}

	row := fmt.Sprintf("%-10s  %-24s  %-14s  ",
		txn.Date.Format("2006-01-02"),
		truncate(txn.Description, 24),
		truncate(txn.Category, 14))
	if i == m.cursor {
		row = m.theme.Cursor.Render(row)
	}
	return cursor + mark + " " + row + amountStyle.Render(m.money.Signed(txn.Type, txn.Amount))
}

func (m Model) renderStatus() string {
	switch {
	case m.state == StateConfirmDelete:
		n := len(m.targets())
		return m.theme.Confirm.Render(fmt.Sprintf("Delete %d transaction(s)? (y/n)", n))
	case m.lastError != nil:
		return m.theme.Error.Render("✗ " + m.lastError.Error())
	case m.status != "":
		return m.theme.Status.Render(m.status)
	default:
		return ""
	}
}

func deletedStatus(n int) string {
	if n == 1 {
		return "✓ Deleted 1 transaction"
	}
	return fmt.Sprintf("✓ Deleted %d transactions", n)
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
