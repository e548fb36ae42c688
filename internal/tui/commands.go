package tui

import (
	"context"
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

// deleteCmd removes the rows at indices of view from the ledger.
func deleteCmd(ctx context.Context, store *ledger.Store, view []model.Transaction, indices []int) tea.Cmd {
	view = append([]model.Transaction(nil), view...)
	indices = append([]int(nil), indices...)

	return func() tea.Msg {
		n, err := store.DeleteAt(ctx, view, indices)
		return deletedMsg{count: n, err: err}
	}
}

// targets returns the marked rows, or the cursor row when nothing is marked.
func (m Model) targets() []int {
	if len(m.marked) == 0 {
		if len(m.visible) == 0 {
			return nil
		}
		return []int{m.cursor}
	}
	out := make([]int, 0, len(m.marked))
	for i := range m.marked {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}
