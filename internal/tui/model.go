// Package tui is an interactive transaction browser built on bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/ledger"
	"github.com/Veraticus/accountant/internal/model"
)

// State is what the browser is currently doing.
type State int

const (
	StateBrowse State = iota
	StateConfirmDelete
)

// chromeHeight is the number of lines around the list.
const chromeHeight = 9

// Model holds the browser state.
type Model struct {
	ctx        context.Context
	lastError  error
	store      *ledger.Store
	money      *cli.Money
	marked     map[int]bool
	theme      Theme
	keymap     KeyMap
	status     string
	filter     ledger.Filter
	help       help.Model
	categories []string
	visible    []model.Transaction
	cursor     int
	offset     int
	width      int
	height     int
	state      State
	quitting   bool
}

// New creates a browser over cfg.Store showing the newest transactions first.
func New(ctx context.Context, cfg Config) Model {
	money := cfg.Money
	if money == nil {
		money = cli.DefaultMoney()
	}
	theme := DefaultTheme
	if cfg.Theme != nil {
		theme = *cfg.Theme
	}

	m := Model{
		ctx:    ctx,
		store:  cfg.Store,
		money:  money,
		theme:  theme,
		keymap: DefaultKeyMap(),
		help:   help.New(),
		filter: cfg.Filter,
		width:  cfg.Width,
		height: cfg.Height,
		marked: make(map[int]bool),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the category choices and the visible rows. A category
// that disappeared from the choices falls back to all categories.
func (m *Model) refresh() {
	m.categories = m.store.Categories(m.filter.Type)
	if m.filter.Type == "" {
		m.filter.Type = ledger.FilterAll
	}
	m.filter = m.filter.Normalize(m.categories)
	m.visible = m.store.Filter(m.filter)
	m.marked = make(map[int]bool)
	m.moveCursor(0)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.moveCursor(0)

	case storeChangedMsg:
		m.refresh()

	case deletedMsg:
		if msg.err != nil {
			m.lastError = msg.err
			m.status = ""
		} else {
			m.lastError = nil
			m.status = deletedStatus(msg.count)
		}
		m.refresh()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == StateConfirmDelete {
		switch {
		case key.Matches(msg, m.keymap.Confirm):
			m.state = StateBrowse
			return m, deleteCmd(m.ctx, m.store, m.visible, m.targets())
		case key.Matches(msg, m.keymap.Cancel):
			m.state = StateBrowse
			m.status = "Delete canceled"
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keymap.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keymap.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keymap.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keymap.Home):
		m.moveCursor(-len(m.visible))
	case key.Matches(msg, m.keymap.End):
		m.moveCursor(len(m.visible))

	case key.Matches(msg, m.keymap.CycleType):
		m.filter.Type = m.filter.Type.Next()
		m.status = ""
		m.refresh()
	case key.Matches(msg, m.keymap.CycleCategory):
		m.filter.Category = nextCategory(m.categories, m.filter.Category)
		m.status = ""
		m.refresh()
	case key.Matches(msg, m.keymap.ResetFilter):
		m.filter = ledger.Filter{Type: ledger.FilterAll, Category: ledger.AllCategories}
		m.status = ""
		m.refresh()

	case key.Matches(msg, m.keymap.ToggleSelect):
		if len(m.visible) > 0 {
			if m.marked[m.cursor] {
				delete(m.marked, m.cursor)
			} else {
				m.marked[m.cursor] = true
			}
			m.moveCursor(1)
		}
	case key.Matches(msg, m.keymap.Delete):
		if len(m.visible) > 0 {
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// moveCursor moves by delta rows and keeps the cursor on screen.
func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// listHeight is the number of rows that fit; everything fits before the
// first window size is known.
func (m Model) listHeight() int {
	if m.height <= 0 {
		return max(len(m.visible), 1)
	}
	return max(m.height-chromeHeight, 3)
}

func nextCategory(categories []string, current string) string {
	for i, c := range categories {
		if c == current {
			return categories[(i+1)%len(categories)]
		}
	}
	return ledger.AllCategories
}

// Filter returns the active filter.
func (m Model) Filter() ledger.Filter {
	return m.filter
}

// Visible returns the rows on screen, newest first.
func (m Model) Visible() []model.Transaction {
	return m.visible
}

// Cursor returns the highlighted row.
func (m Model) Cursor() int {
	return m.cursor
}

// State returns what the browser is doing.
func (m Model) State() State {
	return m.state
}
