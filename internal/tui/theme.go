package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/accountant/internal/cli"
)

// Theme defines the visual style for the browser.
type Theme struct {
	Title    lipgloss.Style
	Filter   lipgloss.Style
	Active   lipgloss.Style
	Header   lipgloss.Style
	Cursor   lipgloss.Style
	Marked   lipgloss.Style
	Muted    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Confirm  lipgloss.Style
	Income   lipgloss.Style
	Expense  lipgloss.Style
	Selected lipgloss.Color
}

// DefaultTheme follows the CLI colors.
var DefaultTheme = Theme{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor),
	Filter: lipgloss.NewStyle().
		Foreground(cli.SubtleColor),
	Active: lipgloss.NewStyle().
		Bold(true).
		Foreground(cli.PrimaryColor),
	Header: lipgloss.NewStyle().
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#333")),
	Cursor: lipgloss.NewStyle().
		Bold(true).
		Background(lipgloss.Color("#262626")),
	Marked: lipgloss.NewStyle().
		Foreground(cli.WarningColor),
	Muted:   cli.SubtleStyle,
	Status:  cli.SuccessStyle,
	Error:   cli.ErrorStyle,
	Confirm: cli.WarningStyle.Bold(true),
	Income:  cli.IncomeStyle,
	Expense: cli.ExpenseStyle,
}
