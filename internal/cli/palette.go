package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/accountant/internal/ledger"
)

// Palette is the ordered set of colors used for category breakdowns.
var Palette = []lipgloss.Color{
	lipgloss.Color("#007AFF"), // blue
	lipgloss.Color("#34C759"), // green
	lipgloss.Color("#FF9500"), // orange
	lipgloss.Color("#FF3B30"), // red
	lipgloss.Color("#AF52DE"), // purple
	lipgloss.Color("#FF2D55"), // pink
	lipgloss.Color("#FFCC00"), // yellow
	lipgloss.Color("#5AC8FA"), // teal
}

// ColoredTotal pairs a category total with its display color.
type ColoredTotal struct {
	Color lipgloss.Color
	ledger.CategoryTotal
}

// CategoryPalette assigns colors to totals in the order given, cycling when
// there are more categories than colors.
func CategoryPalette(totals []ledger.CategoryTotal) []ColoredTotal {
	out := make([]ColoredTotal, len(totals))
	for i, ct := range totals {
		out[i] = ColoredTotal{CategoryTotal: ct, Color: Palette[i%len(Palette)]}
	}
	return out
}
