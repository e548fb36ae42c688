package tui

import (
	"github.com/Veraticus/accountant/internal/cli"
	"github.com/Veraticus/accountant/internal/ledger"
)

// Config holds what the browser needs.
type Config struct {
	Store  *ledger.Store
	Money  *cli.Money
	Theme  *Theme
	Filter ledger.Filter
	Width  int
	Height int
}
