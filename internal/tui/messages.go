package tui

import "github.com/Veraticus/accountant/internal/ledger"

// storeChangedMsg is sent when the ledger was modified, by us or anyone else.
type storeChangedMsg struct {
	event ledger.Event
}

// deletedMsg reports the outcome of a delete command.
type deletedMsg struct {
	err   error
	count int
}
