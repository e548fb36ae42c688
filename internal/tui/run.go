package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/accountant/internal/ledger"
)

// Run shows the browser until the user quits or ctx is canceled. Changes made
// to the store while the browser is open are reflected immediately.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Store == nil {
		return errors.New("store is required")
	}

	p := tea.NewProgram(New(ctx, cfg), tea.WithContext(ctx), tea.WithAltScreen())

	unsubscribe := cfg.Store.Subscribe(func(e ledger.Event) {
		p.Send(storeChangedMsg{event: e})
	})
	defer unsubscribe()

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}
