package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/service"
)

// Command factories for async operations

const loadTimeout = 30 * time.Second

// LoadPageCmd fetches one page under a ticket taken from loader.Ticket.
// reload skips the page cache.
func LoadPageCmd(loader *service.PageLoader, page int, reload bool, gen uint64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		p, err := loader.LoadTicket(ctx, gen, page, reload)
		if errors.Is(err, domain.ErrStalePage) {
			return PageStaleMsg{Gen: gen}
		}
		if err != nil {
			return PageFailedMsg{Page: page, Err: err, Gen: gen}
		}
		return PageLoadedMsg{Page: p, Gen: gen}
	}
}

// TickCmd returns a command that sends a tick after a delay
func TickCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
