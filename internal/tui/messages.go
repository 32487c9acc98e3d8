package tui

import (
	"github.com/mmcdole/vitrine/internal/domain"
)

// Message types for the TUI

// PageLoadedMsg signals that a requested page arrived.
// Gen identifies the request; only the newest one is rendered.
type PageLoadedMsg struct {
	Page *domain.Page
	Gen  uint64
}

// PageFailedMsg signals that a page could not be loaded
type PageFailedMsg struct {
	Page int
	Err  error
	Gen  uint64
}

// PageStaleMsg signals that the loader discarded a superseded request
type PageStaleMsg struct {
	Gen uint64
}

// TickMsg drives the loading spinner
type TickMsg struct{}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct{}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}
