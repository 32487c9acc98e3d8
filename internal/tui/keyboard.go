package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/selection"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Route to active modal if any
	if handled, newModel, cmd := m.routeToModal(msg); handled {
		return newModel, cmd
	}

	// The jump prompt owns the keyboard while open
	if m.Table.IsJumping() {
		return m, m.Table.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.Help.ShowAll = !m.Help.ShowAll
		m.updateLayout()
		return m, nil

	case key.Matches(msg, Keys.Bulk):
		m.BulkModal.Toggle()
		return m, nil

	case key.Matches(msg, Keys.Prev):
		cmd := m.navigate(m.Pager.Previous())
		return m, cmd

	case key.Matches(msg, Keys.Next):
		cmd := m.navigate(m.Pager.Next())
		return m, cmd

	case key.Matches(msg, Keys.First):
		cmd := m.navigate(m.Pager.First())
		return m, cmd

	case key.Matches(msg, Keys.Last):
		cmd := m.navigate(m.Pager.Last())
		return m, cmd

	case key.Matches(msg, Keys.Slot):
		slot := int(msg.Runes[0] - '1')
		cmd := m.navigate(m.Pager.Slot(slot))
		return m, cmd

	case key.Matches(msg, Keys.Reload):
		page := m.Pager.Current()
		if page == 0 {
			page = m.requested
		}
		cmd := m.requestPage(page, true)
		return m, cmd
	}

	// Everything else belongs to the table
	return m, m.Table.Update(msg)
}

// routeToModal sends keys to the bulk-select overlay while it is open
func (m Model) routeToModal(msg tea.KeyMsg) (bool, Model, tea.Cmd) {
	if !m.BulkModal.IsVisible() {
		return false, m, nil
	}

	var (
		cmd       tea.Cmd
		submitted bool
	)
	m.BulkModal, cmd, submitted = m.BulkModal.Update(msg)
	if !submitted {
		return true, m, cmd
	}

	cmd = m.submitBulk(m.BulkModal.Value())
	return true, m, cmd
}

// submitBulk parses the overlay text and dispatches a bulk request.
// The overlay stays open on any rejection.
func (m *Model) submitBulk(text string) tea.Cmd {
	n, err := selection.ParseBulkCount(text)
	if err != nil {
		m.BulkModal.SetError(err.Error())
		return m.setStatus("Enter a whole number of rows", true)
	}

	res := m.Tracker.Dispatch(selection.Bulk(n, m.rows()))
	if res.Rejected {
		m.BulkModal.SetError(domain.ErrNoPageLoaded.Error())
		return m.setStatus("Wait for a page to load first", true)
	}
	if res.CloseOverlay {
		m.BulkModal.Hide()
	}
	m.syncChecked()

	if res.Reset {
		return m.setStatus("Selection cleared", false)
	}
	pending := m.Tracker.Snapshot().Pending()
	if pending > 0 {
		return m.setStatus(fmt.Sprintf("Selected %d rows, %d more as pages load", res.Applied, pending), false)
	}
	return m.setStatus(fmt.Sprintf("Selected %d rows", res.Applied), false)
}

// handleMouseMsg closes the overlay on a click outside it
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.BulkModal.IsVisible() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if !m.BulkModal.Contains(msg.X, msg.Y, m.Width, m.Height) {
		m.BulkModal.Hide()
	}
	return m, nil
}
