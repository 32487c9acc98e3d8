package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/vitrine/internal/pagination"
	"github.com/mmcdole/vitrine/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	// Overlay replaces the screen while open
	if m.BulkModal.IsVisible() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.BulkModal.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.Table.View(),
		m.renderSummary(),
		m.PaginationBar.View(),
		m.Help.View(Keys),
	)
}

// renderHeader renders the title line
func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("vitrine")
	if m.Loader == nil {
		return title
	}
	return title + styles.DimStyle.Render(" · "+m.Loader.Resource())
}

// renderSummary renders spinner, selection count, range and status on one line
func (m Model) renderSummary() string {
	var parts []string

	if m.Loading {
		parts = append(parts, styles.RenderSpinner(m.SpinnerFrame)+" "+
			styles.DimStyle.Render(fmt.Sprintf("Loading page %d...", m.requested)))
	}

	parts = append(parts, styles.AccentStyle.Render(fmt.Sprintf("Selected: %d rows", m.DisplayedCount())))

	if meta, ok := m.Pager.Meta(); ok {
		start, end, total := pagination.Range(meta)
		parts = append(parts, fmt.Sprintf("Showing %d to %d of %d entries", start, end, total))
	}

	if m.StatusMsg != "" {
		if m.StatusIsErr {
			parts = append(parts, styles.ErrorStyle.Render(m.StatusMsg))
		} else {
			parts = append(parts, styles.SuccessStyle.Render(m.StatusMsg))
		}
	}

	return strings.Join(parts, styles.DimStyle.Render("  │  "))
}
