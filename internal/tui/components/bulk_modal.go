package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/vitrine/internal/tui/styles"
)

const bulkModalWidth = 36

// BulkModal is the "select first N rows" overlay. It accepts digits only.
type BulkModal struct {
	visible bool
	input   textinput.Model
	errText string
}

// NewBulkModal creates a new bulk-select overlay
func NewBulkModal() BulkModal {
	ti := textinput.New()
	ti.Placeholder = "Number of rows..."
	ti.CharLimit = 9
	ti.Width = 30
	ti.Prompt = ""
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return BulkModal{
		input: ti,
	}
}

// Show displays the overlay with an empty field
func (m *BulkModal) Show() {
	m.visible = true
	m.errText = ""
	m.input.SetValue("")
	m.input.Focus()
}

// Hide dismisses the overlay
func (m *BulkModal) Hide() {
	m.visible = false
	m.errText = ""
	m.input.Blur()
}

// Toggle shows a hidden overlay or hides a visible one
func (m *BulkModal) Toggle() {
	if m.visible {
		m.Hide()
		return
	}
	m.Show()
}

// IsVisible returns whether the overlay is shown
func (m BulkModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m BulkModal) Value() string {
	return m.input.Value()
}

// SetError shows a validation message under the field
func (m *BulkModal) SetError(text string) {
	m.errText = text
}

// Update handles input events, returns (modal, cmd, submitted)
func (m BulkModal) Update(msg tea.Msg) (BulkModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, BulkModalKeys.Submit):
			return m, nil, true
		case key.Matches(keyMsg, BulkModalKeys.Cancel):
			m.Hide()
			return m, nil, false
		}
		if keyMsg.Type == tea.KeyRunes && !allDigits(keyMsg.Runes) {
			return m, nil, false
		}
		m.errText = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// allDigits accepts ASCII 0-9 only, the set strconv.Atoi parses
func allDigits(rs []rune) bool {
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// View renders the overlay
func (m BulkModal) View() string {
	if !m.visible {
		return ""
	}

	inputStyle := lipgloss.NewStyle().
		Width(bulkModalWidth).
		Background(styles.SlateDark)

	spacer := lipgloss.NewStyle().
		Width(bulkModalWidth).
		Background(styles.SlateDark).
		Render("")

	hint := styles.DimStyle.Width(bulkModalWidth).Background(styles.SlateDark).
		Render("enter select · 0 clears · esc close")
	if m.errText != "" {
		hint = styles.ErrorStyle.Width(bulkModalWidth).Background(styles.SlateDark).
			Render(m.errText)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Width(bulkModalWidth).Render("Select first N rows"),
		spacer,
		inputStyle.Render(m.input.View()),
		spacer,
		hint,
	)

	return styles.ModalStyle.Render(content)
}

// Contains reports whether the screen cell (x, y) falls inside the overlay
// when it is centered on a screen of the given size.
func (m BulkModal) Contains(x, y, screenWidth, screenHeight int) bool {
	if !m.visible {
		return false
	}
	view := m.View()
	w, h := lipgloss.Width(view), lipgloss.Height(view)
	left := (screenWidth - w) / 2
	top := (screenHeight - h) / 2
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return x >= left && x < left+w && y >= top && y < top+h
}
