package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/vitrine/internal/tui/styles"
)

// PaginationBar renders Prev, the numbered page window, Next and a
// compact "page/total" indicator. It holds no navigation logic.
type PaginationBar struct {
	pager   paginator.Model
	current int
	window  []int
	hasPrev bool
	hasNext bool
}

// NewPaginationBar creates an empty bar
func NewPaginationBar() PaginationBar {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.ArabicFormat = "%d/%d"
	return PaginationBar{pager: p}
}

// Set updates the bar from the committed page state
func (b *PaginationBar) Set(current, totalPages int, window []int, hasPrev, hasNext bool) {
	b.current = current
	b.window = window
	b.hasPrev = hasPrev
	b.hasNext = hasNext

	b.pager.TotalPages = totalPages
	b.pager.Page = 0
	if current > 0 {
		b.pager.Page = current - 1
	}
}

// View renders the bar. Empty before the first page is known.
func (b PaginationBar) View() string {
	if b.pager.TotalPages == 0 {
		return ""
	}

	var parts []string
	parts = append(parts, button("‹ Prev", false, !b.hasPrev))
	for _, n := range b.window {
		parts = append(parts, button(strconv.Itoa(n), n == b.current, false))
	}
	parts = append(parts, button("Next ›", false, !b.hasNext))

	bar := lipgloss.JoinHorizontal(lipgloss.Center, parts...)
	return bar + "  " + styles.DimStyle.Render(b.pager.View())
}

func button(label string, current, disabled bool) string {
	switch {
	case current:
		return styles.PageCurrentStyle.Render(label)
	case disabled:
		return styles.PageDisabledStyle.Render(label)
	default:
		return styles.PageButtonStyle.Render(label)
	}
}

// PlainView renders the bar without styling, for logs and tests
func (b PaginationBar) PlainView() string {
	if b.pager.TotalPages == 0 {
		return ""
	}
	var sb strings.Builder
	if b.hasPrev {
		sb.WriteString("‹ Prev")
	} else {
		sb.WriteString("(‹ Prev)")
	}
	for _, n := range b.window {
		sb.WriteByte(' ')
		if n == b.current {
			sb.WriteString("[" + strconv.Itoa(n) + "]")
		} else {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	if b.hasNext {
		sb.WriteString(" Next ›")
	} else {
		sb.WriteString(" (Next ›)")
	}
	sb.WriteString(" " + b.pager.View())
	return sb.String()
}
