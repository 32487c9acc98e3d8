package components

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
)

// RecordTableKeyMap defines key bindings for the record table
type RecordTableKeyMap struct {
	Toggle    key.Binding
	ToggleAll key.Binding
	Jump      key.Binding
	Escape    key.Binding
	Enter     key.Binding
}

// DefaultRecordTableKeyMap returns the default record table key bindings
func DefaultRecordTableKeyMap() RecordTableKeyMap {
	return RecordTableKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle row"),
		),
		ToggleAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "toggle page"),
		),
		Jump: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to title"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel jump"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "accept jump"),
		),
	}
}

// cursorKeyMap is the bubbles/table key map without the bindings
// (space, g, G, f, b) the application uses for selection and paging.
func cursorKeyMap() table.KeyMap {
	return table.KeyMap{
		LineUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		LineDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("PgDn", "page down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("C-u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("C-d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "first row"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "last row"),
		),
	}
}

// BulkModalKeyMap defines key bindings for the bulk-select overlay
type BulkModalKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

// DefaultBulkModalKeyMap returns the default bulk-select overlay key bindings
func DefaultBulkModalKeyMap() BulkModalKeyMap {
	return BulkModalKeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
	}
}

// Package-level key map instances
var (
	RecordTableKeys = DefaultRecordTableKeyMap()
	BulkModalKeys   = DefaultBulkModalKeyMap()
)
