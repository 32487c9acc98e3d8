package selection

import (
	"strconv"
	"strings"

	"github.com/mmcdole/vitrine/internal/domain"
)

// Kind identifies a selection event
type Kind int

const (
	KindPageVisible  Kind = iota // a new page finished loading
	KindBulk                     // "select the first N rows"
	KindToggle                   // one row checkbox changed
	KindSelectAll                // header checkbox changed
	KindWidgetChange             // table reported its full checked set for the page
)

func (k Kind) String() string {
	switch k {
	case KindPageVisible:
		return "page_visible"
	case KindBulk:
		return "bulk"
	case KindToggle:
		return "toggle"
	case KindSelectAll:
		return "select_all"
	case KindWidgetChange:
		return "widget_change"
	default:
		return "unknown"
	}
}

// Command is one event for the reducer. Which fields matter depends on Kind.
type Command struct {
	Kind    Kind
	Rows    []domain.Record // visible page, in order
	ID      int             // KindToggle
	On      bool            // KindToggle, KindSelectAll
	Count   int             // KindBulk
	Checked []int           // KindWidgetChange
}

// PageVisible builds the event fired after every successful page load.
func PageVisible(rows []domain.Record) Command {
	return Command{Kind: KindPageVisible, Rows: rows}
}

// Bulk builds a "select first n" request against the visible rows.
// rows is nil when no page is loaded.
func Bulk(n int, rows []domain.Record) Command {
	return Command{Kind: KindBulk, Count: n, Rows: rows}
}

// Toggle builds a single-row checkbox change.
func Toggle(id int, on bool) Command {
	return Command{Kind: KindToggle, ID: id, On: on}
}

// SelectAll builds a header checkbox change for the visible rows.
func SelectAll(rows []domain.Record, checked bool) Command {
	return Command{Kind: KindSelectAll, Rows: rows, On: checked}
}

// WidgetChange builds a reconciliation of the table's checked ids for the visible rows.
func WidgetChange(rows []domain.Record, checked []int) Command {
	return Command{Kind: KindWidgetChange, Rows: rows, Checked: checked}
}

// ParseBulkCount parses the text typed into the bulk-select overlay.
func ParseBulkCount(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, domain.ErrInvalidBulkInput
	}
	return n, nil
}
