package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/tui/styles"
)

const (
	checkboxWidth = 3
	dateWidth     = 10
	ellipsisWidth = 3
)

// SelectionChangedMsg reports every id on the page the table now shows as checked
type SelectionChangedMsg struct {
	Checked []int
}

// SelectAllChangedMsg reports that the header checkbox was flipped
type SelectAllChangedMsg struct {
	Checked bool
}

// RecordTable renders one page of records with a checkbox column.
// The checked set is a local mirror; the owner pushes the authoritative
// set back with SetChecked after every change it reports.
type RecordTable struct {
	table    table.Model
	records  []domain.Record
	checked  map[int]bool
	truncate int

	// Jump-to-title state
	jumping   bool
	jumpInput textinput.Model
}

// NewRecordTable creates an empty table. truncate is the max display
// width of text cells.
func NewRecordTable(truncate int) *RecordTable {
	ti := textinput.New()
	ti.Placeholder = "type a title..."
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = styles.AccentStyle

	s := table.DefaultStyles()
	s.Header = styles.TableHeaderStyle
	s.Cell = styles.TableCellStyle
	s.Selected = styles.TableSelectedStyle

	rt := &RecordTable{
		checked:   make(map[int]bool),
		truncate:  truncate,
		jumpInput: ti,
	}
	rt.table = table.New(
		table.WithColumns(rt.columns()),
		table.WithFocused(true),
		table.WithKeyMap(cursorKeyMap()),
		table.WithStyles(s),
	)
	return rt
}

func (t *RecordTable) columns() []table.Column {
	text := t.truncate + ellipsisWidth
	if t.truncate <= 0 {
		text = 30
	}
	return []table.Column{
		{Title: styles.Checkbox(t.AllChecked()), Width: checkboxWidth},
		{Title: "Title", Width: text},
		{Title: "Place of Origin", Width: text},
		{Title: "Artist", Width: text},
		{Title: "Inscriptions", Width: text},
		{Title: "Start Date", Width: dateWidth},
		{Title: "End Date", Width: dateWidth},
	}
}

func (t *RecordTable) rows() []table.Row {
	rows := make([]table.Row, len(t.records))
	for i, r := range t.records {
		rows[i] = table.Row{
			styles.Checkbox(t.checked[r.ID]),
			styles.Truncate(r.Title, t.truncate),
			styles.Truncate(r.PlaceOfOrigin, t.truncate),
			styles.Truncate(r.ArtistDisplay, t.truncate),
			styles.Truncate(r.Inscriptions, t.truncate),
			formatYear(r.DateStart),
			formatYear(r.DateEnd),
		}
	}
	return rows
}

func formatYear(y int) string {
	if y == 0 {
		return styles.NotAvailable
	}
	return strconv.Itoa(y)
}

func (t *RecordTable) refresh() {
	t.table.SetColumns(t.columns())
	t.table.SetRows(t.rows())
}

// SetRecords replaces the visible page and moves the cursor to the first row
func (t *RecordTable) SetRecords(records []domain.Record, checked []int) {
	t.records = records
	t.setChecked(checked)
	t.refresh()
	t.table.SetCursor(0)
}

// SetChecked replaces the checked mirror
func (t *RecordTable) SetChecked(checked []int) {
	t.setChecked(checked)
	t.refresh()
}

func (t *RecordTable) setChecked(checked []int) {
	t.checked = make(map[int]bool, len(checked))
	for _, id := range checked {
		t.checked[id] = true
	}
}

// SetSize sets the table viewport
func (t *RecordTable) SetSize(width, height int) {
	t.table.SetWidth(width)
	h := height
	if t.jumping {
		h--
	}
	if h < 3 {
		h = 3
	}
	t.table.SetHeight(h)
}

// Records returns the visible page
func (t *RecordTable) Records() []domain.Record {
	return t.records
}

// Cursor returns the highlighted row index
func (t *RecordTable) Cursor() int {
	return t.table.Cursor()
}

// SelectedRecord returns the highlighted record
func (t *RecordTable) SelectedRecord() (domain.Record, bool) {
	i := t.table.Cursor()
	if i < 0 || i >= len(t.records) {
		return domain.Record{}, false
	}
	return t.records[i], true
}

// AllChecked reports whether the header checkbox is ticked
func (t *RecordTable) AllChecked() bool {
	if len(t.records) == 0 {
		return false
	}
	for _, r := range t.records {
		if !t.checked[r.ID] {
			return false
		}
	}
	return true
}

// IsJumping returns whether the jump prompt has focus
func (t *RecordTable) IsJumping() bool {
	return t.jumping
}

// checkedIDs returns the mirror's ids in page order
func (t *RecordTable) checkedIDs() []int {
	ids := make([]int, 0, len(t.records))
	for _, r := range t.records {
		if t.checked[r.ID] {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// Update handles cursor movement, checkbox keys and the jump prompt.
// Checkbox changes are reported as SelectionChangedMsg / SelectAllChangedMsg.
func (t *RecordTable) Update(msg tea.Msg) tea.Cmd {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if t.jumping && isKey {
		switch {
		case key.Matches(keyMsg, RecordTableKeys.Escape), key.Matches(keyMsg, RecordTableKeys.Enter):
			t.stopJump()
			return nil
		}
		var cmd tea.Cmd
		t.jumpInput, cmd = t.jumpInput.Update(msg)
		t.applyJump()
		return cmd
	}

	if isKey {
		switch {
		case key.Matches(keyMsg, RecordTableKeys.Toggle):
			rec, ok := t.SelectedRecord()
			if !ok {
				return nil
			}
			t.checked[rec.ID] = !t.checked[rec.ID]
			t.refresh()
			checked := t.checkedIDs()
			return func() tea.Msg { return SelectionChangedMsg{Checked: checked} }

		case key.Matches(keyMsg, RecordTableKeys.ToggleAll):
			if len(t.records) == 0 {
				return nil
			}
			want := !t.AllChecked()
			return func() tea.Msg { return SelectAllChangedMsg{Checked: want} }

		case key.Matches(keyMsg, RecordTableKeys.Jump):
			if len(t.records) == 0 {
				return nil
			}
			t.jumping = true
			t.jumpInput.SetValue("")
			return t.jumpInput.Focus()
		}
	}

	var cmd tea.Cmd
	t.table, cmd = t.table.Update(msg)
	return cmd
}

func (t *RecordTable) stopJump() {
	t.jumping = false
	t.jumpInput.Blur()
}

// applyJump moves the cursor to the best fuzzy title match. Rows are never hidden.
func (t *RecordTable) applyJump() {
	query := strings.ToLower(strings.TrimSpace(t.jumpInput.Value()))
	if query == "" {
		return
	}

	lowerTitles := make([]string, len(t.records))
	for i, r := range t.records {
		lowerTitles[i] = strings.ToLower(r.Title)
	}

	matches := fuzzy.Find(query, lowerTitles)
	if len(matches) > 0 {
		t.table.SetCursor(matches[0].Index)
	}
}

// View renders the table and, while jumping, the prompt below it
func (t *RecordTable) View() string {
	view := t.table.View()
	if t.jumping {
		view = lipgloss.JoinVertical(lipgloss.Left, view, t.jumpInput.View())
	}
	return view
}
