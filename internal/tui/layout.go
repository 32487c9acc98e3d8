package tui

// Vertical chrome around the table: title line, summary line, pagination line, help line
const (
	HeaderHeight = 1
	FooterHeight = 3
	MinTableRows = 3
)

// tableHeight returns the rows left for the table
func (m Model) tableHeight() int {
	chrome := HeaderHeight + FooterHeight
	if m.Help.ShowAll {
		tallest := 0
		for _, col := range Keys.FullHelp() {
			tallest = max(tallest, len(col))
		}
		chrome += tallest - 1
	}
	return max(m.Height-chrome, MinTableRows)
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}
	m.Table.SetSize(m.Width, m.tableHeight())
}
