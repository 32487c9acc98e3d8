package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Checkbox glyphs
const (
	CheckedChar   = "[x]"
	UncheckedChar = "[ ]"
)

// Table styles
var (
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(Amber).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(DimGray).
				BorderBottom(true).
				Padding(0, 1)

	TableCellStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)
)

// Pagination bar styles
var (
	PageButtonStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	PageCurrentStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Amber).
				Bold(true).
				Padding(0, 1)

	PageDisabledStyle = lipgloss.NewStyle().
				Foreground(SlateLight).
				Padding(0, 1)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Amber).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Background(SlateDark)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Amber)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
)

// Placeholder shown for missing cell values
const NotAvailable = "N/A"

// Helper functions

// Truncate cuts s to width display cells and appends "...".
// Empty or blank text renders as NotAvailable.
func Truncate(s string, width int) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "") + "..."
}

// Checkbox renders a checkbox glyph
func Checkbox(checked bool) string {
	if checked {
		return CheckedChar
	}
	return UncheckedChar
}

// RenderSpinner renders one spinner frame
func RenderSpinner(frame int) string {
	return SpinnerStyle.Render(SpinnerFrames[frame%len(SpinnerFrames)])
}
