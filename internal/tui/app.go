package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/pagination"
	"github.com/mmcdole/vitrine/internal/selection"
	"github.com/mmcdole/vitrine/internal/service"
	"github.com/mmcdole/vitrine/internal/tui/components"
	"github.com/mmcdole/vitrine/internal/tui/styles"
)

const (
	spinnerInterval = 100 * time.Millisecond
	statusTimeout   = 3 * time.Second
)

// Options configures a new Model
type Options struct {
	StartPage  int
	WindowSize int
	Truncate   int
	Logger     *slog.Logger
}

// Model is the main Bubble Tea model for the application
type Model struct {
	Ready bool

	// Services
	Loader  *service.PageLoader
	Tracker *selection.Tracker
	Pager   *pagination.Controller

	// UI Components
	Table         *components.RecordTable
	BulkModal     components.BulkModal
	PaginationBar components.PaginationBar
	Help          help.Model

	// Data
	Page *domain.Page // page on screen; nil until the first load succeeds

	// Request tracking
	generation uint64 // newest issued request
	requested  int    // page of the newest request
	startPage  int

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	Loading      bool
	SpinnerFrame int

	logger *slog.Logger
}

// NewModel creates a new application model
func NewModel(loader *service.PageLoader, tracker *selection.Tracker, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	start := opts.StartPage
	if start < 1 {
		start = 1
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	return Model{
		Loader:        loader,
		Tracker:       tracker,
		Pager:         pagination.NewController(opts.WindowSize),
		Table:         components.NewRecordTable(opts.Truncate),
		BulkModal:     components.NewBulkModal(),
		PaginationBar: components.NewPaginationBar(),
		Help:          h,
		generation:    loader.Ticket(), // the initial load issued by Init
		requested:     start,
		startPage:     start,
		Loading:       true,
		logger:        logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		LoadPageCmd(m.Loader, m.startPage, false, m.generation),
		TickCmd(spinnerInterval),
	)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.Help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case TickMsg:
		m.SpinnerFrame++
		return m, TickCmd(spinnerInterval)

	case PageLoadedMsg:
		if msg.Gen != m.generation {
			m.logger.Debug("dropping stale page", "page", msg.Page.Number(), "generation", msg.Gen)
			return m, nil
		}
		return m.applyPage(msg.Page)

	case PageFailedMsg:
		if msg.Gen != m.generation {
			return m, nil
		}
		m.Loading = false
		m.logger.Error("page load failed", "page", msg.Page, "error", msg.Err)
		cmd := m.setStatus(failureText(msg.Page, msg.Err), true)
		return m, cmd

	case PageStaleMsg:
		if msg.Gen == m.generation {
			m.Loading = false
		}
		return m, nil

	case components.SelectionChangedMsg:
		m.Tracker.Dispatch(selection.WidgetChange(m.rows(), msg.Checked))
		m.syncChecked()
		return m, nil

	case components.SelectAllChangedMsg:
		m.Tracker.Dispatch(selection.SelectAll(m.rows(), msg.Checked))
		m.syncChecked()
		return m, nil

	case StatusMsg:
		cmd := m.setStatus(msg.Message, msg.IsError)
		return m, cmd

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil
	}

	return m, nil
}

// applyPage makes a freshly loaded page visible. Pending auto-fill is
// reconciled before the rows are rendered.
func (m Model) applyPage(p *domain.Page) (tea.Model, tea.Cmd) {
	m.Loading = false
	m.Page = p

	res := m.Tracker.Dispatch(selection.PageVisible(p.Records))
	m.Pager.Commit(p.Meta)

	m.Table.SetRecords(p.Records, selection.CheckedIDs(p.Records, m.Tracker.Snapshot()))
	m.syncPagination()
	m.updateLayout()

	if res.Applied > 0 {
		cmd := m.setStatus(fmt.Sprintf("Auto-selected %d rows", res.Applied), false)
		return m, cmd
	}
	return m, nil
}

// rows returns the visible page's records, nil when nothing is loaded
func (m Model) rows() []domain.Record {
	if m.Page == nil {
		return nil
	}
	return m.Page.Records
}

// syncChecked pushes the ledger's view of the page back into the table
func (m *Model) syncChecked() {
	m.Table.SetChecked(selection.CheckedIDs(m.rows(), m.Tracker.Snapshot()))
}

func (m *Model) syncPagination() {
	m.PaginationBar.Set(
		m.Pager.Current(),
		m.Pager.TotalPages(),
		m.Pager.Window(),
		m.Pager.HasPrevious(),
		m.Pager.HasNext(),
	)
}

// requestPage issues a load and makes it the only response that may render
func (m *Model) requestPage(page int, reload bool) tea.Cmd {
	m.generation = m.Loader.Ticket()
	m.requested = page
	m.Loading = true
	m.logger.Debug("requesting page", "page", page, "reload", reload, "generation", m.generation)
	return LoadPageCmd(m.Loader, page, reload, m.generation)
}

// navigate requests page when the controller says a load is needed
func (m *Model) navigate(page int, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return m.requestPage(page, false)
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.StatusMsg = text
	m.StatusIsErr = isErr
	return ClearStatusCmd(statusTimeout)
}

// DisplayedCount is the "Selected: N rows" figure
func (m Model) DisplayedCount() int {
	return selection.DisplayedCount(m.Tracker.Snapshot())
}

// Generation returns the newest issued request number
func (m Model) Generation() uint64 {
	return m.generation
}

func failureText(page int, err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return fmt.Sprintf("No data for page %d (rate limited)", page)
	case errors.Is(err, domain.ErrServerOffline):
		return fmt.Sprintf("No data for page %d (offline)", page)
	default:
		return fmt.Sprintf("No data for page %d", page)
	}
}
