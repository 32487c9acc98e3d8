package tui

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/log"
	"github.com/mmcdole/vitrine/internal/selection"
	"github.com/mmcdole/vitrine/internal/service"
	"github.com/mmcdole/vitrine/internal/tui/components"
)

const (
	testLimit = 12
	testTotal = 120
)

type stubSource struct {
	fail map[int]error
}

func (s *stubSource) Resource() string { return "artworks" }

func (s *stubSource) FetchPage(_ context.Context, page, limit int) (*domain.Page, error) {
	if err := s.fail[page]; err != nil {
		return nil, err
	}
	records := make([]domain.Record, limit)
	for i := range records {
		id := (page-1)*limit + i + 1
		records[i] = domain.Record{ID: id, Title: fmt.Sprintf("Work %d", id)}
	}
	return &domain.Page{
		Records: records,
		Meta: domain.PageMeta{
			Total:       testTotal,
			Limit:       limit,
			Offset:      (page - 1) * limit,
			TotalPages:  testTotal / limit,
			CurrentPage: page,
		},
		FetchedAt: time.Now(),
	}, nil
}

func newTestModel(t *testing.T, src *stubSource) Model {
	t.Helper()
	logger := log.NullLogger()
	loader := service.NewPageLoader(src, nil, testLimit, logger)
	m := NewModel(loader, selection.NewTracker(logger), Options{
		StartPage:  1,
		WindowSize: 5,
		Truncate:   20,
		Logger:     logger,
	})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

// loaded returns a model with the first page on screen
func loaded(t *testing.T, src *stubSource) Model {
	t.Helper()
	m := newTestModel(t, src)
	msg := LoadPageCmd(m.Loader, 1, false, m.Generation())()
	m, _ = update(t, m, msg)
	require.NotNil(t, m.Page)
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

func TestInitialLoadCommitsPage(t *testing.T) {
	m := loaded(t, &stubSource{})

	assert.False(t, m.Loading)
	assert.Equal(t, 1, m.Pager.Current())
	assert.Len(t, m.Table.Records(), testLimit)
	assert.Equal(t, 0, m.DisplayedCount())
	assert.Contains(t, m.View(), "Showing 1 to 12 of 120 entries")
	assert.Contains(t, m.View(), "Selected: 0 rows")
}

func TestStalePageIsDropped(t *testing.T) {
	src := &stubSource{}
	m := loaded(t, src)

	m, cmd := update(t, m, keyRunes("l"))
	require.NotNil(t, cmd)
	assert.True(t, m.Loading)

	old, err := src.FetchPage(context.Background(), 5, testLimit)
	require.NoError(t, err)
	m, _ = update(t, m, PageLoadedMsg{Page: old, Gen: m.Generation() - 1})
	assert.Equal(t, 1, m.Page.Number(), "older generation must not render")
	assert.True(t, m.Loading)

	m, _ = update(t, m, cmd())
	assert.Equal(t, 2, m.Page.Number())
	assert.False(t, m.Loading)
}

func TestBulkSelectCarriesAcrossPages(t *testing.T) {
	m := loaded(t, &stubSource{})

	m, _ = update(t, m, keyRunes("n"))
	require.True(t, m.BulkModal.IsVisible())
	m = typeText(t, m, "20")
	m, _ = update(t, m, enterKey)

	assert.False(t, m.BulkModal.IsVisible())
	assert.Equal(t, 20, m.DisplayedCount())
	assert.True(t, m.Table.AllChecked())
	assert.Equal(t, 8, m.Tracker.Snapshot().Pending())

	m, cmd := update(t, m, keyRunes("l"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())

	snap := m.Tracker.Snapshot()
	assert.Equal(t, 0, snap.Pending())
	assert.Equal(t, 20, m.DisplayedCount())
	assert.Equal(t, []int{13, 14, 15, 16, 17, 18, 19, 20}, selection.CheckedIDs(m.Page.Records, snap))
	assert.Contains(t, m.StatusMsg, "Auto-selected 8 rows")
}

func TestBulkInvalidInputKeepsOverlayOpen(t *testing.T) {
	m := loaded(t, &stubSource{})

	m, _ = update(t, m, keyRunes("n"))
	m, _ = update(t, m, enterKey)

	assert.True(t, m.BulkModal.IsVisible())
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, 0, m.DisplayedCount())
}

func TestBulkBeforeFirstPageIsRejected(t *testing.T) {
	m := newTestModel(t, &stubSource{})

	m, _ = update(t, m, keyRunes("n"))
	m = typeText(t, m, "5")
	m, _ = update(t, m, enterKey)

	assert.True(t, m.BulkModal.IsVisible())
	assert.True(t, m.StatusIsErr)
	assert.Equal(t, 0, m.DisplayedCount())
}

func TestBulkZeroClearsSelection(t *testing.T) {
	m := loaded(t, &stubSource{})
	m.Tracker.Dispatch(selection.Bulk(30, m.Page.Records))

	m, _ = update(t, m, keyRunes("n"))
	m = typeText(t, m, "0")
	m, _ = update(t, m, enterKey)

	assert.False(t, m.BulkModal.IsVisible())
	assert.Equal(t, 0, m.DisplayedCount())
	assert.Equal(t, "Selection cleared", m.StatusMsg)
}

func TestFailedLoadKeepsPreviousPage(t *testing.T) {
	src := &stubSource{fail: map[int]error{2: domain.ErrServerOffline}}
	m := loaded(t, src)

	m, cmd := update(t, m, keyRunes("l"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, PageFailedMsg{}, msg)

	m, _ = update(t, m, msg)
	assert.False(t, m.Loading)
	assert.Equal(t, 1, m.Page.Number())
	assert.Equal(t, 1, m.Pager.Current(), "navigation stays on the committed page")
	assert.True(t, m.StatusIsErr)
	assert.Contains(t, m.StatusMsg, "No data for page 2")
}

func TestNewestRequestWinsWhenCommandsRunOutOfOrder(t *testing.T) {
	m := loaded(t, &stubSource{})

	m, older := update(t, m, keyRunes("l"))
	require.NotNil(t, older)
	m, newer := update(t, m, keyRunes("3"))
	require.NotNil(t, newer)

	// The runtime is free to start the newer command first
	newerMsg := newer()
	olderMsg := older()
	require.IsType(t, PageLoadedMsg{}, newerMsg)
	require.IsType(t, PageStaleMsg{}, olderMsg)

	m, _ = update(t, m, newerMsg)
	m, _ = update(t, m, olderMsg)

	require.NotNil(t, m.Page)
	assert.Equal(t, 3, m.Page.Number())
	assert.Equal(t, 3, m.Pager.Current())
	assert.False(t, m.Loading)
	assert.Equal(t, 25, m.Table.Records()[0].ID)
}

func TestPreviousOnFirstPageIsNoop(t *testing.T) {
	m := loaded(t, &stubSource{})
	gen := m.Generation()

	m, cmd := update(t, m, keyRunes("h"))
	assert.Nil(t, cmd)
	assert.Equal(t, gen, m.Generation())
}

func TestWidgetSelectionRoundTrip(t *testing.T) {
	m := loaded(t, &stubSource{})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, components.SelectionChangedMsg{}, msg)

	m, _ = update(t, m, msg)
	assert.True(t, m.Tracker.Snapshot().IsSelected(1))
	assert.Equal(t, 1, m.DisplayedCount())

	m, cmd = update(t, m, keyRunes("a"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	assert.Equal(t, testLimit, m.DisplayedCount())
	assert.True(t, selection.IsAllSelected(m.Page.Records, m.Tracker.Snapshot()))
}

func TestClickOutsideClosesOverlay(t *testing.T) {
	m := loaded(t, &stubSource{})
	m, _ = update(t, m, keyRunes("n"))
	require.True(t, m.BulkModal.IsVisible())

	m, _ = update(t, m, tea.MouseMsg{X: 80, Y: 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.BulkModal.IsVisible(), "click inside keeps it open")

	m, _ = update(t, m, tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.False(t, m.BulkModal.IsVisible())
}
