package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/vitrine/internal/domain"
	"github.com/mmcdole/vitrine/internal/log"
)

type fakeSource struct {
	calls atomic.Int32
	err   error
	// gate, when set for a page, blocks FetchPage until closed
	gate map[int]chan struct{}
}

func (f *fakeSource) Resource() string { return "artworks" }

func (f *fakeSource) FetchPage(ctx context.Context, page, limit int) (*domain.Page, error) {
	f.calls.Add(1)
	if ch, ok := f.gate[page]; ok {
		select {
		case <-ch:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return makePage(page, limit), nil
}

func makePage(page, limit int) *domain.Page {
	records := make([]domain.Record, limit)
	for i := range records {
		id := (page-1)*limit + i + 1
		records[i] = domain.Record{ID: id, Title: fmt.Sprintf("Work %d", id)}
	}
	return &domain.Page{
		Records:   records,
		Meta:      domain.PageMeta{Total: 10 * limit, Limit: limit, Offset: (page - 1) * limit, TotalPages: 10, CurrentPage: page},
		FetchedAt: time.Now(),
	}
}

type fakeCache struct {
	mu     sync.Mutex
	pages  map[string]*domain.Page
	putErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{pages: make(map[string]*domain.Page)}
}

func cacheKey(resource string, limit, page int) string {
	return fmt.Sprintf("%s/%d/%d", resource, limit, page)
}

func (c *fakeCache) Get(resource string, limit, page int) (*domain.Page, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.pages[cacheKey(resource, limit, page)]
	return p, ok
}

func (c *fakeCache) Put(resource string, limit, page int, p *domain.Page) error {
	if c.putErr != nil {
		return c.putErr
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[cacheKey(resource, limit, page)] = p
	return nil
}

func (c *fakeCache) InvalidateAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]*domain.Page)
	return nil
}

func (c *fakeCache) Close() error { return nil }

func TestLoadSetsCurrent(t *testing.T) {
	src := &fakeSource{}
	l := NewPageLoader(src, nil, 12, log.NullLogger())

	p, err := l.Load(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number())
	assert.Len(t, p.Records, 12)
	assert.Same(t, p, l.Current())
	assert.False(t, l.Loading())
}

func TestLoadFailureKeepsCurrent(t *testing.T) {
	src := &fakeSource{}
	l := NewPageLoader(src, nil, 12, log.NullLogger())

	first, err := l.Load(context.Background(), 1)
	require.NoError(t, err)

	src.err = fmt.Errorf("dial: %w", domain.ErrServerOffline)
	_, err = l.Load(context.Background(), 2)
	require.Error(t, err)

	var fe *domain.FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Page)
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.Same(t, first, l.Current())
	assert.False(t, l.Loading(), "loading flag cleared on failure")
}

func TestLoadRejectsInvalidPage(t *testing.T) {
	src := &fakeSource{}
	l := NewPageLoader(src, nil, 12, log.NullLogger())

	_, err := l.Load(context.Background(), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPage)
	assert.Zero(t, src.calls.Load())
}

func TestLoadReadsThroughCache(t *testing.T) {
	src := &fakeSource{}
	cache := newFakeCache()
	l := NewPageLoader(src, cache, 12, log.NullLogger())

	_, err := l.Load(context.Background(), 2)
	require.NoError(t, err)
	_, err = l.Load(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load(), "second load served from cache")

	_, err = l.Reload(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load(), "reload bypasses cache")
}

func TestLoadIgnoresCacheWriteFailure(t *testing.T) {
	src := &fakeSource{}
	cache := newFakeCache()
	cache.putErr = errors.New("disk full")
	l := NewPageLoader(src, cache, 12, log.NullLogger())

	p, err := l.Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Number())
}

func TestLoadNewestWins(t *testing.T) {
	gate := make(chan struct{})
	src := &fakeSource{gate: map[int]chan struct{}{2: gate}}
	l := NewPageLoader(src, nil, 12, log.NullLogger())

	slowErr := make(chan error, 1)
	go func() {
		_, err := l.Load(context.Background(), 2)
		slowErr <- err
	}()

	require.Eventually(t, func() bool { return src.calls.Load() == 1 }, time.Second, time.Millisecond)
	assert.True(t, l.Loading())

	p, err := l.Load(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number())

	close(gate)
	assert.ErrorIs(t, <-slowErr, domain.ErrStalePage)
	assert.Equal(t, 3, l.Current().Number(), "stale response must not overwrite")
	assert.False(t, l.Loading())
}

func TestLoadTicketOrdersByIssueNotStart(t *testing.T) {
	src := &fakeSource{}
	l := NewPageLoader(src, nil, 12, log.NullLogger())

	older := l.Ticket()
	newer := l.Ticket()

	p, err := l.LoadTicket(context.Background(), newer, 3, false)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Number())

	_, err = l.LoadTicket(context.Background(), older, 2, false)
	assert.ErrorIs(t, err, domain.ErrStalePage)
	assert.Equal(t, 3, l.Current().Number())
	assert.Equal(t, newer, l.Generation())
}

func TestLoadCachesUnderRequestedLimit(t *testing.T) {
	// The API may cap the page size below what was asked for
	src := &cappedSource{max: 10}
	cache := newFakeCache()
	l := NewPageLoader(src, cache, 50, log.NullLogger())

	_, err := l.Load(context.Background(), 2)
	require.NoError(t, err)
	p, err := l.Load(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, int32(1), src.calls.Load(), "second load served from cache")
	assert.Equal(t, 10, p.Meta.Limit)
}

type cappedSource struct {
	fakeSource
	max int
}

func (c *cappedSource) FetchPage(ctx context.Context, page, limit int) (*domain.Page, error) {
	return c.fakeSource.FetchPage(ctx, page, min(limit, c.max))
}

func TestLoadDefaultsPageSize(t *testing.T) {
	l := NewPageLoader(&fakeSource{}, nil, 0, nil)
	assert.Equal(t, defaultPageSize, l.Limit())
}
