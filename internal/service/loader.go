package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/mmcdole/vitrine/internal/domain"
)

const defaultPageSize = 12

// PageLoader fetches pages for the UI, reading through the page cache.
// Only the newest request may replace the current page.
type PageLoader struct {
	source domain.PageSource
	cache  domain.PageCache // nil = no caching
	limit  int
	logger *slog.Logger

	group singleflight.Group

	gen      atomic.Uint64
	inflight atomic.Int32

	mu      sync.RWMutex
	current *domain.Page
}

// NewPageLoader creates a loader for pages of the given size
func NewPageLoader(source domain.PageSource, cache domain.PageCache, limit int, logger *slog.Logger) *PageLoader {
	if logger == nil {
		logger = slog.Default()
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	return &PageLoader{
		source: source,
		cache:  cache,
		limit:  limit,
		logger: logger,
	}
}

// Resource returns the name of the paged collection
func (l *PageLoader) Resource() string {
	return l.source.Resource()
}

// Limit returns the requested page size
func (l *PageLoader) Limit() int {
	return l.limit
}

// Loading reports whether any request is still running
func (l *PageLoader) Loading() bool {
	return l.inflight.Load() > 0
}

// Current returns the last page accepted by Load, or nil
func (l *PageLoader) Current() *domain.Page {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Generation returns the newest ticket handed out
func (l *PageLoader) Generation() uint64 {
	return l.gen.Load()
}

// Ticket reserves the next request number. Requests are ordered by
// ticket, not by when their goroutine happens to run, so a caller that
// issues requests asynchronously takes the ticket when it issues them.
func (l *PageLoader) Ticket() uint64 {
	return l.gen.Add(1)
}

// Load returns the page, preferring a fresh cached copy.
// Failures come back as *domain.FetchError; a request overtaken by a
// newer one returns domain.ErrStalePage and leaves Current untouched.
func (l *PageLoader) Load(ctx context.Context, page int) (*domain.Page, error) {
	return l.load(ctx, l.Ticket(), page, false)
}

// Reload is Load without the cache read
func (l *PageLoader) Reload(ctx context.Context, page int) (*domain.Page, error) {
	return l.load(ctx, l.Ticket(), page, true)
}

// LoadTicket is Load (or Reload) for a request numbered earlier by Ticket
func (l *PageLoader) LoadTicket(ctx context.Context, ticket uint64, page int, reload bool) (*domain.Page, error) {
	return l.load(ctx, ticket, page, reload)
}

func (l *PageLoader) load(ctx context.Context, ticket uint64, page int, bypassCache bool) (*domain.Page, error) {
	if page < 1 {
		return nil, &domain.FetchError{Page: page, Err: domain.ErrInvalidPage}
	}

	l.inflight.Add(1)
	defer l.inflight.Add(-1)

	p, err := l.fetch(ctx, page, bypassCache)
	if err != nil {
		if l.gen.Load() != ticket {
			return nil, domain.ErrStalePage
		}
		l.logger.Error("failed to load page", "page", page, "error", err)
		return nil, &domain.FetchError{Page: page, Err: err}
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.gen.Load() != ticket {
		l.logger.Debug("dropping stale page", "page", page, "generation", ticket)
		return nil, domain.ErrStalePage
	}
	l.current = p
	return p, nil
}

func (l *PageLoader) fetch(ctx context.Context, page int, bypassCache bool) (*domain.Page, error) {
	resource := l.source.Resource()

	if !bypassCache && l.cache != nil {
		if cached, ok := l.cache.Get(resource, l.limit, page); ok {
			l.logger.Debug("cache hit", "resource", resource, "page", page)
			return cached, nil
		}
	}

	key := strconv.Itoa(page)
	if bypassCache {
		key = "reload:" + key
	}

	v, err, shared := l.group.Do(key, func() (interface{}, error) {
		p, err := l.source.FetchPage(ctx, page, l.limit)
		if err != nil {
			return nil, err
		}
		if l.cache != nil {
			if err := l.cache.Put(resource, l.limit, page, p); err != nil {
				l.logger.Warn("failed to cache page", "page", page, "error", err)
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		l.logger.Debug("shared in-flight fetch", "page", page)
	}

	p, ok := v.(*domain.Page)
	if !ok || p == nil {
		return nil, errors.New("page source returned no page")
	}
	l.logger.Info("loaded page", "resource", resource, "page", page, "records", len(p.Records))
	return p, nil
}
