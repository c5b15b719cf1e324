package pubadmin

import (
	"context"
	"sync"
	"time"

	"github.com/eringen/pubadmin/datatable"
)

// PageCache is an in-memory cache of fetched table pages with TTL. One cache
// serves every browser looking at the same resource, so a page fetched for
// one admin is reused by the others until it expires or is invalidated.
type PageCache[R any] struct {
	mu    sync.RWMutex
	pages map[datatable.FetchKey]cachedPage[R]
	ttl   time.Duration
	now   func() time.Time
}

type cachedPage[R any] struct {
	page    datatable.Page[R]
	fetched time.Time
}

// NewPageCache creates a PageCache. A ttl <= 0 disables caching.
func NewPageCache[R any](ttl time.Duration) *PageCache[R] {
	return &PageCache[R]{
		pages: make(map[datatable.FetchKey]cachedPage[R]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Enabled reports whether pages are kept at all.
func (c *PageCache[R]) Enabled() bool {
	return c.ttl > 0
}

// Get returns the cached page for key if it is still fresh.
func (c *PageCache[R]) Get(key datatable.FetchKey) (datatable.Page[R], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.pages[key]
	if !ok || c.now().Sub(e.fetched) >= c.ttl {
		return datatable.Page[R]{}, false
	}
	return e.page, true
}

// Put stores page under key.
func (c *PageCache[R]) Put(key datatable.FetchKey, page datatable.Page[R]) {
	if !c.Enabled() {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[key] = cachedPage[R]{page: page, fetched: c.now()}
	c.evict()
}

// evict drops expired entries. Must be called with the write lock held.
func (c *PageCache[R]) evict() {
	now := c.now()
	for k, e := range c.pages {
		if now.Sub(e.fetched) >= c.ttl {
			delete(c.pages, k)
		}
	}
}

// Len returns the number of stored pages, fresh or not.
func (c *PageCache[R]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PageCache[R]) Invalidate() {
	c.mu.Lock()
	clear(c.pages)
	c.mu.Unlock()
}

// Wrap returns a Fetcher that answers from the cache and falls back to
// fetch on a miss. Failed fetches are not cached.
func (c *PageCache[R]) Wrap(fetch datatable.Fetcher[R]) datatable.Fetcher[R] {
	if !c.Enabled() {
		return fetch
	}
	return func(ctx context.Context, key datatable.FetchKey) (datatable.Page[R], error) {
		if page, ok := c.Get(key); ok {
			return page, nil
		}
		page, err := fetch(ctx, key)
		if err != nil {
			return page, err
		}
		c.Put(key, page)
		return page, nil
	}
}
