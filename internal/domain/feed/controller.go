// Package feed provides an incremental list controller: pages are
// fetched on demand and accumulated, with search changes resetting the
// accumulated state.
package feed

import (
	"context"
	"sync"
)

// Fetcher loads one page of results for a search term.
type Fetcher[T any] func(ctx context.Context, search string, offset, limit int) ([]T, error)

// DefaultPageSize is used when no limit is configured.
const DefaultPageSize = 20

// Controller accumulates pages of a filtered list. It is safe for
// concurrent use: loads are serialized, and responses that arrive for
// an outdated search or offset are discarded.
type Controller[T any] struct {
	fetch Fetcher[T]
	limit int

	mu      sync.Mutex
	search  string
	items   []T
	hasMore bool
	loading bool
	// generation increments on every reset; in-flight fetches from an
	// older generation are stale and their results are dropped.
	generation uint64
}

// NewController creates a feed controller with the given page size.
func NewController[T any](fetch Fetcher[T], limit int) *Controller[T] {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	return &Controller[T]{
		fetch:   fetch,
		limit:   limit,
		hasMore: true,
	}
}

// Items returns a snapshot of the accumulated items.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// HasMore reports whether another page may be available. It is true
// until a fetch returns fewer items than the page size.
func (c *Controller[T]) HasMore() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasMore
}

// Search returns the active search term.
func (c *Controller[T]) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// SetSearch resets accumulated state when the term changes and loads
// the first page. Setting the same term again is a no-op. A fetch
// still in flight for the old term keeps running but its result is
// discarded when it arrives.
func (c *Controller[T]) SetSearch(ctx context.Context, term string) error {
	c.mu.Lock()
	if term == c.search && c.items != nil {
		c.mu.Unlock()
		return nil
	}
	c.search = term
	c.items = nil
	c.hasMore = true
	c.generation++
	return c.load(ctx)
}

// Reset clears accumulated state, keeping the search term.
func (c *Controller[T]) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	c.hasMore = true
	c.loading = false
	c.generation++
}

// LoadMore fetches the next page and appends it. Overlapping calls are
// collapsed: while a load is in flight, further calls return without
// fetching. A failed fetch leaves items, offset and hasMore unchanged.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if c.loading || !c.hasMore {
		c.mu.Unlock()
		return nil
	}
	return c.load(ctx)
}

// load fetches the next page for the current generation. The lock must
// be held on entry; it is released during the fetch.
func (c *Controller[T]) load(ctx context.Context) error {
	c.loading = true
	gen := c.generation
	search := c.search
	offset := len(c.items)
	limit := c.limit
	c.mu.Unlock()

	page, err := c.fetch(ctx, search, offset, limit)

	c.mu.Lock()
	defer c.mu.Unlock()

	// A reset happened while the fetch was in flight: the page belongs
	// to an old search/offset. The loading slot is owned by the newer
	// fetch now, so neither it nor the state may be touched.
	if gen != c.generation {
		return nil
	}
	c.loading = false

	if err != nil {
		return err
	}
	if offset != len(c.items) {
		return nil
	}

	c.items = append(c.items, page...)
	c.hasMore = len(page) == limit
	return nil
}
