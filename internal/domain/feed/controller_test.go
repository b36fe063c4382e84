package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// sliceFetcher serves pages from a fixed dataset filtered by substring.
func sliceFetcher(data []string) Fetcher[string] {
	return func(ctx context.Context, search string, offset, limit int) ([]string, error) {
		var filtered []string
		for _, s := range data {
			if search == "" || containsFold(s, search) {
				filtered = append(filtered, s)
			}
		}
		if offset >= len(filtered) {
			return nil, nil
		}
		end := offset + limit
		if end > len(filtered) {
			end = len(filtered)
		}
		return filtered[offset:end], nil
	}
}

func containsFold(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		match := true
		for j := 0; j < len(sub); j++ {
			a, b := s[i+j], sub[j]
			if a >= 'A' && a <= 'Z' {
				a += 'a' - 'A'
			}
			if b >= 'A' && b <= 'Z' {
				b += 'a' - 'A'
			}
			if a != b {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func dataset(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = "item-" + string(rune('a'+i%26)) + "-" + string(rune('0'+i%10))
	}
	return out
}

func TestLoadMore_Accumulates(t *testing.T) {
	c := NewController(sliceFetcher(dataset(25)), 10)
	ctx := context.Background()

	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(c.Items()) != 10 {
		t.Errorf("after page 1: %d items, want 10", len(c.Items()))
	}
	if !c.HasMore() {
		t.Error("full page must leave hasMore true")
	}

	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(c.Items()) != 20 {
		t.Errorf("after page 2: %d items, want 20", len(c.Items()))
	}

	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(c.Items()) != 25 {
		t.Errorf("after page 3: %d items, want 25", len(c.Items()))
	}
	if c.HasMore() {
		t.Error("short page must set hasMore false")
	}

	// Further calls are no-ops once exhausted.
	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("page 4: %v", err)
	}
	if len(c.Items()) != 25 {
		t.Errorf("exhausted feed grew to %d items", len(c.Items()))
	}
}

func TestHasMore_ExactBoundary(t *testing.T) {
	// Dataset size is an exact multiple of the page size: the feed only
	// learns it is exhausted when an empty page comes back.
	c := NewController(sliceFetcher(dataset(20)), 10)
	ctx := context.Background()

	_ = c.LoadMore(ctx)
	_ = c.LoadMore(ctx)
	if len(c.Items()) != 20 {
		t.Fatalf("items = %d, want 20", len(c.Items()))
	}
	if !c.HasMore() {
		t.Error("hasMore must stay true after a full page")
	}

	_ = c.LoadMore(ctx)
	if c.HasMore() {
		t.Error("empty page must set hasMore false")
	}
	if len(c.Items()) != 20 {
		t.Errorf("items = %d, want 20", len(c.Items()))
	}
}

func TestSetSearch_ResetsState(t *testing.T) {
	data := []string{"arroz", "azucar", "harina", "aceite", "sal"}
	c := NewController(sliceFetcher(data), 2)
	ctx := context.Background()

	if err := c.SetSearch(ctx, ""); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	_ = c.LoadMore(ctx)
	if len(c.Items()) != 4 {
		t.Fatalf("items = %d, want 4", len(c.Items()))
	}

	if err := c.SetSearch(ctx, "a"); err != nil {
		t.Fatalf("search load: %v", err)
	}
	items := c.Items()
	if len(items) != 2 {
		t.Fatalf("after search: %d items, want first page of 2", len(items))
	}
	if items[0] != "arroz" || items[1] != "azucar" {
		t.Errorf("unexpected page: %v", items)
	}

	// Same term again must not reset or refetch.
	if err := c.SetSearch(ctx, "a"); err != nil {
		t.Fatalf("repeat search: %v", err)
	}
	if len(c.Items()) != 2 {
		t.Errorf("repeat search changed state: %d items", len(c.Items()))
	}
}

func TestLoadMore_ErrorLeavesStateIntact(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, search string, offset, limit int) ([]string, error) {
		calls++
		if calls == 2 {
			return nil, errors.New("network down")
		}
		return []string{"a", "b", "c"}, nil
	}
	c := NewController(fetch, 3)
	ctx := context.Background()

	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("page 1: %v", err)
	}

	err := c.LoadMore(ctx)
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if len(c.Items()) != 3 {
		t.Errorf("failed fetch changed items: %d", len(c.Items()))
	}
	if !c.HasMore() {
		t.Error("failed fetch must not flip hasMore")
	}

	// Retry works and appends where we left off.
	if err := c.LoadMore(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if len(c.Items()) != 6 {
		t.Errorf("after retry: %d items, want 6", len(c.Items()))
	}
}

func TestLoadMore_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, search string, offset, limit int) ([]string, error) {
		if search == "old" {
			close(started)
			<-release
			return []string{"stale-1", "stale-2"}, nil
		}
		return []string{"fresh-1"}, nil
	}
	c := NewController(fetch, 2)
	ctx := context.Background()

	c.mu.Lock()
	c.search = "old"
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.LoadMore(ctx)
	}()

	<-started
	// The search changes while the old fetch is still in flight.
	if err := c.SetSearch(ctx, "new"); err != nil {
		t.Fatalf("new search: %v", err)
	}
	close(release)
	wg.Wait()

	items := c.Items()
	if len(items) != 1 || items[0] != "fresh-1" {
		t.Errorf("stale page leaked into state: %v", items)
	}
	if c.Search() != "new" {
		t.Errorf("search = %q, want new", c.Search())
	}
}

func TestLoadMore_OverlappingCallsCollapse(t *testing.T) {
	var mu sync.Mutex
	fetches := 0
	started := make(chan struct{}, 5)
	release := make(chan struct{})
	fetch := func(ctx context.Context, search string, offset, limit int) ([]string, error) {
		mu.Lock()
		fetches++
		mu.Unlock()
		started <- struct{}{}
		<-release
		return []string{"x", "y"}, nil
	}
	c := NewController(fetch, 2)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.LoadMore(ctx)
		}()
	}

	// Wait for the winner of the in-flight slot, then let it finish.
	<-started
	close(release)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if fetches != 1 {
		t.Errorf("expected 1 fetch, got %d", fetches)
	}
	if len(c.Items()) != 2 {
		t.Errorf("items = %d, want 2", len(c.Items()))
	}
}
