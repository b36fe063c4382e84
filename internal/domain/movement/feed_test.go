package movement

import (
	"context"
	"testing"
)

func TestFeed_PagesThroughMovements(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := f.svc.CreateFromDraft(ctx, validDraft(TypeMerma)); err != nil {
			t.Fatalf("create movement: %v", err)
		}
	}

	fd := NewFeed(f.svc, 2)

	if err := fd.LoadMore(ctx); err != nil {
		t.Fatalf("page 1: %v", err)
	}
	if len(fd.Items()) != 2 {
		t.Fatalf("after page 1: %d items, want 2", len(fd.Items()))
	}
	if !fd.HasMore() {
		t.Error("full page must leave hasMore true")
	}

	if err := fd.LoadMore(ctx); err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if err := fd.LoadMore(ctx); err != nil {
		t.Fatalf("page 3: %v", err)
	}
	if len(fd.Items()) != 5 {
		t.Fatalf("after page 3: %d items, want 5", len(fd.Items()))
	}
	if fd.HasMore() {
		t.Error("short page must set hasMore false")
	}

	// Paging must not duplicate or skip documents.
	seen := make(map[string]bool)
	for _, m := range fd.Items() {
		if seen[m.Number] {
			t.Errorf("duplicate number in feed: %s", m.Number)
		}
		seen[m.Number] = true
	}
}
