package movement

import (
	"context"

	"almacen/internal/domain/feed"
)

// NewFeed returns an incremental feed over the movement list. Client
// list screens append pages by calling LoadMore; a search change resets
// the accumulated pages and refetches from offset zero.
func NewFeed(svc *Service, pageSize int) *feed.Controller[*Movement] {
	fetch := func(ctx context.Context, search string, offset, limit int) ([]*Movement, error) {
		result, err := svc.List(ctx, ListFilter{
			Search: search,
			Offset: offset,
			Limit:  limit,
		})
		if err != nil {
			return nil, err
		}
		return result.Items, nil
	}
	return feed.NewController(fetch, pageSize)
}
