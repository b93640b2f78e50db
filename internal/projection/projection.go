// Package projection resolves wishlist players and their projected prices
// from a data file or Postgres, optionally through a cache, and prefetches
// them into a Table the scheduling engine can read synchronously.
package projection

import (
	"context"
	"errors"

	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
)

// ErrUnknownPlayer is returned by a Catalog for ids it does not know.
var ErrUnknownPlayer = errors.New("unknown player")

// Source returns projected prices. ok is false when no projection exists for
// the pair; err is reserved for lookup failures.
type Source interface {
	Projection(ctx context.Context, playerID, round int) (price int64, ok bool, err error)
}

// Catalog resolves player ids into wishlist players, preserving the order of
// ids.
type Catalog interface {
	Players(ctx context.Context, ids []int) ([]schedule.WishlistPlayer, error)
}

// Provider is both a Catalog and a Source.
type Provider interface {
	Catalog
	Source
}
