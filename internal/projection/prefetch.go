package projection

import (
	"context"
	"fmt"
	"sync"

	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"golang.org/x/sync/errgroup"
)

// Table is a resolved set of projections. It implements
// schedule.PriceProjector.
type Table struct {
	mu     sync.RWMutex
	prices map[int]map[int]int64
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{prices: make(map[int]map[int]int64)}
}

// Set records a projection.
func (t *Table) Set(playerID, round int, price int64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	rounds, ok := t.prices[playerID]
	if !ok {
		rounds = make(map[int]int64)
		t.prices[playerID] = rounds
	}
	rounds[round] = price
}

// Project implements schedule.PriceProjector.
func (t *Table) Project(playerID, round int) (int64, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	price, ok := t.prices[playerID][round]
	return price, ok
}

// Len returns the number of projections held.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n := 0
	for _, rounds := range t.prices {
		n += len(rounds)
	}
	return n
}

// Prefetch resolves every player/round pair in [firstRound, lastRound] with
// at most limit lookups in flight. Missing projections are left out of the
// table; the first lookup error cancels the rest.
func Prefetch(ctx context.Context, source Source, playerIDs []int, firstRound, lastRound, limit int) (*Table, error) {
	if lastRound < firstRound {
		return nil, fmt.Errorf("invalid round range %d-%d", firstRound, lastRound)
	}
	if firstRound < 1 {
		firstRound = 1
	}
	if lastRound > constants.MaxRound+constants.MaxHorizon {
		return nil, fmt.Errorf("round %d is beyond the last prefetchable round %d", lastRound, constants.MaxRound+constants.MaxHorizon)
	}

	table := NewTable()
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, id := range playerIDs {
		for round := firstRound; round <= lastRound; round++ {
			g.Go(func() error {
				price, ok, err := source.Projection(gctx, id, round)
				if err != nil {
					return fmt.Errorf("player %d round %d: %w", id, round, err)
				}
				if ok {
					table.Set(id, round, price)
				}
				return nil
			})
		}
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return table, nil
}
