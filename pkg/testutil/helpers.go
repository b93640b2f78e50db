// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
)

// FindTrade finds the scheduled trade for playerID in the response.
// Returns the trade and its round if found, nil and 0 otherwise.
func FindTrade(resp schedule.WishlistScheduleResponse, playerID int) (*schedule.ScheduledTrade, int) {
	for i := range resp.Schedule {
		for j := range resp.Schedule[i].Trades {
			if resp.Schedule[i].Trades[j].PlayerID == playerID {
				return &resp.Schedule[i].Trades[j], resp.Schedule[i].Round
			}
		}
	}
	return nil, 0
}

// FindWarnings returns every warning with the given code, in order.
func FindWarnings(resp schedule.WishlistScheduleResponse, code schedule.WarningCode) []schedule.ScheduleWarning {
	var found []schedule.ScheduleWarning
	for _, w := range resp.Warnings {
		if w.Code == code {
			found = append(found, w)
		}
	}
	return found
}

// StaticProjector is a fixed price table keyed by player id, then round.
// Missing entries have no projection.
type StaticProjector map[int]map[int]int64

// Project implements schedule.PriceProjector.
func (s StaticProjector) Project(playerID, round int) (int64, bool) {
	rounds, ok := s[playerID]
	if !ok {
		return 0, false
	}
	price, ok := rounds[round]
	return price, ok
}

// Flat returns a projector pricing each player at the same value in every
// round from first to last.
func Flat(prices map[int]int64, first, last int) StaticProjector {
	s := make(StaticProjector, len(prices))
	for id, price := range prices {
		s[id] = make(map[int]int64, last-first+1)
		for r := first; r <= last; r++ {
			s[id][r] = price
		}
	}
	return s
}

// Player returns a minimal wishlist player.
func Player(id int, name string, price int64) schedule.WishlistPlayer {
	return schedule.WishlistPlayer{
		PlayerID:     id,
		Name:         name,
		Position:     "MID",
		Team:         "TST",
		CurrentPrice: price,
	}
}
