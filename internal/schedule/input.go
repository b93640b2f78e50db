package schedule

import (
	"fmt"

	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
)

// Validate checks the input for caller errors. All failures wrap
// ErrInvalidInput.
func (in Input) Validate() error {
	if in.RemainingSalary < 0 {
		return fmt.Errorf("%w: remaining salary %d cannot be negative", ErrInvalidInput, in.RemainingSalary)
	}
	if in.CurrentRound < 1 {
		return fmt.Errorf("%w: current round %d must be at least 1", ErrInvalidInput, in.CurrentRound)
	}
	if in.CurrentRound > constants.MaxRound {
		return fmt.Errorf("%w: current round %d exceeds %d", ErrInvalidInput, in.CurrentRound, constants.MaxRound)
	}
	if in.Horizon < 0 {
		return fmt.Errorf("%w: horizon %d cannot be negative", ErrInvalidInput, in.Horizon)
	}
	if in.Horizon > constants.MaxRound {
		return fmt.Errorf("%w: horizon %d exceeds %d", ErrInvalidInput, in.Horizon, constants.MaxRound)
	}

	seen := make(map[int]bool, len(in.Wishlist))
	for i, p := range in.Wishlist {
		if p.PlayerID <= 0 {
			return fmt.Errorf("%w: wishlist entry %d has invalid player id %d", ErrInvalidInput, i, p.PlayerID)
		}
		if seen[p.PlayerID] {
			return fmt.Errorf("%w: player %d appears more than once in the wishlist", ErrInvalidInput, p.PlayerID)
		}
		seen[p.PlayerID] = true
	}

	for i, r := range in.CurrentTeam.Rookies {
		if r.PlayerID <= 0 {
			return fmt.Errorf("%w: roster entry %d has invalid player id %d", ErrInvalidInput, i, r.PlayerID)
		}
	}

	return nil
}
