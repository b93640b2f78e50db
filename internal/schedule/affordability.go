package schedule

import (
	"fmt"

	"github.com/iwvelando/wishlist-scheduler/pkg/format"
	"github.com/iwvelando/wishlist-scheduler/pkg/mathutil"
)

// Quote is the affordability of one player in one round, before scoring.
type Quote struct {
	PlayerID        int
	Round           int
	ProjectedPrice  int64
	SalaryAvailable int64
	Remaining       int64
	Breakdown       []string
}

// Feasible reports whether the salary available covers the projected price.
func (q Quote) Feasible() bool {
	return q.Remaining >= 0
}

// MarginRatio is the post-trade remainder as a share of the salary
// available. Infeasible quotes have no margin.
func (q Quote) MarginRatio() float64 {
	if !q.Feasible() {
		return 0
	}
	return mathutil.Ratio(q.Remaining, q.SalaryAvailable)
}

// Calculator checks single trades against a budget.
type Calculator struct {
	projector PriceProjector
}

// NewCalculator creates a calculator backed by projector.
func NewCalculator(projector PriceProjector) *Calculator {
	return &Calculator{projector: projector}
}

// Evaluate quotes player in round against salaryAvailable.
func (c *Calculator) Evaluate(player WishlistPlayer, round int, salaryAvailable int64) (Quote, error) {
	if salaryAvailable < 0 {
		return Quote{}, fmt.Errorf("%w: salary available %d cannot be negative", ErrInvalidInput, salaryAvailable)
	}

	price, ok := c.projector.Project(player.PlayerID, round)
	if !ok || price < 0 {
		return Quote{}, fmt.Errorf("player %d round %d: %w", player.PlayerID, round, ErrProjectionUnavailable)
	}

	q := Quote{
		PlayerID:        player.PlayerID,
		Round:           round,
		ProjectedPrice:  price,
		SalaryAvailable: salaryAvailable,
		Remaining:       salaryAvailable - price,
	}

	q.Breakdown = []string{
		fmt.Sprintf("Projected price %s in round %d", format.Currency(price), round),
		fmt.Sprintf("Salary available %s", format.Currency(salaryAvailable)),
	}
	if q.Feasible() {
		q.Breakdown = append(q.Breakdown,
			fmt.Sprintf("Margin %s (%s)", format.Currency(q.Remaining), format.Percent(q.MarginRatio())))
	} else {
		q.Breakdown = append(q.Breakdown,
			fmt.Sprintf("Shortfall %s", format.Currency(-q.Remaining)))
	}

	return q, nil
}
