package schedule

import (
	"fmt"
	"sort"

	"github.com/iwvelando/wishlist-scheduler/pkg/format"
)

// CashPlanner chooses roster players to sell when the wishlist cannot be
// funded from salary alone.
type CashPlanner struct {
	maxPerRound int
}

// NewCashPlanner creates a planner that sells at most maxPerRound players in
// any one round.
func NewCashPlanner(maxPerRound int) *CashPlanner {
	if maxPerRound <= 0 {
		maxPerRound = 1
	}
	return &CashPlanner{maxPerRound: maxPerRound}
}

// Plan raises deficit by selling candidates, starting in hostRound and
// spilling into later rounds up to lastRound when the per-round cap is hit.
// Candidates trending down are sold first, then the most valuable.
//
// When the roster cannot cover the deficit the partial plan is returned along
// with ErrInsufficientRosterValue.
func (p *CashPlanner) Plan(deficit int64, candidates []RosterPlayer, hostRound, lastRound int) (CashGenerationPlan, error) {
	plan := CashGenerationPlan{Needed: deficit, Plan: []CashGenerationStep{}}
	if deficit <= 0 {
		return plan, nil
	}

	ranked := rankSellCandidates(candidates)

	var generated int64
	var step *CashGenerationStep
	round := hostRound
	for _, c := range ranked {
		if generated >= deficit {
			break
		}
		if step != nil && len(step.PlayersToSell) >= p.maxPerRound {
			plan.Plan = append(plan.Plan, finishStep(*step))
			step = nil
			round++
		}
		if round > lastRound {
			break
		}
		if step == nil {
			step = &CashGenerationStep{Round: round}
		}
		step.PlayersToSell = append(step.PlayersToSell, SaleCandidate{
			PlayerID:  c.PlayerID,
			Name:      c.Name,
			SellPrice: c.SellPrice,
		})
		step.CashGenerated += c.SellPrice
		generated += c.SellPrice
	}
	if step != nil {
		plan.Plan = append(plan.Plan, finishStep(*step))
	}

	if generated < deficit {
		return plan, fmt.Errorf("%w: roster raises %s of the %s needed by round %d",
			ErrInsufficientRosterValue, format.Currency(generated), format.Currency(deficit), lastRound)
	}
	return plan, nil
}

func finishStep(step CashGenerationStep) CashGenerationStep {
	noun := "player"
	if len(step.PlayersToSell) != 1 {
		noun = "players"
	}
	step.Action = fmt.Sprintf("Sell %d %s to raise %s", len(step.PlayersToSell), noun, format.Compact(step.CashGenerated))
	return step
}

func rankSellCandidates(candidates []RosterPlayer) []RosterPlayer {
	ranked := make([]RosterPlayer, 0, len(candidates))
	for _, c := range candidates {
		if c.SellPrice > 0 {
			ranked = append(ranked, c)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PriceTrend != b.PriceTrend {
			return a.PriceTrend < b.PriceTrend
		}
		if a.SellPrice != b.SellPrice {
			return a.SellPrice > b.SellPrice
		}
		return a.PlayerID < b.PlayerID
	})
	return ranked
}
