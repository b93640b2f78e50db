package schedule

import (
	"fmt"
	"math"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"github.com/iwvelando/wishlist-scheduler/pkg/format"
	"github.com/iwvelando/wishlist-scheduler/pkg/mathutil"
)

// NoBye is the RoundsUntilBye value for a player without an upcoming bye.
const NoBye = -1

// floorEpsilon absorbs float error so exact ratios such as 0.03/0.15 floor to
// the intended integer.
const floorEpsilon = 1e-9

// Context carries the signals a Scorer weighs besides the quote itself.
type Context struct {
	MarginRatio     float64
	RoundsUntilBye  int
	PriceVolatility float64
}

// Score is a confidence value with its label and the notes that explain it.
type Score struct {
	Value int
	Label ConfidenceLabel
	Notes []string
}

// Scorer converts quotes into advisory confidence scores.
type Scorer struct {
	cfg config.EngineConfig
}

// NewScorer creates a scorer for the given policy.
func NewScorer(cfg config.EngineConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score rates q. Infeasible quotes always score 0; scoring never changes
// feasibility.
func (s *Scorer) Score(q Quote, ctx Context) Score {
	if !q.Feasible() {
		return Score{Value: 0, Label: LabelNone, Notes: []string{"Not affordable in this round"}}
	}

	var notes []string
	base := constants.MaxConfidence
	if ctx.MarginRatio < s.cfg.HealthyMarginRatio {
		ratio := math.Max(ctx.MarginRatio, 0)
		base = mathutil.FloorInt(float64(constants.MaxConfidence)*ratio/s.cfg.HealthyMarginRatio + floorEpsilon)
		notes = append(notes, fmt.Sprintf("Thin margin of %s (healthy is %s)",
			format.Percent(ratio), format.Percent(s.cfg.HealthyMarginRatio)))
	}

	penalty := 0
	if ctx.RoundsUntilBye >= 0 && ctx.RoundsUntilBye <= s.cfg.ByeWindow && s.cfg.ByePenalty > 0 {
		penalty += s.cfg.ByePenalty
		notes = append(notes, byeNote(ctx.RoundsUntilBye))
	}
	if ctx.PriceVolatility > s.cfg.VolatilityThreshold && s.cfg.VolatilityPenalty > 0 {
		penalty += s.cfg.VolatilityPenalty
		notes = append(notes, fmt.Sprintf("Price swung %s over the last %d rounds",
			format.Percent(ctx.PriceVolatility), s.cfg.VolatilityLookback))
	}
	penalty = mathutil.Min(penalty, s.cfg.MaxPenalty)

	value := mathutil.Clamp(base-penalty, 0, constants.MaxConfidence)
	return Score{Value: value, Label: LabelFor(value), Notes: notes}
}

func byeNote(rounds int) string {
	switch rounds {
	case 0:
		return "Bye in the trade round"
	case 1:
		return "Bye next round"
	default:
		return fmt.Sprintf("Bye in %d rounds", rounds)
	}
}

// LabelFor maps a confidence value to its label.
func LabelFor(value int) ConfidenceLabel {
	switch {
	case value >= 75:
		return LabelHigh
	case value >= 50:
		return LabelMedium
	case value > 0:
		return LabelLow
	default:
		return LabelNone
	}
}

// RoundsUntilBye returns how many rounds after round the next bye falls, or
// NoBye when there is none at or after round.
func RoundsUntilBye(byeRounds []int, round int) int {
	next := NoBye
	for _, b := range byeRounds {
		if b < round {
			continue
		}
		if next == NoBye || b-round < next {
			next = b - round
		}
	}
	return next
}
