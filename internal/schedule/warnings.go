package schedule

import (
	"fmt"
	"sort"

	"github.com/iwvelando/wishlist-scheduler/pkg/format"
)

// Inspector derives warnings from an assembled schedule.
type Inspector struct {
	lowConfidence int
	sellThreshold int
}

// NewInspector creates an inspector that flags trades below lowConfidence and
// cash steps selling more than sellThreshold players.
func NewInspector(lowConfidence, sellThreshold int) *Inspector {
	return &Inspector{lowConfidence: lowConfidence, sellThreshold: sellThreshold}
}

// Inspect checks the schedule and optional cash plan. Invariant breaches are
// reported as errors rather than corrected.
func (i *Inspector) Inspect(schedule []RoundSchedule, cashPlan *CashGenerationPlan) []ScheduleWarning {
	warnings := []ScheduleWarning{}
	seen := make(map[int]int)

	for _, rs := range schedule {
		var committed int64
		for _, trade := range rs.Trades {
			committed += trade.ProjectedPrice

			if prev, ok := seen[trade.PlayerID]; ok {
				issue := fmt.Sprintf("%s is scheduled more than once", trade.PlayerName)
				if prev != rs.Round {
					issue = fmt.Sprintf("%s is scheduled in round %d and round %d", trade.PlayerName, prev, rs.Round)
				}
				warnings = append(warnings, ScheduleWarning{
					Round:    rs.Round,
					Severity: SeverityError,
					Code:     CodeDuplicateTrade,
					Issue:    issue,
				})
			} else {
				seen[trade.PlayerID] = rs.Round
			}

			if trade.Affordability.RemainingSalaryAfterTrade < 0 {
				warnings = append(warnings, ScheduleWarning{
					Round:    rs.Round,
					Severity: SeverityError,
					Code:     CodeEngineInvariantViolation,
					Issue: fmt.Sprintf("%s leaves %s after trading in",
						trade.PlayerName, format.Currency(trade.Affordability.RemainingSalaryAfterTrade)),
				})
			}

			if trade.Affordability.Confidence < i.lowConfidence {
				warnings = append(warnings, ScheduleWarning{
					Round:      rs.Round,
					Severity:   SeverityWarning,
					Code:       CodeLowConfidence,
					Issue:      fmt.Sprintf("Low confidence (%d) trading in %s", trade.Affordability.Confidence, trade.PlayerName),
					Suggestion: "Keep extra salary in reserve or wait for projections to firm up",
				})
			}

			if trade.FirstFeasibleRound > 0 && rs.Round > trade.FirstFeasibleRound {
				warnings = append(warnings, ScheduleWarning{
					Round:    rs.Round,
					Severity: SeverityInfo,
					Code:     CodeBudgetContention,
					Issue: fmt.Sprintf("%s moved from round %d to round %d because cheaper targets used the budget",
						trade.PlayerName, trade.FirstFeasibleRound, rs.Round),
				})
			}
		}

		if committed > rs.SalaryAvailable {
			warnings = append(warnings, ScheduleWarning{
				Round:    rs.Round,
				Severity: SeverityError,
				Code:     CodeEngineInvariantViolation,
				Issue: fmt.Sprintf("Round %d commits %s against %s available",
					rs.Round, format.Currency(committed), format.Currency(rs.SalaryAvailable)),
			})
		}
	}

	if cashPlan != nil {
		for _, step := range cashPlan.Plan {
			if len(step.PlayersToSell) > i.sellThreshold {
				warnings = append(warnings, ScheduleWarning{
					Round:      step.Round,
					Severity:   SeverityWarning,
					Code:       CodeSellVolume,
					Issue:      fmt.Sprintf("Round %d sells %d players", step.Round, len(step.PlayersToSell)),
					Suggestion: "Spread sales across rounds if trade limits allow",
				})
			}
		}
	}

	SortWarnings(warnings)
	return warnings
}

// SortWarnings orders warnings by round, then severity, keeping emission
// order for ties.
func SortWarnings(warnings []ScheduleWarning) {
	sort.SliceStable(warnings, func(a, b int) bool {
		if warnings[a].Round != warnings[b].Round {
			return warnings[a].Round < warnings[b].Round
		}
		return warnings[a].Severity.rank() < warnings[b].Severity.rank()
	})
}
