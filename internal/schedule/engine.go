package schedule

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/pkg/format"
	"github.com/iwvelando/wishlist-scheduler/pkg/mathutil"
	"go.uber.org/zap"
)

// Engine builds wishlist schedules. It holds only configuration, so one
// Engine can serve concurrent Build calls.
type Engine struct {
	logger    *zap.Logger
	cfg       config.EngineConfig
	scorer    *Scorer
	planner   *CashPlanner
	inspector *Inspector
}

// NewEngine creates an engine with the given policy. If logger is nil, it
// will use a no-op logger.
func NewEngine(logger *zap.Logger, cfg config.EngineConfig) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg.Normalize()
	return &Engine{
		logger:    logger,
		cfg:       cfg,
		scorer:    NewScorer(cfg),
		planner:   NewCashPlanner(cfg.MaxTradesPerRound),
		inspector: NewInspector(cfg.LowConfidenceThreshold, cfg.SellWarningThreshold),
	}
}

// Config returns the normalized policy the engine runs with.
func (e *Engine) Config() config.EngineConfig {
	return e.cfg
}

type candidate struct {
	player WishlistPlayer
	quote  Quote
	score  Score
}

type unfunded struct {
	player WishlistPlayer
	round  int
	cost   int64
}

// Build schedules the wishlist over the horizon. Only ErrInvalidInput is
// returned as an error; every other problem becomes a warning in the
// response.
func (e *Engine) Build(in Input, projector PriceProjector) (WishlistScheduleResponse, error) {
	if projector == nil {
		return WishlistScheduleResponse{}, fmt.Errorf("%w: no price projector", ErrInvalidInput)
	}
	if err := in.Validate(); err != nil {
		return WishlistScheduleResponse{}, err
	}

	horizon := in.Horizon
	if horizon == 0 {
		horizon = e.cfg.Horizon
	}
	if horizon > e.cfg.MaxHorizon {
		return WishlistScheduleResponse{}, fmt.Errorf("%w: horizon %d exceeds the limit of %d rounds",
			ErrInvalidInput, horizon, e.cfg.MaxHorizon)
	}
	firstRound := in.CurrentRound
	lastRound := firstRound + horizon - 1

	calc := NewCalculator(projector)
	ledger := in.RemainingSalary
	scheduled := make(map[int]bool, len(in.Wishlist))
	firstFeasible := make(map[int]int, len(in.Wishlist))
	gaps := make(map[int][]int)
	rounds := []RoundSchedule{}
	var confidences []int

	for round := firstRound; round <= lastRound; round++ {
		entering := ledger

		var candidates []candidate
		for _, player := range in.Wishlist {
			if scheduled[player.PlayerID] {
				continue
			}
			q, err := calc.Evaluate(player, round, entering)
			if errors.Is(err, ErrProjectionUnavailable) {
				gaps[player.PlayerID] = append(gaps[player.PlayerID], round)
				continue
			}
			if err != nil {
				return WishlistScheduleResponse{}, err
			}
			if !q.Feasible() {
				continue
			}
			if _, ok := firstFeasible[player.PlayerID]; !ok {
				firstFeasible[player.PlayerID] = round
			}
			candidates = append(candidates, candidate{
				player: player,
				quote:  q,
				score:  e.scorer.Score(q, e.context(player, q, projector)),
			})
		}
		sortCandidates(candidates)

		rs := RoundSchedule{Round: round, SalaryAvailable: entering, Trades: []ScheduledTrade{}}
		for _, c := range candidates {
			if c.quote.ProjectedPrice > ledger {
				continue
			}
			// Re-quote against the ledger left by earlier commits this round.
			q, err := calc.Evaluate(c.player, round, ledger)
			if err != nil || !q.Feasible() {
				continue
			}
			score := e.scorer.Score(q, e.context(c.player, q, projector))

			breakdown := make([]string, 0, len(q.Breakdown)+len(score.Notes))
			breakdown = append(breakdown, q.Breakdown...)
			breakdown = append(breakdown, score.Notes...)

			rs.Trades = append(rs.Trades, ScheduledTrade{
				PlayerID:           c.player.PlayerID,
				PlayerName:         c.player.Name,
				Position:           c.player.Position,
				ProjectedPrice:     q.ProjectedPrice,
				FirstFeasibleRound: firstFeasible[c.player.PlayerID],
				Affordability: AffordabilityResult{
					Verdict:                   VerdictFeasible,
					Confidence:                score.Value,
					Label:                     score.Label,
					RemainingSalaryAfterTrade: q.Remaining,
					Breakdown:                 breakdown,
				},
			})
			ledger = q.Remaining
			scheduled[c.player.PlayerID] = true
			confidences = append(confidences, score.Value)

			e.logger.Debug("committed trade",
				zap.String("op", "schedule.Build"),
				zap.Int("round", round),
				zap.Int("playerID", c.player.PlayerID),
				zap.Int64("price", q.ProjectedPrice),
				zap.Int64("ledger", ledger),
				zap.Int("confidence", score.Value),
			)
		}
		rs.SalaryRemaining = ledger

		if len(rs.Trades) > 0 {
			rounds = append(rounds, rs)
		}
	}

	var warnings []ScheduleWarning
	var pending []unfunded
	for _, player := range in.Wishlist {
		missing := gaps[player.PlayerID]
		if scheduled[player.PlayerID] {
			if len(missing) > 0 {
				warnings = append(warnings, gapWarning(player, missing))
			}
			continue
		}

		round, cost, ok := firstProjection(projector, player.PlayerID, firstRound, lastRound)
		if !ok {
			e.logger.Warn("no projection within horizon",
				zap.String("op", "schedule.Build"),
				zap.Int("playerID", player.PlayerID),
				zap.Int("firstRound", firstRound),
				zap.Int("lastRound", lastRound),
			)
			warnings = append(warnings, ScheduleWarning{
				Round:      firstRound,
				Severity:   SeverityWarning,
				Code:       CodeProjectionUnavailable,
				Issue:      fmt.Sprintf("No price projection for %s in rounds %d-%d", player.Name, firstRound, lastRound),
				Suggestion: "Retry once projections are published",
			})
			continue
		}
		if len(missing) > 0 {
			warnings = append(warnings, gapWarning(player, missing))
		}
		pending = append(pending, unfunded{player: player, round: round, cost: cost})
	}

	var cashPlan *CashGenerationPlan
	if len(pending) > 0 {
		var needed int64
		for _, u := range pending {
			needed += u.cost
		}
		deficit := needed - ledger

		covered := true
		if deficit > 0 {
			plan, err := e.planner.Plan(deficit, in.CurrentTeam.Rookies, firstRound, lastRound)
			cashPlan = &plan
			if err != nil {
				covered = false
				e.logger.Warn("cash generation falls short",
					zap.String("op", "schedule.Build"),
					zap.Int64("deficit", deficit),
					zap.Int64("generated", plan.Generated()),
					zap.Error(err),
				)
				warnings = append(warnings, ScheduleWarning{
					Round:    firstRound,
					Severity: SeverityError,
					Code:     CodeInsufficientRosterValue,
					Issue: fmt.Sprintf("Selling the roster raises %s of the %s needed",
						format.Currency(plan.Generated()), format.Currency(deficit)),
					Suggestion: "Remove players from the wishlist or extend the horizon",
				})
			}
		}

		for _, u := range pending {
			if covered {
				warnings = append(warnings, ScheduleWarning{
					Round:      u.round,
					Severity:   SeverityInfo,
					Code:       CodeCashGenerationRequired,
					Issue:      fmt.Sprintf("%s (%s in round %d) needs cash from roster sales", u.player.Name, format.Compact(u.cost), u.round),
					Suggestion: "Follow the cash generation plan",
				})
				continue
			}
			warnings = append(warnings, ScheduleWarning{
				Round:    u.round,
				Severity: SeverityWarning,
				Code:     CodeInfeasibleTrade,
				Issue:    fmt.Sprintf("%s (%s in round %d) cannot be afforded by round %d", u.player.Name, format.Compact(u.cost), u.round, lastRound),
			})
		}
	}

	inspected := e.inspector.Inspect(rounds, cashPlan)
	for _, w := range inspected {
		if w.Code == CodeEngineInvariantViolation || w.Code == CodeDuplicateTrade {
			e.logger.Error("schedule failed inspection",
				zap.String("op", "schedule.Build"),
				zap.Int("round", w.Round),
				zap.String("code", string(w.Code)),
				zap.Error(fmt.Errorf("%w: %s", ErrEngineInvariantViolation, w.Issue)),
			)
		}
	}
	warnings = append(inspected, warnings...)
	SortWarnings(warnings)

	resp := WishlistScheduleResponse{
		Schedule: rounds,
		Summary: Summary{
			TotalPlayers:     len(in.Wishlist),
			FeasibleTrades:   len(confidences),
			InfeasibleTrades: len(in.Wishlist) - len(confidences),
			AvgConfidence:    mathutil.MeanRounded(confidences),
		},
		CashGenerationPlan: cashPlan,
		Warnings:           warnings,
	}

	e.logger.Debug("built schedule",
		zap.String("op", "schedule.Build"),
		zap.Int("players", resp.Summary.TotalPlayers),
		zap.Int("feasible", resp.Summary.FeasibleTrades),
		zap.Int("warnings", len(resp.Warnings)),
		zap.Bool("cashPlan", cashPlan != nil),
	)

	return resp, nil
}

// context gathers the bye and volatility signals for a quote.
func (e *Engine) context(player WishlistPlayer, q Quote, projector PriceProjector) Context {
	prices := make([]int64, 0, e.cfg.VolatilityLookback+1)
	for r := q.Round - e.cfg.VolatilityLookback; r <= q.Round; r++ {
		if r < 1 {
			continue
		}
		if price, ok := projector.Project(player.PlayerID, r); ok && price >= 0 {
			prices = append(prices, price)
		}
	}
	return Context{
		MarginRatio:     q.MarginRatio(),
		RoundsUntilBye:  RoundsUntilBye(player.ByeRounds, q.Round),
		PriceVolatility: mathutil.RelativeSwing(prices),
	}
}

// sortCandidates orders cheapest first, then higher confidence, then lower
// player id.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.quote.ProjectedPrice != b.quote.ProjectedPrice {
			return a.quote.ProjectedPrice < b.quote.ProjectedPrice
		}
		if a.score.Value != b.score.Value {
			return a.score.Value > b.score.Value
		}
		return a.player.PlayerID < b.player.PlayerID
	})
}

func firstProjection(projector PriceProjector, playerID, firstRound, lastRound int) (int, int64, bool) {
	for round := firstRound; round <= lastRound; round++ {
		if price, ok := projector.Project(playerID, round); ok && price >= 0 {
			return round, price, true
		}
	}
	return 0, 0, false
}

func gapWarning(player WishlistPlayer, rounds []int) ScheduleWarning {
	issue := fmt.Sprintf("No price projection for %s in round %d", player.Name, rounds[0])
	if len(rounds) > 1 {
		issue = fmt.Sprintf("No price projection for %s in rounds %s", player.Name, joinRounds(rounds))
	}
	return ScheduleWarning{
		Round:    rounds[0],
		Severity: SeverityWarning,
		Code:     CodeProjectionUnavailable,
		Issue:    issue,
	}
}

func joinRounds(rounds []int) string {
	s := ""
	for i, r := range rounds {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(r)
	}
	return s
}
