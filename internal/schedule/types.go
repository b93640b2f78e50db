// Package schedule plans wishlist trades across upcoming rounds. It decides
// when each target becomes affordable, scores how much that decision can be
// trusted, and proposes sales from the current roster when the budget falls
// short.
package schedule

import "time"

// Verdict is the outcome of an affordability check.
type Verdict string

// Verdict values
const (
	VerdictFeasible   Verdict = "feasible"
	VerdictInfeasible Verdict = "infeasible"
)

// ConfidenceLabel buckets a confidence score for display.
type ConfidenceLabel string

// ConfidenceLabel values
const (
	LabelHigh   ConfidenceLabel = "high"
	LabelMedium ConfidenceLabel = "medium"
	LabelLow    ConfidenceLabel = "low"
	LabelNone   ConfidenceLabel = "none"
)

// Severity classifies a ScheduleWarning.
type Severity string

// Severity values
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

func (s Severity) rank() int {
	switch s {
	case SeverityError:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}

// WarningCode names the condition behind a ScheduleWarning.
type WarningCode string

// WarningCode values
const (
	CodeProjectionUnavailable    WarningCode = "PROJECTION_UNAVAILABLE"
	CodeInsufficientRosterValue  WarningCode = "INSUFFICIENT_ROSTER_VALUE"
	CodeEngineInvariantViolation WarningCode = "ENGINE_INVARIANT_VIOLATION"
	CodeLowConfidence            WarningCode = "LOW_CONFIDENCE"
	CodeSellVolume               WarningCode = "SELL_VOLUME"
	CodeBudgetContention         WarningCode = "BUDGET_CONTENTION"
	CodeInfeasibleTrade          WarningCode = "INFEASIBLE_TRADE"
	CodeCashGenerationRequired   WarningCode = "CASH_GENERATION_REQUIRED"
	CodeDuplicateTrade           WarningCode = "DUPLICATE_TRADE"
)

// WishlistPlayer is a player the user wants to trade in.
type WishlistPlayer struct {
	PlayerID     int       `json:"playerId" yaml:"playerId"`
	Name         string    `json:"name" yaml:"name"`
	Position     string    `json:"position" yaml:"position"`
	Team         string    `json:"team" yaml:"team"`
	CurrentPrice int64     `json:"currentPrice" yaml:"currentPrice"`
	AddedAt      time.Time `json:"addedAt" yaml:"addedAt"`
	ByeRounds    []int     `json:"byeRounds,omitempty" yaml:"byeRounds,omitempty"`
}

// RosterPlayer is a player the user currently owns and could sell.
type RosterPlayer struct {
	PlayerID   int     `json:"playerId"`
	Name       string  `json:"name"`
	Position   string  `json:"position"`
	SellPrice  int64   `json:"sellPrice"`
	PriceTrend float64 `json:"priceTrend"`
}

// Team is the user's current roster.
type Team struct {
	Rookies []RosterPlayer `json:"rookies"`
}

// AffordabilityResult explains whether a trade fits the budget.
type AffordabilityResult struct {
	Verdict                   Verdict         `json:"verdict"`
	Confidence                int             `json:"confidence"`
	Label                     ConfidenceLabel `json:"label"`
	RemainingSalaryAfterTrade int64           `json:"remainingSalaryAfterTrade"`
	Breakdown                 []string        `json:"breakdown"`
}

// ScheduledTrade is a committed trade for one wishlist player.
type ScheduledTrade struct {
	PlayerID           int                 `json:"playerId"`
	PlayerName         string              `json:"playerName"`
	Position           string              `json:"position"`
	ProjectedPrice     int64               `json:"projectedPrice"`
	FirstFeasibleRound int                 `json:"firstFeasibleRound"`
	Affordability      AffordabilityResult `json:"affordability"`
}

// RoundSchedule lists the trades committed in one round together with the
// ledger entering and leaving it.
type RoundSchedule struct {
	Round           int              `json:"round"`
	SalaryAvailable int64            `json:"salaryAvailable"`
	SalaryRemaining int64            `json:"salaryRemaining"`
	Trades          []ScheduledTrade `json:"trades"`
}

// SaleCandidate is a roster player chosen for sale.
type SaleCandidate struct {
	PlayerID  int    `json:"playerId"`
	Name      string `json:"name"`
	SellPrice int64  `json:"sellPrice"`
}

// CashGenerationStep is a batch of sales in one round.
type CashGenerationStep struct {
	Round         int             `json:"round"`
	Action        string          `json:"action"`
	PlayersToSell []SaleCandidate `json:"playersToSell"`
	CashGenerated int64           `json:"cashGenerated"`
}

// CashGenerationPlan closes a funding gap by selling roster players.
type CashGenerationPlan struct {
	Needed int64                `json:"needed"`
	Plan   []CashGenerationStep `json:"plan"`
}

// Generated returns the total cash raised across all steps.
func (p *CashGenerationPlan) Generated() int64 {
	if p == nil {
		return 0
	}
	var total int64
	for _, step := range p.Plan {
		total += step.CashGenerated
	}
	return total
}

// ScheduleWarning is an advisory or error attached to a round.
type ScheduleWarning struct {
	Round      int         `json:"round"`
	Severity   Severity    `json:"severity"`
	Code       WarningCode `json:"code"`
	Issue      string      `json:"issue"`
	Suggestion string      `json:"suggestion,omitempty"`
}

// Summary aggregates the outcome of a schedule.
type Summary struct {
	TotalPlayers     int `json:"totalPlayers"`
	FeasibleTrades   int `json:"feasibleTrades"`
	InfeasibleTrades int `json:"infeasibleTrades"`
	AvgConfidence    int `json:"avgConfidence"`
}

// WishlistScheduleResponse is the full result of Engine.Build.
type WishlistScheduleResponse struct {
	Schedule           []RoundSchedule     `json:"schedule"`
	Summary            Summary             `json:"summary"`
	CashGenerationPlan *CashGenerationPlan `json:"cashGenerationPlan,omitempty"`
	Warnings           []ScheduleWarning   `json:"warnings"`
}

// Input is everything Engine.Build needs besides the price projections.
type Input struct {
	Wishlist        []WishlistPlayer
	CurrentTeam     Team
	RemainingSalary int64
	CurrentRound    int
	// Horizon is the number of rounds to schedule, starting at CurrentRound.
	// Zero selects the configured default.
	Horizon int
}

// PriceProjector returns the projected price of a player in a round. ok is
// false when no projection exists.
type PriceProjector interface {
	Project(playerID, round int) (price int64, ok bool)
}

// ProjectorFunc adapts a function to PriceProjector.
type ProjectorFunc func(playerID, round int) (int64, bool)

// Project calls f.
func (f ProjectorFunc) Project(playerID, round int) (int64, bool) {
	return f(playerID, round)
}
