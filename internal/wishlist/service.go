// Package wishlist serves schedule requests: it resolves the requested
// players and their projections, then runs the scheduling engine.
package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/projection"
	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"go.uber.org/zap"
)

// Request is the body of a schedule request.
type Request struct {
	PlayerIDs       []int         `json:"playerIds" jsonschema:"ids of the wishlist players"`
	CurrentRound    int           `json:"currentRound" jsonschema:"the round being played now"`
	RemainingSalary int64         `json:"remainingSalary" jsonschema:"salary cap left in whole dollars"`
	CurrentTeam     schedule.Team `json:"currentTeam" jsonschema:"the roster available for sale"`
	Horizon         int           `json:"horizon,omitempty" jsonschema:"number of rounds to plan, defaults to the configured horizon"`
}

// Validate checks the request. Failures wrap schedule.ErrInvalidInput.
func (r Request) Validate() error {
	if r.CurrentRound < 1 {
		return fmt.Errorf("%w: currentRound must be at least 1", schedule.ErrInvalidInput)
	}
	if r.RemainingSalary < 0 {
		return fmt.Errorf("%w: remainingSalary cannot be negative", schedule.ErrInvalidInput)
	}
	if r.CurrentRound > constants.MaxRound {
		return fmt.Errorf("%w: currentRound cannot exceed %d", schedule.ErrInvalidInput, constants.MaxRound)
	}
	if r.Horizon < 0 {
		return fmt.Errorf("%w: horizon cannot be negative", schedule.ErrInvalidInput)
	}
	if r.Horizon > constants.MaxRound {
		return fmt.Errorf("%w: horizon cannot exceed %d", schedule.ErrInvalidInput, constants.MaxRound)
	}

	seen := make(map[int]bool, len(r.PlayerIDs))
	for _, id := range r.PlayerIDs {
		if id <= 0 {
			return fmt.Errorf("%w: player id %d is invalid", schedule.ErrInvalidInput, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: player id %d is repeated", schedule.ErrInvalidInput, id)
		}
		seen[id] = true
	}
	return nil
}

// Options tunes how a Service resolves projections.
type Options struct {
	// Store caches projections when set.
	Store       projection.CacheStore
	CacheTTL    time.Duration
	Concurrency int
}

// Service answers schedule requests.
type Service struct {
	logger  *zap.Logger
	engine  *schedule.Engine
	catalog projection.Catalog
	source  projection.Source
	opts    Options
}

// NewService creates a Service. If logger is nil, it will use a no-op logger.
func NewService(logger *zap.Logger, engine *schedule.Engine, catalog projection.Catalog, source projection.Source, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		logger:  logger,
		engine:  engine,
		catalog: catalog,
		source:  source,
		opts:    opts,
	}
}

// Schedule builds the wishlist schedule for req.
func (s *Service) Schedule(ctx context.Context, req Request) (schedule.WishlistScheduleResponse, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return schedule.WishlistScheduleResponse{}, err
	}

	players, err := s.catalog.Players(ctx, req.PlayerIDs)
	if errors.Is(err, projection.ErrUnknownPlayer) {
		return schedule.WishlistScheduleResponse{}, fmt.Errorf("%w: %v", schedule.ErrInvalidInput, err)
	}
	if err != nil {
		return schedule.WishlistScheduleResponse{}, fmt.Errorf("failed to resolve players: %w", err)
	}

	cfg := s.engine.Config()
	horizon := req.Horizon
	if horizon == 0 {
		horizon = cfg.Horizon
	}
	if horizon > cfg.MaxHorizon {
		return schedule.WishlistScheduleResponse{}, fmt.Errorf("%w: horizon %d exceeds the limit of %d rounds",
			schedule.ErrInvalidInput, horizon, cfg.MaxHorizon)
	}
	firstRound := req.CurrentRound - cfg.VolatilityLookback
	lastRound := req.CurrentRound + horizon - 1

	source := s.source
	if s.opts.Store != nil {
		source = projection.NewCachedSource(s.logger, source, s.opts.Store, req.CurrentRound, s.opts.CacheTTL)
	}

	table, err := projection.Prefetch(ctx, source, req.PlayerIDs, firstRound, lastRound, s.opts.Concurrency)
	if err != nil {
		return schedule.WishlistScheduleResponse{}, fmt.Errorf("failed to resolve projections: %w", err)
	}

	resp, err := s.engine.Build(schedule.Input{
		Wishlist:        players,
		CurrentTeam:     req.CurrentTeam,
		RemainingSalary: req.RemainingSalary,
		CurrentRound:    req.CurrentRound,
		Horizon:         horizon,
	}, table)
	if err != nil {
		return schedule.WishlistScheduleResponse{}, err
	}

	s.logger.Info("built wishlist schedule",
		zap.String("op", "wishlist.Service.Schedule"),
		zap.Int("players", resp.Summary.TotalPlayers),
		zap.Int("feasible", resp.Summary.FeasibleTrades),
		zap.Int("avgConfidence", resp.Summary.AvgConfidence),
		zap.Int("warnings", len(resp.Warnings)),
		zap.Int("projections", table.Len()),
		zap.Duration("duration", time.Since(start)),
	)

	return resp, nil
}

// Migrate prepares the backing store when it supports migrations.
func (s *Service) Migrate(ctx context.Context) error {
	m, ok := s.source.(interface {
		Migrate(context.Context) error
	})
	if !ok {
		return fmt.Errorf("projection source does not support migrations")
	}
	return m.Migrate(ctx)
}
