package wishlist

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/config"
	"github.com/iwvelando/wishlist-scheduler/internal/projection"
	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"github.com/iwvelando/wishlist-scheduler/pkg/constants"
	"go.uber.org/zap"
)

const redisPingTimeout = 2 * time.Second

// Setup wires a Service from configuration. The returned cleanup function
// releases any connections and is safe to call once.
func Setup(ctx context.Context, logger *zap.Logger, conf *config.Configuration) (*Service, func(), error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var closers []func() error
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("cleanup failed", zap.String("op", "wishlist.Setup"), zap.Error(err))
			}
		}
	}

	var provider projection.Provider
	switch conf.Projection.Source {
	case constants.ProjectionSourcePostgres:
		pg, err := projection.OpenPostgres(logger, conf.Projection.Postgres.DSN)
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, pg.Close)
		provider = pg
	case constants.ProjectionSourceFile:
		file, err := projection.LoadFile(conf.Projection.File)
		if err != nil {
			return nil, cleanup, err
		}
		provider = file
	default:
		return nil, cleanup, fmt.Errorf("projection source %q is not supported", conf.Projection.Source)
	}

	store := cacheStore(ctx, logger, conf.Projection.Redis, &closers)

	engine := schedule.NewEngine(logger, conf.Engine)
	svc := NewService(logger, engine, provider, provider, Options{
		Store:       store,
		CacheTTL:    conf.Projection.Redis.TTL(),
		Concurrency: conf.Projection.Concurrency,
	})

	logger.Debug("wishlist service ready",
		zap.String("op", "wishlist.Setup"),
		zap.String("source", conf.Projection.Source),
		zap.Int("horizon", engine.Config().Horizon),
	)
	return svc, cleanup, nil
}

// cacheStore prefers Redis and falls back to process memory when Redis is
// not configured or not reachable.
func cacheStore(ctx context.Context, logger *zap.Logger, cfg config.RedisConfig, closers *[]func() error) projection.CacheStore {
	if cfg.Addr == "" {
		return projection.NewMemoryStore()
	}

	rs := projection.NewRedisStore(cfg)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		logger.Warn("redis unavailable, caching projections in memory",
			zap.String("op", "wishlist.Setup"),
			zap.String("addr", cfg.Addr),
			zap.Error(err),
		)
		_ = rs.Close()
		return projection.NewMemoryStore()
	}
	*closers = append(*closers, rs.Close)
	return rs
}
