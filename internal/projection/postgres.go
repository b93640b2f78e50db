package projection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Player is a row of the players table.
type Player struct {
	ID           int `gorm:"primaryKey;autoIncrement:false"`
	Name         string
	Position     string
	Team         string
	CurrentPrice int64
	AddedAt      time.Time
}

// PlayerBye is a row of the player_byes table.
type PlayerBye struct {
	PlayerID int `gorm:"primaryKey;autoIncrement:false"`
	Round    int `gorm:"primaryKey;autoIncrement:false"`
}

// PriceProjection is a row of the price_projections table.
type PriceProjection struct {
	PlayerID int `gorm:"primaryKey;autoIncrement:false"`
	Round    int `gorm:"primaryKey;autoIncrement:false"`
	Price    int64
}

// PostgresSource serves players and projections from Postgres.
type PostgresSource struct {
	db     *gorm.DB
	logger *zap.Logger
}

// OpenPostgres connects to dsn.
func OpenPostgres(logger *zap.Logger, dsn string) (*PostgresSource, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return NewPostgresSource(logger, db), nil
}

// NewPostgresSource wraps an open gorm connection.
func NewPostgresSource(logger *zap.Logger, db *gorm.DB) *PostgresSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresSource{db: db, logger: logger}
}

// Migrate creates or updates the tables.
func (s *PostgresSource) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Player{}, &PlayerBye{}, &PriceProjection{}); err != nil {
		return fmt.Errorf("failed to migrate projection tables: %w", err)
	}
	s.logger.Info("migrated projection tables", zap.String("op", "projection.Migrate"))
	return nil
}

// Close releases the underlying connection pool.
func (s *PostgresSource) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Players implements Catalog.
func (s *PostgresSource) Players(ctx context.Context, ids []int) ([]schedule.WishlistPlayer, error) {
	if len(ids) == 0 {
		return []schedule.WishlistPlayer{}, nil
	}

	var rows []Player
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load players: %w", err)
	}

	var byes []PlayerBye
	if err := s.db.WithContext(ctx).Where("player_id IN ?", ids).Order("round").Find(&byes).Error; err != nil {
		return nil, fmt.Errorf("failed to load byes: %w", err)
	}

	return assemblePlayers(ids, rows, byes)
}

// Projection implements Source.
func (s *PostgresSource) Projection(ctx context.Context, playerID, round int) (int64, bool, error) {
	var row PriceProjection
	err := s.db.WithContext(ctx).
		Where("player_id = ? AND round = ?", playerID, round).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to load projection for player %d round %d: %w", playerID, round, err)
	}
	return row.Price, true, nil
}

func assemblePlayers(ids []int, rows []Player, byes []PlayerBye) ([]schedule.WishlistPlayer, error) {
	byID := make(map[int]Player, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	byeRounds := make(map[int][]int)
	for _, b := range byes {
		byeRounds[b.PlayerID] = append(byeRounds[b.PlayerID], b.Round)
	}

	out := make([]schedule.WishlistPlayer, 0, len(ids))
	for _, id := range ids {
		r, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
		}
		out = append(out, schedule.WishlistPlayer{
			PlayerID:     r.ID,
			Name:         r.Name,
			Position:     r.Position,
			Team:         r.Team,
			CurrentPrice: r.CurrentPrice,
			AddedAt:      r.AddedAt,
			ByeRounds:    byeRounds[id],
		})
	}
	return out, nil
}
