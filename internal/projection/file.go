package projection

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/iwvelando/wishlist-scheduler/internal/schedule"
	"gopkg.in/yaml.v3"
)

// DataFile is the on-disk layout read by FileSource.
type DataFile struct {
	Players []FilePlayer `yaml:"players" json:"players"`
}

// FilePlayer is one player entry in a DataFile.
type FilePlayer struct {
	PlayerID     int           `yaml:"playerId" json:"playerId"`
	Name         string        `yaml:"name" json:"name"`
	Position     string        `yaml:"position" json:"position"`
	Team         string        `yaml:"team" json:"team"`
	CurrentPrice int64         `yaml:"currentPrice" json:"currentPrice"`
	AddedAt      time.Time     `yaml:"addedAt,omitempty" json:"addedAt,omitempty"`
	ByeRounds    []int         `yaml:"byeRounds,omitempty" json:"byeRounds,omitempty"`
	Projections  map[int]int64 `yaml:"projections" json:"projections"`
}

// FileSource serves players and projections loaded from a YAML or JSON file.
type FileSource struct {
	players map[int]FilePlayer
}

// LoadFile reads a data file. Files ending in .json are decoded as JSON, all
// others as YAML.
func LoadFile(path string) (*FileSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projection file %s: %w", path, err)
	}

	var file DataFile
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse projection file %s: %w", path, err)
	}

	return NewFileSource(file)
}

// NewFileSource indexes an already decoded DataFile.
func NewFileSource(file DataFile) (*FileSource, error) {
	players := make(map[int]FilePlayer, len(file.Players))
	for _, p := range file.Players {
		if p.PlayerID <= 0 {
			return nil, fmt.Errorf("player %q has invalid id %d", p.Name, p.PlayerID)
		}
		if _, dup := players[p.PlayerID]; dup {
			return nil, fmt.Errorf("player %d is listed more than once", p.PlayerID)
		}
		players[p.PlayerID] = p
	}
	return &FileSource{players: players}, nil
}

// Players implements Catalog.
func (f *FileSource) Players(_ context.Context, ids []int) ([]schedule.WishlistPlayer, error) {
	out := make([]schedule.WishlistPlayer, 0, len(ids))
	for _, id := range ids {
		p, ok := f.players[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownPlayer, id)
		}
		out = append(out, schedule.WishlistPlayer{
			PlayerID:     p.PlayerID,
			Name:         p.Name,
			Position:     p.Position,
			Team:         p.Team,
			CurrentPrice: p.CurrentPrice,
			AddedAt:      p.AddedAt,
			ByeRounds:    append([]int(nil), p.ByeRounds...),
		})
	}
	return out, nil
}

// Projection implements Source.
func (f *FileSource) Projection(_ context.Context, playerID, round int) (int64, bool, error) {
	p, ok := f.players[playerID]
	if !ok {
		return 0, false, nil
	}
	price, ok := p.Projections[round]
	return price, ok, nil
}
