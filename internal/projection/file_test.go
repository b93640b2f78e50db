package projection

import (
	"context"
	"errors"
	"testing"
)

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError bool
	}{
		{"YAML data file", "testdata/players.yaml", false},
		{"JSON data file", "testdata/players.json", false},
		{"Missing file", "testdata/missing.yaml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, err := LoadFile(tt.path)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadFile() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if source == nil {
				t.Fatal("LoadFile() returned nil source")
			}
		})
	}
}

func TestFileSourceProjection(t *testing.T) {
	source, err := LoadFile("testdata/players.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name          string
		playerID      int
		round         int
		expectedPrice int64
		expectedOK    bool
	}{
		{"Known round", 101, 7, 620_000, true},
		{"Gap in projections", 102, 7, 0, false},
		{"Empty projections", 103, 7, 0, false},
		{"Unknown player", 999, 7, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, ok, err := source.Projection(ctx, tt.playerID, tt.round)
			if err != nil {
				t.Fatalf("Projection() error = %v", err)
			}
			if price != tt.expectedPrice || ok != tt.expectedOK {
				t.Errorf("Projection() = %d, %v, expected %d, %v", price, ok, tt.expectedPrice, tt.expectedOK)
			}
		})
	}
}

func TestFileSourceJSONProjection(t *testing.T) {
	source, err := LoadFile("testdata/players.json")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	price, ok, err := source.Projection(context.Background(), 201, 4)
	if err != nil || !ok || price != 712_000 {
		t.Errorf("Projection() = %d, %v, %v", price, ok, err)
	}
}

func TestFileSourcePlayers(t *testing.T) {
	source, err := LoadFile("testdata/players.yaml")
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	players, err := source.Players(context.Background(), []int{102, 101})
	if err != nil {
		t.Fatalf("Players() error = %v", err)
	}
	if len(players) != 2 || players[0].PlayerID != 102 || players[1].PlayerID != 101 {
		t.Fatalf("Players() = %+v, expected ids in request order", players)
	}
	if players[1].Name != "Nathan Cleary" || players[1].CurrentPrice != 620_000 {
		t.Errorf("Players()[1] = %+v", players[1])
	}
	if len(players[1].ByeRounds) != 1 || players[1].ByeRounds[0] != 9 {
		t.Errorf("ByeRounds = %v, expected [9]", players[1].ByeRounds)
	}

	_, err = source.Players(context.Background(), []int{101, 404})
	if !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("Players() error = %v, expected ErrUnknownPlayer", err)
	}
}

func TestNewFileSourceRejectsBadData(t *testing.T) {
	tests := []struct {
		name string
		file DataFile
	}{
		{"Zero id", DataFile{Players: []FilePlayer{{PlayerID: 0, Name: "x"}}}},
		{"Duplicate id", DataFile{Players: []FilePlayer{{PlayerID: 1}, {PlayerID: 1}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewFileSource(tt.file); err == nil {
				t.Error("NewFileSource() expected error but got none")
			}
		})
	}
}

func TestAssemblePlayers(t *testing.T) {
	rows := []Player{{ID: 2, Name: "Two"}, {ID: 1, Name: "One"}}
	byes := []PlayerBye{{PlayerID: 1, Round: 9}, {PlayerID: 1, Round: 15}}

	players, err := assemblePlayers([]int{1, 2}, rows, byes)
	if err != nil {
		t.Fatalf("assemblePlayers() error = %v", err)
	}
	if players[0].Name != "One" || players[1].Name != "Two" {
		t.Errorf("assemblePlayers() = %+v, expected request order", players)
	}
	if len(players[0].ByeRounds) != 2 || players[1].ByeRounds != nil {
		t.Errorf("ByeRounds = %v / %v", players[0].ByeRounds, players[1].ByeRounds)
	}

	if _, err := assemblePlayers([]int{3}, rows, nil); !errors.Is(err, ErrUnknownPlayer) {
		t.Errorf("assemblePlayers() error = %v, expected ErrUnknownPlayer", err)
	}
}
