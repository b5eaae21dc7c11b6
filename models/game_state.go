package models

import (
	"time"

	"github.com/bellapacxx/jetlag-backend/game"
	"gorm.io/datatypes"
)

// GameState is the persisted game of one user. Hand, tally and discard
// pile are stored as JSON documents; Version guards concurrent writers.
type GameState struct {
	ID          uint                               `gorm:"primaryKey" json:"id"`
	UserID      uint                               `gorm:"uniqueIndex;not null" json:"user_id"`
	Hand        datatypes.JSONType[game.Hand]      `gorm:"not null" json:"hand"`
	Difficulty  int                                `gorm:"not null" json:"game_size"`
	DeckTally   datatypes.JSONType[map[string]int] `gorm:"not null" json:"deck_composition"`
	DiscardPile datatypes.JSONType[[]game.Card]    `gorm:"not null" json:"discard_pile"`
	Version     int                                `gorm:"not null;default:0" json:"-"`
	CreatedAt   time.Time                          `json:"created_at"`
	UpdatedAt   time.Time                          `json:"updated_at"`
}

// NewGameState builds the record for a user's fresh state.
func NewGameState(userID uint, s game.State) GameState {
	gs := GameState{UserID: userID}
	gs.set(s)
	return gs
}

// State returns the domain view of the record.
func (g *GameState) State() game.State {
	s := game.State{
		Hand:        g.Hand.Data(),
		Difficulty:  game.Difficulty(g.Difficulty),
		DeckTally:   g.DeckTally.Data(),
		DiscardPile: g.DiscardPile.Data(),
	}
	if s.DeckTally == nil {
		s.DeckTally = map[string]int{}
	}
	if s.DiscardPile == nil {
		s.DiscardPile = []game.Card{}
	}
	return s
}

func (g *GameState) set(s game.State) {
	g.Hand = datatypes.NewJSONType(s.Hand)
	g.Difficulty = int(s.Difficulty)
	g.DeckTally = datatypes.NewJSONType(s.DeckTally)
	g.DiscardPile = datatypes.NewJSONType(s.DiscardPile)
}

// Columns returns the column values for writing s over this record,
// including the bumped version.
func (g *GameState) Columns(s game.State) map[string]interface{} {
	return map[string]interface{}{
		"hand":         datatypes.NewJSONType(s.Hand),
		"difficulty":   int(s.Difficulty),
		"deck_tally":   datatypes.NewJSONType(s.DeckTally),
		"discard_pile": datatypes.NewJSONType(s.DiscardPile),
		"version":      g.Version + 1,
	}
}

// Applied records that s was written with Columns.
func (g *GameState) Applied(s game.State) {
	g.set(s)
	g.Version++
}
