package models

import (
	"time"

	"gorm.io/datatypes"
)

// Action types written to the game history.
const (
	ActionPlayCard          = "play_card"
	ActionDrawCards         = "draw_cards"
	ActionPlacePendingCards = "place_pending_cards"
	ActionUpdateHand        = "update_hand"
	ActionUpdateGameSize    = "update_game_size"
	ActionCompleteGame      = "complete_game"
)

// GameHistory is an append-only audit record of one user action.
type GameHistory struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	EventID    string            `gorm:"size:36;uniqueIndex;not null" json:"event_id"`
	UserID     uint              `gorm:"index;not null" json:"user_id"`
	ActionType string            `gorm:"size:50;not null" json:"action_type"`
	ActionData datatypes.JSONMap `json:"action_data"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
}

func (GameHistory) TableName() string {
	return "game_history"
}
