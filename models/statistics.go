package models

import "time"

// UserStatistics holds per-user counters. They only ever grow.
type UserStatistics struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UserID           uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	TotalCardsDrawn  int       `gorm:"not null;default:0" json:"total_cards_drawn"`
	TotalCardsPlayed int       `gorm:"not null;default:0" json:"total_cards_played"`
	GamesCompleted   int       `gorm:"not null;default:0" json:"games_completed"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}
