package models

import (
	"time"

	"github.com/bellapacxx/jetlag-backend/game"
	"gorm.io/datatypes"
)

// Card is one catalog definition. Rows are seeded once and read at startup.
type Card struct {
	ID           uint                                  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type         string                                `gorm:"size:32;not null" json:"type"`
	Color        string                                `gorm:"size:32" json:"color,omitempty"`
	Name         string                                `gorm:"size:100" json:"name,omitempty"`
	CountInPool  int                                   `gorm:"not null" json:"count_in_pool"`
	WeightSmall  float64                               `json:"weight_small"`
	WeightMedium float64                               `json:"weight_medium"`
	WeightLarge  float64                               `json:"weight_large"`
	Description  string                                `gorm:"type:text" json:"description,omitempty"`
	CastingCost  datatypes.JSONType[*game.CastingCost] `json:"casting_cost"`
	DiscardDraw  datatypes.JSONType[*game.DiscardDraw] `json:"discard_draw"`
	CurseText    string                                `gorm:"type:text" json:"curse_text,omitempty"`
	CreatedAt    time.Time                             `json:"created_at"`
	UpdatedAt    time.Time                             `json:"updated_at"`
}

// NewCard converts a catalog definition into its record.
func NewCard(c game.Card) Card {
	return Card{
		ID:           uint(c.ID),
		Type:         c.Type,
		Color:        c.Color,
		Name:         c.Name,
		CountInPool:  c.CountInPool,
		WeightSmall:  c.WeightSmall,
		WeightMedium: c.WeightMedium,
		WeightLarge:  c.WeightLarge,
		Description:  c.Description,
		CastingCost:  datatypes.NewJSONType(c.CastingCost),
		DiscardDraw:  datatypes.NewJSONType(c.DiscardDraw),
		CurseText:    c.CurseText,
	}
}

// ToGame returns the domain card for this record.
func (c Card) ToGame() game.Card {
	return game.Card{
		ID:           int(c.ID),
		Type:         c.Type,
		Color:        c.Color,
		Name:         c.Name,
		Description:  c.Description,
		CountInPool:  c.CountInPool,
		WeightSmall:  c.WeightSmall,
		WeightMedium: c.WeightMedium,
		WeightLarge:  c.WeightLarge,
		CastingCost:  c.CastingCost.Data(),
		DiscardDraw:  c.DiscardDraw.Data(),
		CurseText:    c.CurseText,
	}
}
