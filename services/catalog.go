package services

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/bellapacxx/jetlag-backend/data"
	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/bellapacxx/jetlag-backend/utils/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReadCardsFile parses card definitions from path, or from the bundled
// catalog when path is empty.
func ReadCardsFile(path string) ([]game.Card, error) {
	raw := data.DefaultCards
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		raw = b
	}

	var cards []game.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("unmarshal card definitions: %w", err)
	}
	return cards, nil
}

// SeedCatalog inserts the definitions when the cards table is empty.
// Existing rows are left alone so edits made in the database survive restarts.
func SeedCatalog(db *gorm.DB, cards []game.Card) (int, error) {
	var n int64
	if err := db.Model(&models.Card{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	if n > 0 {
		return 0, nil
	}

	catalog, err := game.NewCatalog(cards)
	if err != nil {
		return 0, err
	}

	if catalog.Len() == 0 {
		return 0, nil
	}
	rows := make([]models.Card, 0, catalog.Len())
	for _, c := range catalog.Cards() {
		rows = append(rows, models.NewCard(c))
	}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, 100)
	if res.Error != nil {
		return 0, fmt.Errorf("seed cards: %w", res.Error)
	}
	logger.Infof("[Catalog] Seeded %d card definitions", res.RowsAffected)
	return int(res.RowsAffected), nil
}

// LoadCatalog reads every card row, in id order, into a catalog.
func LoadCatalog(db *gorm.DB) (*game.Catalog, error) {
	var rows []models.Card
	if err := db.Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load cards: %w", err)
	}

	cards := make([]game.Card, len(rows))
	for i, r := range rows {
		cards[i] = r.ToGame()
	}
	catalog, err := game.NewCatalog(cards)
	if err != nil {
		return nil, err
	}
	logger.Infof("[Catalog] Loaded %d card definitions", catalog.Len())
	return catalog, nil
}
