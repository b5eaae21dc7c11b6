package services

import (
	"errors"
	"fmt"

	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// txn is one user's game inside an open transaction. Everything it writes
// commits or rolls back together.
type txn struct {
	tx      *gorm.DB
	userID  uint
	row     *models.GameState
	history []models.GameHistory
}

func (t *txn) state() game.State {
	return t.row.State()
}

// save writes next over the row, failing with ErrConflict if another
// writer bumped the version since it was read.
func (t *txn) save(next game.State) error {
	res := t.tx.Model(&models.GameState{}).
		Where("id = ? AND version = ?", t.row.ID, t.row.Version).
		Updates(t.row.Columns(next))
	if res.Error != nil {
		return fmt.Errorf("save game state: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return game.ErrConflict
	}
	t.row.Applied(next)
	return nil
}

// record appends a history entry.
func (t *txn) record(action string, data map[string]interface{}) error {
	entry := models.GameHistory{
		EventID:    uuid.NewString(),
		UserID:     t.userID,
		ActionType: action,
		ActionData: data,
	}
	if err := t.tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("record %s: %w", action, err)
	}
	t.history = append(t.history, entry)
	return nil
}

// bump adds to the user's counters. Counters are never set directly.
func (t *txn) bump(drawn, played, completed int) error {
	if err := ensureStatistics(t.tx, t.userID); err != nil {
		return err
	}

	delta := map[string]interface{}{}
	if drawn > 0 {
		delta["total_cards_drawn"] = gorm.Expr("total_cards_drawn + ?", drawn)
	}
	if played > 0 {
		delta["total_cards_played"] = gorm.Expr("total_cards_played + ?", played)
	}
	if completed > 0 {
		delta["games_completed"] = gorm.Expr("games_completed + ?", completed)
	}
	if len(delta) == 0 {
		return nil
	}

	err := t.tx.Model(&models.UserStatistics{}).
		Where("user_id = ?", t.userID).
		Updates(delta).Error
	if err != nil {
		return fmt.Errorf("update statistics: %w", err)
	}
	return nil
}

func ensureStatistics(tx *gorm.DB, userID uint) error {
	stats := models.UserStatistics{UserID: userID}
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&stats).Error
	if err != nil {
		return fmt.Errorf("create statistics: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
