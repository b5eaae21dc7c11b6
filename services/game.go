package services

import (
	"context"
	"fmt"

	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/bellapacxx/jetlag-backend/utils/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// GameService runs player actions against persisted game state. Actions
// for one user are serialized in process, and each one is a single
// database transaction.
type GameService struct {
	db                *gorm.DB
	engine            *game.Engine
	sampler           *game.Sampler
	locks             *userLocks
	events            EventPublisher
	defaultDifficulty game.Difficulty
}

// Options tunes a GameService. The zero value is usable.
type Options struct {
	Events            EventPublisher
	DefaultDifficulty int
}

func NewGameService(db *gorm.DB, catalog *game.Catalog, sampler *game.Sampler, opts Options) *GameService {
	d := game.Difficulty(opts.DefaultDifficulty)
	if !d.Valid() {
		d = game.DefaultDifficulty
	}
	events := opts.Events
	if events == nil {
		events = NopPublisher()
	}
	return &GameService{
		db:                db,
		engine:            game.NewEngine(catalog, sampler),
		sampler:           sampler,
		locks:             newUserLocks(),
		events:            events,
		defaultDifficulty: d,
	}
}

func (s *GameService) Catalog() *game.Catalog { return s.engine.Catalog() }

// PlayOutcome is what a client needs to render after a play.
type PlayOutcome struct {
	State            game.State
	Played           game.Card
	Drew             bool
	DrawnCards       []game.Card
	AutoPlaced       bool
	PlacedPositions  []int
	MustDiscardCount int
	Curse            *game.Card
}

// DrawOutcome holds the cards offered for a question, of which Pick may be kept.
type DrawOutcome struct {
	Cards []game.Card
	Count int
	Pick  int
}

// GetOrCreateState returns the user's game, creating it at difficulty (or
// the default, for 0 or an unknown level) on first use.
func (s *GameService) GetOrCreateState(ctx context.Context, userID uint, difficulty int) (game.State, error) {
	var row models.GameState
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&row).Error
	if err == nil {
		return row.State(), nil
	}
	if !isNotFound(err) {
		return game.State{}, fmt.Errorf("load game state: %w", err)
	}

	d := game.Difficulty(difficulty)
	if !d.Valid() {
		d = s.defaultDifficulty
	}
	var st game.State
	err = s.mutateAt(ctx, userID, d, func(t *txn) error {
		st = t.state()
		return nil
	})
	return st, err
}

func (s *GameService) PlayCard(ctx context.Context, userID uint, position int, discard []int) (*PlayOutcome, error) {
	var out *PlayOutcome
	err := s.mutate(ctx, userID, func(t *txn) error {
		res, err := s.engine.Play(t.state(), position, discard)
		if err != nil {
			return err
		}
		if err := t.save(res.State); err != nil {
			return err
		}

		if err := t.record(models.ActionPlayCard, map[string]interface{}{
			"card":              res.Played,
			"position":          position,
			"discard_positions": res.Discarded,
			"effect":            res.Effect.Kind.String(),
		}); err != nil {
			return err
		}
		drawn := len(res.DrawnCards)
		if res.Drew() {
			if err := t.record(models.ActionDrawCards, map[string]interface{}{
				"count":            drawn,
				"source":           res.Played.Name,
				"auto_placed":      res.AutoPlaced,
				"placed_positions": res.PlacedPositions,
			}); err != nil {
				return err
			}
		}
		if err := t.bump(drawn, 1, 0); err != nil {
			return err
		}

		out = &PlayOutcome{
			State:            res.State,
			Played:           res.Played,
			Drew:             res.Drew(),
			DrawnCards:       res.DrawnCards,
			AutoPlaced:       res.AutoPlaced,
			PlacedPositions:  res.PlacedPositions,
			MustDiscardCount: res.MustDiscardCount,
			Curse:            res.Curse,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debugf("[Game] user %d played card %d from position %d", userID, out.Played.ID, position)
	return out, nil
}

// PlacePending puts cards that did not fit after a draw into the hand,
// discarding the cards at discard to make room.
func (s *GameService) PlacePending(ctx context.Context, userID uint, cards []game.Card, discard []int) (game.State, error) {
	var st game.State
	err := s.mutate(ctx, userID, func(t *txn) error {
		next, err := s.engine.PlacePending(t.state(), cards, discard)
		if err != nil {
			return err
		}
		if err := t.save(next); err != nil {
			return err
		}
		ids := make([]int, len(cards))
		for i, c := range cards {
			ids[i] = c.ID
		}
		st = next
		return t.record(models.ActionPlacePendingCards, map[string]interface{}{
			"card_ids":          ids,
			"discard_positions": discard,
		})
	})
	return st, err
}

// SetDifficulty changes the game size. Setting the current size again
// writes nothing.
func (s *GameService) SetDifficulty(ctx context.Context, userID uint, level int) (game.State, error) {
	var st game.State
	err := s.mutate(ctx, userID, func(t *txn) error {
		prev := t.state()
		next, changed, err := s.engine.SetDifficulty(prev, level)
		if err != nil {
			return err
		}
		st = next
		if !changed {
			return nil
		}
		if err := t.save(next); err != nil {
			return err
		}
		return t.record(models.ActionUpdateGameSize, map[string]interface{}{
			"old_size": int(prev.Difficulty),
			"new_size": int(next.Difficulty),
		})
	})
	return st, err
}

// SetHand replaces the hand wholesale.
func (s *GameService) SetHand(ctx context.Context, userID uint, slots []*game.Card) (game.State, error) {
	var st game.State
	err := s.mutate(ctx, userID, func(t *txn) error {
		next, err := s.engine.SetHand(t.state(), slots)
		if err != nil {
			return err
		}
		if err := t.save(next); err != nil {
			return err
		}
		st = next
		return t.record(models.ActionUpdateHand, map[string]interface{}{
			"hand": handIDs(next.Hand),
		})
	})
	return st, err
}

// Draw offers cards for a question. The cards are not added to the hand.
func (s *GameService) Draw(ctx context.Context, userID uint, questionType string) (*DrawOutcome, error) {
	q, err := game.ParseQuestionType(questionType)
	if err != nil {
		return nil, err
	}
	count, pick := q.DrawCount()

	var out *DrawOutcome
	err = s.mutate(ctx, userID, func(t *txn) error {
		cards := s.sampler.Sample(count, t.state().Difficulty)
		if err := t.record(models.ActionDrawCards, map[string]interface{}{
			"question_type": string(q),
			"count":         len(cards),
		}); err != nil {
			return err
		}
		if err := t.bump(len(cards), 0, 0); err != nil {
			return err
		}
		out = &DrawOutcome{Cards: cards, Count: count, Pick: pick}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompleteGame ends the current game and starts a fresh one at the same size.
func (s *GameService) CompleteGame(ctx context.Context, userID uint) (game.State, error) {
	var st game.State
	err := s.mutate(ctx, userID, func(t *txn) error {
		prev := t.state()
		next := s.engine.Complete(prev)
		if err := t.save(next); err != nil {
			return err
		}
		if err := t.record(models.ActionCompleteGame, map[string]interface{}{
			"cards_in_hand":     prev.Hand.Count(),
			"discard_pile_size": len(prev.DiscardPile),
			"game_size":         int(prev.Difficulty),
		}); err != nil {
			return err
		}
		st = next
		return t.bump(0, 0, 1)
	})
	if err == nil {
		logger.Infof("[Game] user %d completed a game", userID)
	}
	return st, err
}

// Sample draws count cards at difficulty without touching any game.
// difficulty 0 means the default.
func (s *GameService) Sample(count, difficulty int) ([]game.Card, error) {
	d := s.defaultDifficulty
	if difficulty != 0 {
		var err error
		if d, err = game.ParseDifficulty(difficulty); err != nil {
			return nil, err
		}
	}
	return s.sampler.Sample(count, d), nil
}

// GetStatistics returns the user's counters, all zero if they never played.
func (s *GameService) GetStatistics(ctx context.Context, userID uint) (models.UserStatistics, error) {
	var stats models.UserStatistics
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error
	if isNotFound(err) {
		return models.UserStatistics{UserID: userID}, nil
	}
	if err != nil {
		return models.UserStatistics{}, fmt.Errorf("load statistics: %w", err)
	}
	return stats, nil
}

// GetHistory pages through the user's history, newest first.
func (s *GameService) GetHistory(ctx context.Context, userID uint, limit, offset int) ([]models.GameHistory, error) {
	switch {
	case limit == 0:
		limit = DefaultHistoryLimit
	case limit < 1:
		limit = 1
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	entries := []models.GameHistory{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	return entries, nil
}

func (s *GameService) mutate(ctx context.Context, userID uint, fn func(*txn) error) error {
	return s.mutateAt(ctx, userID, s.defaultDifficulty, fn)
}

// mutateAt runs fn on the user's game inside a transaction, creating the
// game at d if needed. History is published only after commit.
func (s *GameService) mutateAt(ctx context.Context, userID uint, d game.Difficulty, fn func(*txn) error) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	var committed []models.GameHistory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.loadForUpdate(tx, userID, d)
		if err != nil {
			return err
		}
		t := &txn{tx: tx, userID: userID, row: row}
		if err := fn(t); err != nil {
			return err
		}
		committed = t.history
		return nil
	})
	if err != nil {
		return err
	}

	for _, entry := range committed {
		if err := s.events.Publish(entry); err != nil {
			logger.With("user_id", userID, "action", entry.ActionType).Warnf("[Game] publish failed: %v", err)
		}
	}
	return nil
}

func (s *GameService) loadForUpdate(tx *gorm.DB, userID uint, d game.Difficulty) (*models.GameState, error) {
	find := func(row *models.GameState) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		return q.Where("user_id = ?", userID).First(row).Error
	}

	var row models.GameState
	err := find(&row)
	if err == nil {
		return &row, nil
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("load game state: %w", err)
	}

	fresh := models.NewGameState(userID, game.NewState(s.engine.Catalog(), d))
	err = tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&fresh).Error
	if err != nil {
		return nil, fmt.Errorf("create game state: %w", err)
	}
	if err := ensureStatistics(tx, userID); err != nil {
		return nil, err
	}

	// another process may have won the insert
	row = models.GameState{}
	if err := find(&row); err != nil {
		return nil, fmt.Errorf("load game state: %w", err)
	}
	logger.Infof("[Game] created game for user %d at size %d", userID, row.Difficulty)
	return &row, nil
}

func handIDs(h game.Hand) []interface{} {
	ids := make([]interface{}, len(h))
	for i, c := range h {
		if c != nil {
			ids[i] = c.ID
		}
	}
	return ids
}
