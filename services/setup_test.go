package services

import (
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/bellapacxx/jetlag-backend/config"
	"github.com/bellapacxx/jetlag-backend/game"
	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	cardRed      = 1
	cardDiscard1 = 2
	cardCurse    = 3
	cardVeto     = 4
)

func testCards() []game.Card {
	return []game.Card{
		{ID: cardRed, Type: game.TypeTimeBonus, Color: "Red", CountInPool: 3, WeightSmall: 2, WeightMedium: 3, WeightLarge: 5},
		{ID: cardDiscard1, Type: game.TypeAction, Name: "Discard 1 Draw 2", CountInPool: 2},
		{ID: cardCurse, Type: game.TypeCurse, Name: "Curse of the Cairn", CountInPool: 1,
			WeightSmall: 1, WeightMedium: 1, WeightLarge: 1,
			CastingCost: &game.CastingCost{Discard: 1}, CurseText: "Build a rock tower."},
		{ID: cardVeto, Type: game.TypePowerUp, Name: "Veto", CountInPool: 2, WeightMedium: 1, WeightLarge: 1},
	}
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the in-memory database alive and shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type recordingPublisher struct {
	mu      sync.Mutex
	entries []models.GameHistory
}

func (p *recordingPublisher) Publish(entry models.GameHistory) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entries = append(p.entries, entry)
	return nil
}

func (p *recordingPublisher) Close() {}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.ActionType
	}
	return out
}

func newTestService(t *testing.T) (*GameService, *gorm.DB, *recordingPublisher) {
	t.Helper()
	db := newTestDB(t)
	if _, err := SeedCatalog(db, testCards()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	catalog, err := LoadCatalog(db)
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	pub := &recordingPublisher{}
	sampler := game.NewSampler(catalog, rand.New(rand.NewPCG(1, 2)))
	svc := NewGameService(db, catalog, sampler, Options{Events: pub, DefaultDifficulty: 5})
	return svc, db, pub
}

func card(t *testing.T, svc *GameService, id int) *game.Card {
	t.Helper()
	c, ok := svc.Catalog().Lookup(id)
	if !ok {
		t.Fatalf("no card %d", id)
	}
	return &c
}

func hand(t *testing.T, svc *GameService, ids ...int) []*game.Card {
	t.Helper()
	slots := make([]*game.Card, game.HandSize)
	for i, id := range ids {
		if id != 0 {
			slots[i] = card(t, svc, id)
		}
	}
	return slots
}

func handIDList(h game.Hand) []int {
	out := make([]int, len(h))
	for i, c := range h {
		if c != nil {
			out[i] = c.ID
		}
	}
	return out
}
