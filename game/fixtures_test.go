package game

import (
	"math/rand/v2"
	"testing"
)

func testCards() []Card {
	return []Card{
		{ID: 1, Type: TypeTimeBonus, Color: "red", CountInPool: 3, WeightSmall: 2, WeightMedium: 3, WeightLarge: 5},
		{ID: 2, Type: TypeTimeBonus, Color: "blue", CountInPool: 2, WeightLarge: 10},
		{ID: 3, Type: TypeAction, Name: "Discard 1 Draw 2", CountInPool: 2},
		{ID: 4, Type: TypeAction, Name: "Discard 2 Draw 3", CountInPool: 2},
		{ID: 5, Type: TypeCurse, Name: "Curse of the Zoologist", CountInPool: 1, WeightSmall: 1, WeightMedium: 1, WeightLarge: 1,
			CastingCost: &CastingCost{Discard: 2}, CurseText: "Take a photo of a wild animal."},
		{ID: 6, Type: TypeCurse, Name: "Curse of the Luxury Car", CountInPool: 1, WeightSmall: 1, WeightMedium: 1, WeightLarge: 1},
		{ID: 7, Type: TypePowerUp, Name: "Veto", CountInPool: 4},
		{ID: 8, Type: TypeAction, Name: "Duplicate", CountInPool: 0},
	}
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(testCards())
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return c
}

func mustCard(t *testing.T, c *Catalog, id int) *Card {
	t.Helper()
	card, ok := c.Lookup(id)
	if !ok {
		t.Fatalf("card %d missing from catalog", id)
	}
	return &card
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

// stubDrawer hands out fixed cards so placement is predictable.
type stubDrawer struct {
	cards []Card
	calls int
}

func (s *stubDrawer) Sample(count int, _ Difficulty) []Card {
	s.calls++
	if count > len(s.cards) {
		count = len(s.cards)
	}
	return append([]Card{}, s.cards[:count]...)
}
