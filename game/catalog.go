package game

import (
	"fmt"
	"regexp"
	"strconv"
)

var discardDrawName = regexp.MustCompile(`^Discard (\d+) Draw (\d+)$`)

// Catalog is the immutable, ordered set of card definitions.
type Catalog struct {
	cards []Card
	byID  map[int]int
}

// NewCatalog validates the definitions and returns a catalog in the given order.
func NewCatalog(cards []Card) (*Catalog, error) {
	c := &Catalog{
		cards: make([]Card, 0, len(cards)),
		byID:  make(map[int]int, len(cards)),
	}
	for _, card := range cards {
		card = normalize(card)
		if err := validateCard(card); err != nil {
			return nil, err
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %d", card.ID)
		}
		c.byID[card.ID] = len(c.cards)
		c.cards = append(c.cards, card)
	}
	return c, nil
}

// normalize fills DiscardDraw for cards that only carry it in their name.
func normalize(card Card) Card {
	if card.DiscardDraw != nil || card.Type == TypeCurse {
		return card
	}
	m := discardDrawName.FindStringSubmatch(card.Name)
	if m == nil {
		return card
	}
	k, _ := strconv.Atoi(m[1])
	n, _ := strconv.Atoi(m[2])
	card.DiscardDraw = &DiscardDraw{Discard: k, Draw: n}
	return card
}

func validateCard(c Card) error {
	switch {
	case c.ID <= 0:
		return fmt.Errorf("card id must be positive, got %d", c.ID)
	case c.Type == "":
		return fmt.Errorf("card %d: missing type", c.ID)
	case c.CountInPool < 0:
		return fmt.Errorf("card %d: negative pool count %d", c.ID, c.CountInPool)
	case c.WeightSmall < 0 || c.WeightMedium < 0 || c.WeightLarge < 0:
		return fmt.Errorf("card %d: negative difficulty weight", c.ID)
	case c.CastingCost != nil && c.CastingCost.Discard < 0:
		return fmt.Errorf("card %d: negative discard cost", c.ID)
	case c.DiscardDraw != nil && (c.DiscardDraw.Discard < 0 || c.DiscardDraw.Draw < 0):
		return fmt.Errorf("card %d: negative discard/draw parameters", c.ID)
	}
	return nil
}

// Len returns the number of distinct card definitions.
func (c *Catalog) Len() int { return len(c.cards) }

// Cards returns a copy of the definitions in catalog order.
func (c *Catalog) Cards() []Card {
	out := make([]Card, len(c.cards))
	copy(out, c.cards)
	return out
}

// Lookup returns the definition with the given id.
func (c *Catalog) Lookup(id int) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Resolve replaces each card with its catalog definition, keeping nils.
// Cards sent back by clients are only trusted for their id.
func (c *Catalog) Resolve(cards []*Card) ([]*Card, error) {
	out := make([]*Card, len(cards))
	for i, card := range cards {
		if card == nil {
			continue
		}
		def, ok := c.Lookup(card.ID)
		if !ok {
			return nil, ErrUnknownCard.WithReason("unknown card id %d", card.ID)
		}
		out[i] = &def
	}
	return out, nil
}

// Pool builds the weighted draw pool for a difficulty: every eligible card
// appears CountInPool times.
func (c *Catalog) Pool(d Difficulty) Pile {
	var pool Pile
	for _, card := range c.cards {
		if !card.EligibleAt(d) {
			continue
		}
		for i := 0; i < card.CountInPool; i++ {
			pool = append(pool, card)
		}
	}
	return pool
}

// Composition tallies the draw pool at d by TallyKey.
func (c *Catalog) Composition(d Difficulty) map[string]int {
	tally := make(map[string]int)
	for _, card := range c.Pool(d) {
		tally[card.TallyKey()]++
	}
	return tally
}
