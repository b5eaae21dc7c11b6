package game

import "maps"

// State is one user's game: hand, difficulty, deck tally and discard pile.
// Engine operations never modify a State in place; they return a new one.
type State struct {
	Hand        Hand           `json:"hand"`
	Difficulty  Difficulty     `json:"game_size"`
	DeckTally   map[string]int `json:"deck_composition"`
	DiscardPile []Card         `json:"discard_pile"`
}

// NewState returns a fresh state with an empty hand at difficulty d.
func NewState(c *Catalog, d Difficulty) State {
	if !d.Valid() {
		d = DefaultDifficulty
	}
	return State{
		Difficulty:  d,
		DeckTally:   c.Composition(d),
		DiscardPile: []Card{},
	}
}

// Clone returns a deep enough copy for the engine to mutate freely.
// Cards themselves are immutable and shared.
func (s State) Clone() State {
	out := s
	out.DeckTally = maps.Clone(s.DeckTally)
	out.DiscardPile = append(make([]Card, 0, len(s.DiscardPile)+HandSize), s.DiscardPile...)
	return out
}

// DeckSize sums the deck tally.
func (s State) DeckSize() int {
	n := 0
	for _, v := range s.DeckTally {
		n += v
	}
	return n
}

// discard moves the card at pos onto the discard pile and clears the slot.
func (s *State) discard(pos int) Card {
	card := *s.Hand[pos]
	s.DiscardPile = append(s.DiscardPile, card)
	s.Hand[pos] = nil
	return card
}
