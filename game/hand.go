package game

// HandSize is the fixed number of hand positions, independent of difficulty.
const HandSize = 5

// Hand is the player's fixed set of slots; a nil slot is empty.
type Hand [HandSize]*Card

// EmptySlots returns the indices of empty positions in ascending order.
func (h *Hand) EmptySlots() []int {
	var out []int
	for i, c := range h {
		if c == nil {
			out = append(out, i)
		}
	}
	return out
}

// Count returns the number of occupied slots.
func (h *Hand) Count() int {
	return HandSize - len(h.EmptySlots())
}

// NewHand builds a hand from exactly HandSize slots.
func NewHand(slots []*Card) (Hand, error) {
	var h Hand
	if len(slots) != HandSize {
		return h, ErrInvalidHand.WithReason("hand must have exactly %d positions, got %d", HandSize, len(slots))
	}
	for i, c := range slots {
		if c != nil {
			card := *c
			h[i] = &card
		}
	}
	return h, nil
}
