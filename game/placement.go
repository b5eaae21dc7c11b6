package game

// validateSelection checks a discard selection against the hand: exactly
// want entries, no duplicates, each in range, occupied and not the played
// position (played < 0 disables that check).
func validateSelection(h *Hand, positions []int, want, played int) error {
	if len(positions) != want {
		return ErrInvalidDiscardSelection.WithReason("must select %d card(s) to discard, got %d", want, len(positions))
	}
	seen := make(map[int]struct{}, len(positions))
	for _, pos := range positions {
		if _, dup := seen[pos]; dup {
			return ErrInvalidDiscardSelection.WithReason("cannot select the same card position multiple times")
		}
		seen[pos] = struct{}{}

		if pos < 0 || pos >= HandSize || pos == played {
			return ErrInvalidDiscardSelection.WithReason("invalid discard position: %d", pos)
		}
		if h[pos] == nil {
			return ErrInvalidDiscardSelection.WithReason("no card at position %d", pos)
		}
	}
	return nil
}

// autoPlace puts drawn into the lowest empty slots when all of them fit.
// Otherwise the hand is left alone and short is the number of extra
// slots the player has to free.
func autoPlace(h *Hand, drawn []Card) (placed []int, ok bool, short int) {
	empty := h.EmptySlots()
	if len(empty) < len(drawn) {
		return []int{}, false, len(drawn) - len(empty)
	}
	placed = make([]int, 0, len(drawn))
	for i := range drawn {
		card := drawn[i]
		h[empty[i]] = &card
		placed = append(placed, empty[i])
	}
	return placed, true, 0
}
