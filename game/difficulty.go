package game

import "fmt"

// Difficulty is the game size chosen by the player. It selects which cards
// can be drawn and has no effect on hand capacity.
type Difficulty int

const (
	Small  Difficulty = 3
	Medium Difficulty = 4
	Large  Difficulty = 5
)

// DefaultDifficulty is used for new game states.
const DefaultDifficulty = Large

// Valid reports whether d is one of Small, Medium or Large.
func (d Difficulty) Valid() bool {
	return d >= Small && d <= Large
}

func (d Difficulty) String() string {
	switch d {
	case Small:
		return "Small"
	case Medium:
		return "Medium"
	case Large:
		return "Large"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty validates a raw game size.
func ParseDifficulty(level int) (Difficulty, error) {
	d := Difficulty(level)
	if !d.Valid() {
		return 0, ErrInvalidDifficulty.WithReason("game size must be between 3 and 5, got %d", level)
	}
	return d, nil
}
