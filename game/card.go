package game

const (
	TypeAction    = "Action"
	TypeCurse     = "Curse"
	TypeTimeBonus = "Time Bonus"
	TypePowerUp   = "Power Up"
)

// CastingCost is what a player must pay to play a card.
type CastingCost struct {
	Discard int `json:"discard,omitempty"`
}

// DiscardDraw parameterizes the "discard K, draw N" action cards.
type DiscardDraw struct {
	Discard int `json:"discard"`
	Draw    int `json:"draw"`
}

// Card is a catalog entry. Cards are shared by value and never mutated.
type Card struct {
	ID           int          `json:"id"`
	Type         string       `json:"type"`
	Color        string       `json:"color,omitempty"`
	Name         string       `json:"name,omitempty"`
	Description  string       `json:"description,omitempty"`
	CountInPool  int          `json:"count_in_pool"`
	WeightSmall  float64      `json:"weight_small"`
	WeightMedium float64      `json:"weight_medium"`
	WeightLarge  float64      `json:"weight_large"`
	CastingCost  *CastingCost `json:"casting_cost,omitempty"`
	DiscardDraw  *DiscardDraw `json:"discard_draw,omitempty"`
	CurseText    string       `json:"curse_text,omitempty"`
}

// Weight returns the card's weight at a difficulty, 0 when unavailable.
func (c Card) Weight(d Difficulty) float64 {
	switch d {
	case Small:
		return c.WeightSmall
	case Medium:
		return c.WeightMedium
	case Large:
		return c.WeightLarge
	}
	return 0
}

// EligibleAt reports whether the card may be drawn at difficulty d.
// Action cards ignore difficulty weights.
func (c Card) EligibleAt(d Difficulty) bool {
	return c.Type == TypeAction || c.Weight(d) > 0
}

// TallyKey is the deck composition bucket the card counts toward.
func (c Card) TallyKey() string {
	if c.Color == "" {
		return c.Type
	}
	return c.Type + " (" + c.Color + ")"
}

// EffectKind selects how the engine resolves a played card.
type EffectKind int

const (
	EffectRegular EffectKind = iota
	EffectCurse
	EffectDiscardDraw
)

func (k EffectKind) String() string {
	switch k {
	case EffectCurse:
		return "curse"
	case EffectDiscardDraw:
		return "discard_draw"
	default:
		return "regular"
	}
}

// Effect is the resolved play behaviour of a card together with its parameters.
type Effect struct {
	Kind    EffectKind
	Discard int
	Draw    int
}

// Effect derives the card's play behaviour from its type and parameters.
func (c Card) Effect() Effect {
	switch {
	case c.Type == TypeCurse:
		e := Effect{Kind: EffectCurse}
		if c.CastingCost != nil {
			e.Discard = c.CastingCost.Discard
		}
		return e
	case c.DiscardDraw != nil:
		return Effect{Kind: EffectDiscardDraw, Discard: c.DiscardDraw.Discard, Draw: c.DiscardDraw.Draw}
	default:
		return Effect{Kind: EffectRegular}
	}
}
