package game

// Engine applies player actions to a State. It validates every request in
// full before touching anything, and works on a clone, so a rejected
// request never leaves a partial change behind.
type Engine struct {
	catalog *Catalog
	drawer  Drawer
}

// NewEngine returns an engine resolving cards against catalog and drawing
// replacement cards from drawer.
func NewEngine(catalog *Catalog, drawer Drawer) *Engine {
	return &Engine{catalog: catalog, drawer: drawer}
}

// Catalog returns the card definitions the engine validates against.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// PlayResult describes the outcome of playing one card.
type PlayResult struct {
	State  State
	Played Card
	Effect Effect
	// Discarded lists the positions emptied to pay for the card, in request order.
	Discarded []int

	DrawnCards       []Card
	AutoPlaced       bool
	PlacedPositions  []int
	MustDiscardCount int

	// Curse is set when the played card was a curse.
	Curse *Card
}

// Drew reports whether the play triggered a draw.
func (r PlayResult) Drew() bool { return r.DrawnCards != nil }

// Play plays the card at position. discard names the extra cards paid by
// curse and discard-draw cards; regular cards ignore it.
func (e *Engine) Play(s State, position int, discard []int) (PlayResult, error) {
	if position < 0 || position >= HandSize {
		return PlayResult{}, ErrInvalidPosition.WithReason("invalid hand position %d", position)
	}
	if s.Hand[position] == nil {
		return PlayResult{}, ErrEmptySlot.WithReason("no card at position %d", position)
	}

	played := *s.Hand[position]
	effect := played.Effect()
	res := PlayResult{Played: played, Effect: effect, Discarded: []int{}}

	switch effect.Kind {
	case EffectCurse:
		if effect.Discard > 0 {
			if err := validateSelection(&s.Hand, discard, effect.Discard, position); err != nil {
				return PlayResult{}, err
			}
			res.Discarded = append(res.Discarded, discard...)
		}
	case EffectDiscardDraw:
		if err := validateSelection(&s.Hand, discard, effect.Discard, position); err != nil {
			return PlayResult{}, err
		}
		res.Discarded = append(res.Discarded, discard...)
	}

	next := s.Clone()
	for _, pos := range res.Discarded {
		next.discard(pos)
	}
	next.discard(position)

	switch effect.Kind {
	case EffectCurse:
		curse := played
		res.Curse = &curse
	case EffectDiscardDraw:
		res.DrawnCards = e.drawer.Sample(effect.Draw, s.Difficulty)
		res.PlacedPositions, res.AutoPlaced, res.MustDiscardCount = autoPlace(&next.Hand, res.DrawnCards)
	}

	res.State = next
	return res, nil
}

// PlacePending places cards that a previous draw could not fit, discarding
// the cards at discard to make exactly enough room. Only the ids of cards
// are trusted; definitions come from the catalog.
func (e *Engine) PlacePending(s State, cards []Card, discard []int) (State, error) {
	resolved := make([]Card, len(cards))
	for i, c := range cards {
		def, ok := e.catalog.Lookup(c.ID)
		if !ok {
			return State{}, ErrUnknownCard.WithReason("unknown card id %d", c.ID)
		}
		resolved[i] = def
	}

	empty := len(s.Hand.EmptySlots())
	needed := len(resolved) - empty
	if needed < 0 {
		return State{}, ErrAlreadyHasSpace
	}
	if len(discard) != needed {
		return State{}, ErrWrongDiscardCount.WithReason("must discard exactly %d card(s) to make room", needed)
	}
	if err := validateSelection(&s.Hand, discard, needed, -1); err != nil {
		return State{}, err
	}

	next := s.Clone()
	for _, pos := range discard {
		next.discard(pos)
	}
	slots := next.Hand.EmptySlots()
	if len(slots) < len(resolved) {
		return State{}, ErrInsufficientSpace
	}
	for i := range resolved {
		card := resolved[i]
		next.Hand[slots[i]] = &card
	}
	return next, nil
}

// SetDifficulty changes the game size. changed is false, and s is returned
// as is, when level equals the current difficulty.
func (e *Engine) SetDifficulty(s State, level int) (next State, changed bool, err error) {
	d, err := ParseDifficulty(level)
	if err != nil {
		return State{}, false, err
	}
	if d == s.Difficulty {
		return s, false, nil
	}
	next = s.Clone()
	next.Difficulty = d
	next.DeckTally = e.catalog.Composition(d)
	return next, true, nil
}

// SetHand overwrites the hand with slots, which must have exactly HandSize
// entries of catalog cards or nil.
func (e *Engine) SetHand(s State, slots []*Card) (State, error) {
	hand, err := NewHand(slots)
	if err != nil {
		return State{}, err
	}
	resolved, err := e.catalog.Resolve(hand[:])
	if err != nil {
		return State{}, err
	}
	next := s.Clone()
	copy(next.Hand[:], resolved)
	return next, nil
}

// Complete ends the current game: hand and discard pile are cleared, while
// difficulty and deck tally carry over to the next game.
func (e *Engine) Complete(s State) State {
	next := s.Clone()
	next.Hand = Hand{}
	next.DiscardPile = []Card{}
	return next
}
