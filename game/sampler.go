package game

import (
	"math/rand/v2"
	"sync"
)

// Pile is an ordered collection of card copies.
type Pile []Card

// Size returns the number of cards in the pile.
func (p *Pile) Size() int {
	if p == nil {
		return 0
	}
	return len(*p)
}

// DrawCard removes and returns a uniformly random card from the pile.
func (p *Pile) DrawCard(r *rand.Rand) (Card, bool) {
	n := p.Size()
	if n == 0 {
		return Card{}, false
	}
	i := r.IntN(n)
	card := (*p)[i]
	// swap-remove; pile order carries no meaning
	(*p)[i] = (*p)[n-1]
	*p = (*p)[:n-1]
	return card, true
}

// Drawer supplies freshly drawn cards to the engine.
type Drawer interface {
	Sample(count int, d Difficulty) []Card
}

// Sampler draws weighted random cards from a catalog. It is safe for
// concurrent use.
type Sampler struct {
	catalog *Catalog

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSampler returns a sampler over catalog using rng for every draw.
func NewSampler(catalog *Catalog, rng *rand.Rand) *Sampler {
	return &Sampler{catalog: catalog, rng: rng}
}

// Sample draws min(count, pool size) cards without replacement from the
// pool eligible at difficulty d. It never fails; a short pool yields fewer cards.
func (s *Sampler) Sample(count int, d Difficulty) []Card {
	if count <= 0 {
		return []Card{}
	}
	pool := s.catalog.Pool(d)
	if count > pool.Size() {
		count = pool.Size()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Card, 0, count)
	for len(out) < count {
		card, ok := pool.DrawCard(s.rng)
		if !ok {
			break
		}
		out = append(out, card)
	}
	return out
}
