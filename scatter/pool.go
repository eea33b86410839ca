package scatter

import "math/rand/v2"

// VariantPool hands out variant indices from a shuffled deck. Every variant
// is drawn once before the deck is reshuffled and any variant repeats.
type VariantPool struct {
	n    int
	deck []int
	rng  *rand.Rand
}

// NewVariantPool creates a pool over variants 0..n-1.
func NewVariantPool(n int, rng *rand.Rand) *VariantPool {
	if rng == nil {
		rng = NewRand()
	}
	return &VariantPool{n: n, rng: rng, deck: make([]int, 0, max(n, 0))}
}

// Next returns the next variant, refilling the deck when it runs dry.
// A pool of size zero or less always returns 0.
func (p *VariantPool) Next() int {
	if p.n <= 0 {
		return 0
	}
	if len(p.deck) == 0 {
		p.refill()
	}
	v := p.deck[len(p.deck)-1]
	p.deck = p.deck[:len(p.deck)-1]
	return v
}

// Remaining returns how many variants are left before the next reshuffle.
func (p *VariantPool) Remaining() int {
	return len(p.deck)
}

func (p *VariantPool) refill() {
	p.deck = p.deck[:0]
	for i := 0; i < p.n; i++ {
		p.deck = append(p.deck, i)
	}
	p.rng.Shuffle(len(p.deck), func(i, j int) {
		p.deck[i], p.deck[j] = p.deck[j], p.deck[i]
	})
}
