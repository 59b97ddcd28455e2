package game

import "math/rand"

// RNG is the random source injected into every component that needs one.
// *rand.Rand satisfies it.
type RNG interface {
	Intn(n int) int
}

// NewRNG returns a generator fully determined by seed.
func NewRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// shuffleCards is an in-place Fisher–Yates shuffle driven by rng.
func shuffleCards(rng RNG, cards []*CardInstance) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// rollPercent reports whether a d100 roll lands under percent.
func rollPercent(rng RNG, percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return rng.Intn(100) < percent
}

// weightedPick returns the index drawn proportionally to weights, or -1 if
// every weight is non-positive.
func weightedPick(rng RNG, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	roll := rng.Intn(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if roll < w {
			return i
		}
		roll -= w
	}
	return -1
}
