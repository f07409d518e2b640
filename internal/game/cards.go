package game

import "strconv"

// Card is a blackjack rank by point value: 2-10 at face value, face cards
// drawn as 10, Ace as 11 (softened to 1 by HandTotal when needed).
type Card int

const Ace Card = 11

func (c Card) String() string {
	if c == Ace {
		return "A"
	}
	return strconv.Itoa(int(c))
}

// shoeRanks is the draw multiset of an infinite shoe: each draw is an
// independent uniform pick, so 10 appears four times (10, J, Q, K).
var shoeRanks = []Card{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 10, 10, Ace}

// Shoe deals cards. The production shoe redraws with replacement; tests
// script exact sequences.
type Shoe interface {
	Draw() Card
}

type infiniteShoe struct {
	rng Rng
}

// NewShoe returns an infinite shoe backed by rng.
func NewShoe(rng Rng) Shoe {
	return infiniteShoe{rng: rng}
}

func (s infiniteShoe) Draw() Card {
	return shoeRanks[s.rng.Intn(len(shoeRanks))]
}

// HandTotal computes the best blackjack total: aces count 11 unless that
// busts the hand, then 1 each until the total fits or no aces remain.
func HandTotal(hand []Card) int {
	total := 0
	aces := 0
	for _, c := range hand {
		total += int(c)
		if c == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}
