package game

// Blackjack hand mechanics shared by the session machine. The wagering
// convention is: bet escrowed at session creation, gross payout on
// resolution (2x bet on a win, bet back on a push, nothing on a loss).

const dealerStandsAt = 17

// DealHand draws the two opening cards.
func DealHand(shoe Shoe) []Card {
	return []Card{shoe.Draw(), shoe.Draw()}
}

// DealerPlay draws until the dealer's total reaches 17, soft-ace rule
// applied the same as for the player.
func DealerPlay(shoe Shoe, hand []Card) []Card {
	for HandTotal(hand) < dealerStandsAt {
		hand = append(hand, shoe.Draw())
	}
	return hand
}

type BlackjackOutcome string

const (
	BlackjackWin  BlackjackOutcome = "win"
	BlackjackPush BlackjackOutcome = "push"
	BlackjackLoss BlackjackOutcome = "loss"
)

// ResolveStand compares a non-busted player hand against a played-out
// dealer hand.
func ResolveStand(player, dealer []Card) BlackjackOutcome {
	p, d := HandTotal(player), HandTotal(dealer)
	switch {
	case d > 21 || p > d:
		return BlackjackWin
	case p == d:
		return BlackjackPush
	default:
		return BlackjackLoss
	}
}

// BlackjackPayout is the gross credit owed for an outcome on an escrowed
// bet. It is credited exactly once, at resolution.
func BlackjackPayout(outcome BlackjackOutcome, bet int64) int64 {
	switch outcome {
	case BlackjackWin:
		return bet * 2
	case BlackjackPush:
		return bet
	default:
		return 0
	}
}
