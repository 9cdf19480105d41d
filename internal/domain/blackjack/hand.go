package blackjack

// Hand is an ordered sequence of dealt cards.
type Hand []Card

// Value returns the blackjack total of the hand. Aces start at eleven; while
// the total busts and an ace is still counted high, one ace at a time is
// demoted to one until the total fits or no flexible ace remains.
func (h Hand) Value() int {
	total := 0
	aces := 0
	for _, c := range h {
		total += c.Rank.Value()
		if c.Rank == Ace {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// IsBlackjack reports whether the hand is a natural: exactly two cards
// totaling twenty-one.
func (h Hand) IsBlackjack() bool {
	return len(h) == 2 && h.Value() == 21
}

// IsBust reports whether the hand's total exceeds twenty-one.
func (h Hand) IsBust() bool {
	return h.Value() > 21
}

// Glyphs returns the display glyphs of the hand's cards in deal order.
func (h Hand) Glyphs() []string {
	glyphs := make([]string, len(h))
	for i, c := range h {
		glyphs[i] = c.Glyph()
	}
	return glyphs
}
