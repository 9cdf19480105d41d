// Package blackjack implements the card game as a per-session state machine:
// deck construction and shuffling, hand valuation with soft-ace adjustment,
// and the Active -> Resolved session lifecycle with wagering outcomes.
package blackjack

import "strconv"

// Rank identifies a card's rank. Numeric ranks carry their face value; the
// constants below cover the court cards and the ace.
type Rank int

// Court card and ace ranks.
const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Value returns the blackjack value of the rank: face cards count ten, the
// ace counts eleven (soft adjustment happens at hand level), everything else
// counts its numeric rank.
func (r Rank) Value() int {
	switch {
	case r == Ace:
		return 11
	case r >= Jack:
		return 10
	default:
		return int(r)
	}
}

// Label returns the short display label for the rank ("2".."10", "J", "Q",
// "K", "A").
func (r Rank) Label() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return strconv.Itoa(int(r))
	}
}

// Suit identifies a card's suit (0-3: clubs, diamonds, hearts, spades).
type Suit int

// Suits in deck order.
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suitGlyphs = [...]string{"♣", "♦", "♥", "♠"}

// Glyph returns the suit's display glyph.
func (s Suit) Glyph() string {
	return suitGlyphs[s]
}

// FaceDown is the display glyph for a concealed card.
const FaceDown = "▓▓"

// Card is a single playing card. Suit carries no blackjack value but is kept
// so rendered hands look like real ones.
type Card struct {
	Rank Rank
	Suit Suit
}

// Glyph returns the card's display glyph, e.g. "A♠" or "10♥".
func (c Card) Glyph() string {
	return c.Rank.Label() + c.Suit.Glyph()
}
