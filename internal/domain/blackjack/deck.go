package blackjack

import "math/rand/v2"

// deckSize is the number of cards in the master deck template.
const deckSize = 52

// Deck is a session's private, shuffled card sequence. Each session owns its
// own copy; decks are never shared, so drawing needs no synchronization
// beyond the session's own.
type Deck struct {
	cards []Card
}

// NewDeck creates a freshly shuffled 52-card deck. If src is nil the shared
// math/rand source shuffles; tests pass a seeded source for rigged deals.
func NewDeck(src rand.Source) *Deck {
	cards := make([]Card, 0, deckSize)
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Rank(2); rank <= Ace; rank++ {
			cards = append(cards, Card{Rank: rank, Suit: suit})
		}
	}

	shuffle := rand.Shuffle
	if src != nil {
		shuffle = rand.New(src).Shuffle
	}
	shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	return &Deck{cards: cards}
}

// newRiggedDeck builds an unshuffled deck that deals the given cards in
// order. Test seam for deterministic game scripts.
func newRiggedDeck(cards ...Card) *Deck {
	// Draw pops from the back, so store in reverse.
	reversed := make([]Card, len(cards))
	for i, c := range cards {
		reversed[len(cards)-1-i] = c
	}
	return &Deck{cards: reversed}
}

// Draw removes and returns the top card. A blackjack round consumes far fewer
// than 52 cards, so exhaustion is impossible within one session.
func (d *Deck) Draw() Card {
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return card
}

// Remaining returns the number of undrawn cards.
func (d *Deck) Remaining() int {
	return len(d.cards)
}
