package blackjack

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

// State is the session lifecycle state.
type State int

// Session states. Resolved is terminal.
const (
	StateActive State = iota
	StateResolved
)

// String returns the state's display name.
func (s State) String() string {
	if s == StateResolved {
		return "resolved"
	}
	return "active"
}

// Outcome is the result of a resolved session.
type Outcome int

// Session outcomes. OutcomeNone applies only while the session is active.
const (
	OutcomeNone Outcome = iota
	OutcomeUserWin
	OutcomeDraw
	OutcomeDealerWin
)

// String returns the outcome's display name.
func (o Outcome) String() string {
	switch o {
	case OutcomeUserWin:
		return "user_win"
	case OutcomeDraw:
		return "draw"
	case OutcomeDealerWin:
		return "dealer_win"
	default:
		return "none"
	}
}

// dealerStandsAt is the total at which the dealer stops drawing. The dealer
// stands on every seventeen, soft ones included.
const dealerStandsAt = 17

// Session is one in-progress blackjack game, exclusively owned by a single
// actor. The deck is a private shuffled copy, so nothing outside the session
// is touched between the opening deal and the final payout. The mutex
// serializes the owner's actions against the timeout path.
type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	ownerID   string
	ownerName string
	wager     int64
	createdAt time.Time

	deck    *Deck
	player  Hand
	dealer  Hand
	state   State
	outcome Outcome
	reason  string
	natural bool
}

// NewSession creates a session for the given owner and wager, deals two cards
// to each side from a fresh private deck, and immediately resolves natural
// blackjacks: a player twenty-one wins at premium odds unless the dealer
// pushes, and a dealer-only twenty-one ends the game at once. If src is nil
// the deck shuffles from the shared random source.
func NewSession(owner domain.Actor, wager int64, src rand.Source) *Session {
	return newSessionWithDeck(owner, wager, NewDeck(src))
}

// newSessionWithDeck deals from a prepared deck instead of a shuffled one.
// Test seam for scripted games.
func newSessionWithDeck(owner domain.Actor, wager int64, deck *Deck) *Session {
	s := &Session{
		id:        uuid.New(),
		ownerID:   owner.ID(),
		ownerName: owner.DisplayName(),
		wager:     wager,
		createdAt: time.Now().UTC(),
		deck:      deck,
		state:     StateActive,
	}

	s.player = append(s.player, s.deck.Draw(), s.deck.Draw())
	s.dealer = append(s.dealer, s.deck.Draw(), s.deck.Draw())

	switch {
	case s.player.IsBlackjack() && s.dealer.IsBlackjack():
		s.resolve(OutcomeDraw, "Push")
	case s.player.IsBlackjack():
		s.natural = true
		s.resolve(OutcomeUserWin, "Blackjack")
	case s.dealer.IsBlackjack():
		s.resolve(OutcomeDealerWin, "Dealer blackjack")
	}

	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// OwnerID returns the actor ID of the session's owner.
func (s *Session) OwnerID() string {
	return s.ownerID
}

// Wager returns the token amount debited when the session started.
func (s *Session) Wager() int64 {
	return s.wager
}

// OwnerActor returns a domain.Actor view of the session's owner, backed by
// the identity captured at session start. Used by the timeout path, which
// settles without a live request actor.
func (s *Session) OwnerActor() domain.Actor {
	return ownerActor{id: s.ownerID, name: s.ownerName}
}

type ownerActor struct {
	id   string
	name string
}

func (a ownerActor) ID() string          { return a.id }
func (a ownerActor) DisplayName() string { return a.name }
func (a ownerActor) AvatarURL() string   { return "" }
func (a ownerActor) Bot() bool           { return false }

// Resolved reports whether the session has reached its terminal state.
func (s *Session) Resolved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateResolved
}

// Outcome returns the session's outcome, or OutcomeNone while active.
func (s *Session) Outcome() Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outcome
}

// Hit draws one card for the player. A bust resolves the game in the
// dealer's favor; landing exactly on twenty-one auto-stands. Actions by
// anyone but the owner return ErrSessionNotOwned with no state change, and
// actions on a resolved session return ErrSessionResolved.
func (s *Session) Hit(actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actorID != s.ownerID {
		return domain.ErrSessionNotOwned
	}
	if s.state != StateActive {
		return domain.ErrSessionResolved
	}

	s.player = append(s.player, s.deck.Draw())
	switch {
	case s.player.IsBust():
		s.resolve(OutcomeDealerWin, "Bust")
	case s.player.Value() == 21:
		s.playDealer()
	}
	return nil
}

// Stand ends the player's turn and plays out the dealer's hand. Ownership
// and lifecycle rules match Hit.
func (s *Session) Stand(actorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actorID != s.ownerID {
		return domain.ErrSessionNotOwned
	}
	if s.state != StateActive {
		return domain.ErrSessionResolved
	}

	s.playDealer()
	return nil
}

// ForceStand resolves a session abandoned by its owner, playing the dealer
// out as if the owner stood. Invoked by the timeout path so no wager stays
// stranded in an active session. Safe to call on a resolved session.
func (s *Session) ForceStand() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return
	}
	s.playDealer()
}

// playDealer draws for the dealer until it reaches seventeen, then compares
// totals. Callers hold the mutex.
func (s *Session) playDealer() {
	for s.dealer.Value() < dealerStandsAt {
		s.dealer = append(s.dealer, s.deck.Draw())
	}

	playerTotal, dealerTotal := s.player.Value(), s.dealer.Value()
	switch {
	case s.dealer.IsBust():
		s.resolve(OutcomeUserWin, "Dealer bust")
	case playerTotal > dealerTotal:
		s.resolve(OutcomeUserWin, "Higher hand")
	case playerTotal < dealerTotal:
		s.resolve(OutcomeDealerWin, "Dealer wins")
	default:
		s.resolve(OutcomeDraw, "Push")
	}
}

func (s *Session) resolve(outcome Outcome, reason string) {
	s.state = StateResolved
	s.outcome = outcome
	s.reason = reason
}

// Payout returns the token amount credited back to the owner on resolution.
// The wager was debited at session start, so a win returns it plus winnings
// (premium three-to-two on a natural, truncated to whole tokens; even money
// otherwise), a draw refunds it, and a loss credits nothing. Active sessions
// pay nothing yet.
func (s *Session) Payout() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.payoutLocked()
}

func (s *Session) payoutLocked() int64 {
	if s.state != StateResolved {
		return 0
	}
	switch s.outcome {
	case OutcomeUserWin:
		if s.natural {
			return s.wager + s.wager*3/2
		}
		return s.wager * 2
	case OutcomeDraw:
		return s.wager
	default:
		return 0
	}
}

// View is an immutable snapshot of a session suitable for rendering. While
// the session is active the dealer's second card is concealed and the dealer
// value covers only the visible card; both are revealed on resolution.
type View struct {
	SessionID   uuid.UUID `json:"session_id"`
	Owner       string    `json:"owner"`
	Wager       int64     `json:"wager"`
	PlayerCards []string  `json:"player_cards"`
	PlayerValue int       `json:"player_value"`
	DealerCards []string  `json:"dealer_cards"`
	DealerValue int       `json:"dealer_value"`
	State       string    `json:"state"`
	Outcome     string    `json:"outcome,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	Payout      int64     `json:"payout"`
}

// View renders the session's current snapshot.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:   s.id,
		Owner:       s.ownerName,
		Wager:       s.wager,
		PlayerCards: s.player.Glyphs(),
		PlayerValue: s.player.Value(),
		State:       s.state.String(),
	}

	if s.state == StateActive {
		v.DealerCards = []string{s.dealer[0].Glyph(), FaceDown}
		v.DealerValue = Hand{s.dealer[0]}.Value()
		return v
	}

	v.DealerCards = s.dealer.Glyphs()
	v.DealerValue = s.dealer.Value()
	v.Outcome = s.outcome.String()
	v.Reason = s.reason
	v.Payout = s.payoutLocked()
	return v
}
