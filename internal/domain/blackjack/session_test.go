package blackjack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

type testActor struct {
	id   string
	name string
}

func (a testActor) ID() string          { return a.id }
func (a testActor) DisplayName() string { return a.name }
func (a testActor) AvatarURL() string   { return "" }
func (a testActor) Bot() bool           { return false }

var owner = testActor{id: "player-1", name: "Alice"}

// Deal order: player, player, dealer, dealer, then hits in draw order.
func riggedSession(wager int64, cards ...Card) *Session {
	return newSessionWithDeck(owner, wager, newRiggedDeck(cards...))
}

func TestNewSessionNaturalBlackjack(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: Ace}, Card{Rank: King}, // player: natural
		Card{Rank: 9}, Card{Rank: 7}, // dealer: 16
	)

	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeUserWin, s.Outcome())
	// Natural pays the wager back plus three-to-two winnings.
	assert.Equal(t, int64(25), s.Payout())
}

func TestNewSessionNaturalPayoutTruncates(t *testing.T) {
	t.Parallel()

	s := riggedSession(5,
		Card{Rank: Ace}, Card{Rank: Queen},
		Card{Rank: 9}, Card{Rank: 7},
	)

	// 5 + floor(5*3/2) = 5 + 7.
	assert.Equal(t, int64(12), s.Payout())
}

func TestNewSessionDoubleNaturalPushes(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: Ace}, Card{Rank: King},
		Card{Rank: Ace}, Card{Rank: Queen},
	)

	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeDraw, s.Outcome())
	assert.Equal(t, int64(10), s.Payout())
}

func TestNewSessionDealerNatural(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: 9}, Card{Rank: 7},
		Card{Rank: Ace}, Card{Rank: King},
	)

	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeDealerWin, s.Outcome())
	assert.Zero(t, s.Payout())
}

func TestHitBustLosesWager(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9}, // player: 19
		Card{Rank: 9}, Card{Rank: 7}, // dealer: 16
		Card{Rank: 8}, // player hit: 27, bust
	)

	require.NoError(t, s.Hit(owner.id))
	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeDealerWin, s.Outcome())
	assert.Zero(t, s.Payout())
}

func TestStandDealerDrawsToSeventeen(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9}, // player: 19
		Card{Rank: 9}, Card{Rank: 5}, // dealer: 14
		Card{Rank: 3}, // dealer draws to 17 and stands
	)

	require.NoError(t, s.Stand(owner.id))
	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeUserWin, s.Outcome())
	// Even-money win: wager back plus equal winnings.
	assert.Equal(t, int64(20), s.Payout())
}

func TestStandDealerBusts(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: 10}, Card{Rank: 8}, // player: 18
		Card{Rank: 9}, Card{Rank: 5}, // dealer: 14
		Card{Rank: King}, // dealer draws: 24, bust
	)

	require.NoError(t, s.Stand(owner.id))
	assert.Equal(t, OutcomeUserWin, s.Outcome())
	assert.Equal(t, "Dealer bust", s.View().Reason)
}

func TestStandDealerWinsHigherHand(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: 10}, Card{Rank: 8}, // player: 18
		Card{Rank: King}, Card{Rank: 9}, // dealer: 19
	)

	require.NoError(t, s.Stand(owner.id))
	assert.Equal(t, OutcomeDealerWin, s.Outcome())
	assert.Zero(t, s.Payout())
}

func TestStandEqualTotalsPush(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: 10}, Card{Rank: 9}, // player: 19
		Card{Rank: King}, Card{Rank: 9}, // dealer: 19
	)

	require.NoError(t, s.Stand(owner.id))
	assert.Equal(t, OutcomeDraw, s.Outcome())
	assert.Equal(t, int64(10), s.Payout())
}

func TestHitTwentyOneAutoStands(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9}, // player: 19
		Card{Rank: King}, Card{Rank: 8}, // dealer: 18
		Card{Rank: 2}, // player hit: 21
	)

	require.NoError(t, s.Hit(owner.id))
	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeUserWin, s.Outcome())
}

func TestActionsByNonOwnerRejected(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9},
		Card{Rank: 9}, Card{Rank: 7},
	)

	assert.ErrorIs(t, s.Hit("intruder"), domain.ErrSessionNotOwned)
	assert.ErrorIs(t, s.Stand("intruder"), domain.ErrSessionNotOwned)
	assert.False(t, s.Resolved())
	assert.Len(t, s.View().PlayerCards, 2)
}

func TestActionsAfterResolutionRejected(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9},
		Card{Rank: King}, Card{Rank: 8},
	)
	require.NoError(t, s.Stand(owner.id))

	assert.ErrorIs(t, s.Hit(owner.id), domain.ErrSessionResolved)
	assert.ErrorIs(t, s.Stand(owner.id), domain.ErrSessionResolved)
}

func TestForceStandResolvesAbandonedSession(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King}, Card{Rank: 9}, // player: 19
		Card{Rank: King}, Card{Rank: 8}, // dealer: 18
	)

	s.ForceStand()
	assert.True(t, s.Resolved())
	assert.Equal(t, OutcomeUserWin, s.Outcome())

	// Idempotent on a resolved session.
	s.ForceStand()
	assert.Equal(t, OutcomeUserWin, s.Outcome())
}

func TestViewConcealsDealerHoleCard(t *testing.T) {
	t.Parallel()

	s := riggedSession(10,
		Card{Rank: King, Suit: Hearts}, Card{Rank: 9, Suit: Spades},
		Card{Rank: 9, Suit: Clubs}, Card{Rank: 8, Suit: Diamonds}, // dealer: 17, stands
	)

	v := s.View()
	assert.Equal(t, "active", v.State)
	assert.Equal(t, []string{"9♣", FaceDown}, v.DealerCards)
	assert.Equal(t, 9, v.DealerValue)
	assert.Zero(t, v.Payout)

	require.NoError(t, s.Stand(owner.id))
	v = s.View()
	assert.Equal(t, "resolved", v.State)
	assert.NotContains(t, v.DealerCards, FaceDown)
	assert.GreaterOrEqual(t, v.DealerValue, dealerStandsAt)
}
