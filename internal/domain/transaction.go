package domain

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType categorizes a recorded balance or token mutation.
type TransactionType string

// Transaction types written by the engine's operations.
const (
	TransactionTypePayOut          TransactionType = "pay_out"
	TransactionTypePayIn           TransactionType = "pay_in"
	TransactionTypeGreeting        TransactionType = "greeting"
	TransactionTypeDaily           TransactionType = "daily"
	TransactionTypeTokenBuy        TransactionType = "token_buy"
	TransactionTypeBlackjackBet    TransactionType = "blackjack_bet"
	TransactionTypeBlackjackPayout TransactionType = "blackjack_payout"
	TransactionTypeDistribution    TransactionType = "distribution"
)

// Transaction is an audit record of a single balance or token mutation.
// Amounts are signed: debits are negative, credits positive. Exactly one of
// the currency and token amounts is typically non-zero, but mixed mutations
// (the daily claim credits both) record both.
type Transaction struct {
	ID          uuid.UUID       `json:"id"`
	ActorID     string          `json:"actor_id"`
	Type        TransactionType `json:"type"`
	Amount      Cents           `json:"amount"`
	TokenAmount int64           `json:"token_amount"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewTransaction creates an audit record for the given actor and mutation.
func NewTransaction(actorID string, txType TransactionType, amount Cents, tokens int64, referenceID string) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		ActorID:     actorID,
		Type:        txType,
		Amount:      amount,
		TokenAmount: tokens,
		ReferenceID: referenceID,
		CreatedAt:   time.Now().UTC(),
	}
}
