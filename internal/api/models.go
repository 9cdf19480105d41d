package api

import (
	"github.com/LasseVKP/LDCBots/internal/domain"
)

// Common request/response structures

// ActorPayload identifies the chat user behind a request. The chat frontend
// is trusted to describe its users; there is no account system on this side.
// It satisfies domain.Actor so handlers can pass it straight to services.
type ActorPayload struct {
	ActorID string `json:"id"           validate:"required"`
	Name    string `json:"display_name" validate:"required"`
	Avatar  string `json:"avatar_url"`
	IsBot   bool   `json:"bot"`
}

var _ domain.Actor = ActorPayload{}

func (a ActorPayload) ID() string          { return a.ActorID }
func (a ActorPayload) DisplayName() string { return a.Name }
func (a ActorPayload) AvatarURL() string   { return a.Avatar }
func (a ActorPayload) Bot() bool           { return a.IsBot }

// PayRequest defines the payload for the payment endpoint. Amount is in
// currency units; fractions beyond cents are floored.
type PayRequest struct {
	Payer  ActorPayload `json:"payer"  validate:"required"`
	Payee  ActorPayload `json:"payee"  validate:"required"`
	Amount float64      `json:"amount" validate:"required"`
}

// PayResponse reports both post-transfer balances.
type PayResponse struct {
	PayerBalance float64 `json:"payer_balance"`
	PayeeBalance float64 `json:"payee_balance"`
}

// BalanceResponse is the reply for the currency balance endpoint.
type BalanceResponse struct {
	ActorID string  `json:"actor_id"`
	Balance float64 `json:"balance"`
}

// GreetRequest defines the payload for the greeting endpoint.
type GreetRequest struct {
	Actor ActorPayload `json:"actor" validate:"required"`
}

// GreetResponse reports the balance after the greeting reward.
type GreetResponse struct {
	Balance float64 `json:"balance"`
}

// LeaderboardEntry is one row of the currency or token leaderboard.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	ActorID     string  `json:"actor_id"`
	DisplayName string  `json:"display_name"`
	Balance     float64 `json:"balance"`
	Tokens      int64   `json:"tokens"`
}

// TransactionResponse is one row of an actor's transfer history.
type TransactionResponse struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	Amount    float64 `json:"amount"`
	Tokens    int64   `json:"tokens,omitempty"`
	Reference string  `json:"reference,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// BuyTokensRequest defines the payload for the token purchase endpoint.
type BuyTokensRequest struct {
	Actor ActorPayload `json:"actor" validate:"required"`
	Count int64        `json:"count" validate:"required,gt=0"`
}

// BuyTokensResponse reports the actor's state after a purchase.
type BuyTokensResponse struct {
	Tokens  int64   `json:"tokens"`
	Balance float64 `json:"balance"`
}

// TokenBalanceResponse is the reply for the token balance endpoint.
type TokenBalanceResponse struct {
	ActorID string `json:"actor_id"`
	Tokens  int64  `json:"tokens"`
}

// PoolResponse is the reply for the pool size endpoint.
type PoolResponse struct {
	Pool int64 `json:"pool"`
}

// ClaimRequest defines the payload for the daily claim endpoint.
type ClaimRequest struct {
	Actor ActorPayload `json:"actor" validate:"required"`
}

// ClaimResponse reports what a successful daily claim paid out.
type ClaimResponse struct {
	Day    int64   `json:"day"`
	Money  float64 `json:"money"`
	Tokens int64   `json:"tokens"`
}

// DailyForecastEntry is one day of the reward forecast.
type DailyForecastEntry struct {
	Day    int64   `json:"day"`
	Money  float64 `json:"money"`
	Tokens int64   `json:"tokens"`
}

// DailyViewResponse is the reply for the daily overview endpoint.
type DailyViewResponse struct {
	Day      int64                `json:"day"`
	Claimed  bool                 `json:"claimed"`
	Forecast []DailyForecastEntry `json:"forecast"`
}

// StartBlackjackRequest defines the payload for dealing a new session. The
// wager is in tokens.
type StartBlackjackRequest struct {
	Actor ActorPayload `json:"actor" validate:"required"`
	Wager int64        `json:"wager" validate:"required,gt=0"`
}

// BlackjackActionRequest defines the payload for hit and stand.
type BlackjackActionRequest struct {
	Actor ActorPayload `json:"actor" validate:"required"`
}
