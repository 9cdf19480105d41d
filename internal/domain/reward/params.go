package reward

import "github.com/LasseVKP/LDCBots/internal/domain"

// Params defines the bounds and rounding granularity used when generating
// fresh forecast entries.
type Params struct {
	// Money bounds, inclusive, in cents.
	MinMoney domain.Cents
	MaxMoney domain.Cents

	// MoneyStep is the granularity money rewards are rounded to. Rewards
	// land on round numbers so they read well in chat.
	MoneyStep domain.Cents

	// Token bounds, inclusive.
	MinTokens int64
	MaxTokens int64

	// TokenStep is the granularity token rewards are rounded to.
	TokenStep int64
}

// NewDefaultParams creates a Params instance with the default reward bounds.
func NewDefaultParams() *Params {
	return &Params{
		MinMoney:  5_00,
		MaxMoney:  50_00,
		MoneyStep: 50,

		MinTokens: 5,
		MaxTokens: 50,
		TokenStep: 5,
	}
}
