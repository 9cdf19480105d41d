package reward

import (
	"math/rand/v2"

	"github.com/LasseVKP/LDCBots/internal/domain"
)

// Generator produces randomized forecast entries within configured bounds.
// The zero source uses the shared math/rand/v2 generator; tests inject a
// seeded source for deterministic output.
type Generator struct {
	params *Params
	rand   *rand.Rand
}

// NewGenerator creates a Generator with the given parameters. If params is
// nil, the defaults are used. If src is nil, the shared global source is used.
func NewGenerator(params *Params, src rand.Source) *Generator {
	if params == nil {
		params = NewDefaultParams()
	}
	g := &Generator{params: params}
	if src != nil {
		g.rand = rand.New(src)
	}
	return g
}

// Entry generates a fresh forecast entry for the given day index. Money and
// token rewards are drawn uniformly within the configured bounds, then
// rounded down to the configured step so rewards land on round numbers.
func (g *Generator) Entry(day int64) domain.DailyForecast {
	return domain.DailyForecast{
		Day:    day,
		Money:  domain.Cents(g.roundedRange(int64(g.params.MinMoney), int64(g.params.MaxMoney), int64(g.params.MoneyStep))),
		Tokens: g.roundedRange(g.params.MinTokens, g.params.MaxTokens, g.params.TokenStep),
	}
}

func (g *Generator) roundedRange(min, max, step int64) int64 {
	n := min + g.int64n(max-min+1)
	if step > 1 {
		n -= n % step
		if n < min {
			n = min
		}
	}
	return n
}

func (g *Generator) int64n(n int64) int64 {
	if g.rand != nil {
		return g.rand.Int64N(n)
	}
	return rand.Int64N(n)
}

// Rotate brings a stored forecast up to date for the given day index. Entries
// older than today are dropped and freshly generated entries are appended
// until the window again holds domain.ForecastDays consecutive days starting
// at today, preserving ascending order. A staleness gap of five or more days
// leaves nothing worth keeping, so the whole window is regenerated.
//
// Rotate returns the updated window and whether it differs from the input.
func (g *Generator) Rotate(forecast []domain.DailyForecast, today int64) ([]domain.DailyForecast, bool) {
	if len(forecast) == domain.ForecastDays && forecast[0].Day == today {
		return forecast, false
	}

	kept := make([]domain.DailyForecast, 0, domain.ForecastDays)
	for _, entry := range forecast {
		if entry.Day >= today && entry.Day < today+domain.ForecastDays {
			kept = append(kept, entry)
		}
	}

	next := today
	if n := len(kept); n > 0 {
		next = kept[n-1].Day + 1
	}
	for len(kept) < domain.ForecastDays {
		kept = append(kept, g.Entry(next))
		next++
	}
	return kept, true
}
