package domain

// DailyForecast is one entry of the rotating daily reward preview: the
// rewards claimable on a particular day index.
type DailyForecast struct {
	Day    int64 `json:"day"`
	Money  Cents `json:"money"`
	Tokens int64 `json:"tokens"`
}

// PoolState is the singleton record backing the weekly token pool and the
// daily reward forecast. It is owned by the scheduler and distributor
// components and created lazily on first token purchase or forecast read.
type PoolState struct {
	// Pool is the number of tokens awaiting the next weekly distribution.
	Pool int64 `json:"pool"`

	// Forecast holds exactly ForecastDays consecutive future entries in
	// ascending day order, starting at today, once populated.
	Forecast []DailyForecast `json:"forecast"`
}

// ForecastDays is the fixed length of the daily reward forecast window.
const ForecastDays = 5
