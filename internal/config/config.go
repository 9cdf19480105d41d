package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"    validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database"  validate:"required"`
	Economy   EconomyConfig   `mapstructure:"economy"   validate:"required"`
	Token     TokenConfig     `mapstructure:"token"     validate:"required"`
	Daily     DailyConfig     `mapstructure:"daily"     validate:"required"`
	Blackjack BlackjackConfig `mapstructure:"blackjack" validate:"required"`
	Schedule  ScheduleConfig  `mapstructure:"schedule"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// EconomyConfig contains the base currency settings. Monetary values are in
// cents to keep the configuration integral.
type EconomyConfig struct {
	GreetingRewardCents int64 `mapstructure:"greeting_reward_cents" validate:"gte=0"`
}

// TokenConfig contains the token economy settings.
type TokenConfig struct {
	// PriceCents is the cost of one token.
	PriceCents int64 `mapstructure:"price_cents" validate:"required,gt=0"`

	// WeeklyCap bounds how many tokens one actor may buy per week.
	WeeklyCap int64 `mapstructure:"weekly_cap" validate:"required,gt=0"`

	// ValueCents is the payout per pool token at distribution time.
	ValueCents int64 `mapstructure:"value_cents" validate:"required,gt=0"`
}

// DailyConfig bounds the randomized daily reward forecast.
type DailyConfig struct {
	MinMoneyCents  int64 `mapstructure:"min_money_cents"  validate:"required,gt=0"`
	MaxMoneyCents  int64 `mapstructure:"max_money_cents"  validate:"required,gtefield=MinMoneyCents"`
	MoneyStepCents int64 `mapstructure:"money_step_cents" validate:"required,gt=0"`
	MinTokens      int64 `mapstructure:"min_tokens"       validate:"required,gt=0"`
	MaxTokens      int64 `mapstructure:"max_tokens"       validate:"required,gtefield=MinTokens"`
	TokenStep      int64 `mapstructure:"token_step"       validate:"required,gt=0"`
}

// BlackjackConfig contains the card game settings.
type BlackjackConfig struct {
	// SessionTimeoutSeconds bounds how long an untouched session stays
	// active before it is auto-resolved.
	SessionTimeoutSeconds int `mapstructure:"session_timeout_seconds" validate:"required,gt=0"`
}

// ScheduleConfig contains the cron expressions driving the scheduled jobs.
type ScheduleConfig struct {
	// WeeklyCron fires the token pool distribution.
	WeeklyCron string `mapstructure:"weekly_cron" validate:"required"`

	// ForecastCron refreshes the daily reward forecast.
	ForecastCron string `mapstructure:"forecast_cron" validate:"required"`
}
