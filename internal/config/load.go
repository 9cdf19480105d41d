package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and, when present, a
// config file. Environment variables take precedence over file values, and
// both override the defaults. Returns a populated Config or an error if
// loading or validation fails.
//
// Environment variables use the LDC_ prefix with underscores for nesting,
// e.g. LDC_DATABASE_URL, LDC_TOKEN_WEEKLY_CAP.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file is fine; environment variables and defaults carry.
	}

	v.SetEnvPrefix("LDC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Registered empty so AutomaticEnv can populate it; validation rejects
	// a missing URL.
	v.SetDefault("database.url", "")

	v.SetDefault("economy.greeting_reward_cents", 150)

	v.SetDefault("token.price_cents", 100)
	v.SetDefault("token.weekly_cap", 100)
	v.SetDefault("token.value_cents", 1)

	v.SetDefault("daily.min_money_cents", 500)
	v.SetDefault("daily.max_money_cents", 5000)
	v.SetDefault("daily.money_step_cents", 50)
	v.SetDefault("daily.min_tokens", 5)
	v.SetDefault("daily.max_tokens", 50)
	v.SetDefault("daily.token_step", 5)

	v.SetDefault("blackjack.session_timeout_seconds", 120)

	// Sunday 18:00 UTC distribution; hourly forecast refresh.
	v.SetDefault("schedule.weekly_cron", "0 18 * * 0")
	v.SetDefault("schedule.forecast_cron", "5 * * * *")
}
