// Package service implements the engine's application services: transfers
// and balances, the daily reward calendar, token purchases, blackjack
// sessions, and the weekly pool distribution. Services orchestrate the
// stores and the pure domain logic; they own no persistence details and no
// transport concerns.
package service
