// Package api provides the HTTP handlers for the economy engine: payments,
// balances, leaderboards, the daily reward forecast, token purchases,
// blackjack sessions, and the manual distribution trigger. Handlers decode
// and validate request payloads, delegate to the service layer, and map
// domain errors to sanitized HTTP responses.
package api
