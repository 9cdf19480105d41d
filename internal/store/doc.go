// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying storage mechanism from the
// engine's core logic, so the economy rules stay independent of the
// database technology behind them.
package store
