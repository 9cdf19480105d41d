// Package logger provides structured logging for the application.
//
// It uses Go's standard library log/slog package for JSON logging with
// configurable levels, plus context helpers for request-scoped loggers.
package logger
