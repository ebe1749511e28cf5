package logger

import "log/slog"

// NewNope returns a logger that discards everything.
// Use this as a default when logging is not configured.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
