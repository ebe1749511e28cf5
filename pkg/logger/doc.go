// Package logger provides structured logging with context extraction.
//
// It wraps log/slog with a handler decorator that injects request-scoped
// attributes on every log call, plus a no-op logger for library defaults.
//
// # Basic Usage
//
//	log := logger.New(cookie.LogExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"cookies":["sid","theme"]}
//
// Use NewWithWriter to pick the destination and level:
//
//	log := logger.NewWithWriter(os.Stderr, slog.LevelDebug)
//
// # Context Extractors
//
// A ContextExtractor is a function that extracts a log attribute from context:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors are called on every log call. Return false to skip the
// attribute for that entry.
//
// # Handler Decoration
//
// LogHandlerDecorator can wrap any slog.Handler:
//
//	h := slog.NewTextHandler(os.Stderr, nil)
//	log := slog.New(logger.NewLogHandlerDecorator(h, extractors...))
package logger
