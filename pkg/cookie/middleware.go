package cookie

import (
	"context"
	"log/slog"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/cookie/pkg/logger"
)

// cookiesKey is the context key for the parsed request cookies.
type cookiesKey struct{}

// Middleware parses the request's Cookie headers once and stores the result
// in the request context. Manager reads and FromContext use the stored map.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		parsed := Parse(strings.Join(r.Header.Values("Cookie"), "; "), WithDecoder(m.decode))
		ctx := context.WithValue(r.Context(), cookiesKey{}, parsed)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns a copy of the cookies stored by Middleware, or nil.
func FromContext(ctx context.Context) Cookies {
	c, ok := ctx.Value(cookiesKey{}).(Cookies)
	if !ok {
		return nil
	}
	return maps.Clone(c)
}

// LogExtractor returns a logger.ContextExtractor that adds the sorted names
// of the request cookies under the "cookies" key. Values are never logged.
func LogExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		c, ok := ctx.Value(cookiesKey{}).(Cookies)
		if !ok || len(c) == 0 {
			return slog.Attr{}, false
		}
		return slog.Any("cookies", slices.Sorted(maps.Keys(c))), true
	}
}
