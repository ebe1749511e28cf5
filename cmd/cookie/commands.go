package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/cookie/pkg/cookie"
	"github.com/dmitrymomot/cookie/pkg/health"
)

const shutdownTimeout = 10 * time.Second

func stringifyAction(ctx *cli.Context) error {
	c := make(cookie.Cookies, ctx.NArg())
	for _, pair := range ctx.Args() {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid pair %q: expected name=value", pair)
		}
		c[name] = value
	}
	header, err := cookie.StringifyCookie(c, encodeOption(ctx))
	if err != nil {
		newLogger(ctx).Debug("stringify failed", slog.Any("error", err))
		return err
	}
	return writeLine(ctx.App.Writer, header)
}

var serializeFlags = []cli.Flag{
	cli.StringFlag{Name: "file, f", Usage: "read the cookie from a YAML `FILE`; flags override its fields"},
	cli.StringFlag{Name: "name", Usage: "cookie name"},
	cli.StringFlag{Name: "value", Usage: "cookie value"},
	cli.IntFlag{Name: "max-age", Usage: "Max-Age in seconds"},
	cli.StringFlag{Name: "domain", Usage: "Domain attribute"},
	cli.StringFlag{Name: "path", Usage: "Path attribute"},
	cli.StringFlag{Name: "expires", Usage: "Expires as RFC 3339 or an HTTP date"},
	cli.BoolFlag{Name: "http-only", Usage: "set HttpOnly"},
	cli.BoolFlag{Name: "secure", Usage: "set Secure"},
	cli.BoolFlag{Name: "partitioned", Usage: "set Partitioned"},
	cli.StringFlag{Name: "priority", Usage: "Priority: low, medium or high"},
	cli.StringFlag{Name: "same-site", Usage: "SameSite: strict, lax or none"},
	rawFlag,
}

func serializeAction(ctx *cli.Context) error {
	var sc cookie.SetCookie
	if path := ctx.String("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if err := yaml.Unmarshal(data, &sc); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	}
	if err := applySerializeFlags(ctx, &sc); err != nil {
		return err
	}

	header, err := cookie.StringifySetCookie(sc, encodeOption(ctx))
	if err != nil {
		newLogger(ctx).Debug("serialize failed", slog.String("name", sc.Name), slog.Any("error", err))
		return err
	}
	return writeLine(ctx.App.Writer, header)
}

func applySerializeFlags(ctx *cli.Context, sc *cookie.SetCookie) error {
	if ctx.IsSet("name") {
		sc.Name = ctx.String("name")
	}
	if ctx.IsSet("value") {
		sc.Value = ctx.String("value")
	}
	if ctx.IsSet("max-age") {
		n := ctx.Int("max-age")
		sc.MaxAge = &n
	}
	if ctx.IsSet("domain") {
		sc.Domain = ctx.String("domain")
	}
	if ctx.IsSet("path") {
		sc.Path = ctx.String("path")
	}
	if ctx.IsSet("expires") {
		t, err := parseFlagTime(ctx.String("expires"))
		if err != nil {
			return err
		}
		sc.Expires = t
	}
	if ctx.Bool("http-only") {
		sc.HTTPOnly = true
	}
	if ctx.Bool("secure") {
		sc.Secure = true
	}
	if ctx.Bool("partitioned") {
		sc.Partitioned = true
	}
	if ctx.IsSet("priority") {
		sc.Priority = cookie.Priority(ctx.String("priority"))
	}
	if ctx.IsSet("same-site") {
		sc.SameSite = cookie.SameSite(ctx.String("same-site"))
	}
	return nil
}

func parseFlagTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := http.ParseTime(s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid expires %q: want RFC 3339 or an HTTP date", s)
}

var serveFlags = []cli.Flag{
	cli.StringFlag{Name: "addr", Value: ":8080", Usage: "listen address"},
}

func serveAction(ctx *cli.Context) error {
	log := newLogger(ctx)

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", ctx.String("addr"))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           newRouter(log),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

// newRouter serves health probes and echoes the request cookies back as JSON
// on every other path.
func newRouter(log *slog.Logger) http.Handler {
	m := cookie.New(cookie.WithLogger(log))

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recoverer, m.Middleware)
	r.Get("/health/live", health.LivenessHandler())
	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
		"codec": codecCheck,
	}, health.WithLogger(log)))
	r.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		c := cookie.FromContext(r.Context())
		if c == nil {
			c = cookie.Cookies{}
		}
		log.InfoContext(r.Context(), "request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
		w.Header().Set("Content-Type", "application/json")
		if err := writeJSON(w, c); err != nil {
			log.ErrorContext(r.Context(), "write response", slog.Any("error", err))
		}
	})
	return r
}

// codecCheck serializes a probe cookie and expects to parse the same value
// back.
func codecCheck(context.Context) error {
	const value = "probe value; 100%"
	header, err := cookie.Serialize("probe", value, cookie.AttrPath("/"), cookie.AttrMaxAgeSeconds(1))
	if err != nil {
		return err
	}
	if got := cookie.ParseSetCookie(header); got.Value != value {
		return fmt.Errorf("round trip: got %q, want %q", got.Value, value)
	}
	return nil
}
