package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/dmitrymomot/cookie/pkg/cookie"
	"github.com/dmitrymomot/cookie/pkg/logger"
)

var errUsage = errors.New("missing header argument")

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "cookie"
	app.HelpName = "cookie"
	app.Usage = "parse and build HTTP cookie headers"
	app.UsageText = "cookie <command> [arguments...]"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log at debug level",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:      "parse",
			Aliases:   []string{"p"},
			Usage:     "parse a Cookie header into a JSON object",
			ArgsUsage: "<header>",
			Flags:     []cli.Flag{rawFlag},
			Action:    parseAction,
		},
		{
			Name:      "parse-set",
			Usage:     "parse a Set-Cookie header into a JSON object",
			ArgsUsage: "<header>",
			Flags:     []cli.Flag{rawFlag},
			Action:    parseSetAction,
		},
		{
			Name:      "stringify",
			Aliases:   []string{"s"},
			Usage:     "build a Cookie header from name=value pairs",
			ArgsUsage: "<name=value>...",
			Flags:     []cli.Flag{rawFlag},
			Action:    stringifyAction,
		},
		{
			Name:   "serialize",
			Usage:  "build a Set-Cookie header",
			Flags:  serializeFlags,
			Action: serializeAction,
		},
		{
			Name:   "serve",
			Usage:  "run an HTTP server that echoes request cookies as JSON",
			Flags:  serveFlags,
			Action: serveAction,
		},
	}
	return app
}

var rawFlag = cli.BoolFlag{
	Name:  "raw",
	Usage: "skip percent-decoding / percent-encoding of values",
}

func decodeOption(ctx *cli.Context) cookie.ParseOption {
	if ctx.Bool("raw") {
		return cookie.WithDecoder(func(s string) (string, error) { return s, nil })
	}
	return nil
}

func encodeOption(ctx *cli.Context) cookie.StringifyOption {
	if ctx.Bool("raw") {
		return cookie.WithEncoder(func(s string) string { return s })
	}
	return nil
}

func parseAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errUsage
	}
	return writeJSON(ctx.App.Writer, cookie.Parse(ctx.Args().First(), decodeOption(ctx)))
}

func parseSetAction(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errUsage
	}
	return writeJSON(ctx.App.Writer, cookie.ParseSetCookie(ctx.Args().First(), decodeOption(ctx)))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}

// newLogger writes JSON logs to the app's error writer.
func newLogger(ctx *cli.Context) *slog.Logger {
	level := slog.LevelInfo
	if ctx.GlobalBool("verbose") {
		level = slog.LevelDebug
	}
	w := ctx.App.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	return logger.NewWithWriter(w, level, cookie.LogExtractor())
}
