// Package main is the entry point for the scrollview pager.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/scrollarea/internal/app"
	"github.com/dshills/scrollarea/internal/logging"
	"github.com/dshills/scrollarea/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, code, done := parseFlags(os.Args[1:])
	if done {
		return code
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags returns the options, and done with an exit code when the
// invocation was fully handled (help, version, usage errors).
func parseFlags(args []string) (app.Options, int, bool) {
	var opts app.Options
	var showVersion bool

	fs := flag.NewFlagSet("scrollview", flag.ContinueOnError)
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file (TOML or YAML)")
	fs.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.Lexer, "lexer", "", "Force a syntax highlighting lexer")
	fs.BoolVar(&opts.Plain, "plain", false, "Disable syntax highlighting")
	fs.BoolVar(&opts.NoSession, "no-session", false, "Do not restore or save the scroll position")
	fs.BoolVar(&opts.NoWatch, "no-watch", false, "Do not reload the configuration when it changes")
	fs.BoolVar(&showVersion, "version", false, "Show version information")
	fs.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "scrollview - terminal pager with a custom scroll area\n\n")
		fmt.Fprintf(os.Stderr, "Usage: scrollview [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys: arrows, j/k/h/l, PgUp/PgDn, space/b, Home/End, g/G, q to quit\n")
		fmt.Fprintf(os.Stderr, "Mouse: wheel, drag the thumbs, click a track to jump\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, 0, true
		}
		return opts, 2, true
	}

	if showVersion {
		fmt.Printf("scrollview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		return opts, 0, true
	}

	if opts.LogLevel != "" && !logging.ValidLevel(opts.LogLevel) {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		return opts, 1, true
	}

	switch fs.NArg() {
	case 0:
	case 1:
		if fs.Arg(0) != "-" {
			opts.File = fs.Arg(0)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: expected at most one file\n")
		return opts, 2, true
	}
	return opts, 0, false
}
