// Package logger builds the slog.Logger saucectl uses for every
// subcommand, fanning out to a stdout sink and/or a file sink per the
// loggers list in config.Config.
package logger

import (
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"

	"github.com/textmode-tools/gosauce/internal/config"
)

// Setup builds the default logger from cfg's sink list. Passing
// quiet=true discards everything regardless of
// what's configured. cfg.Debug forces every sink to at least debug
// level and turns on source locations, overriding each sink's own
// level/source settings, so `saucectl --config x.yml` with `debug: true`
// gives a full trace of a catalog scan or gallery session without
// having to edit every logger entry by hand.
func Setup(cfg *config.Config, quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	var sinks []config.LoggerConfig
	debug := false
	if cfg != nil {
		sinks = cfg.Loggers
		debug = cfg.Debug
	}

	var handlers []slog.Handler
	for _, sink := range sinks {
		if h := stdoutHandler(sink, debug); h != nil {
			handlers = append(handlers, h)
		}
		if h := fileHandler(sink, debug); h != nil {
			handlers = append(handlers, h)
		}
	}

	logger := slog.New(compose(handlers))
	slog.SetDefault(logger)
	return logger
}

func stdoutHandler(sink config.LoggerConfig, debug bool) slog.Handler {
	if !sink.Stdout {
		return nil
	}
	return tint.NewHandler(os.Stdout, sinkOptions(sink, debug, !isatty.IsTerminal(os.Stdout.Fd())))
}

func fileHandler(sink config.LoggerConfig, debug bool) slog.Handler {
	if sink.File == "" {
		return nil
	}

	dir := filepath.Dir(sink.File)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("failed to create log directory %s: %v", dir, err)
		return nil
	}

	file, err := os.OpenFile(sink.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("failed to open log file %s: %v", sink.File, err)
		return nil
	}

	return tint.NewHandler(file, sinkOptions(sink, debug, true))
}

// sinkOptions builds the shared tint.Options both handler constructors
// use, folding the global debug override in once instead of at each
// call site.
func sinkOptions(sink config.LoggerConfig, debug, noColor bool) *tint.Options {
	level := parseLogLevel(sink.Level)
	addSource := sink.Source
	if debug {
		level = slog.LevelDebug
		addSource = true
	}

	timeFormat := time.TimeOnly
	if sink.TimeFormat != "" {
		timeFormat = sink.TimeFormat
	}

	return &tint.Options{
		NoColor:   noColor,
		Level:     level,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if sink.HideTime && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
		TimeFormat: timeFormat,
	}
}

// compose picks the right slog.Handler shape for however many sinks
// actually resolved: nothing configured falls back to a bare stdout
// handler, one sink is used directly, and more than one is fanned out.
func compose(handlers []slog.Handler) slog.Handler {
	switch len(handlers) {
	case 0:
		return tint.NewHandler(os.Stdout, nil)
	case 1:
		return handlers[0]
	default:
		return NewFanout(handlers...)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
