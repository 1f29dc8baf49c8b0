package main

import (
	"io"
	"log/slog"

	"github.com/lmittmann/tint"
)

// newLogger returns a logger writing to w. verbosity is the number of -v
// flags: one adds source locations, two or more also enable debug output.
func newLogger(w io.Writer, verbosity int) *slog.Logger {
	level := slog.LevelInfo
	if verbosity > 1 {
		level = slog.LevelDebug
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		AddSource:  verbosity > 0,
		TimeFormat: "15:04:05.000",
		NoColor:    !isTerminal(w),
	}))
}
