// Package logging routes log/slog records through a hal.Logger line sink.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"lumen/hal"
	"lumen/internal/buildinfo"

	"github.com/google/uuid"
)

// ParseLevel accepts debug, info, warn and error (any case).
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a text logger that writes one line per record to l.
func New(l hal.Logger, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(Writer(l), &slog.HandlerOptions{
		Level: level,
	}))
}

// Session tags lg with a fresh run id and the build version.
func Session(lg *slog.Logger) (*slog.Logger, string) {
	run := uuid.NewString()
	return lg.With("run", run, "version", buildinfo.Short()), run
}

// Writer adapts l to an io.Writer. Every newline-terminated line becomes one
// WriteLineBytes call; a trailing partial line is written as well.
func Writer(l hal.Logger) io.Writer {
	return lineWriter{l: l}
}

type lineWriter struct {
	l hal.Logger
}

func (w lineWriter) Write(p []byte) (int, error) {
	if w.l == nil {
		return len(p), nil
	}
	rest := p
	for len(rest) > 0 {
		line, tail, _ := bytes.Cut(rest, []byte{'\n'})
		w.l.WriteLineBytes(line)
		rest = tail
	}
	return len(p), nil
}
