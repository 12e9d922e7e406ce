// Package logging sets up the structured logger for a run.
// Where the output goes is given by a string:
//
//	""        thrown away
//	"stdout"  standard output
//	"stderr"  standard error
//	anything else is a file, appended to
//
// Every logger carries a run id, so the lines of concurrent jobs that
// end up in one file can be told apart.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ParseLevel takes "debug", "info", "warn" or "error". "" means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("log level %q: want debug, info, warn or error", s)
}

// nopCloser is for the streams we must not close.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// logWhere decides where to send the logged output.
func logWhere(outinfo string) (io.WriteCloser, error) {
	switch outinfo {
	case "":
		return nopCloser{io.Discard}, nil
	case "stdout":
		return nopCloser{os.Stdout}, nil
	case "stderr":
		return nopCloser{os.Stderr}, nil
	}
	return os.OpenFile(outinfo, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
}

// Logger is a slog.Logger plus whatever must be closed at the end.
type Logger struct {
	*slog.Logger
	RunID string
	dst   io.Closer
}

// Close closes the log file, if there is one.
func (l *Logger) Close() error { return l.dst.Close() }

// New opens the destination and returns a logger at the given level.
// Output to a file is JSON, to a terminal it is text.
func New(outinfo, level string) (*Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	w, err := logWhere(outinfo)
	if err != nil {
		return nil, fmt.Errorf("opening log %s: %w", outinfo, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if _, ok := w.(nopCloser); ok {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return newLogger(h, w), nil
}

// ToWriter is for tests. Lines are JSON.
func ToWriter(w io.Writer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return newLogger(h, nopCloser{w})
}

// Discard throws everything away.
func Discard() *Logger {
	return newLogger(slog.NewTextHandler(io.Discard, nil), nopCloser{io.Discard})
}

func newLogger(h slog.Handler, dst io.Closer) *Logger {
	id := uuid.NewString()
	return &Logger{Logger: slog.New(h).With("run", id), RunID: id, dst: dst}
}

// Job gives a logger for one input file. It has a fresh job id as well
// as the run id.
func (l *Logger) Job(input string) *slog.Logger {
	return l.With("job", uuid.NewString(), "input", input)
}
