// Package logging wraps log/slog with the level and session conventions
// used across holesim.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// EnvLevel names the environment variable that sets the default level.
const EnvLevel = "HOLESIM_LOG_LEVEL"

// Logger wraps slog.Logger so a session id can follow a run through every entry.
type Logger struct {
	*slog.Logger
}

// Options selects where and how entries are written.
type Options struct {
	Level  slog.Level
	JSON   bool
	Output io.Writer
}

// NewLogger writes text entries to stderr at the level from HOLESIM_LOG_LEVEL.
func NewLogger() *Logger {
	level, err := ParseLevel(os.Getenv(EnvLevel))
	if err != nil {
		level = slog.LevelInfo
	}
	return New(Options{Level: level, Output: os.Stderr})
}

func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	ho := &slog.HandlerOptions{Level: opts.Level}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, ho)
	} else {
		h = slog.NewTextHandler(out, ho)
	}
	return &Logger{slog.New(h)}
}

// Discard drops everything. Tests and headless sweeps use it.
func Discard() *Logger {
	return &Logger{slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))}
}

// ParseLevel accepts DEBUG, INFO, WARN or WARNING, and ERROR in any case.
// An empty string means INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// With returns a logger that adds args to every entry.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{l.Logger.With(args...)}
}

// Session returns a logger tagged with the session id carried by ctx, if any.
func (l *Logger) Session(ctx context.Context) *Logger {
	if id := SessionID(ctx); id != "" {
		return l.With("session", id)
	}
	return l
}

// Failure logs err at ERROR with its message under "error".
func (l *Logger) Failure(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.Logger.Error(msg, args...)
}

type sessionKey struct{}

// WithSession stores a session id on ctx, generating one when id is empty.
func WithSession(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, sessionKey{}, id)
}

func SessionID(ctx context.Context) string {
	if id, ok := ctx.Value(sessionKey{}).(string); ok {
		return id
	}
	return ""
}

// WrapError adds context to err while keeping it matchable with errors.Is.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if len(args) > 0 {
		format = fmt.Sprintf(format, args...)
	}
	return fmt.Errorf("%s: %w", format, err)
}
