package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		err  bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARNING", slog.LevelWarn, false},
		{" error ", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.err {
			t.Errorf("ParseLevel(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSessionTagsEntries(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: slog.LevelDebug, Output: &buf})
	ctx := WithSession(context.Background(), "abc123")

	l.Session(ctx).Info("fling started", "vx", 10.0)

	out := buf.String()
	if !strings.Contains(out, "session=abc123") || !strings.Contains(out, "vx=10") {
		t.Errorf("unexpected entry: %s", out)
	}
}

func TestWithSessionGeneratesID(t *testing.T) {
	ctx := WithSession(context.Background(), "")
	if SessionID(ctx) == "" {
		t.Error("no session id generated")
	}
	if SessionID(context.Background()) != "" {
		t.Error("bare context has a session id")
	}
}

func TestLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: slog.LevelWarn, Output: &buf})
	l.Debug("hidden")
	l.Failure("broken", errors.New("boom"))
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug entry written at WARN level")
	}
	if !strings.Contains(out, "error=boom") {
		t.Errorf("failure entry missing error: %s", out)
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("base")
	err := WrapError(base, "load %s", "x.yaml")
	if !errors.Is(err, base) || err.Error() != "load x.yaml: base" {
		t.Errorf("got %v", err)
	}
	if WrapError(nil, "x") != nil {
		t.Error("nil error wrapped")
	}
}
