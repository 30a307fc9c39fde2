package logger_test

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"wellness/internal/logger"
)

func TestLogger_RedactsSecrets(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := logger.FromZap(zap.New(core))

	l.Info("login", "username", "alice", "password", "hunter2", "session_token", "abc")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["username"] != "alice" {
		t.Errorf("username = %v", fields["username"])
	}
	if fields["password"] != "[REDACTED]" || fields["session_token"] != "[REDACTED]" {
		t.Errorf("secrets not redacted: %v", fields)
	}
}

func TestLogger_With(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := logger.FromZap(zap.New(core)).With("component", "test")

	l.Debug("dropped")
	l.Warn("kept", "n", 3)

	if logs.Len() != 1 {
		t.Fatalf("expected 1 entry above info, got %d", logs.Len())
	}
	e := logs.All()[0]
	if e.Level != zapcore.WarnLevel || e.ContextMap()["component"] != "test" {
		t.Fatalf("unexpected entry: %+v", e)
	}
}

func TestNew(t *testing.T) {
	for _, mode := range []string{"dev", "prod"} {
		l, err := logger.New(mode)
		if err != nil {
			t.Fatalf("New(%q): %v", mode, err)
		}
		l.Info("hello")
	}
}
