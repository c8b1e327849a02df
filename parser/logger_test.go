package parser

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = NopLogger{}
	})

	t.Run("methods do nothing", func(t *testing.T) {
		l := NopLogger{}
		// Should not panic
		l.Debug("test message", "key", "value")
		l.Info("test message", "key", "value")
		l.Warn("test message", "key", "value")
		l.Error("test message", "key", "value")
	})

	t.Run("With returns same NopLogger", func(t *testing.T) {
		l := NopLogger{}
		l2 := l.With("key", "value")
		if _, ok := l2.(NopLogger); !ok {
			t.Error("With should return NopLogger")
		}
	})
}

func TestSlogAdapter(t *testing.T) {
	t.Run("implements Logger interface", func(t *testing.T) {
		var _ Logger = (*SlogAdapter)(nil)
	})

	t.Run("NewSlogAdapter with nil uses default", func(t *testing.T) {
		adapter := NewSlogAdapter(nil)
		if adapter.logger == nil {
			t.Error("adapter.logger should not be nil")
		}
	})

	t.Run("logs pass through to slog", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		adapter.Debug("debug message", "key", "value")
		if !strings.Contains(buf.String(), "debug message") {
			t.Errorf("expected buffer to contain 'debug message', got: %s", buf.String())
		}
		if !strings.Contains(buf.String(), "key=value") {
			t.Errorf("expected buffer to contain 'key=value', got: %s", buf.String())
		}

		buf.Reset()
		adapter.Error("error message")
		if !strings.Contains(buf.String(), "level=ERROR") {
			t.Errorf("expected error level record, got: %s", buf.String())
		}
	})

	t.Run("With attaches attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
		adapter := NewSlogAdapter(slog.New(handler))

		child := adapter.With("component", "parser")
		child.Info("hello")
		if !strings.Contains(buf.String(), "component=parser") {
			t.Errorf("expected attached attribute, got: %s", buf.String())
		}
	})
}
