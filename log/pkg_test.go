package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestPackage_UsesDefaultLogger(t *testing.T) {
	original := defaultLog
	t.Cleanup(func() { defaultLog = original })

	var buf bytes.Buffer

	defaultLog = Make(&buf, WithFormat(FormatJSON), WithPretty(false))
	Config(WithLevel(LevelTrace))

	tests := []struct {
		name  string
		log   func()
		level string
	}{
		{"Trace", func() { Trace("message", slog.String("key", "value")) }, "TRACE"},
		{"Debug", func() { Debug("message", slog.String("key", "value")) }, "DEBUG"},
		{"Info", func() { Info("message", slog.String("key", "value")) }, "INFO"},
		{"Warn", func() { Warn("message", slog.String("key", "value")) }, "WARN"},
		{"Error", func() { Error("message", slog.String("key", "value")) }, "ERROR"},
		{"InfoContext", func() { InfoContext(t.Context(), "message", slog.String("key", "value")) }, "INFO"},
		{"With", func() { With(slog.String("key", "value")).Warn("message") }, "WARN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log()

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("unmarshal %q: %v", buf.String(), err)
			}

			if entry["level"] != tt.level || entry["msg"] != "message" || entry["key"] != "value" {
				t.Fatalf("entry = %v", entry)
			}
		})
	}

	if Default().Level() != LevelTrace {
		t.Fatalf("Default().Level() = %v", Default().Level())
	}
}
