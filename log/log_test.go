package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func jsonLogger(buf *bytes.Buffer, opts ...Option) Logger {
	return Make(buf, append([]Option{
		WithFormat(FormatJSON),
		WithPretty(false),
		WithTimeLayout("none"),
	}, opts...)...)
}

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}

	return entry
}

func TestMake_Defaults(t *testing.T) {
	logger := Make(nil)

	if logger.Level() != DefaultLevel {
		t.Fatalf("Level() = %v", logger.Level())
	}

	if logger.Format() != DefaultFormat {
		t.Fatalf("Format() = %v", logger.Format())
	}

	if logger.caller {
		t.Fatal("caller enabled by default")
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	tests := []struct {
		name   string
		log    func(Logger, string, ...slog.Attr)
		min    Level
		logged bool
	}{
		{"trace at trace", Logger.Trace, LevelTrace, true},
		{"trace at debug", Logger.Trace, LevelDebug, false},
		{"debug at info", Logger.Debug, LevelInfo, false},
		{"info at info", Logger.Info, LevelInfo, true},
		{"warn at error", Logger.Warn, LevelError, false},
		{"error at debug", Logger.Error, LevelDebug, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(jsonLogger(&buf, WithLevel(tt.min)), "message")

			if logged := buf.Len() > 0; logged != tt.logged {
				t.Fatalf("logged = %v, want %v", logged, tt.logged)
			}
		})
	}
}

func TestLogger_LevelNames(t *testing.T) {
	tests := []struct {
		log  func(Logger, string, ...slog.Attr)
		want string
	}{
		{Logger.Trace, "TRACE"},
		{Logger.Debug, "DEBUG"},
		{Logger.Info, "INFO"},
		{Logger.Warn, "WARN"},
		{Logger.Error, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(jsonLogger(&buf, WithLevel(LevelTrace)), "message")

			if got := decode(t, &buf)["level"]; got != tt.want {
				t.Fatalf("level = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestLogger_ContextMethods(t *testing.T) {
	tests := []struct {
		name string
		log  func(Logger)
	}{
		{"trace", func(l Logger) { l.TraceContext(t.Context(), "message") }},
		{"debug", func(l Logger) { l.DebugContext(t.Context(), "message") }},
		{"info", func(l Logger) { l.InfoContext(t.Context(), "message") }},
		{"warn", func(l Logger) { l.WarnContext(t.Context(), "message") }},
		{"error", func(l Logger) { l.ErrorContext(t.Context(), "message") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(jsonLogger(&buf, WithLevel(LevelTrace)))

			if got := decode(t, &buf)["msg"]; got != "message" {
				t.Fatalf("msg = %v", got)
			}
		})
	}
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(false))
	logger.Info("compiled", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, "msg=compiled") || !strings.Contains(out, "key=value") {
		t.Fatalf("output = %q", out)
	}
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger(&buf, WithCaller(true)).Info("message")

	src, ok := decode(t, &buf)["source"].(map[string]any)
	if !ok {
		t.Fatalf("source missing: %s", buf.String())
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Fatalf("source file = %v", src["file"])
	}
}

func TestLogger_NoTime(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger(&buf).Info("message")

	if _, ok := decode(t, &buf)["time"]; ok {
		t.Fatalf("time present: %s", buf.String())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := jsonLogger(&buf)
	logger.With(slog.String("key", "value")).Info("message")

	if got := decode(t, &buf)["key"]; got != "value" {
		t.Fatalf("key = %v", got)
	}

	buf.Reset()
	logger.Info("message")

	if _, ok := decode(t, &buf)["key"]; ok {
		t.Fatal("With modified its receiver")
	}
}

func TestLogger_WithGroup(t *testing.T) {
	var buf bytes.Buffer

	jsonLogger(&buf).WithGroup("scene").Info("message", slog.Int("shapes", 3))

	group, ok := decode(t, &buf)["scene"].(map[string]any)
	if !ok || group["shapes"] != float64(3) {
		t.Fatalf("output = %s", buf.String())
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	logger := jsonLogger(&buf)
	wrapped := logger.Wrap(WithLevel(LevelError))

	if logger.Level() != DefaultLevel || wrapped.Level() != LevelError {
		t.Fatalf("levels = %v, %v", logger.Level(), wrapped.Level())
	}

	wrapped.Info("message")

	if buf.Len() != 0 {
		t.Fatalf("wrapped logger ignored level: %s", buf.String())
	}
}

func TestLogger_ZeroValue(t *testing.T) {
	var l Logger

	l.Trace("message")
	l.Info("message")
	l.Error("message")

	if l.With(slog.String("key", "value")).Logger != nil {
		t.Fatal("With on zero value returned a live logger")
	}

	if l.Level() != DefaultLevel {
		t.Fatalf("Level() = %v", l.Level())
	}
}

func TestLogger_Concurrent(t *testing.T) {
	var buf bytes.Buffer

	logger := jsonLogger(&buf)

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() { logger.Info("message", slog.Int("id", i)) })
	}

	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 100 {
		t.Fatalf("got %d lines, want 100", len(lines))
	}
}

func BenchmarkLogger_Info(b *testing.B) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(false))

	for b.Loop() {
		buf.Reset()
		logger.Info("message", slog.Int("n", 1))
	}
}
