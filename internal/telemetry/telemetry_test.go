package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}

	for env, want := range tests {
		t.Setenv("LOG_LEVEL", env)
		if got := LogLevel(); got != want {
			t.Errorf("LOG_LEVEL=%q: expected %v, got %v", env, want, got)
		}
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := WithCorrelationID(NewLogger(&buf, "json", slog.LevelInfo), "corr-1")

	logger.Info("request processed", "duration", 0.5)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output should be JSON: %v (%s)", err, buf.String())
	}
	if entry["correlation_id"] != "corr-1" || entry["msg"] != "request processed" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "text", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("visible", "queue", "domain-detection_cd1e14cb")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug messages should be filtered at info level")
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "domain-detection_cd1e14cb") {
		t.Errorf("unexpected output %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("non-terminal output should not be colored")
	}
}

func TestWithRequestID_Empty(t *testing.T) {
	logger := slog.Default()
	if WithRequestID(logger, "") != logger {
		t.Error("empty request id should not add attributes")
	}
}

func TestLoggerContext(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Error("expected logger from context")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger")
	}
}
