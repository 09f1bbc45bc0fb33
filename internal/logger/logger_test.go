package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewForKnownEnvironments(t *testing.T) {
	for _, env := range []string{"production", "development", ""} {
		logger, err := New(env)
		if err != nil {
			t.Errorf("New(%q) failed: %v", env, err)
			continue
		}
		if logger == nil {
			t.Errorf("New(%q) returned nil", env)
		}
	}
}

func TestNewWithDefaultsNeverNil(t *testing.T) {
	if NewWithDefaults() == nil {
		t.Fatal("NewWithDefaults must always return a usable logger")
	}
}

func TestLogEntriesAreStructuredJSON(t *testing.T) {
	var buf bytes.Buffer

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(&buf),
		zapcore.DebugLevel,
	)
	logger := zap.New(core)
	defer logger.Sync()

	logger.Info("catalog seeded", zap.Int("products", 4))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Log output is not valid JSON: %v", err)
	}
	if entry["message"] != "catalog seeded" {
		t.Errorf("Expected message to round-trip, got %v", entry["message"])
	}
	if entry["level"] != "info" {
		t.Errorf("Expected level info, got %v", entry["level"])
	}
	if entry["products"] != float64(4) {
		t.Errorf("Expected structured field products=4, got %v", entry["products"])
	}
}
