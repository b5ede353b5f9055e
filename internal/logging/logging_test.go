package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewJSONFormat(t *testing.T) {
	var output bytes.Buffer
	logger := New("debug", "json", &output)

	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("expected debug level, got %s", logger.GetLevel())
	}
	logger.WithField("day", "2024-01-01").Info("saved")

	entry := map[string]any{}
	if err := json.Unmarshal(output.Bytes(), &entry); err != nil {
		t.Fatalf("expected json log line, got %q: %v", output.String(), err)
	}
	if entry["msg"] != "saved" || entry["day"] != "2024-01-01" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestNewTextFormat(t *testing.T) {
	var output bytes.Buffer
	logger := New("warn", "text", &output)

	logger.Info("hidden")
	logger.Warn("visible")

	text := output.String()
	if strings.Contains(text, "hidden") {
		t.Fatalf("expected info entry to be filtered, got %q", text)
	}
	if !strings.Contains(text, "msg=visible") {
		t.Fatalf("expected text entry, got %q", text)
	}
}

func TestNewInvalidLevelFallsBackToInfo(t *testing.T) {
	var output bytes.Buffer
	logger := New("chatty", "text", &output)

	if logger.GetLevel() != logrus.InfoLevel {
		t.Fatalf("expected info level, got %s", logger.GetLevel())
	}
	if !strings.Contains(output.String(), "invalid log level") {
		t.Fatalf("expected fallback warning, got %q", output.String())
	}
}
