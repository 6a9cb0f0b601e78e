package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Info("server started")

	out := buf.String()
	if !strings.Contains(out, `"level":"info"`) {
		t.Errorf("expected info level in output, got %q", out)
	}
	if !strings.Contains(out, `"message":"server started"`) {
		t.Errorf("expected message in output, got %q", out)
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "warn", Format: "json", Output: &buf})

	logger.Info("should be dropped")
	logger.Warn("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("info message leaked past warn level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Errorf("expected warn message in output, got %q", out)
	}
}

func TestErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "info", Format: "json", Output: &buf})

	logger.Error(errors.New("connection refused"), "database unavailable")

	out := buf.String()
	if !strings.Contains(out, `"error":"connection refused"`) {
		t.Errorf("expected error field in output, got %q", out)
	}
}

func TestNewDefaultsBadLevelToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "loud", Format: "json", Output: &buf})

	logger.Debug("should be dropped")
	logger.Info("should be kept")

	out := buf.String()
	if strings.Contains(out, "should be dropped") {
		t.Errorf("debug message leaked past default level: %q", out)
	}
	if !strings.Contains(out, "should be kept") {
		t.Errorf("expected info message in output, got %q", out)
	}
}
