package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should discard all levels")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewText(&buf, false))
	defer SetLogger(nil)

	Logger().Warn("pick skipped", "reason", "no target")
	Logger().Debug("hidden")

	out := buf.String()
	if !strings.Contains(out, "pick skipped") {
		t.Errorf("expected warning in output, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Error("debug output should be filtered when not verbose")
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(NewText(&buf, true))
	defer SetLogger(nil)

	Logger().Debug("turn", "face", "front")
	if !strings.Contains(buf.String(), "face=front") {
		t.Errorf("expected debug record, got %q", buf.String())
	}
}
