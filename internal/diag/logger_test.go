package diag

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: LevelWarn, Output: &buf})

	l.Debug("should not appear")
	l.Info("should not appear either")
	l.Warn("division by zero")

	out := buf.String()
	if strings.Contains(out, "should not appear") {
		t.Errorf("logger emitted below its configured level: %q", out)
	}
	if !strings.Contains(out, "division by zero") {
		t.Errorf("logger did not emit Warn message: %q", out)
	}
	if !strings.Contains(out, "[WARN]") {
		t.Errorf("expected [WARN] prefix, got: %q", out)
	}
}

func TestLogger_Formatted(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: LevelDebug, Output: &buf})

	l.Errorf("store address %d out of range", 2048)

	out := buf.String()
	if !strings.Contains(out, "store address 2048 out of range") {
		t.Errorf("Errorf did not format message: %q", out)
	}
}

func TestDefaultLogger(t *testing.T) {
	if Default() == nil {
		t.Fatal("Default() returned nil")
	}

	var buf bytes.Buffer
	SetDefault(New(&Config{Level: LevelDebug, Output: &buf}))
	Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("package-level Info did not reach default logger: %q", buf.String())
	}
}

func TestNew_NilConfig(t *testing.T) {
	l := New(nil)
	if l == nil {
		t.Fatal("New(nil) returned nil logger")
	}
	if l.level != LevelInfo {
		t.Errorf("New(nil) level = %v, want LevelInfo", l.level)
	}
}
