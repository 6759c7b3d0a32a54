package logging

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{Level(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("Level(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo},
		{"", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %d, expected %d", tt.input, got, tt.expected)
		}
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("WARN") {
		t.Error("WARN should be valid")
	}
	if ValidLevel("verbose") {
		t.Error("verbose should not be valid")
	}
}

func TestLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelWarn, Output: &buf, Prefix: "test"})

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown %d", 1)
	l.Error("shown %d", 2)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("expected debug/info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "[WARN] test: shown 1") {
		t.Errorf("missing warn line in %q", out)
	}
	if !strings.Contains(out, "[ERROR] test: shown 2") {
		t.Errorf("missing error line in %q", out)
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithComponent("engine").Info("recompute")

	out := buf.String()
	if !strings.Contains(out, "{alpha=a, component=engine, zeta=1}") {
		t.Errorf("unexpected field rendering: %q", out)
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Config{Level: LevelError, Output: &buf})
	child := parent.WithComponent("root")

	child.Info("before")
	parent.SetLevel(LevelDebug)
	child.Info("after")

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Error("child should honour parent level before change")
	}
	if !strings.Contains(out, "after") {
		t.Error("child should see parent level change")
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: LevelDebug, Output: &buf})

	l.Disable()
	l.Error("dropped")
	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}
	if l.Enabled(LevelError) {
		t.Error("Enabled should be false while disabled")
	}

	l.Enable()
	l.Error("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Error("expected output after Enable")
	}
}

func TestNull(t *testing.T) {
	l := Null()
	l.Error("nothing")
	if l.Enabled(LevelError) {
		t.Error("null logger must never be enabled")
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("no panic")
}

func TestNewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrollview.log")
	l, closer, err := NewFile(path, LevelDebug)
	if err != nil {
		t.Fatalf("NewFile: %v", err)
	}
	l.Debug("written")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestDefault(t *testing.T) {
	prev := Default()
	defer SetDefault(prev)

	custom := Null()
	SetDefault(custom)
	if Default() != custom {
		t.Error("SetDefault did not replace the process logger")
	}
}
