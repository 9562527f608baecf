package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, "warn")

	l.Info("hidden")
	l.Warn("shown", "tick", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("Expected info message to be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "tick=3") {
		t.Errorf("Expected structured warn line, got %q", out)
	}
}

func TestNewUnknownLevel(t *testing.T) {
	l := New(&bytes.Buffer{}, "chatty")
	if l.GetLevel() != log.InfoLevel {
		t.Errorf("Expected info level fallback, got %v", l.GetLevel())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "debug")
	l := FromEnv(&bytes.Buffer{})
	if l.GetLevel() != log.DebugLevel {
		t.Errorf("Expected debug level, got %v", l.GetLevel())
	}
}
