package config

import (
	"errors"
	"strconv"
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MARBLES_TEST_STR", "hello")

	if got := GetEnv("MARBLES_TEST_STR", "x"); got != "hello" {
		t.Errorf("Expected hello, got %q", got)
	}
	if got := GetEnv("MARBLES_TEST_UNSET", "x"); got != "x" {
		t.Errorf("Expected fallback, got %q", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("MARBLES_TEST_INT", "42")
	if n, err := GetEnvInt("MARBLES_TEST_INT", 7); err != nil || n != 42 {
		t.Errorf("Expected 42, got %d (%v)", n, err)
	}

	if n, err := GetEnvInt("MARBLES_TEST_UNSET", 7); err != nil || n != 7 {
		t.Errorf("Expected fallback 7, got %d (%v)", n, err)
	}

	t.Setenv("MARBLES_TEST_INT", "many")
	n, err := GetEnvInt("MARBLES_TEST_INT", 7)
	if n != 7 {
		t.Errorf("Expected fallback on parse error, got %d", n)
	}
	if !errors.Is(err, strconv.ErrSyntax) {
		t.Errorf("Expected syntax error, got %v", err)
	}
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("MARBLES_TEST_FLOAT", "0.25")
	if f, err := GetEnvFloat("MARBLES_TEST_FLOAT", 1); err != nil || f != 0.25 {
		t.Errorf("Expected 0.25, got %v (%v)", f, err)
	}

	t.Setenv("MARBLES_TEST_FLOAT", "")
	if f, err := GetEnvFloat("MARBLES_TEST_FLOAT", 1); err != nil || f != 1 {
		t.Errorf("Expected fallback for empty value, got %v (%v)", f, err)
	}

	t.Setenv("MARBLES_TEST_FLOAT", "1.2.3")
	if f, err := GetEnvFloat("MARBLES_TEST_FLOAT", 1); err == nil || f != 1 {
		t.Errorf("Expected fallback and error, got %v (%v)", f, err)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("MARBLES_TEST_DUR", "1500ms")
	if d, err := GetEnvDuration("MARBLES_TEST_DUR", time.Second); err != nil || d != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s, got %v (%v)", d, err)
	}

	t.Setenv("MARBLES_TEST_DUR", "soon")
	if d, err := GetEnvDuration("MARBLES_TEST_DUR", time.Second); err == nil || d != time.Second {
		t.Errorf("Expected fallback and error, got %v (%v)", d, err)
	}
}
