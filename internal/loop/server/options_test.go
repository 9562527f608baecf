package server

import (
	"testing"

	"github.com/tomz197/marbles/internal/loop/config"
)

func TestOptionsFromEnv(t *testing.T) {
	t.Setenv(EnvMarbles, "12")
	t.Setenv(EnvGravity, "0.05")
	t.Setenv(EnvSeed, "7")

	opts, err := OptionsFromEnv(nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if opts.Marbles != 12 || opts.Gravity != 0.05 || opts.Seed != 7 {
		t.Errorf("Unexpected options %+v", opts)
	}
}

func TestOptionsFromEnvInvalid(t *testing.T) {
	t.Setenv(EnvMarbles, "lots")
	t.Setenv(EnvGravity, "down")
	t.Setenv(EnvSeed, "")

	opts, err := OptionsFromEnv(nil)
	if err == nil {
		t.Fatal("Expected an error for malformed values")
	}
	if opts.Marbles != config.InitialMarbles || opts.Gravity != config.Gravity {
		t.Errorf("Expected defaults, got %+v", opts)
	}
}

func TestOptionsFromEnvClampsCount(t *testing.T) {
	t.Setenv(EnvMarbles, "100000")

	opts, _ := OptionsFromEnv(nil)
	if opts.Marbles != config.MaxMarbles {
		t.Errorf("Expected count clamped to %d, got %d", config.MaxMarbles, opts.Marbles)
	}
}
