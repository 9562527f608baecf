package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		bytes string
		check func(Input) bool
	}{
		{"quit", "q", func(i Input) bool { return i.Quit }},
		{"ctrl-c", "\x03", func(i Input) bool { return i.Quit }},
		{"space", " ", func(i Input) bool { return i.Space }},
		{"reset", "R", func(i Input) bool { return i.Reset }},
		{"pause", "p", func(i Input) bool { return i.Pause }},
		{"enter", "\r", func(i Input) bool { return i.Enter }},
		{"arrow up", "\x1b[A", func(i Input) bool { return i.Up }},
		{"arrow down", "\x1b[B", func(i Input) bool { return i.Down }},
		{"arrow right", "\x1b[C", func(i Input) bool { return i.Right }},
		{"arrow left", "\x1b[D", func(i Input) bool { return i.Left }},
		{"combo", "a\x1b[A", func(i Input) bool { return i.Left && i.Up && !i.Right }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Stream{}
			in := s.parse([]byte(tt.bytes), now)
			if !tt.check(in) {
				t.Errorf("Unexpected input for %q: %+v", tt.bytes, in)
			}
		})
	}
}

func TestArrowDoesNotTriggerLetters(t *testing.T) {
	s := &Stream{}
	// The 'D' of a left arrow must not count as the right key
	in := s.parse([]byte("\x1b[D"), time.Now())
	if in.Right {
		t.Error("Arrow escape sequence leaked into letter handling")
	}
}

func TestKeyHoldExpires(t *testing.T) {
	s := &Stream{}
	start := time.Now()

	if in := s.parse([]byte(" "), start); !in.Space {
		t.Fatal("Expected space to be held immediately")
	}
	if in := s.parse(nil, start.Add(keyHoldDuration/2)); !in.Space {
		t.Error("Expected space to still be held within the hold window")
	}
	if in := s.parse(nil, start.Add(keyHoldDuration*2)); in.Space {
		t.Error("Expected space to be released after the hold window")
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{}
	now := time.Now()
	s.parse([]byte("p"), now)

	ResetKeyInput(s)

	if in := s.parse(nil, now); in.Pause {
		t.Error("Expected ResetKeyInput to clear held keys")
	}
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("q")))

	deadline := time.Now().Add(time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		ReadInput(s)
		time.Sleep(time.Millisecond)
	}

	if !s.Closed() {
		t.Fatal("Expected stream to report closed after EOF")
	}
}
