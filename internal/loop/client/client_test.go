package client

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/loop/config"
	"github.com/tomz197/marbles/internal/loop/server"
	"github.com/tomz197/marbles/internal/object"
)

// fakeServer records client calls and serves a fixed snapshot.
type fakeServer struct {
	handle   *server.ClientHandle
	snapshot *server.WorldSnapshot
	inputs   []object.Input
	left     []int
}

func newFakeServer() *fakeServer {
	box := object.Box{Width: config.WorldWidth, Height: config.WorldHeight, Depth: config.WorldDepth}
	return &fakeServer{
		snapshot: &server.WorldSnapshot{
			Marbles: []object.Marble{
				object.NewMarble(mgl64.Vec3{60, 40, 8}, 3, mgl64.Vec3{}),
			},
			Walls:          object.NewBoxWalls(box),
			Box:            box,
			Gravity:        mgl64.Vec3{0, -config.Gravity, 0},
			Tick:           42,
			WallContacts:   1,
			MarbleContacts: 2,
			Viewers:        3,
		},
	}
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle = &server.ClientHandle{ID: 7, Username: username, EventsCh: make(chan server.ClientEvent, 4)}
	return f.handle
}

func (f *fakeServer) UnregisterClient(clientID int) { f.left = append(f.left, clientID) }

func (f *fakeServer) SendInput(clientID int, input object.Input) {
	f.inputs = append(f.inputs, input)
}

func (f *fakeServer) GetSnapshot() *server.WorldSnapshot { return f.snapshot }

func newTestClient(fs *fakeServer, out *bytes.Buffer) *Client {
	return NewClient(fs, bufio.NewReader(strings.NewReader("")), out, ClientOptions{
		Username: "tester",
		TermSizeFunc: func() (int, int, error) {
			return 120, 40, nil
		},
	})
}

func TestClampTermSize(t *testing.T) {
	tests := []struct {
		name                 string
		width, height        int
		wantW, wantH         int
		wantOffCol, wantOffR int
	}{
		{"fits", 100, 30, 100, 30, 0, 0},
		{"too wide", config.MaxTermWidth + 20, 30, config.MaxTermWidth, 30, 10, 0},
		{"too tall", 100, config.MaxTermHeight + 11, 100, config.MaxTermHeight, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, oc, or := clampTermSize(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH || oc != tt.wantOffCol || or != tt.wantOffR {
				t.Errorf("clampTermSize(%d, %d) = %d, %d, %d, %d", tt.width, tt.height, w, h, oc, or)
			}
		})
	}
}

func TestNewClientRegisters(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(fs, &bytes.Buffer{})

	if fs.handle == nil || fs.handle.Username != "tester" {
		t.Fatal("Expected client to register with its username")
	}
	if c.canvas.TerminalWidth() != 120 || c.canvas.TerminalHeight() != 40 {
		t.Errorf("Unexpected canvas size %dx%d", c.canvas.TerminalWidth(), c.canvas.TerminalHeight())
	}
}

func TestUpdateScreenCentersLargeTerminal(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(fs, &bytes.Buffer{})
	c.termSizeFunc = func() (int, int, error) {
		return config.MaxTermWidth + 40, config.MaxTermHeight + 10, nil
	}

	c.updateScreen()

	if c.canvas.TerminalWidth() != config.MaxTermWidth || c.canvas.TerminalHeight() != config.MaxTermHeight {
		t.Errorf("Expected clamped canvas, got %dx%d", c.canvas.TerminalWidth(), c.canvas.TerminalHeight())
	}
	if c.canvas.OffsetCol() != 20 || c.canvas.OffsetRow() != 5 {
		t.Errorf("Expected offsets 20,5, got %d,%d", c.canvas.OffsetCol(), c.canvas.OffsetRow())
	}
}

func TestDrawFrameHUD(t *testing.T) {
	fs := newFakeServer()
	var out bytes.Buffer
	c := newTestClient(fs, &out)
	c.state.View = ViewWatching

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}

	frame := out.String()
	for _, want := range []string{"Tick: 42", "Marbles: 1", "Contacts:   1 wm   2 mm", "Viewers: 3"} {
		if !strings.Contains(frame, want) {
			t.Errorf("Expected frame to contain %q", want)
		}
	}
	if strings.Contains(frame, "PAUSED") {
		t.Error("Did not expect PAUSED in a running world")
	}

	fs.snapshot.Paused = true
	out.Reset()
	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "PAUSED") {
		t.Error("Expected PAUSED label in a paused world")
	}
}

func TestDrawFrameStartScreen(t *testing.T) {
	fs := newFakeServer()
	var out bytes.Buffer
	c := newTestClient(fs, &out)

	if err := c.drawFrame(); err != nil {
		t.Fatalf("drawFrame: %v", err)
	}
	if !strings.Contains(out.String(), "Controls") {
		t.Error("Expected start screen controls")
	}
}

func TestStartScreenSwitchesToWatching(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(fs, &bytes.Buffer{})

	c.state.Input = object.Input{Space: true}
	c.updateStartState()

	if c.state.View != ViewWatching {
		t.Fatal("Expected SPACE to start watching")
	}
	if c.state.Input.Space {
		t.Error("Expected the start key to be consumed")
	}
}

func TestServerEvents(t *testing.T) {
	fs := newFakeServer()
	c := newTestClient(fs, &bytes.Buffer{})
	c.state.View = ViewWatching

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventWorldReset}
	c.processServerEvents()
	if c.state.resetNotice <= 0 {
		t.Error("Expected reset banner after reset event")
	}

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	if c.state.View != ViewShutdown {
		t.Error("Expected shutdown view")
	}

	close(fs.handle.EventsCh)
	c.processServerEvents()
	if c.state.Running {
		t.Error("Expected client to stop when events channel closes")
	}
}
