package client

import (
	"time"

	"github.com/tomz197/marbles/internal/draw"
	"github.com/tomz197/marbles/internal/object"
)

// ViewState represents the current screen for a client.
type ViewState int

const (
	ViewStart    ViewState = iota // Title screen
	ViewWatching                  // Live view of the shared world
	ViewShutdown                  // Server is shutting down
)

// ClientState holds per-viewer state. Each client has its own instance,
// managed by the Client.
type ClientState struct {
	Input         object.Input
	View          ViewState         // This client's screen
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time (client-side)
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	resetNotice   float64           // Seconds left to show the reset banner
	isInactive    bool              // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		View:    ViewStart,
		Running: true,
	}
}
