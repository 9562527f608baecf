package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/loop/config"
	"github.com/tomz197/marbles/internal/object"
)

// SimServer is the interface clients use to talk to the simulation.
// Decouples the Client from the concrete Server implementation.
type SimServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendInput(clientID int, input object.Input)
	GetSnapshot() *WorldSnapshot
}

// Options configures a Server.
type Options struct {
	Marbles int     // Marbles dropped at start and on reset
	Gravity float64 // Downward acceleration, units per tick squared
	Seed    int64
	Logger  *log.Logger
}

// Server owns the shared world and steps it at a fixed tick rate.
// Clients read immutable snapshots and send inputs through channels.
type Server struct {
	world        *WorldState
	opts         Options
	log          *log.Logger
	snapshot     atomic.Pointer[WorldSnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	inputChan    chan ClientInput
	registerCh   chan *ClientHandle
	unregisterCh chan int
	mu           sync.RWMutex
	lastTick     time.Time
	done         chan struct{} // Closed when Run returns
}

var _ SimServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string
	Input    object.Input     // Last input received, used for edge detection
	EventsCh chan ClientEvent // Events sent to client
}

// ClientInput represents input from a specific client.
type ClientInput struct {
	ClientID int
	Input    object.Input
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventWorldReset
)

// NewServer creates a server with a freshly populated world.
func NewServer(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Gravity == 0 {
		opts.Gravity = config.Gravity
	}

	box := object.Box{
		Width:  config.WorldWidth,
		Height: config.WorldHeight,
		Depth:  config.WorldDepth,
	}
	world := NewWorldState(box, opts.Gravity, opts.Seed)
	world.Reset(opts.Marbles)

	s := &Server{
		world:        world,
		opts:         opts,
		log:          opts.Logger.WithPrefix("sim"),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		inputChan:    make(chan ClientInput, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		lastTick:     time.Now(),
		done:         make(chan struct{}),
	}
	s.createSnapshot()

	return s
}

// Run starts the tick loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.log.Info("simulation started", "marbles", len(s.world.Marbles), "tickRate", config.ServerTickRate)

	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("simulation stopped", "tick", s.world.Tick)
			return
		case <-ticker.C:
			s.tick()
		}
	}
}

// tick runs one full server frame.
func (s *Server) tick() {
	s.processRegistrations()
	s.collectInputs()
	if escaped := s.world.Step(); escaped > 0 {
		s.log.Debug("marbles escaped", "count", escaped, "tick", s.world.Tick)
	}
	s.createSnapshot()
}

// Shutdown notifies all connected clients and waits for them to disconnect
// (up to the given timeout). Cancel the Run context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", s.clientCount())
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server. It does not block
// once Run has returned.
func (s *Server) UnregisterClient(clientID int) {
	select {
	case s.unregisterCh <- clientID:
	case <-s.done:
	}
}

// SendInput sends input from a client to the server.
func (s *Server) SendInput(clientID int, input object.Input) {
	select {
	case s.inputChan <- ClientInput{ClientID: clientID, Input: input}:
	default:
		// Input channel full, drop input
	}
}

// GetSnapshot returns the current world snapshot.
func (s *Server) GetSnapshot() *WorldSnapshot {
	return s.snapshot.Load()
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Info("viewer joined", "id", handle.ID, "user", handle.Username)
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
				s.log.Info("viewer left", "id", clientID, "user", handle.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

// collectInputs applies all pending inputs in arrival order.
func (s *Server) collectInputs() {
	for {
		select {
		case ci := <-s.inputChan:
			s.mu.RLock()
			handle, ok := s.clients[ci.ClientID]
			s.mu.RUnlock()
			if ok {
				s.applyInput(handle, ci.Input)
			}
		default:
			return
		}
	}
}

// applyInput acts on keys that went down since the client's previous input.
func (s *Server) applyInput(handle *ClientHandle, in object.Input) {
	prev := handle.Input
	handle.Input = in
	pressed := func(now, before bool) bool { return now && !before }

	w := s.world
	if pressed(in.Pause, prev.Pause) {
		w.Paused = !w.Paused
		s.log.Debug("pause toggled", "paused", w.Paused, "by", handle.Username)
	}
	if pressed(in.Reset, prev.Reset) {
		w.Reset(s.opts.Marbles)
		s.log.Info("world reset", "by", handle.Username, "marbles", len(w.Marbles))
		s.broadcast(ClientEvent{Type: EventWorldReset})
	}
	if pressed(in.Space, prev.Space) {
		if !w.SpawnRandom() {
			s.log.Debug("marble limit reached", "max", config.MaxMarbles)
		}
	}

	g := s.opts.Gravity
	switch {
	case pressed(in.Left, prev.Left):
		w.Gravity[0] = max(w.Gravity[0]-config.GravityTilt, -2*config.GravityTilt)
	case pressed(in.Right, prev.Right):
		w.Gravity[0] = min(w.Gravity[0]+config.GravityTilt, 2*config.GravityTilt)
	case pressed(in.Up, prev.Up):
		w.Gravity[1] = g
	case pressed(in.Down, prev.Down):
		w.Gravity = mgl64.Vec3{0, -g, 0}
	}
}

// broadcast sends an event to every client without blocking.
func (s *Server) broadcast(ev ClientEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ev:
		default:
		}
	}
}

// createSnapshot publishes the world state for clients.
// Snapshots are never reused since clients may hold one across several ticks.
func (s *Server) createSnapshot() {
	now := time.Now()
	snapshot := s.world.Snapshot()
	snapshot.Viewers = s.clientCount()
	snapshot.Delta = now.Sub(s.lastTick)
	s.lastTick = now

	s.snapshot.Store(snapshot)
}
