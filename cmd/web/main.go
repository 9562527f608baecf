package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/tomz197/marbles/internal/config"
	"github.com/tomz197/marbles/internal/logging"
	"github.com/tomz197/marbles/internal/loop/server"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	logger := logging.FromEnv(os.Stderr)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	opts, err := server.OptionsFromEnv(logger)
	if err != nil {
		logger.Warn("invalid simulation settings, using defaults", "err", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Headless simulation backing the /state preview
	sim := server.NewServer(opts)
	go sim.Run(ctx)

	page := strings.ReplaceAll(htmlPage, "{{.SSHHost}}", sshHost)
	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           newMux(page, sim),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}

// newMux serves the landing page and the live world state.
func newMux(page string, sim server.SimServer) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	})
	mux.HandleFunc("GET /state", func(w http.ResponseWriter, r *http.Request) {
		snapshot := sim.GetSnapshot()
		if snapshot == nil {
			http.Error(w, "simulation not ready", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(newStateView(snapshot)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// stateView is the JSON shape of a world snapshot.
type stateView struct {
	Tick     uint64       `json:"tick"`
	Paused   bool         `json:"paused"`
	Gravity  [3]float64   `json:"gravity"`
	Box      [3]float64   `json:"box"`
	Contacts contactsView `json:"contacts"`
	Marbles  []marbleView `json:"marbles"`
}

type contactsView struct {
	Wall   int `json:"wall"`
	Marble int `json:"marble"`
}

type marbleView struct {
	Pos    [3]float64 `json:"pos"`
	Vel    [3]float64 `json:"vel"`
	Radius float64    `json:"radius"`
	Mass   float64    `json:"mass"`
}

func newStateView(s *server.WorldSnapshot) stateView {
	v := stateView{
		Tick:    s.Tick,
		Paused:  s.Paused,
		Gravity: s.Gravity,
		Box:     [3]float64{s.Box.Width, s.Box.Height, s.Box.Depth},
		Contacts: contactsView{
			Wall:   s.WallContacts,
			Marble: s.MarbleContacts,
		},
		Marbles: make([]marbleView, len(s.Marbles)),
	}
	for i, m := range s.Marbles {
		v.Marbles[i] = marbleView{
			Pos:    m.Body.C,
			Vel:    m.Velocity,
			Radius: m.Body.R,
			Mass:   m.Body.M,
		}
	}
	return v
}
