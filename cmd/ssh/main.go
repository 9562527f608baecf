package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlog "github.com/charmbracelet/wish/logging"
	"github.com/tomz197/marbles/internal/config"
	"github.com/tomz197/marbles/internal/draw"
	"github.com/tomz197/marbles/internal/logging"
	"github.com/tomz197/marbles/internal/loop/client"
	"github.com/tomz197/marbles/internal/loop/server"
)

const (
	defaultHost            = "::"
	defaultPort            = "2222"
	defaultHostKeyPath     = "/app/keys/host_key"
	defaultShutdownTimeout = 15 * time.Second
)

// Shared simulation, watched by every SSH session
var (
	simServer    *server.Server
	cancelServer context.CancelFunc
	serverOnce   sync.Once
)

func main() {
	logger := logging.FromEnv(os.Stderr)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	shutdownTimeout, err := config.GetEnvDuration("SSH_SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		logger.Warn("invalid shutdown timeout, using default", "err", err)
	}
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	serverOnce.Do(func() {
		opts, err := server.OptionsFromEnv(logger)
		if err != nil {
			logger.Warn("invalid simulation settings, using defaults", "err", err)
		}
		var ctx context.Context
		ctx, cancelServer = context.WithCancel(context.Background())
		simServer = server.NewServer(opts)
		go simServer.Run(ctx)
	})

	sshOpts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			simMiddleware(logger),
			activeterm.Middleware(),
			wishlog.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY so key presses reach the server promptly
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		sshOpts = append(sshOpts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(sshOpts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down")

	// Tell viewers the box is closing and wait for them to leave
	if simServer != nil {
		simServer.Shutdown(shutdownTimeout)
		cancelServer()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// simMiddleware attaches a terminal client to the shared simulation.
func simMiddleware(logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			logger.Info("session started", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			c := client.NewClient(simServer, bufio.NewReader(sess), sess, client.ClientOptions{
				TermSizeFunc: sizeTracker.getSize,
				Username:     sess.User(),
			})
			if err := c.Run(); err != nil {
				logger.Error("client error", "user", sess.User(), "err", err)
			}

			logger.Info("session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
