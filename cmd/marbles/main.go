package main

import (
	"bufio"
	"context"
	"os"

	"github.com/tomz197/marbles/internal/config"
	"github.com/tomz197/marbles/internal/draw"
	"github.com/tomz197/marbles/internal/logging"
	"github.com/tomz197/marbles/internal/loop/client"
	"github.com/tomz197/marbles/internal/loop/server"
	"golang.org/x/term"
)

func main() {
	// Logs go to stderr so they do not tear the rendered frame;
	// redirect with 2>marbles.log to keep them.
	logger := logging.FromEnv(os.Stderr)

	opts, err := server.OptionsFromEnv(logger)
	if err != nil {
		logger.Warn("invalid simulation settings, using defaults", "err", err)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		logger.Fatal("failed to enable raw mode", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sim := server.NewServer(opts)
	go sim.Run(ctx)

	draw.EnterAltScreen(os.Stdout)
	c := client.NewClient(sim, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: config.GetEnv("USER", "local"),
	})
	runErr := c.Run()
	draw.ExitAltScreen(os.Stdout)

	cancel()
	_ = term.Restore(fd, oldState)

	if runErr != nil {
		logger.Fatal("client error", "err", runErr)
	}
}
