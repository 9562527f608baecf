// Package logging builds the structured loggers used by the commands and the
// simulation server.
package logging

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/marbles/internal/config"
)

// LevelEnv names the environment variable holding the log level.
const LevelEnv = "MARBLES_LOG_LEVEL"

// New returns a logger writing to w at the given level name
// (debug, info, warn, error). Unknown names fall back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "marbles",
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
}

// FromEnv returns a logger writing to w at the level named by LevelEnv.
func FromEnv(w io.Writer) *log.Logger {
	return New(w, config.GetEnv(LevelEnv, "info"))
}
