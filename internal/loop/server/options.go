package server

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/marbles/internal/config"
	loopconfig "github.com/tomz197/marbles/internal/loop/config"
)

// Environment variables read by OptionsFromEnv.
const (
	EnvMarbles = "MARBLES_COUNT"
	EnvGravity = "MARBLES_GRAVITY"
	EnvSeed    = "MARBLES_SEED"
)

// OptionsFromEnv builds server options from the environment. Malformed
// values keep their defaults and are reported in the returned error.
func OptionsFromEnv(logger *log.Logger) (Options, error) {
	marbles, errMarbles := config.GetEnvInt(EnvMarbles, loopconfig.InitialMarbles)
	gravity, errGravity := config.GetEnvFloat(EnvGravity, loopconfig.Gravity)
	seed, errSeed := config.GetEnvInt(EnvSeed, int(time.Now().UnixNano()))

	opts := Options{
		Marbles: min(max(marbles, 0), loopconfig.MaxMarbles),
		Gravity: gravity,
		Seed:    int64(seed),
		Logger:  logger,
	}
	return opts, errors.Join(errMarbles, errGravity, errSeed)
}
