// Package config centralizes all tunable simulation parameters.
package config

import "time"

// World box in world units. The front view shows Width x Height;
// logical canvas units match world units.
const (
	WorldWidth  = 120
	WorldHeight = 80 // In sub-pixels, so 40 terminal rows at 1:1
	WorldDepth  = 16
)

// Marbles
const (
	InitialMarbles  = 40
	MaxMarbles      = 200
	MinMarbleRadius = 1.5
	MaxMarbleRadius = 3.5
	MaxSpawnSpeed   = 0.6 // Units per tick
	EscapeMargin    = 20  // Marbles further than this outside the box are removed
)

// Gravity in units per tick squared.
const (
	Gravity     = 0.02
	GravityTilt = 0.01 // Sideways component applied by the tilt keys
)

// Render limits
const (
	MaxTermWidth  = 240
	MaxTermHeight = 80
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 240 // Seconds
	InactivityDisconnectUser = 300 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 30
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
