package server

import (
	"math/rand"
	"slices"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/collision"
	"github.com/tomz197/marbles/internal/geom"
	"github.com/tomz197/marbles/internal/loop/config"
	"github.com/tomz197/marbles/internal/object"
)

// spawnAttempts bounds the search for a free spot when dropping a marble.
const spawnAttempts = 12

// WorldState holds the simulated world. It is owned by the server goroutine.
type WorldState struct {
	Marbles  []object.Marble
	Walls    []object.Wall
	Contacts *collision.Contacts // Scratch space reused every tick
	Box      object.Box
	Gravity  mgl64.Vec3 // Units per tick squared
	Tick     uint64
	Paused   bool

	rng *rand.Rand
}

// WorldSnapshot is an immutable copy of the world for rendering.
type WorldSnapshot struct {
	Marbles        []object.Marble
	Walls          []object.Wall // Shared; walls never change after creation
	Box            object.Box
	Gravity        mgl64.Vec3
	Tick           uint64
	Paused         bool
	WallContacts   int
	MarbleContacts int
	Viewers        int
	Delta          time.Duration
}

// NewWorldState creates an empty box world with downward gravity.
func NewWorldState(box object.Box, gravity float64, seed int64) *WorldState {
	return &WorldState{
		Walls:    object.NewBoxWalls(box),
		Contacts: collision.NewContacts(),
		Box:      box,
		Gravity:  mgl64.Vec3{0, -gravity, 0},
		rng:      rand.New(rand.NewSource(seed)),
	}
}

// Reset removes all marbles and drops n new ones.
func (w *WorldState) Reset(n int) {
	w.Marbles = w.Marbles[:0]
	w.Contacts.Clear()
	w.Tick = 0
	for i := 0; i < n; i++ {
		w.SpawnRandom()
	}
}

// SpawnMarble adds a marble unless the world is full.
func (w *WorldState) SpawnMarble(c mgl64.Vec3, r float64, v mgl64.Vec3) bool {
	if len(w.Marbles) >= config.MaxMarbles {
		return false
	}
	w.Marbles = append(w.Marbles, object.NewMarble(c, r, v))
	return true
}

// SpawnRandom drops a marble of random size and velocity into the upper half
// of the box, preferring a spot that does not touch another marble.
func (w *WorldState) SpawnRandom() bool {
	r := config.MinMarbleRadius + w.rng.Float64()*(config.MaxMarbleRadius-config.MinMarbleRadius)

	var c mgl64.Vec3
	for attempt := 0; attempt < spawnAttempts; attempt++ {
		c = mgl64.Vec3{
			r + w.rng.Float64()*(w.Box.Width-2*r),
			w.Box.Height/2 + w.rng.Float64()*(w.Box.Height/2-r),
			r + w.rng.Float64()*max(w.Box.Depth-2*r, 0),
		}
		if w.isFree(geom.NewSphere(c, r)) {
			break
		}
	}

	v := mgl64.Vec3{
		(w.rng.Float64()*2 - 1) * config.MaxSpawnSpeed,
		(w.rng.Float64()*2 - 1) * config.MaxSpawnSpeed,
		(w.rng.Float64()*2 - 1) * config.MaxSpawnSpeed / 4,
	}
	return w.SpawnMarble(c, r, v)
}

func (w *WorldState) isFree(s geom.Sphere) bool {
	for i := range w.Marbles {
		if geom.TouchingSphereSphere(w.Marbles[i].Body, s) {
			return false
		}
	}
	return true
}

// Step advances the world by one tick: integrate, collide, drop escapees.
// Returns the number of marbles that left the box.
func (w *WorldState) Step() int {
	if w.Paused {
		return 0
	}

	for i := range w.Marbles {
		w.Marbles[i].Integrate(w.Gravity)
	}

	collision.Update(w.Walls, w.Marbles, w.Contacts)

	escaped := w.removeEscaped()
	w.Tick++
	return escaped
}

// removeEscaped drops marbles that tunnelled out of the box. Runs after
// collision so contact indices are never invalidated mid-tick.
func (w *WorldState) removeEscaped() int {
	before := len(w.Marbles)
	w.Marbles = slices.DeleteFunc(w.Marbles, func(m object.Marble) bool {
		return !w.Box.Contains(m.Body.C, config.EscapeMargin)
	})
	return before - len(w.Marbles)
}

// Snapshot copies the world into a new snapshot.
func (w *WorldState) Snapshot() *WorldSnapshot {
	return &WorldSnapshot{
		Marbles:        slices.Clone(w.Marbles),
		Walls:          w.Walls,
		Box:            w.Box,
		Gravity:        w.Gravity,
		Tick:           w.Tick,
		Paused:         w.Paused,
		WallContacts:   len(w.Contacts.WM),
		MarbleContacts: len(w.Contacts.MM),
	}
}
