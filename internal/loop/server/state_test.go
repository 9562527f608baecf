package server

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/loop/config"
	"github.com/tomz197/marbles/internal/object"
)

var testBox = object.Box{Width: 60, Height: 40, Depth: 10}

func TestResetSpawnsInsideBox(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	w.Reset(25)

	if len(w.Marbles) != 25 {
		t.Fatalf("Expected 25 marbles, got %d", len(w.Marbles))
	}
	for i, m := range w.Marbles {
		if !testBox.Contains(m.Body.C, 0) {
			t.Errorf("Marble %d spawned outside the box at %v", i, m.Body.C)
		}
		if m.Body.R < config.MinMarbleRadius || m.Body.R > config.MaxMarbleRadius {
			t.Errorf("Marble %d radius %v out of range", i, m.Body.R)
		}
		if m.Body.M <= 0 {
			t.Errorf("Marble %d has non-positive mass", i)
		}
	}
}

func TestResetIsSeeded(t *testing.T) {
	a := NewWorldState(testBox, config.Gravity, 99)
	b := NewWorldState(testBox, config.Gravity, 99)
	a.Reset(10)
	b.Reset(10)

	for i := range a.Marbles {
		if a.Marbles[i] != b.Marbles[i] {
			t.Fatalf("Marble %d differs between equal seeds", i)
		}
	}
}

func TestSpawnMarbleLimit(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	for i := 0; i < config.MaxMarbles; i++ {
		if !w.SpawnMarble(mgl64.Vec3{10, 10, 5}, 1, mgl64.Vec3{}) {
			t.Fatalf("Spawn %d rejected below the limit", i)
		}
	}
	if w.SpawnMarble(mgl64.Vec3{10, 10, 5}, 1, mgl64.Vec3{}) {
		t.Error("Expected spawn beyond MaxMarbles to be rejected")
	}
}

func TestStepMarbleSettlesOnFloor(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	w.SpawnMarble(mgl64.Vec3{30, 20, 5}, 2, mgl64.Vec3{})

	for i := 0; i < 2000; i++ {
		w.Step()
	}

	if len(w.Marbles) != 1 {
		t.Fatalf("Expected the marble to stay in the box, got %d marbles", len(w.Marbles))
	}
	m := w.Marbles[0]
	floor := w.Walls[0].Body
	if d := floor.SignedDistance(m.Body.C); d < m.Body.R-0.05 || d > m.Body.R+1 {
		t.Errorf("Expected marble resting on the floor, height above floor %v", d)
	}
	if w.Tick != 2000 {
		t.Errorf("Expected tick 2000, got %d", w.Tick)
	}
}

func TestStepPushesOverlappingMarblesApart(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 3)
	// Upper marble sunk one unit into the lower one
	w.SpawnMarble(mgl64.Vec3{30, 2, 5}, 2, mgl64.Vec3{})
	w.SpawnMarble(mgl64.Vec3{30, 5, 5}, 2, mgl64.Vec3{})

	w.Step()

	a, b := w.Marbles[0].Body, w.Marbles[1].Body
	if d := b.C.Sub(a.C).Len(); d <= 3 {
		t.Errorf("Expected marbles pushed apart, centre distance %v", d)
	}
	if w.Contacts.Len() == 0 {
		t.Error("Expected the step to record contacts")
	}
}

func TestStepPaused(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	w.SpawnMarble(mgl64.Vec3{30, 20, 5}, 2, mgl64.Vec3{1, 0, 0})
	w.Paused = true

	w.Step()

	if w.Tick != 0 || w.Marbles[0].Body.C != (mgl64.Vec3{30, 20, 5}) {
		t.Error("Expected paused world to stay still")
	}
}

func TestStepRemovesEscapedMarbles(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	w.SpawnMarble(mgl64.Vec3{30, 20, 5}, 2, mgl64.Vec3{})
	w.SpawnMarble(mgl64.Vec3{-500, 20, 5}, 2, mgl64.Vec3{})

	if n := w.Step(); n != 1 {
		t.Errorf("Expected Step to report 1 escaped marble, got %d", n)
	}

	if len(w.Marbles) != 1 {
		t.Fatalf("Expected escaped marble removed, got %d marbles", len(w.Marbles))
	}
	if math.Abs(w.Marbles[0].Body.C[0]-30) > 1e-9 {
		t.Errorf("Wrong marble removed: %v", w.Marbles[0].Body.C)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	w := NewWorldState(testBox, config.Gravity, 1)
	w.Reset(5)

	snap := w.Snapshot()
	w.Step()

	if snap.Marbles[0] == w.Marbles[0] {
		t.Error("Expected snapshot to be unaffected by later steps")
	}
	if len(snap.Walls) != 6 {
		t.Errorf("Expected 6 walls in snapshot, got %d", len(snap.Walls))
	}
}
