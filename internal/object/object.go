// Package object defines the simulated entities (marbles and walls) and how
// they are drawn.
package object

import (
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/draw"
	"github.com/tomz197/marbles/internal/input"
)

// Input is an alias for the input package's Input type.
type Input = input.Input

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas // High-resolution canvas (2x vertical)
	Writer io.Writer    // Direct terminal output (for text overlays)
	World  Box          // World dimensions; the view shows the whole box
}

// Drawable is anything that can put itself on the canvas.
type Drawable interface {
	Draw(ctx DrawContext) error
}

var (
	_ Drawable = (*Marble)(nil)
	_ Drawable = (*Wall)(nil)
)

// Box is the simulated volume, spanning [0,Width]x[0,Height]x[0,Depth].
type Box struct {
	Width  float64
	Height float64
	Depth  float64
}

// Center returns the middle point of the box.
func (b Box) Center() mgl64.Vec3 {
	return mgl64.Vec3{b.Width / 2, b.Height / 2, b.Depth / 2}
}

// Contains reports whether p lies inside the box, grown by margin on every side.
func (b Box) Contains(p mgl64.Vec3, margin float64) bool {
	return p[0] >= -margin && p[0] <= b.Width+margin &&
		p[1] >= -margin && p[1] <= b.Height+margin &&
		p[2] >= -margin && p[2] <= b.Depth+margin
}

// WorldToScreen projects a world point onto the front view.
// World Y points up, screen Y points down; Z is dropped.
func WorldToScreen(p mgl64.Vec3, world Box) draw.Point {
	return draw.Point{X: p[0], Y: world.Height - p[1]}
}
