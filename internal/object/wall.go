package object

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/geom"
)

// Wall is a static plane.
type Wall struct {
	Body geom.Plane
}

// NewWall creates a wall from a normal and offset (see geom.NewPlane).
func NewWall(n mgl64.Vec3, d float64) Wall {
	return Wall{Body: geom.NewPlane(n, d)}
}

// NewBoxWalls returns the six inward-facing walls enclosing b.
func NewBoxWalls(b Box) []Wall {
	return []Wall{
		NewWall(mgl64.Vec3{0, 1, 0}, 0),          // Floor
		NewWall(mgl64.Vec3{0, -1, 0}, -b.Height), // Ceiling
		NewWall(mgl64.Vec3{1, 0, 0}, 0),          // Left
		NewWall(mgl64.Vec3{-1, 0, 0}, -b.Width),  // Right
		NewWall(mgl64.Vec3{0, 0, 1}, 0),          // Back
		NewWall(mgl64.Vec3{0, 0, -1}, -b.Depth),  // Front
	}
}

// Draw renders the wall where it cuts the middle depth slice of the world.
// Walls facing the viewer produce no line.
func (w *Wall) Draw(ctx DrawContext) error {
	p1, p2, ok := sliceSegment(w.Body, ctx.World)
	if !ok {
		return nil
	}
	ctx.Canvas.DrawLine(
		ctx.Canvas.ClampPoint(WorldToScreen(p1, ctx.World)),
		ctx.Canvas.ClampPoint(WorldToScreen(p2, ctx.World)),
	)
	return nil
}

// sliceSegment intersects the plane with the z = depth/2 rectangle of the box.
func sliceSegment(p geom.Plane, b Box) (mgl64.Vec3, mgl64.Vec3, bool) {
	nx, ny := p.N[0], p.N[1]
	z := b.Depth / 2
	// Line in the slice: nx*x + ny*y = c
	c := p.D - p.N[2]*z

	const eps = 1e-9
	var pts []mgl64.Vec3
	add := func(x, y float64) {
		if x < -eps || x > b.Width+eps || y < -eps || y > b.Height+eps {
			return
		}
		for _, q := range pts {
			if math.Abs(q[0]-x) < eps && math.Abs(q[1]-y) < eps {
				return
			}
		}
		pts = append(pts, mgl64.Vec3{x, y, z})
	}

	if math.Abs(ny) > eps {
		add(0, c/ny)
		add(b.Width, (c-nx*b.Width)/ny)
	}
	if math.Abs(nx) > eps {
		add(c/nx, 0)
		add((c-ny*b.Height)/nx, b.Height)
	}

	if len(pts) < 2 {
		return mgl64.Vec3{}, mgl64.Vec3{}, false
	}
	return pts[0], pts[1], true
}
