package object

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/geom"
)

// Marble is a dynamic sphere. Velocity is in world units per tick.
type Marble struct {
	Body     geom.Sphere
	Velocity mgl64.Vec3
}

// NewMarble creates a marble at c with radius r moving at v.
func NewMarble(c mgl64.Vec3, r float64, v mgl64.Vec3) Marble {
	return Marble{
		Body:     geom.NewSphere(c, r),
		Velocity: v,
	}
}

// Integrate advances the marble by one tick under the given acceleration.
func (m *Marble) Integrate(accel mgl64.Vec3) {
	m.Velocity = m.Velocity.Add(accel)
	m.Body.C = m.Body.C.Add(m.Velocity)
}

// Speed returns the length of the velocity vector.
func (m *Marble) Speed() float64 {
	return m.Velocity.Len()
}

// Draw renders the marble as a filled disc on the front view.
func (m *Marble) Draw(ctx DrawContext) error {
	pos := WorldToScreen(m.Body.C, ctx.World)
	ctx.Canvas.DrawCircle(pos, m.Body.R, true)
	return nil
}
