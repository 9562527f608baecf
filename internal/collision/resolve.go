package collision

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tomz197/marbles/internal/geom"
	"github.com/tomz197/marbles/internal/object"
)

// Restitute sorts contacts and applies them to marbles, wall contacts first.
// Each contact is re-tested against current positions and skipped if the
// bodies no longer overlap.
func Restitute(walls []object.Wall, marbles []object.Marble, contacts *Contacts) {
	contacts.Sort()

	for _, c := range contacts.WM {
		resolveWall(&marbles[c.A], &walls[c.B])
	}
	for _, c := range contacts.MM {
		resolveMarbles(&marbles[c.A], &marbles[c.B])
	}
}

// resolveWall pops m out of w and feeds the same offset into its velocity.
// Position and velocity units differ; the velocity kick stands in for a
// normal force. Returns false if they no longer touch.
func resolveWall(m *object.Marble, w *object.Wall) bool {
	disp, ok := geom.DispSpherePlane(m.Body, w.Body)
	if !ok {
		return false
	}
	m.Body.C = m.Body.C.Add(disp)
	m.Velocity = m.Velocity.Add(disp)
	return true
}

// resolveMarbles bounces a and b off each other elastically and pushes them
// apart. Returns false if they no longer overlap.
func resolveMarbles(a, b *object.Marble) bool {
	disp, ok := geom.DispSphereSphere(a.Body, b.Body)
	if !ok {
		return false
	}

	v1f, v2f := elasticVelocities(a.Velocity, b.Velocity, a.Body.M, b.Body.M)
	dispA, dispB := splitDisplacement(disp, v1f, v2f)

	a.Body.C = a.Body.C.Sub(dispA)
	a.Velocity = v1f
	b.Body.C = b.Body.C.Add(dispB)
	b.Velocity = v2f
	return true
}

// elasticVelocities solves conservation of momentum and kinetic energy for
// two bodies, treating each velocity vector as a whole:
//
//	m1·v1i + m2·v2i = m1·v1f + m2·v2f
//	v1i + v1f = v2i + v2f
func elasticVelocities(v1i, v2i mgl64.Vec3, m1, m2 float64) (v1f, v2f mgl64.Vec3) {
	v1f = div(v1i.Mul(m1).Add(v2i.Mul(2*m2)).Sub(v1i.Mul(m2)), m1+m2)
	v2f = v1i.Add(v1f).Sub(v2i)
	return v1f, v2f
}

// splitDisplacement shares disp between the two bodies by the squared length
// of each post-collision velocity over that of their sum. The shares need not
// add up to disp. When the sum is zero the split is even.
func splitDisplacement(disp, v1f, v2f mgl64.Vec3) (dispA, dispB mgl64.Vec3) {
	total := v1f.Add(v2f).LenSqr()
	if total == 0 {
		half := disp.Mul(0.5)
		return half, half
	}
	return disp.Mul(v1f.LenSqr() / total), disp.Mul(v2f.LenSqr() / total)
}

func div(v mgl64.Vec3, s float64) mgl64.Vec3 {
	return mgl64.Vec3{v[0] / s, v[1] / s, v[2] / s}
}
