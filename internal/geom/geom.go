// Package geom provides the shapes used by the simulation and pure
// intersection queries between them.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// massPi is the value of π used for deriving mass from volume.
// Masses are pinned to this value; do not swap in math.Pi.
const massPi = 3.14

// Sphere is a solid ball. M is derived from R at construction time.
type Sphere struct {
	C mgl64.Vec3 // Center
	R float64    // Radius, always > 0
	M float64    // Mass
}

// NewSphere creates a sphere at c with radius r and volume-derived mass.
func NewSphere(c mgl64.Vec3, r float64) Sphere {
	return Sphere{
		C: c,
		R: r,
		M: (4.0 / 3.0) * massPi * r * r * r,
	}
}

// Plane is the set of points p with dot(p, N) == D. N has unit length.
type Plane struct {
	N mgl64.Vec3
	D float64
}

// NewPlane creates the plane dot(p, n) == d. Both sides are scaled by 1/|n|
// so the stored normal has unit length. A zero n is kept as is.
func NewPlane(n mgl64.Vec3, d float64) Plane {
	l := n.Len()
	if l == 0 {
		return Plane{N: n, D: d}
	}
	return Plane{N: n.Mul(1 / l), D: d / l}
}

// PlaneThrough creates the plane with normal n passing through point p.
func PlaneThrough(n, p mgl64.Vec3) Plane {
	n = n.Normalize()
	return Plane{N: n, D: p.Dot(n)}
}

// SignedDistance returns how far p lies from the plane along its normal.
func (p Plane) SignedDistance(pt mgl64.Vec3) float64 {
	return pt.Dot(p.N) - p.D
}

// TouchingSphereSphere reports whether s1 and s2 overlap or touch.
func TouchingSphereSphere(s1, s2 Sphere) bool {
	sum := s1.R + s2.R
	return s2.C.Sub(s1.C).LenSqr() <= sum*sum
}

// DispSphereSphere returns the offset that separates s1 from s2.
//
// The vector points from s1 towards s2 and its length is the overlap depth,
// so subtracting it from s1's center (or adding it to s2's) leaves the two
// spheres exactly tangent. Coincident centers use a distance of 1, which
// yields a zero vector rather than NaN.
func DispSphereSphere(s1, s2 Sphere) (mgl64.Vec3, bool) {
	offset := s2.C.Sub(s1.C)
	distance := offset.Len()
	if distance >= s1.R+s2.R {
		return mgl64.Vec3{}, false
	}
	if distance == 0 {
		distance = 1
	}
	dispMag := (s1.R + s2.R) - distance
	return offset.Mul(dispMag / distance), true
}

// TouchingSpherePlane reports whether s reaches the plane p.
func TouchingSpherePlane(s Sphere, p Plane) bool {
	return math.Abs(p.SignedDistance(s.C)) <= s.R
}

// DispSpherePlane returns the offset that moves s off the plane p.
// Adding it to the center leaves the sphere resting exactly on the plane,
// on the side the normal points to.
func DispSpherePlane(s Sphere, p Plane) (mgl64.Vec3, bool) {
	dist := p.SignedDistance(s.C)
	if math.Abs(dist) > s.R {
		return mgl64.Vec3{}, false
	}
	return p.N.Mul(s.R - dist), true
}
