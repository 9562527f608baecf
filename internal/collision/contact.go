// Package collision finds overlaps between marbles and walls and resolves
// them once per tick.
//
// The pipeline is brute force: every pair is tested each tick, contacts are
// sorted deepest first and each one is re-tested right before it is applied,
// since earlier corrections in the same tick may already have separated it.
package collision

import (
	"cmp"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// Contact is an overlap between entities A and B found during one tick.
// MTV points from A towards B and its length is the penetration depth.
type Contact[T any] struct {
	A   T
	B   T
	MTV mgl64.Vec3
}

// Contacts holds the overlaps found in one tick.
// Indices refer to positions in the wall and marble slices passed to Update
// and are only meaningful until those slices change.
type Contacts struct {
	WM []Contact[int] // A is a marble index, B a wall index
	MM []Contact[int] // A and B are marble indices, A < B
}

// NewContacts creates an empty contact set.
func NewContacts() *Contacts {
	return &Contacts{}
}

// Clear empties both lists, keeping their capacity for the next tick.
func (c *Contacts) Clear() {
	c.WM = c.WM[:0]
	c.MM = c.MM[:0]
}

// Len returns the total number of contacts.
func (c *Contacts) Len() int {
	return len(c.WM) + len(c.MM)
}

// Sort orders both lists by descending squared MTV length.
// Equal depths keep their generation order.
func (c *Contacts) Sort() {
	slices.SortStableFunc(c.WM, deepestFirst)
	slices.SortStableFunc(c.MM, deepestFirst)
}

func deepestFirst(a, b Contact[int]) int {
	return cmp.Compare(b.MTV.LenSqr(), a.MTV.LenSqr())
}
