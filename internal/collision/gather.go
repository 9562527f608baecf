package collision

import (
	"github.com/tomz197/marbles/internal/geom"
	"github.com/tomz197/marbles/internal/object"
)

// Gather appends every current overlap to into. It does not clear into.
//
// Marble pairs are visited as (i, j) with i < j, then every wall is tested
// against every marble. Cost is O(n²) in marbles plus O(n·walls).
func Gather(walls []object.Wall, marbles []object.Marble, into *Contacts) {
	for ai := range marbles {
		a := &marbles[ai].Body
		for bi := ai + 1; bi < len(marbles); bi++ {
			if disp, ok := geom.DispSphereSphere(*a, marbles[bi].Body); ok {
				into.MM = append(into.MM, Contact[int]{A: ai, B: bi, MTV: disp})
			}
		}
	}

	for bi := range walls {
		plane := walls[bi].Body
		for ai := range marbles {
			if disp, ok := geom.DispSpherePlane(marbles[ai].Body, plane); ok {
				into.WM = append(into.WM, Contact[int]{A: ai, B: bi, MTV: disp})
			}
		}
	}
}
