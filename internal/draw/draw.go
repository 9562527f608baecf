// Package draw renders to ANSI terminals using half-block characters.
package draw

// Point represents a 2D coordinate in logical canvas space.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI color sequences.
const (
	ColorReset      = "\033[0m"
	ColorDim        = "\033[2m"
	ColorBrightCyan = "\033[96m"
	ColorYellow     = "\033[33m"
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
