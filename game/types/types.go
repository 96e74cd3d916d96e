package types

import "time"

// Grid represents the square playing field. Coordinates are in [0, Size-1].
type Grid struct {
	Size int
}

// Contains reports whether p lies on the grid
func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Size && p.Y >= 0 && p.Y < g.Size
}

// Cells returns the total number of cells
func (g Grid) Cells() int {
	return g.Size * g.Size
}

type Point struct {
	X, Y int
}

func (p Point) Add(other Point) Point {
	return Point{X: p.X + other.X, Y: p.Y + other.Y}
}

// Game constants
const (
	DefaultGridSize  = 20
	BaseSpeed        = 8 // cells per second at start
	InitialLength    = 3
	SpeedupFactor    = 0.97
	MinTickInterval  = 60 * time.Millisecond
	BaseTickInterval = time.Second / BaseSpeed
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ManhattanDistance returns |dx| + |dy| between two points
func ManhattanDistance(p1, p2 Point) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}

// IsAdjacent reports whether two points share an edge
func IsAdjacent(p1, p2 Point) bool {
	return ManhattanDistance(p1, p2) == 1
}
