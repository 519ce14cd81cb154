// Package world provides the logical model of a dungeon floor: cell
// coordinates, the connectors between them, and the graphs derived from
// those connectors. Nothing in this package knows about pixels.
package world

import "fmt"

// Size is the number of cells along each side of a floor.
const Size = 5

// Coord is a logical cell position. X grows east and Y grows north, so (0,0)
// is the south-west cell. The values -1 and Size address the virtual ring of
// positions just outside the floor's outer wall.
type Coord struct {
	X int
	Y int
}

// C is shorthand for Coord{X: x, Y: y}.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// InBounds reports whether the coordinate addresses one of the 25 floor cells.
func (c Coord) InBounds() bool {
	return c.X >= 0 && c.X < Size && c.Y >= 0 && c.Y < Size
}

// Add returns the coordinate one step away in the given direction.
func (c Coord) Add(dir Direction) Coord {
	dx, dy := dir.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// String returns the coordinate as "x,y".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Direction represents a cardinal direction in logical (north-up) space.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the x and y offsets for this direction. North is +y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// DirectionBetween returns the direction leading from a to an orthogonally
// adjacent b. ok is false when the two coordinates are not neighbours.
func DirectionBetween(a, b Coord) (dir Direction, ok bool) {
	for _, d := range AllDirections() {
		if a.Add(d) == b {
			return d, true
		}
	}
	return 0, false
}

// Sign returns -1, 0 or 1 according to the sign of v.
func Sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
