package diagram

import (
	"fmt"
	"strings"
)

// Direction is one of the four cardinal directions on the grid.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists every direction in clockwise order starting at Up.
var Directions = [4]Direction{Up, Right, Down, Left}

// String returns the lowercase name of the direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Horizontal reports whether d runs along a row.
func (d Direction) Horizontal() bool {
	return d == Left || d == Right
}

// Delta returns the unit step of d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// ParseDirection accepts a direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "north", "n":
		return Up, nil
	case "right", "r", "east", "e":
		return Right, nil
	case "down", "d", "south", "s":
		return Down, nil
	case "left", "l", "west", "w":
		return Left, nil
	}
	return Up, fmt.Errorf("unknown direction %q", s)
}

// LineType is the weight of a line on one side of a cell.
type LineType int

const (
	None LineType = iota
	Single
	Double
)

func (t LineType) String() string {
	switch t {
	case None:
		return "none"
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("LineType(%d)", int(t))
	}
}
