package grid

import "math"

// Direction represents a cardinal direction on the grid plane.
// North is +y and East is +x.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// String returns the string representation of a Direction
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the (dx, dy) step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case North:
		return 0, 1
	case East:
		return 1, 0
	case South:
		return 0, -1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Yaw returns the rotation about the vertical axis, in radians, for something
// facing this direction.
func (d Direction) Yaw() float64 {
	switch d {
	case North:
		return math.Pi / 2
	case West:
		return math.Pi
	case South:
		return 3 * math.Pi / 2
	default:
		return 0
	}
}

// Cardinals returns all four cardinal directions in walk order.
func Cardinals() []Direction {
	return []Direction{West, South, East, North}
}

// DirectionOf returns the cardinal direction matching (dx, dy).
func DirectionOf(dx, dy int) (Direction, bool) {
	for _, d := range Cardinals() {
		if x, y := d.Delta(); x == dx && y == dy {
			return d, true
		}
	}
	return 0, false
}

// Diagonals are the four diagonal neighbour offsets.
var Diagonals = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// Tile is the occupancy state of one grid cell.
//
// Stair tiles come in pairs stacked on adjacent floors and are named by the
// direction they climb toward. The bottom half is entered from the opposite
// side; the top half lets out in the climb direction one floor up.
type Tile int

const (
	Empty Tile = iota
	Floor
	StairsNorthBottom
	StairsNorthTop
	StairsEastBottom
	StairsEastTop
	StairsSouthBottom
	StairsSouthTop
	StairsWestBottom
	StairsWestTop
	OutOfBounds // returned for queries outside the grid, never stored
)

// StairTiles lists all eight stair halves.
var StairTiles = []Tile{
	StairsNorthBottom, StairsNorthTop,
	StairsEastBottom, StairsEastTop,
	StairsSouthBottom, StairsSouthTop,
	StairsWestBottom, StairsWestTop,
}

// String returns the string representation of a Tile
func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Floor:
		return "floor"
	case StairsNorthBottom:
		return "stairs_north_bottom"
	case StairsNorthTop:
		return "stairs_north_top"
	case StairsEastBottom:
		return "stairs_east_bottom"
	case StairsEastTop:
		return "stairs_east_top"
	case StairsSouthBottom:
		return "stairs_south_bottom"
	case StairsSouthTop:
		return "stairs_south_top"
	case StairsWestBottom:
		return "stairs_west_bottom"
	case StairsWestTop:
		return "stairs_west_top"
	case OutOfBounds:
		return "out_of_bounds"
	default:
		return "unknown"
	}
}

// IsStair reports whether the tile is either half of a staircase.
func (t Tile) IsStair() bool {
	return t >= StairsNorthBottom && t <= StairsWestTop
}

// IsBottom reports whether the tile is the lower half of a staircase.
func (t Tile) IsBottom() bool {
	return t.IsStair() && (t-StairsNorthBottom)%2 == 0
}

// IsTop reports whether the tile is the upper half of a staircase.
func (t Tile) IsTop() bool {
	return t.IsStair() && (t-StairsNorthBottom)%2 == 1
}

// IsOccupied reports whether something stands in the cell.
func (t Tile) IsOccupied() bool {
	return t != Empty && t != OutOfBounds
}

// Orientation returns the climb direction of a stair tile.
func (t Tile) Orientation() (Direction, bool) {
	if !t.IsStair() {
		return 0, false
	}
	return Direction((t - StairsNorthBottom) / 2), true
}

// Opposite returns the other half of a stair pair.
func (t Tile) Opposite() (Tile, bool) {
	if !t.IsStair() {
		return t, false
	}
	if t.IsBottom() {
		return t + 1, true
	}
	return t - 1, true
}

// StairBottom returns the lower stair half climbing toward d.
func StairBottom(d Direction) Tile {
	return StairsNorthBottom + Tile(d)*2
}

// StairTop returns the upper stair half climbing toward d.
func StairTop(d Direction) Tile {
	return StairBottom(d) + 1
}

// CanExit reports whether an agent standing on the tile may leave it
// horizontally toward d.
func (t Tile) CanExit(d Direction) bool {
	switch {
	case t == Floor:
		return d >= North && d <= West
	case t.IsStair():
		o, _ := t.Orientation()
		if t.IsBottom() {
			return d == o.Opposite()
		}
		return d == o
	}
	return false
}

// Yaw returns the rotation used when placing the tile. Non-stair tiles are
// not rotated.
func (t Tile) Yaw() float64 {
	if o, ok := t.Orientation(); ok {
		return o.Yaw()
	}
	return 0
}

// Rune returns the single-character encoding used by text exports and the
// ASCII map: bottoms are upper case, tops lower case.
func (t Tile) Rune() rune {
	switch t {
	case Empty:
		return '.'
	case Floor:
		return '#'
	case StairsNorthBottom:
		return 'N'
	case StairsNorthTop:
		return 'n'
	case StairsEastBottom:
		return 'E'
	case StairsEastTop:
		return 'e'
	case StairsSouthBottom:
		return 'S'
	case StairsSouthTop:
		return 's'
	case StairsWestBottom:
		return 'W'
	case StairsWestTop:
		return 'w'
	default:
		return '?'
	}
}

// ParseTile decodes a rune produced by Tile.Rune.
func ParseTile(r rune) (Tile, bool) {
	for t := Empty; t < OutOfBounds; t++ {
		if t.Rune() == r {
			return t, true
		}
	}
	return OutOfBounds, false
}
