// Package grid holds the fixed-size 3D tile arena that level generation
// carves into and the decorator reads from.
package grid

import (
	"errors"
	"fmt"
	"iter"
)

// ErrInvalidSize is returned for grids with a non-positive extent.
var ErrInvalidSize = errors.New("grid: invalid size")

// MaxLimit is the largest height limit a column can carry.
const MaxLimit = 2

// Size is the extent of a grid: Width along x, Depth along y and Floors
// along z.
type Size struct {
	Width  int `yaml:"width" json:"width"`
	Depth  int `yaml:"depth" json:"depth"`
	Floors int `yaml:"floors" json:"floors"`
}

// Validate rejects non-positive extents.
func (s Size) Validate() error {
	if s.Width <= 0 || s.Depth <= 0 || s.Floors <= 0 {
		return fmt.Errorf("%w: %dx%dx%d", ErrInvalidSize, s.Width, s.Depth, s.Floors)
	}
	return nil
}

// Cells returns the number of cells in the grid.
func (s Size) Cells() int {
	return s.Width * s.Depth * s.Floors
}

// Pos is a cell coordinate. Z is the floor index.
type Pos struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	Z int `json:"z" yaml:"z"`
}

// Add returns the position offset by (dx, dy, dz).
func (p Pos) Add(dx, dy, dz int) Pos {
	return Pos{p.X + dx, p.Y + dy, p.Z + dz}
}

// Step returns the neighbouring position toward d on the same floor.
func (p Pos) Step(d Direction) Pos {
	dx, dy := d.Delta()
	return p.Add(dx, dy, 0)
}

// Up returns the position one floor above.
func (p Pos) Up() Pos { return p.Add(0, 0, 1) }

// Down returns the position one floor below.
func (p Pos) Down() Pos { return p.Add(0, 0, -1) }

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.X, p.Y, p.Z)
}

// Grid is a dense arena of tiles indexed by (x, y, z) plus a per-column
// height limit recording the highest floor new tiles may be carved on.
type Grid struct {
	size   Size
	tiles  []Tile
	limits []int
}

// New creates an empty grid. heightLimits is indexed [x][y] and must match
// the size; a mismatch is a programming error and panics.
func New(size Size, heightLimits [][]int) *Grid {
	if err := size.Validate(); err != nil {
		panic(err)
	}
	g := &Grid{
		size:   size,
		tiles:  make([]Tile, size.Cells()),
		limits: make([]int, size.Width*size.Depth),
	}
	if heightLimits == nil {
		return g
	}
	if len(heightLimits) != size.Width {
		panic(fmt.Sprintf("grid: height limits have %d columns, want %d", len(heightLimits), size.Width))
	}
	for x, col := range heightLimits {
		if len(col) != size.Depth {
			panic(fmt.Sprintf("grid: height limit column %d has %d rows, want %d", x, len(col), size.Depth))
		}
		for y, limit := range col {
			g.limits[x*size.Depth+y] = limit
		}
	}
	return g
}

// Size returns the grid extents.
func (g *Grid) Size() Size {
	return g.size
}

// InBounds reports whether (x, y, z) lies inside the grid.
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.size.Width &&
		y >= 0 && y < g.size.Depth &&
		z >= 0 && z < g.size.Floors
}

func (g *Grid) index(x, y, z int) int {
	return (x*g.size.Depth+y)*g.size.Floors + z
}

// Get returns the tile at (x, y, z), or OutOfBounds outside the grid.
func (g *Grid) Get(x, y, z int) Tile {
	if !g.InBounds(x, y, z) {
		return OutOfBounds
	}
	return g.tiles[g.index(x, y, z)]
}

// At is Get for a Pos.
func (g *Grid) At(p Pos) Tile {
	return g.Get(p.X, p.Y, p.Z)
}

// Set stores a tile. Writing outside the grid or storing the OutOfBounds
// sentinel panics.
func (g *Grid) Set(x, y, z int, t Tile) {
	if !g.InBounds(x, y, z) {
		panic(fmt.Sprintf("grid: set %s at (%d,%d,%d) outside %dx%dx%d",
			t, x, y, z, g.size.Width, g.size.Depth, g.size.Floors))
	}
	if t == OutOfBounds || t < Empty {
		panic(fmt.Sprintf("grid: cannot store %s at (%d,%d,%d)", t, x, y, z))
	}
	g.tiles[g.index(x, y, z)] = t
}

// SetAt is Set for a Pos.
func (g *Grid) SetAt(p Pos, t Tile) {
	g.Set(p.X, p.Y, p.Z, t)
}

// MaxHeight returns the height limit of column (x, y), or 0 outside the grid.
func (g *Grid) MaxHeight(x, y int) int {
	if x < 0 || x >= g.size.Width || y < 0 || y >= g.size.Depth {
		return 0
	}
	return g.limits[x*g.size.Depth+y]
}

// IsValidHeight reports whether new floor may be carved at (x, y, z): the
// cell must be inside the grid and z at most one floor below the column's
// height limit, and not above it.
func (g *Grid) IsValidHeight(x, y, z int) bool {
	if !g.InBounds(x, y, z) {
		return false
	}
	limit := g.MaxHeight(x, y)
	return z <= limit && z+1 >= limit
}

// CanAccess reports whether an agent can cross between two neighbouring
// positions. A bottom stair directly under a top stair is always
// connected; otherwise both tiles must allow leaving toward each other on
// the same floor.
func (g *Grid) CanAccess(p1, p2 Pos) bool {
	t1, t2 := g.At(p1), g.At(p2)
	if p1.X == p2.X && p1.Y == p2.Y {
		switch p2.Z - p1.Z {
		case 1:
			return t1.IsBottom() && t2.IsTop()
		case -1:
			return t1.IsTop() && t2.IsBottom()
		}
		return false
	}
	if p1.Z != p2.Z {
		return false
	}
	d, ok := DirectionOf(p2.X-p1.X, p2.Y-p1.Y)
	if !ok {
		return false
	}
	return t1.CanExit(d) && t2.CanExit(d.Opposite())
}

// Positions yields every coordinate in raster order: x outermost, then y,
// then z. Each call starts a fresh pass.
func (g *Grid) Positions() iter.Seq[Pos] {
	size := g.size
	return func(yield func(Pos) bool) {
		for x := 0; x < size.Width; x++ {
			for y := 0; y < size.Depth; y++ {
				for z := 0; z < size.Floors; z++ {
					if !yield(Pos{x, y, z}) {
						return
					}
				}
			}
		}
	}
}

// Count returns the number of cells whose tile satisfies pred.
func (g *Grid) Count(pred func(Tile) bool) int {
	n := 0
	for _, t := range g.tiles {
		if pred(t) {
			n++
		}
	}
	return n
}

// HeightLimits returns a copy of the height limit map indexed [x][y].
func (g *Grid) HeightLimits() [][]int {
	out := make([][]int, g.size.Width)
	for x := range out {
		out[x] = make([]int, g.size.Depth)
		copy(out[x], g.limits[x*g.size.Depth:(x+1)*g.size.Depth])
	}
	return out
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		size:   g.size,
		tiles:  make([]Tile, len(g.tiles)),
		limits: make([]int, len(g.limits)),
	}
	copy(c.tiles, g.tiles)
	copy(c.limits, g.limits)
	return c
}

// Equal reports whether two grids have the same size, tiles and limits.
func (g *Grid) Equal(o *Grid) bool {
	if g.size != o.size {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != o.tiles[i] {
			return false
		}
	}
	for i := range g.limits {
		if g.limits[i] != o.limits[i] {
			return false
		}
	}
	return true
}
