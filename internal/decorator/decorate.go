// Package decorator turns a finished grid into the ordered stream of
// placements a scene builder instantiates: floors and stairs, walls,
// railings and windows, pillars, arches, roofs, lights and decorations.
package decorator

import (
	"encoding/binary"
	"math"
	"math/rand"

	"golang.org/x/crypto/blake2b"

	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

// Yaw of a wall piece along an x edge (between x-1 and x) and along a y
// edge (between y-1 and y).
const (
	yawEdgeX = 3 * math.Pi / 2
	yawEdgeY = 0
)

// lightSpacing places lights where x and y agree modulo it.
const lightSpacing = 3

// Decorator emits placements for one grid at one world scale.
type Decorator struct {
	g     *grid.Grid
	c     *Classifier
	scale config.ScaleConfig
}

// New returns a decorator for g. The grid must not change afterwards.
func New(g *grid.Grid, scale config.ScaleConfig) *Decorator {
	return &Decorator{g: g, c: NewClassifier(g), scale: scale}
}

// Classifier exposes the rules the decorator applies.
func (d *Decorator) Classifier() *Classifier {
	return d.c
}

// Decorate is New(g, scale).Structure().
func Decorate(g *grid.Grid, scale config.ScaleConfig) []Placement {
	return New(g, scale).Structure()
}

// cellCenter converts a cell to world space.
func (d *Decorator) cellCenter(p grid.Pos) Vec3 {
	return Vec3{
		X: float64(p.X) * d.scale.CellX,
		Y: float64(p.Z) * d.scale.FloorHeight,
		Z: float64(p.Y) * d.scale.CellY,
	}
}

// corner converts the south west corner of a cell to world space. Walls
// and pillars hang off lattice corners.
func (d *Decorator) corner(p grid.Pos) Vec3 {
	v := d.cellCenter(p)
	v.X -= d.scale.CellX / 2
	v.Z -= d.scale.CellY / 2
	return v
}

// Structure returns the structural placements in a fixed order: floors,
// then walls and arches per lattice edge, pillars, roofs and lights. It
// draws no randomness, so the same grid always yields the same stream.
func (d *Decorator) Structure() []Placement {
	var out []Placement
	out = d.appendFloors(out)
	out = d.appendWalls(out)
	out = d.appendPillars(out)
	out = d.appendRoofs(out)
	out = d.appendLights(out)
	return out
}

func (d *Decorator) appendFloors(out []Placement) []Placement {
	for p := range d.g.Positions() {
		t := d.g.At(p)
		if !t.IsOccupied() || t.IsTop() {
			continue
		}
		pl := Placement{Kind: KindFloor, Cell: p, Position: d.cellCenter(p), Yaw: t.Yaw()}
		if !t.IsBottom() {
			out = append(out, pl)
			continue
		}
		pl.Kind = KindStairs
		out = append(out, pl)
		if p.Z > 0 {
			pl.Kind = KindUnderStairs
			out = append(out, pl)
		}
	}
	return out
}

func wallPlacement(k WallKind) (Kind, bool) {
	switch k {
	case WallShort:
		return KindRailing, true
	case WallTall:
		return KindWall, true
	case WallWindow:
		return KindWindow, true
	case WallStairLeft:
		return KindStairRailLeft, true
	case WallStairRight:
		return KindStairRailRight, true
	}
	return 0, false
}

func (d *Decorator) appendWalls(out []Placement) []Placement {
	size := d.g.Size()
	for x := 0; x <= size.Width; x++ {
		for y := 0; y <= size.Depth; y++ {
			for z := 0; z < size.Floors; z++ {
				here := grid.Pos{X: x, Y: y, Z: z}
				out = d.appendEdge(out, here.Add(-1, 0, 0), here, yawEdgeX)
				out = d.appendEdge(out, here.Add(0, -1, 0), here, yawEdgeY)
			}
		}
	}
	return out
}

func (d *Decorator) appendEdge(out []Placement, p1, p2 grid.Pos, yaw float64) []Placement {
	wall := d.c.ShouldBuildWall(p1, p2)
	at := d.corner(p2)
	if kind, ok := wallPlacement(wall); ok {
		out = append(out, Placement{Kind: kind, Cell: p2, Position: at, Yaw: yaw})
	}
	if wall == WallTall || wall == WallWindow {
		return out
	}
	if d.c.archOver(p1, p2) == ArchNormal {
		out = append(out, Placement{Kind: KindArch, Cell: p2, Position: at, Yaw: yaw})
	}
	return out
}

func (d *Decorator) appendPillars(out []Placement) []Placement {
	size := d.g.Size()
	for x := 0; x <= size.Width; x++ {
		for y := 0; y <= size.Depth; y++ {
			for z := 0; z < size.Floors; z++ {
				p := grid.Pos{X: x, Y: y, Z: z}
				switch d.c.ShouldBuildPillar(p) {
				case PillarShort:
					out = append(out, Placement{Kind: KindPillarShort, Cell: p, Position: d.corner(p)})
				case PillarTall:
					out = append(out, Placement{Kind: KindPillarTall, Cell: p, Position: d.corner(p)})
				}
			}
		}
	}
	return out
}

func (d *Decorator) appendRoofs(out []Placement) []Placement {
	size := d.g.Size()
	top := size.Floors - 1
	for x := 0; x < size.Width; x++ {
		for y := 0; y < size.Depth; y++ {
			if d.g.MaxHeight(x, y) != 1 {
				continue
			}
			p := grid.Pos{X: x, Y: y, Z: top}
			yaw := 0.0
			if y%2 == 1 {
				yaw = math.Pi
			}
			out = append(out, Placement{Kind: KindRoof, Cell: p, Position: d.cellCenter(p), Yaw: yaw})
		}
	}
	return out
}

func (d *Decorator) appendLights(out []Placement) []Placement {
	size := d.g.Size()
	top := size.Floors - 1
	for x := 0; x < size.Width; x++ {
		for y := 0; y < size.Depth; y++ {
			if x%lightSpacing != y%lightSpacing {
				continue
			}
			p := grid.Pos{X: x, Y: y, Z: top}
			if !d.c.IsIndoor(x, y) || !d.c.IsAboveWalkable(p) {
				continue
			}
			at := d.cellCenter(p)
			at.Y += d.scale.FloorHeight
			out = append(out, Placement{Kind: KindLight, Cell: p, Position: at})
		}
	}
	return out
}

// Decorations scatters decorative pieces over plain floor tiles: each one
// gets a piece with the given probability, displaced from the tile centre
// by up to offset of a cell on each axis. All randomness comes from rng.
func (d *Decorator) Decorations(rng *rand.Rand, probability, offset float64) []Placement {
	var out []Placement
	for p := range d.g.Positions() {
		if d.g.At(p) != grid.Floor {
			continue
		}
		if rng.Float64() >= probability {
			continue
		}
		at := d.cellCenter(p)
		at.X += (rng.Float64()*2 - 1) * offset * d.scale.CellX
		at.Z += (rng.Float64()*2 - 1) * offset * d.scale.CellY
		yaw := rng.Float64() * 2 * math.Pi
		out = append(out, Placement{Kind: KindDecoration, Cell: p, Position: at, Yaw: yaw})
	}
	return out
}

// DecorationSeed derives the seed of the decoration stream from a run
// seed, so that decorations never consume the generator's randomness.
func DecorationSeed(seed int64) int64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(seed))
	sum := blake2b.Sum256(append(buf[:], "decorations"...))
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// DecorationRand returns the random source for a run's decorations.
func DecorationRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(DecorationSeed(seed)))
}
