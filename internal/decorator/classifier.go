package decorator

import (
	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

// WallKind is the result of classifying the edge between two cells.
type WallKind int

const (
	WallNone WallKind = iota
	WallShort
	WallTall
	WallWindow
	WallStairLeft
	WallStairRight
)

func (w WallKind) String() string {
	switch w {
	case WallNone:
		return "none"
	case WallShort:
		return "short"
	case WallTall:
		return "tall"
	case WallWindow:
		return "window"
	case WallStairLeft:
		return "stair_left"
	case WallStairRight:
		return "stair_right"
	default:
		return "unknown"
	}
}

// PillarKind is the result of classifying a lattice vertex.
type PillarKind int

const (
	PillarNone PillarKind = iota
	PillarShort
	PillarTall
)

func (p PillarKind) String() string {
	switch p {
	case PillarNone:
		return "none"
	case PillarShort:
		return "short"
	case PillarTall:
		return "tall"
	default:
		return "unknown"
	}
}

// ArchKind is the result of classifying an open edge.
type ArchKind int

const (
	ArchNone ArchKind = iota
	ArchNormal
)

func (a ArchKind) String() string {
	if a == ArchNormal {
		return "normal"
	}
	return "none"
}

// Classifier answers structural questions about a finished grid. Every
// method is total: positions outside the grid are never walkable, never
// indoor and never connected.
type Classifier struct {
	g *grid.Grid
}

// NewClassifier wraps a grid. The grid must not change while the
// classifier is in use.
func NewClassifier(g *grid.Grid) *Classifier {
	return &Classifier{g: g}
}

func (c *Classifier) top() int {
	return c.g.Size().Floors - 1
}

// IsWalkable reports whether something stands in the cell.
func (c *Classifier) IsWalkable(p grid.Pos) bool {
	return c.g.At(p).IsOccupied()
}

// IsAboveWalkable reports whether any cell of the column from the ground
// up to and including p is walkable.
func (c *Classifier) IsAboveWalkable(p grid.Pos) bool {
	for z := 0; z <= p.Z; z++ {
		if c.g.Get(p.X, p.Y, z).IsOccupied() {
			return true
		}
	}
	return false
}

// IsIndoor reports whether the column lies in the enclosed upper zone.
func (c *Classifier) IsIndoor(x, y int) bool {
	return c.g.MaxHeight(x, y) == config.TopHeightLimit
}

// IsUnreachable reports whether p is inside the building with no floor at
// or below it.
func (c *Classifier) IsUnreachable(p grid.Pos) bool {
	return c.IsIndoor(p.X, p.Y) && !c.IsAboveWalkable(p)
}

// ShouldBuildWall classifies the edge between two cardinal neighbours on
// the same floor. The first matching rule wins.
func (c *Classifier) ShouldBuildWall(p1, p2 grid.Pos) WallKind {
	above1, above2 := c.IsAboveWalkable(p1), c.IsAboveWalkable(p2)
	connected := c.g.CanAccess(p1, p2)

	// edge of a shaft that only has floor higher up
	if !above1 && !above2 {
		for z := p1.Z + 1; z <= c.top(); z++ {
			if c.IsWalkable(grid.Pos{X: p1.X, Y: p1.Y, Z: z}) != c.IsWalkable(grid.Pos{X: p2.X, Y: p2.Y, Z: z}) {
				return WallTall
			}
		}
	}

	if above1 != above2 && !connected {
		roof1 := c.IsAboveWalkable(grid.Pos{X: p1.X, Y: p1.Y, Z: c.top()})
		roof2 := c.IsAboveWalkable(grid.Pos{X: p2.X, Y: p2.Y, Z: c.top()})
		if roof1 && roof2 {
			return WallTall
		}
	}

	if c.IsUnreachable(p1) != c.IsUnreachable(p2) && p1.Z <= 1 {
		return WallTall
	}

	if c.IsIndoor(p1.X, p1.Y) != c.IsIndoor(p2.X, p2.Y) && above1 != above2 && !connected {
		if !c.IsWalkable(p1) && !c.IsWalkable(p2) {
			return WallWindow
		}
		return WallTall
	}

	t1, t2 := c.g.At(p1), c.g.At(p2)
	if !connected && (standable(t1) || standable(t2)) {
		if t1.IsBottom() && !c.g.CanAccess(p1.Up(), p2.Up()) {
			return stairRail(t1)
		}
		if t2.IsBottom() && !c.g.CanAccess(p2.Up(), p1.Up()) {
			return stairRail(t2)
		}
		return WallShort
	}

	return WallNone
}

func standable(t grid.Tile) bool {
	return t == grid.Floor || t.IsBottom()
}

// stairRail picks the rail side from the stair's climb direction.
func stairRail(t grid.Tile) WallKind {
	switch d, _ := t.Orientation(); d {
	case grid.North, grid.West:
		return WallStairRight
	default:
		return WallStairLeft
	}
}

// ShouldBuildPillar classifies the lattice vertex at the south west corner
// of cell (x, y) on floor z, shared by the four cells around it.
func (c *Classifier) ShouldBuildPillar(p grid.Pos) PillarKind {
	if p.Z+1 <= c.top() && c.ShouldBuildPillar(p.Up()) != PillarNone {
		return PillarTall
	}

	corners := [4]grid.Pos{
		{X: p.X - 1, Y: p.Y - 1, Z: p.Z},
		{X: p.X - 1, Y: p.Y, Z: p.Z},
		{X: p.X, Y: p.Y - 1, Z: p.Z},
		{X: p.X, Y: p.Y, Z: p.Z},
	}

	indoor := c.IsIndoor(corners[0].X, corners[0].Y)
	for _, q := range corners[1:] {
		if c.IsIndoor(q.X, q.Y) != indoor {
			return PillarTall
		}
	}

	anyAbove := false
	for _, q := range corners {
		if c.IsAboveWalkable(q) {
			anyAbove = true
			break
		}
	}
	if !anyAbove {
		return PillarNone
	}

	for _, q := range corners {
		if c.IsIndoor(q.X, q.Y) || c.IsWalkable(q.Up()) {
			return PillarTall
		}
	}

	anyWalkable, allFloor := false, true
	for _, q := range corners {
		if c.IsWalkable(q) {
			anyWalkable = true
		}
		if c.g.At(q) != grid.Floor {
			allFloor = false
		}
	}
	if anyWalkable && !allFloor {
		return PillarShort
	}
	return PillarNone
}

// ShouldBuildArch classifies an edge that is left open or only railed.
func (c *Classifier) ShouldBuildArch(p1, p2 grid.Pos) ArchKind {
	switch c.ShouldBuildWall(p1, p2) {
	case WallTall, WallWindow:
		return ArchNone
	}
	return c.archOver(p1, p2)
}

func (c *Classifier) archOver(p1, p2 grid.Pos) ArchKind {
	if !c.IsAboveWalkable(p1) && !c.IsAboveWalkable(p2) {
		return ArchNone
	}
	if p1.Z == c.top() && (c.IsIndoor(p1.X, p1.Y) || c.IsIndoor(p2.X, p2.Y)) {
		return ArchNormal
	}
	for _, q := range []grid.Pos{p1.Up(), p2.Up()} {
		if t := c.g.At(q); t.IsOccupied() && !t.IsTop() {
			return ArchNormal
		}
	}
	return ArchNone
}
