package generator

import "github.com/lawnchairsociety/towerhouse/internal/grid"

// Connections counts the live links of the tile at p: the stair half it
// pairs with on the adjacent floor, plus every cardinal neighbour it can
// cross to and back.
func Connections(g *grid.Grid, p grid.Pos) int {
	t := g.At(p)
	if !t.IsOccupied() {
		return 0
	}
	n := 0
	if t.IsBottom() && g.At(p.Up()).IsTop() {
		n++
	}
	if t.IsTop() && g.At(p.Down()).IsBottom() {
		n++
	}
	for _, d := range grid.Cardinals() {
		if g.CanAccess(p, p.Step(d)) {
			n++
		}
	}
	return n
}

// IsDeadEnd reports whether p has exactly one connection.
func IsDeadEnd(g *grid.Grid, p grid.Pos) bool {
	return Connections(g, p) == 1
}

var neighbours = [6][3]int{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, -1}, {0, 0, 1},
}

// PruneDeadEnds erodes the grid from its leaves inward until no dead end
// is left and returns how many cells it cleared. Removing one half of a
// staircase removes the other half too.
func PruneDeadEnds(g *grid.Grid) int {
	var work []grid.Pos
	for p := range g.Positions() {
		if IsDeadEnd(g, p) {
			work = append(work, p)
		}
	}

	removed := 0
	for len(work) > 0 {
		var next []grid.Pos
		for _, p := range work {
			if !g.At(p).IsOccupied() {
				continue
			}
			cleared := clearCell(g, p)
			removed += len(cleared)
			for _, c := range cleared {
				for _, o := range neighbours {
					q := c.Add(o[0], o[1], o[2])
					if IsDeadEnd(g, q) {
						next = append(next, q)
					}
				}
			}
		}
		work = next
	}
	return removed
}

// clearCell empties p and, for a stair half, the half it pairs with.
func clearCell(g *grid.Grid, p grid.Pos) []grid.Pos {
	t := g.At(p)
	g.SetAt(p, grid.Empty)
	cleared := []grid.Pos{p}

	var pair grid.Pos
	switch {
	case t.IsBottom():
		pair = p.Up()
	case t.IsTop():
		pair = p.Down()
	default:
		return cleared
	}
	other := g.At(pair)
	if (t.IsBottom() && other.IsTop()) || (t.IsTop() && other.IsBottom()) {
		g.SetAt(pair, grid.Empty)
		cleared = append(cleared, pair)
	}
	return cleared
}
