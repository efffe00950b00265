package generator

import (
	"errors"
	"fmt"

	"github.com/lawnchairsociety/towerhouse/internal/grid"
	"github.com/lawnchairsociety/towerhouse/internal/logger"
)

// ErrOverwrite is the panic value raised when a walk is about to write
// over an occupied cell. It can only happen if Options is wrong.
var ErrOverwrite = errors.New("generator: overwrite of occupied cell")

// Option is one legal move from the cursor. Target is on the cursor floor.
// Stair options also carry the cell beyond the staircase, on the floor the
// stair leads to, where the cursor lands.
type Option struct {
	Tile     grid.Tile
	Target   grid.Pos
	Expanded grid.Pos
}

// IsStair reports whether the option places a staircase.
func (o Option) IsStair() bool {
	return o.Tile.IsStair()
}

// WalkStats summarises one walk.
type WalkStats struct {
	Steps         int `json:"steps" yaml:"steps"`
	Stairs        int `json:"stairs" yaml:"stairs"`
	DiagonalSkips int `json:"diagonal_skips" yaml:"diagonal_skips"`
}

// Options lists every move available from the cursor, in Cardinals order.
// The second result counts stair options dropped because the same stair
// tile already sits diagonally next to the candidate.
func Options(g *grid.Grid, cursor grid.Pos) ([]Option, int) {
	var options []Option
	skipped := 0

	for _, d := range grid.Cardinals() {
		target := cursor.Step(d)
		if g.At(target) != grid.Empty || !g.IsValidHeight(target.X, target.Y, target.Z) {
			continue
		}
		options = append(options, Option{Tile: grid.Floor, Target: target})

		if nextToStair(g, target) {
			continue
		}

		expanded := target.Step(d)
		stairs := []struct {
			tile grid.Tile
			dz   int
		}{
			{grid.StairTop(d.Opposite()), -1},
			{grid.StairBottom(d), 1},
		}
		for _, s := range stairs {
			landing := target.Add(0, 0, s.dz)
			beyond := expanded.Add(0, 0, s.dz)
			if !carvable(g, landing) || !carvable(g, beyond) {
				continue
			}
			if diagonalTwin(g, target, s.tile) {
				skipped++
				continue
			}
			options = append(options, Option{Tile: s.tile, Target: target, Expanded: beyond})
		}
	}
	return options, skipped
}

func carvable(g *grid.Grid, p grid.Pos) bool {
	return g.At(p) == grid.Empty && g.IsValidHeight(p.X, p.Y, p.Z)
}

func nextToStair(g *grid.Grid, p grid.Pos) bool {
	for _, d := range grid.Cardinals() {
		if g.At(p.Step(d)).IsStair() {
			return true
		}
	}
	return false
}

func diagonalTwin(g *grid.Grid, p grid.Pos, t grid.Tile) bool {
	for _, o := range grid.Diagonals {
		if g.Get(p.X+o[0], p.Y+o[1], p.Z) == t {
			return true
		}
	}
	return false
}

// Walk carves from start until no option remains, choosing uniformly
// among the options at every step. start must already be occupied.
func Walk(g *grid.Grid, rng Intn, start grid.Pos) WalkStats {
	var stats WalkStats
	cursor := start

	for {
		options, skipped := Options(g, cursor)
		if skipped > 0 {
			stats.DiagonalSkips += skipped
			logger.Debug("Skipped diagonal stairs", "cursor", cursor.String(), "count", skipped)
		}
		if len(options) == 0 {
			return stats
		}

		choice := options[rng.Intn(len(options))]
		carve(g, choice.Target, choice.Tile)
		stats.Steps++
		cursor = choice.Target

		if !choice.IsStair() {
			continue
		}
		stats.Stairs++
		if choice.Tile.IsBottom() {
			cursor.Z++
		} else {
			cursor.Z--
		}
		pair, _ := choice.Tile.Opposite()
		carve(g, cursor, pair)
		cursor = choice.Expanded
		carve(g, cursor, grid.Floor)
	}
}

func carve(g *grid.Grid, p grid.Pos, t grid.Tile) {
	if existing := g.At(p); existing != grid.Empty {
		panic(fmt.Errorf("%w: %s holds %s, writing %s", ErrOverwrite, p, existing, t))
	}
	g.SetAt(p, t)
}
