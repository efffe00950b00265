// Package generator carves a multi-floor layout into a grid: it draws the
// building zones, walks random paths from a seed cell and prunes the dead
// ends the walks leave behind.
package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
	"github.com/lawnchairsociety/towerhouse/internal/logger"
)

// Stats records what a generation run did.
type Stats struct {
	Walks    []WalkStats `json:"walks" yaml:"walks"`
	Pruned   int         `json:"pruned" yaml:"pruned"`
	Occupied int         `json:"occupied" yaml:"occupied"`
}

// Level is the output of a generation run.
type Level struct {
	Seed  int64
	Start grid.Pos
	Zones Zones
	Grid  *grid.Grid
	Stats Stats
}

// Generator runs the generation pipeline for one configuration.
type Generator struct {
	cfg  *config.Level
	seed int64
	rng  *rand.Rand
}

// New validates the configuration and seeds the random source. A zero
// seed is replaced with one taken from the clock.
func New(cfg *config.Level) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		cfg:  cfg,
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}, nil
}

// Seed returns the seed the generator runs with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Generate builds one level. The same seed and configuration always yield
// the same grid.
func (g *Generator) Generate() (*Level, error) {
	size := g.cfg.Grid
	log := logger.With("seed", g.seed)

	zones, limits := GenerateHeightLimits(g.rng, size.Width, size.Depth)
	log.Debug("Zones drawn", "outer", zones.Outer.String(), "inner", zones.Inner.String())

	level := &Level{
		Seed:  g.seed,
		Zones: zones,
		Grid:  grid.New(size, limits),
	}

	x, y := g.cfg.Start()
	start := grid.Pos{X: x, Y: y, Z: level.Grid.MaxHeight(x, y)}
	if !level.Grid.InBounds(start.X, start.Y, start.Z) {
		return nil, fmt.Errorf("%w: start %s has no floor", config.ErrInvalid, start)
	}
	level.Start = start
	level.Grid.SetAt(start, grid.Floor)

	for i := 0; i < g.cfg.Generation.Walks; i++ {
		stats := Walk(level.Grid, g.rng, start)
		level.Stats.Walks = append(level.Stats.Walks, stats)
		log.Debug("Walk finished", "walk", i+1, "steps", stats.Steps, "stairs", stats.Stairs,
			"diagonal_skips", stats.DiagonalSkips)
	}

	level.Stats.Pruned = PruneDeadEnds(level.Grid)
	level.Stats.Occupied = level.Grid.Count(grid.Tile.IsOccupied)

	log.Info("Level generated",
		"size", fmt.Sprintf("%dx%dx%d", size.Width, size.Depth, size.Floors),
		"pruned", level.Stats.Pruned,
		"occupied", level.Stats.Occupied)
	return level, nil
}
