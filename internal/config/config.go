package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/lawnchairsociety/towerhouse/internal/grid"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every configuration validation failure.
var ErrInvalid = errors.New("config: invalid level configuration")

// TopHeightLimit is the highest value the zone generator writes into the
// height limit map (the enclosed upper floor).
const TopHeightLimit = grid.MaxLimit

// Level holds everything a generation run needs.
type Level struct {
	Grid       grid.Size        `yaml:"grid"`
	Scale      ScaleConfig      `yaml:"scale"`
	Generation GenerationConfig `yaml:"generation"`
	Decoration DecorationConfig `yaml:"decoration"`
}

// ScaleConfig converts grid coordinates to world units for the scene builder.
type ScaleConfig struct {
	// CellX and CellY are the horizontal size of one cell.
	CellX float64 `yaml:"cell_x"`
	CellY float64 `yaml:"cell_y"`

	// FloorHeight is the vertical distance between floors.
	FloorHeight float64 `yaml:"floor_height"`
}

// GenerationConfig holds the random walk settings.
type GenerationConfig struct {
	// Seed drives zone and path generation. 0 means pick one from the clock.
	Seed int64 `yaml:"seed"`

	// Walks is how many independent walks start from the seed cell.
	Walks int `yaml:"walks"`

	// StartX and StartY place the seed cell. Nil means the grid centre.
	StartX *int `yaml:"start_x"`
	StartY *int `yaml:"start_y"`
}

// DecorationConfig controls the purely cosmetic decoration pass.
type DecorationConfig struct {
	// Probability is the chance a floor tile receives a decoration.
	Probability float64 `yaml:"probability"`

	// Offset is the largest displacement from the tile centre, as a fraction
	// of the cell size.
	Offset float64 `yaml:"offset"`
}

// DefaultConfig returns the reference configuration: a 12x12x3 grid with
// 3x3 cells, 2.5 units per floor and two walks.
func DefaultConfig() *Level {
	return &Level{
		Grid: grid.Size{Width: 12, Depth: 12, Floors: 3},
		Scale: ScaleConfig{
			CellX:       3,
			CellY:       3,
			FloorHeight: 2.5,
		},
		Generation: GenerationConfig{
			Walks: 2,
		},
		Decoration: DecorationConfig{
			Probability: 0.2,
			Offset:      0.3,
		},
	}
}

// LoadConfig loads a level configuration from a YAML file.
// If the file doesn't exist, returns the default config.
func LoadConfig(path string) (*Level, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Start returns the seed cell column.
func (c *Level) Start() (int, int) {
	x, y := c.Grid.Width/2, c.Grid.Depth/2
	if c.Generation.StartX != nil {
		x = *c.Generation.StartX
	}
	if c.Generation.StartY != nil {
		y = *c.Generation.StartY
	}
	return x, y
}

// Validate rejects configurations that generation cannot run with. It is
// called before any grid is allocated.
func (c *Level) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Grid.Floors != TopHeightLimit+1 {
		return fmt.Errorf("%w: need exactly %d floors, got %d", ErrInvalid, TopHeightLimit+1, c.Grid.Floors)
	}
	if err := ValidateZoneExtent(c.Grid.Width); err != nil {
		return fmt.Errorf("%w: width: %v", ErrInvalid, err)
	}
	if err := ValidateZoneExtent(c.Grid.Depth); err != nil {
		return fmt.Errorf("%w: depth: %v", ErrInvalid, err)
	}

	x, y := c.Start()
	if x < 0 || x >= c.Grid.Width || y < 0 || y >= c.Grid.Depth {
		return fmt.Errorf("%w: start (%d,%d) outside %dx%d", ErrInvalid, x, y, c.Grid.Width, c.Grid.Depth)
	}
	if c.Generation.Walks < 1 {
		return fmt.Errorf("%w: walks must be at least 1, got %d", ErrInvalid, c.Generation.Walks)
	}

	if c.Scale.CellX <= 0 || c.Scale.CellY <= 0 || c.Scale.FloorHeight <= 0 {
		return fmt.Errorf("%w: scale must be positive, got %v", ErrInvalid, c.Scale)
	}
	if c.Decoration.Probability < 0 || c.Decoration.Probability > 1 {
		return fmt.Errorf("%w: decoration probability %v outside [0,1]", ErrInvalid, c.Decoration.Probability)
	}
	if c.Decoration.Offset < 0 || c.Decoration.Offset > 0.5 {
		return fmt.Errorf("%w: decoration offset %v outside [0,0.5]", ErrInvalid, c.Decoration.Offset)
	}
	return nil
}

// ValidateZoneExtent checks that every random range the zone generator
// draws from along an axis of this length is non-empty: the outer
// rectangle spans [n/2, 3n/4) and the inner one [m/2, 3m/4) of the outer
// size m.
func ValidateZoneExtent(n int) error {
	lo, hi := n/2, n*3/4
	if hi <= lo {
		return fmt.Errorf("extent %d leaves no room for a building footprint", n)
	}
	for m := lo; m < hi; m++ {
		if m*3/4 <= m/2 {
			return fmt.Errorf("extent %d allows a %d-cell footprint with no room for an upper floor", n, m)
		}
	}
	return nil
}
