// Package levelio exports generated levels to YAML documents and
// compressed snapshots, and reads them back.
package levelio

import (
	"errors"
	"fmt"
	"time"

	"github.com/lawnchairsociety/towerhouse/internal/decorator"
	"github.com/lawnchairsociety/towerhouse/internal/generator"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

// Version is the document layout written by this package.
const Version = 1

// ErrVersion is returned for documents written with another layout version.
var ErrVersion = errors.New("levelio: unsupported document version")

// Document is the serialized form of a level. Tiles and height limits are
// stored as text rows, one string per y row with x running left to right.
type Document struct {
	Version      int                   `json:"version" yaml:"version"`
	Seed         int64                 `json:"seed" yaml:"seed"`
	SavedAt      time.Time             `json:"saved_at" yaml:"saved_at"`
	Size         grid.Size             `json:"size" yaml:"size"`
	Start        grid.Pos              `json:"start" yaml:"start"`
	Zones        generator.Zones       `json:"zones" yaml:"zones"`
	HeightLimits []string              `json:"height_limits" yaml:"height_limits"`
	Floors       [][]string            `json:"floors" yaml:"floors"`
	Stats        generator.Stats       `json:"stats" yaml:"stats"`
	Placements   []decorator.Placement `json:"placements" yaml:"placements"`
}

// NewDocument captures a level and its placement stream.
func NewDocument(level *generator.Level, placements []decorator.Placement) *Document {
	g := level.Grid
	floors := make([][]string, g.Size().Floors)
	for z := range floors {
		floors[z] = g.EncodeFloor(z)
	}
	if placements == nil {
		placements = []decorator.Placement{}
	}
	stats := level.Stats
	if stats.Walks == nil {
		stats.Walks = []generator.WalkStats{}
	}
	return &Document{
		Version:      Version,
		Seed:         level.Seed,
		SavedAt:      time.Now().UTC(),
		Size:         g.Size(),
		Start:        level.Start,
		Zones:        level.Zones,
		HeightLimits: g.EncodeLimits(),
		Floors:       floors,
		Stats:        stats,
		Placements:   placements,
	}
}

// Grid rebuilds the grid the document describes.
func (d *Document) Grid() (*grid.Grid, error) {
	if d.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}
	return grid.Decode(d.Size, d.HeightLimits, d.Floors)
}

// Level rebuilds the generator output the document was made from.
func (d *Document) Level() (*generator.Level, error) {
	g, err := d.Grid()
	if err != nil {
		return nil, err
	}
	return &generator.Level{
		Seed:  d.Seed,
		Start: d.Start,
		Zones: d.Zones,
		Grid:  g,
		Stats: d.Stats,
	}, nil
}
