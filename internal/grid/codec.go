package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed wraps every rejection by Decode.
var ErrMalformed = errors.New("grid: malformed encoding")

// EncodeFloor renders floor z as one string per y row, x left to right,
// using Tile.Rune.
func (g *Grid) EncodeFloor(z int) []string {
	rows := make([]string, g.size.Depth)
	var b strings.Builder
	for y := 0; y < g.size.Depth; y++ {
		b.Reset()
		for x := 0; x < g.size.Width; x++ {
			b.WriteRune(g.Get(x, y, z).Rune())
		}
		rows[y] = b.String()
	}
	return rows
}

// EncodeLimits renders the height limit map as one digit string per y row.
func (g *Grid) EncodeLimits() []string {
	rows := make([]string, g.size.Depth)
	var b strings.Builder
	for y := 0; y < g.size.Depth; y++ {
		b.Reset()
		for x := 0; x < g.size.Width; x++ {
			fmt.Fprintf(&b, "%d", g.MaxHeight(x, y))
		}
		rows[y] = b.String()
	}
	return rows
}

// Decode rebuilds a grid from EncodeLimits and per-floor EncodeFloor output.
func Decode(size Size, limits []string, floors [][]string) (*Grid, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if len(limits) != size.Depth {
		return nil, fmt.Errorf("%w: %d limit rows, want %d", ErrMalformed, len(limits), size.Depth)
	}
	if len(floors) != size.Floors {
		return nil, fmt.Errorf("%w: %d floors, want %d", ErrMalformed, len(floors), size.Floors)
	}

	heights := make([][]int, size.Width)
	for x := range heights {
		heights[x] = make([]int, size.Depth)
	}
	for y, row := range limits {
		if len(row) != size.Width {
			return nil, fmt.Errorf("%w: limit row %d has %d columns", ErrMalformed, y, len(row))
		}
		for x, r := range row {
			if r < '0' || r > '0'+MaxLimit {
				return nil, fmt.Errorf("%w: limit %q at (%d,%d)", ErrMalformed, r, x, y)
			}
			heights[x][y] = int(r - '0')
		}
	}

	g := New(size, heights)
	for z, rows := range floors {
		if len(rows) != size.Depth {
			return nil, fmt.Errorf("%w: floor %d has %d rows", ErrMalformed, z, len(rows))
		}
		for y, row := range rows {
			runes := []rune(row)
			if len(runes) != size.Width {
				return nil, fmt.Errorf("%w: floor %d row %d has %d columns", ErrMalformed, z, y, len(runes))
			}
			for x, r := range runes {
				t, ok := ParseTile(r)
				if !ok {
					return nil, fmt.Errorf("%w: tile %q at (%d,%d,%d)", ErrMalformed, r, x, y, z)
				}
				g.Set(x, y, z, t)
			}
		}
	}
	if err := checkStairPairs(g); err != nil {
		return nil, err
	}
	return g, nil
}

// checkStairPairs rejects stair halves without their partner: every bottom
// needs the matching top directly above it and every top the matching
// bottom below.
func checkStairPairs(g *Grid) error {
	for p := range g.Positions() {
		t := g.At(p)
		if !t.IsStair() {
			continue
		}
		partner := p.Up()
		if t.IsTop() {
			partner = p.Down()
		}
		if want, _ := t.Opposite(); g.At(partner) != want {
			return fmt.Errorf("%w: %s at %s has %s at %s, want %s", ErrMalformed, t, p, g.At(partner), partner, want)
		}
	}
	return nil
}
