package generator

import "fmt"

// Intn is the slice of *rand.Rand the generator draws from. Tests swap in
// a scripted source.
type Intn interface {
	Intn(n int) int
}

// Rect is an axis aligned footprint in column coordinates.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Contains reports whether column (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

// Zones are the two nested building footprints. Columns inside Inner may
// reach the top floor; columns inside Outer only may reach the first.
type Zones struct {
	Outer Rect `json:"outer" yaml:"outer"`
	Inner Rect `json:"inner" yaml:"inner"`
}

// between returns a value in [lo, hi).
func between(rng Intn, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

// GenerateZones draws the outer footprint from half to three quarters of
// the grid and the inner one from half to three quarters of the outer,
// each at a random position that keeps it inside its parent. The grid
// extents must have passed config.ValidateZoneExtent.
func GenerateZones(rng Intn, width, depth int) Zones {
	var z Zones
	z.Outer.W = between(rng, width/2, width*3/4)
	z.Outer.H = between(rng, depth/2, depth*3/4)
	z.Outer.X = rng.Intn(width - z.Outer.W)
	z.Outer.Y = rng.Intn(depth - z.Outer.H)

	z.Inner.W = between(rng, z.Outer.W/2, z.Outer.W*3/4)
	z.Inner.H = between(rng, z.Outer.H/2, z.Outer.H*3/4)
	z.Inner.X = between(rng, z.Outer.X, z.Outer.X+z.Outer.W-z.Inner.W)
	z.Inner.Y = between(rng, z.Outer.Y, z.Outer.Y+z.Outer.H-z.Inner.H)
	return z
}

// HeightLimits rasterises the zones into a map indexed [x][y]: 2 inside
// the inner footprint, 1 inside the outer one only, 0 elsewhere.
func HeightLimits(zones Zones, width, depth int) [][]int {
	out := make([][]int, width)
	for x := range out {
		out[x] = make([]int, depth)
		for y := range out[x] {
			switch {
			case zones.Inner.Contains(x, y):
				out[x][y] = 2
			case zones.Outer.Contains(x, y):
				out[x][y] = 1
			}
		}
	}
	return out
}

// GenerateHeightLimits draws zones and rasterises them.
func GenerateHeightLimits(rng Intn, width, depth int) (Zones, [][]int) {
	zones := GenerateZones(rng, width, depth)
	return zones, HeightLimits(zones, width, depth)
}
