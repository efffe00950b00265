package decorator

import (
	"testing"

	"github.com/lawnchairsociety/towerhouse/internal/config"
	"github.com/lawnchairsociety/towerhouse/internal/generator"
	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

var smallSize = grid.Size{Width: 8, Depth: 8, Floors: 3}

func limits(size grid.Size, overrides map[[2]int]int) [][]int {
	out := make([][]int, size.Width)
	for x := range out {
		out[x] = make([]int, size.Depth)
	}
	for xy, v := range overrides {
		out[xy[0]][xy[1]] = v
	}
	return out
}

func pos(x, y, z int) grid.Pos {
	return grid.Pos{X: x, Y: y, Z: z}
}

func TestPredicates(t *testing.T) {
	g := grid.New(smallSize, limits(smallSize, map[[2]int]int{{2, 2}: 2, {3, 3}: 2}))
	g.Set(2, 2, 0, grid.Floor)
	c := NewClassifier(g)

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"walkable floor", c.IsWalkable(pos(2, 2, 0)), true},
		{"empty not walkable", c.IsWalkable(pos(2, 2, 1)), false},
		{"out of bounds not walkable", c.IsWalkable(pos(-1, 0, 0)), false},
		{"above walkable over floor", c.IsAboveWalkable(pos(2, 2, 2)), true},
		{"above walkable at floor", c.IsAboveWalkable(pos(2, 2, 0)), true},
		{"empty column", c.IsAboveWalkable(pos(4, 4, 2)), false},
		{"out of bounds column", c.IsAboveWalkable(pos(8, 0, 2)), false},
		{"indoor", c.IsIndoor(2, 2), true},
		{"outdoor", c.IsIndoor(4, 4), false},
		{"out of bounds outdoor", c.IsIndoor(-1, -1), false},
		{"unreachable pocket", c.IsUnreachable(pos(3, 3, 1)), true},
		{"reachable indoor", c.IsUnreachable(pos(2, 2, 1)), false},
		{"outdoor never unreachable", c.IsUnreachable(pos(4, 4, 0)), false},
	}

	for _, tc := range tests {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestShouldBuildWallRules(t *testing.T) {
	tests := []struct {
		name   string
		limits map[[2]int]int
		tiles  map[grid.Pos]grid.Tile
		p1, p2 grid.Pos
		want   WallKind
	}{
		{
			name:  "open floor edge is a railing",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 0): grid.Floor},
			p1:    pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallShort,
		},
		{
			name:  "connected floors",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 0): grid.Floor, pos(4, 3, 0): grid.Floor},
			p1:    pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallNone,
		},
		{
			name:  "shaft edge below an upper floor",
			tiles: map[grid.Pos]grid.Tile{pos(4, 3, 2): grid.Floor},
			p1:    pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallTall,
		},
		{
			name: "floor against a column with floor higher up",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.Floor,
				pos(4, 3, 1): grid.Floor,
			},
			p1: pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallTall,
		},
		{
			name:   "unreachable pocket on the ground floor",
			limits: map[[2]int]int{{3, 3}: 2},
			tiles:  map[grid.Pos]grid.Tile{pos(4, 3, 0): grid.Floor},
			p1:     pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallTall,
		},
		{
			name:   "window above an indoor floor",
			limits: map[[2]int]int{{3, 3}: 2},
			tiles:  map[grid.Pos]grid.Tile{pos(3, 3, 1): grid.Floor},
			p1:     pos(3, 3, 2), p2: pos(4, 3, 2),
			want: WallWindow,
		},
		{
			name:   "indoor floor against the outside",
			limits: map[[2]int]int{{3, 3}: 2},
			tiles:  map[grid.Pos]grid.Tile{pos(3, 3, 2): grid.Floor},
			p1:     pos(3, 3, 2), p2: pos(4, 3, 2),
			want: WallTall,
		},
		{
			name: "north stair beside a floor",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.StairsNorthBottom,
				pos(3, 3, 1): grid.StairsNorthTop,
				pos(4, 3, 0): grid.Floor,
			},
			p1: pos(3, 3, 0), p2: pos(4, 3, 0),
			want: WallStairRight,
		},
		{
			name: "west stair beside a floor",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.StairsWestBottom,
				pos(3, 3, 1): grid.StairsWestTop,
				pos(3, 4, 0): grid.Floor,
			},
			p1: pos(3, 3, 0), p2: pos(3, 4, 0),
			want: WallStairRight,
		},
		{
			name: "east stair beside a floor",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.StairsEastBottom,
				pos(3, 3, 1): grid.StairsEastTop,
				pos(3, 4, 0): grid.Floor,
			},
			p1: pos(3, 4, 0), p2: pos(3, 3, 0),
			want: WallStairLeft,
		},
		{
			name: "stair entrance is open",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.StairsNorthBottom,
				pos(3, 3, 1): grid.StairsNorthTop,
				pos(3, 2, 0): grid.Floor,
			},
			p1: pos(3, 3, 0), p2: pos(3, 2, 0),
			want: WallNone,
		},
		{
			name:  "outside the grid",
			tiles: map[grid.Pos]grid.Tile{},
			p1:    pos(-1, 0, 0), p2: pos(0, 0, 0),
			want: WallNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(smallSize, limits(smallSize, tc.limits))
			for p, tile := range tc.tiles {
				g.SetAt(p, tile)
			}
			c := NewClassifier(g)
			if got := c.ShouldBuildWall(tc.p1, tc.p2); got != tc.want {
				t.Errorf("ShouldBuildWall(%s,%s) = %s, want %s", tc.p1, tc.p2, got, tc.want)
			}
		})
	}
}

func isStairRail(k WallKind) bool {
	return k == WallStairLeft || k == WallStairRight
}

func TestShouldBuildWallSymmetric(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		cfg := config.DefaultConfig()
		cfg.Generation.Seed = seed
		gen, err := generator.New(cfg)
		if err != nil {
			t.Fatal(err)
		}
		level, err := gen.Generate()
		if err != nil {
			t.Fatal(err)
		}

		c := NewClassifier(level.Grid)
		size := level.Grid.Size()
		for x := 0; x <= size.Width; x++ {
			for y := 0; y <= size.Depth; y++ {
				for z := 0; z < size.Floors; z++ {
					here := pos(x, y, z)
					for _, there := range []grid.Pos{here.Add(-1, 0, 0), here.Add(0, -1, 0)} {
						a, b := c.ShouldBuildWall(there, here), c.ShouldBuildWall(here, there)
						if isStairRail(a) || isStairRail(b) {
							if isStairRail(a) != isStairRail(b) {
								t.Errorf("seed %d %s|%s: %s vs %s", seed, there, here, a, b)
							}
							continue
						}
						if a != b {
							t.Errorf("seed %d %s|%s: %s vs %s", seed, there, here, a, b)
						}
					}
				}
			}
		}
	}
}

func TestShouldBuildPillar(t *testing.T) {
	tests := []struct {
		name   string
		limits map[[2]int]int
		tiles  []grid.Pos
		at     grid.Pos
		want   PillarKind
	}{
		{"empty", nil, nil, pos(3, 3, 0), PillarNone},
		{"corner of a lone floor", nil, []grid.Pos{pos(3, 3, 0)}, pos(3, 3, 0), PillarShort},
		{"far corner of a lone floor", nil, []grid.Pos{pos(3, 3, 0)}, pos(4, 4, 0), PillarShort},
		{"centre of a floor block", nil, []grid.Pos{pos(2, 2, 0), pos(2, 3, 0), pos(3, 2, 0), pos(3, 3, 0)}, pos(3, 3, 0), PillarNone},
		{"floor one level up", nil, []grid.Pos{pos(3, 3, 0), pos(3, 3, 1)}, pos(3, 3, 0), PillarTall},
		{"stacked under a pillar", nil, []grid.Pos{pos(3, 3, 1)}, pos(3, 3, 0), PillarTall},
		{"indoor boundary", map[[2]int]int{{3, 3}: 2}, nil, pos(3, 3, 0), PillarTall},
		{"inside the building", map[[2]int]int{{2, 2}: 2, {2, 3}: 2, {3, 2}: 2, {3, 3}: 2}, []grid.Pos{pos(3, 3, 0)}, pos(3, 3, 2), PillarTall},
		{"outside the grid", nil, nil, pos(-3, -3, 0), PillarNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(smallSize, limits(smallSize, tc.limits))
			for _, p := range tc.tiles {
				g.SetAt(p, grid.Floor)
			}
			if got := NewClassifier(g).ShouldBuildPillar(tc.at); got != tc.want {
				t.Errorf("ShouldBuildPillar(%s) = %s, want %s", tc.at, got, tc.want)
			}
		})
	}
}

func TestShouldBuildArch(t *testing.T) {
	tests := []struct {
		name   string
		limits map[[2]int]int
		tiles  map[grid.Pos]grid.Tile
		want   ArchKind
	}{
		{
			name:  "open floor under a floor",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 0): grid.Floor, pos(4, 3, 0): grid.Floor, pos(3, 3, 1): grid.Floor},
			want:  ArchNormal,
		},
		{
			name: "open floor under a stair landing",
			tiles: map[grid.Pos]grid.Tile{
				pos(3, 3, 0): grid.Floor, pos(4, 3, 0): grid.Floor,
				pos(3, 3, 1): grid.StairsNorthTop,
			},
			want: ArchNone,
		},
		{
			name:  "open floor under the sky",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 0): grid.Floor, pos(4, 3, 0): grid.Floor},
			want:  ArchNone,
		},
		{
			name:  "nothing below",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 1): grid.Floor},
			want:  ArchNone,
		},
		{
			name:  "behind a solid wall",
			tiles: map[grid.Pos]grid.Tile{pos(3, 3, 0): grid.Floor, pos(4, 3, 1): grid.Floor, pos(3, 3, 1): grid.Floor},
			want:  ArchNone,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := grid.New(smallSize, limits(smallSize, tc.limits))
			for p, tile := range tc.tiles {
				g.SetAt(p, tile)
			}
			if got := NewClassifier(g).ShouldBuildArch(pos(3, 3, 0), pos(4, 3, 0)); got != tc.want {
				t.Errorf("ShouldBuildArch = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestShouldBuildArchTopFloor(t *testing.T) {
	lim := map[[2]int]int{{3, 3}: 2, {4, 3}: 2}
	g := grid.New(smallSize, limits(smallSize, lim))
	g.Set(3, 3, 2, grid.Floor)
	g.Set(4, 3, 2, grid.Floor)

	c := NewClassifier(g)
	if got := c.ShouldBuildWall(pos(3, 3, 2), pos(4, 3, 2)); got != WallNone {
		t.Fatalf("wall = %s, want none", got)
	}
	if got := c.ShouldBuildArch(pos(3, 3, 2), pos(4, 3, 2)); got != ArchNormal {
		t.Errorf("arch = %s, want normal", got)
	}
}
