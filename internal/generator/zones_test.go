package generator

import (
	"math/rand"
	"testing"
)

// scripted replays fixed draws and fails the test on a draw outside [0,n).
type scripted struct {
	t     *testing.T
	draws []int
}

func (s *scripted) Intn(n int) int {
	s.t.Helper()
	if len(s.draws) == 0 {
		s.t.Fatalf("scripted source exhausted (Intn(%d))", n)
	}
	v := s.draws[0]
	s.draws = s.draws[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted draw %d outside [0,%d)", v, n)
	}
	return v
}

func TestGenerateZonesLiteral(t *testing.T) {
	rng := &scripted{t: t, draws: []int{2, 2, 2, 2, 0, 0, 2, 2}}
	zones, limits := GenerateHeightLimits(rng, 12, 12)

	if want := (Rect{X: 2, Y: 2, W: 8, H: 8}); zones.Outer != want {
		t.Errorf("outer = %s, want %s", zones.Outer, want)
	}
	if want := (Rect{X: 4, Y: 4, W: 4, H: 4}); zones.Inner != want {
		t.Errorf("inner = %s, want %s", zones.Inner, want)
	}

	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			want := 0
			switch {
			case x >= 4 && x < 8 && y >= 4 && y < 8:
				want = 2
			case x >= 2 && x < 10 && y >= 2 && y < 10:
				want = 1
			}
			if limits[x][y] != want {
				t.Errorf("limit(%d,%d) = %d, want %d", x, y, limits[x][y], want)
			}
		}
	}
}

func TestGenerateZonesBounds(t *testing.T) {
	sizes := [][2]int{{12, 12}, {6, 6}, {20, 9}, {33, 17}}

	for _, size := range sizes {
		w, d := size[0], size[1]
		for seed := int64(1); seed <= 200; seed++ {
			z := GenerateZones(rand.New(rand.NewSource(seed)), w, d)

			if z.Outer.W < w/2 || z.Outer.W >= w*3/4 || z.Outer.H < d/2 || z.Outer.H >= d*3/4 {
				t.Fatalf("%dx%d seed %d: outer size %s out of range", w, d, seed, z.Outer)
			}
			if z.Outer.X < 0 || z.Outer.Y < 0 || z.Outer.X+z.Outer.W > w || z.Outer.Y+z.Outer.H > d {
				t.Fatalf("%dx%d seed %d: outer %s leaves the grid", w, d, seed, z.Outer)
			}
			if z.Inner.W < 1 || z.Inner.H < 1 {
				t.Fatalf("%dx%d seed %d: empty inner %s", w, d, seed, z.Inner)
			}
			if z.Inner.X < z.Outer.X || z.Inner.Y < z.Outer.Y ||
				z.Inner.X+z.Inner.W > z.Outer.X+z.Outer.W || z.Inner.Y+z.Inner.H > z.Outer.Y+z.Outer.H {
				t.Fatalf("%dx%d seed %d: inner %s escapes outer %s", w, d, seed, z.Inner, z.Outer)
			}
		}
	}
}

func TestHeightLimitsValues(t *testing.T) {
	zones := Zones{Outer: Rect{0, 0, 3, 3}, Inner: Rect{1, 1, 1, 1}}
	limits := HeightLimits(zones, 4, 4)

	if limits[1][1] != 2 {
		t.Errorf("inner column = %d, want 2", limits[1][1])
	}
	if limits[0][0] != 1 || limits[2][2] != 1 {
		t.Errorf("outer columns = %d,%d, want 1", limits[0][0], limits[2][2])
	}
	if limits[3][3] != 0 || limits[3][0] != 0 {
		t.Errorf("outside columns = %d,%d, want 0", limits[3][3], limits[3][0])
	}
}
