// Package asciimap draws a grid floor by floor as text.
package asciimap

import (
	"fmt"
	"io"
	"strings"

	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

// Each cell is 5 chars wide, 3 chars tall, north up:
//
//	  |     (north passage)
//	-[#]-   (west, tile, east)
//	  |     (south passage)
const cellWidth = 5

// RenderFloor writes floor z. Carvable empty cells are dotted; cells above
// the column's height limit are left blank.
func RenderFloor(w io.Writer, g *grid.Grid, z int) error {
	size := g.Size()
	if z < 0 || z >= size.Floors {
		return fmt.Errorf("asciimap: floor %d outside 0..%d", z, size.Floors-1)
	}

	var out strings.Builder
	fmt.Fprintf(&out, "Floor %d\n", z)
	out.WriteString(strings.Repeat("-", size.Width*cellWidth) + "\n")

	for y := size.Depth - 1; y >= 0; y-- {
		var top, mid, bottom strings.Builder
		for x := 0; x < size.Width; x++ {
			p := grid.Pos{X: x, Y: y, Z: z}
			t := g.At(p)

			if t == grid.Empty {
				top.WriteString("     ")
				bottom.WriteString("     ")
				if z <= g.MaxHeight(x, y) {
					mid.WriteString("  .  ")
				} else {
					mid.WriteString("     ")
				}
				continue
			}

			top.WriteString(passage(g, p, grid.North, "  |  "))
			mid.WriteString(passage(g, p, grid.West, "-"))
			fmt.Fprintf(&mid, "[%c]", t.Rune())
			mid.WriteString(passage(g, p, grid.East, "-"))
			bottom.WriteString(passage(g, p, grid.South, "  |  "))
		}
		out.WriteString(strings.TrimRight(top.String(), " ") + "\n")
		out.WriteString(strings.TrimRight(mid.String(), " ") + "\n")
		out.WriteString(strings.TrimRight(bottom.String(), " ") + "\n")
	}

	floors, stairs := 0, 0
	for y := 0; y < size.Depth; y++ {
		for x := 0; x < size.Width; x++ {
			switch t := g.Get(x, y, z); {
			case t == grid.Floor:
				floors++
			case t.IsStair():
				stairs++
			}
		}
	}
	fmt.Fprintf(&out, "%d floor tiles, %d stair tiles\n", floors, stairs)

	_, err := io.WriteString(w, out.String())
	return err
}

// passage returns mark when p connects to its neighbour toward d, and
// blanks of the same width otherwise.
func passage(g *grid.Grid, p grid.Pos, d grid.Direction, mark string) string {
	if g.CanAccess(p, p.Step(d)) {
		return mark
	}
	return strings.Repeat(" ", len(mark))
}

// RenderLimits writes the height limit map, north up.
func RenderLimits(w io.Writer, g *grid.Grid) error {
	rows := g.EncodeLimits()
	var out strings.Builder
	out.WriteString("Height limits\n")
	for y := len(rows) - 1; y >= 0; y-- {
		out.WriteString("  " + rows[y] + "\n")
	}
	_, err := io.WriteString(w, out.String())
	return err
}

// Render writes the height limit map, every floor from the top down, and
// the legend.
func Render(w io.Writer, g *grid.Grid) error {
	if err := RenderLimits(w, g); err != nil {
		return err
	}
	for z := g.Size().Floors - 1; z >= 0; z-- {
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
		if err := RenderFloor(w, g, z); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, Legend())
	return err
}

// Legend explains the symbols RenderFloor uses.
func Legend() string {
	return `
Legend:
  [#] Floor
  [N] [E] [S] [W] Stairs foot, climbing north/east/south/west
  [n] [e] [s] [w] Stairs head, reached from the floor below
   .  Empty, inside the height limit

  Connections:
  -   Passage east-west
  |   Passage north-south
`
}
