package decorator

import (
	"fmt"

	"github.com/lawnchairsociety/towerhouse/internal/grid"
)

// Kind tags a placement with the piece the scene builder should put there.
type Kind int

const (
	KindFloor Kind = iota
	KindStairs
	KindUnderStairs
	KindRailing
	KindWall
	KindStairRailLeft
	KindStairRailRight
	KindWindow
	KindPillarShort
	KindPillarTall
	KindArch
	KindRoof
	KindLight
	KindDecoration
)

var kindNames = [...]string{
	KindFloor:          "floor",
	KindStairs:         "stairs",
	KindUnderStairs:    "under_stairs",
	KindRailing:        "railing",
	KindWall:           "wall",
	KindStairRailLeft:  "stair_rail_left",
	KindStairRailRight: "stair_rail_right",
	KindWindow:         "window",
	KindPillarShort:    "pillar_short",
	KindPillarTall:     "pillar_tall",
	KindArch:           "arch",
	KindRoof:           "roof",
	KindLight:          "light",
	KindDecoration:     "decoration",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every placement kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("decorator: unknown placement kind %q", s)
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("decorator: cannot encode kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Vec3 is a world space position. Y is up.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Placement is one piece for the scene builder: what to place, where, and
// how far to turn it about the vertical axis. Cell is the grid cell or
// lattice point the piece was derived from.
type Placement struct {
	Kind     Kind     `json:"kind" yaml:"kind"`
	Cell     grid.Pos `json:"cell" yaml:"cell"`
	Position Vec3     `json:"position" yaml:"position"`
	Yaw      float64  `json:"yaw" yaml:"yaw"`
}

func (p Placement) String() string {
	return fmt.Sprintf("%s@%s", p.Kind, p.Cell)
}
