package decorator

import "fmt"

// SceneBuilder turns placements into whatever the host engine renders.
type SceneBuilder interface {
	Place(Placement) error
}

// Emit hands every placement to b in order and stops at the first error.
func Emit(b SceneBuilder, placements []Placement) error {
	for i, p := range placements {
		if err := b.Place(p); err != nil {
			return fmt.Errorf("place %d (%s): %w", i, p, err)
		}
	}
	return nil
}

// Collector is a SceneBuilder that keeps everything it is given.
type Collector struct {
	Placements []Placement
}

func (c *Collector) Place(p Placement) error {
	c.Placements = append(c.Placements, p)
	return nil
}

// Tally is a SceneBuilder that counts placements per kind.
type Tally map[Kind]int

func (t Tally) Place(p Placement) error {
	t[p.Kind]++
	return nil
}

// Total returns the number of placements counted.
func (t Tally) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}
