package metrics

import (
	"github.com/chewxy/math32"

	"github.com/san-kum/cubesim/internal/cube"
)

// SlotConsistency is the fraction of observations in which every cubie's
// rounded position names the slot it is filed in.
type SlotConsistency struct {
	name       string
	violations int
	samples    int
}

func NewSlotConsistency() *SlotConsistency {
	return &SlotConsistency{name: "slot_consistency"}
}

func (c *SlotConsistency) Name() string {
	return c.name
}

func (c *SlotConsistency) Observe(s *cube.Store) {
	c.samples++
	scale := s.Scale()
	for i, cb := range s.All() {
		p := cb.Position.Mul(1 / scale)
		coord := cube.Coord{
			X: int(math32.Round(p.X())),
			Y: int(math32.Round(p.Y())),
			Z: int(math32.Round(p.Z())),
		}
		if !coord.InLattice() || cube.FlatIndex(coord) != i {
			c.violations++
			break
		}
	}
}

func (c *SlotConsistency) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *SlotConsistency) Reset() {
	c.violations = 0
	c.samples = 0
}
