package cube

import "github.com/go-gl/mathgl/mgl32"

// Store is the fixed collection of 27 cubies filed by lattice slot. The slots
// are stable; turns only swap their contents, so a slot index held by a
// caller stays valid across turns.
type Store struct {
	cubies [Size]Cubie
	scale  float32
}

// New returns a solved store whose lattice spacing is scale.
func New(scale float32) *Store {
	s := &Store{scale: scale}
	s.Reset()
	return s
}

// Reset restores the solved configuration.
func (s *Store) Reset() {
	for i := range s.cubies {
		s.cubies[i] = Cubie{
			Position:    CoordOf(i).Vec3().Mul(s.scale),
			Orientation: mgl32.Ident4(),
		}
	}
}

// Get returns the cubie in slot i. Callers guarantee 0 <= i < Size.
func (s *Store) Get(i int) *Cubie { return &s.cubies[i] }

// All returns a copy of every slot.
func (s *Store) All() [Size]Cubie { return s.cubies }

func (s *Store) Scale() float32 { return s.scale }
