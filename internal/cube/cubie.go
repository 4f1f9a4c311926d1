package cube

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Size is the number of cubies in the puzzle.
const Size = 27

// Principal axes used by faces and whole-cube turns.
var (
	XAxis = mgl32.Vec3{1, 0, 0}
	YAxis = mgl32.Vec3{0, 1, 0}
	ZAxis = mgl32.Vec3{0, 0, 1}
)

// Coord is a lattice slot. Each component is -1, 0 or 1.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string { return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z) }

// InLattice reports whether every component is in {-1,0,1}.
func (c Coord) InLattice() bool {
	return inUnit(c.X) && inUnit(c.Y) && inUnit(c.Z)
}

func (c Coord) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}

func inUnit(v int) bool { return v >= -1 && v <= 1 }

// FlatIndex maps a lattice slot to its store index.
func FlatIndex(c Coord) int {
	return (c.X+1)*9 + (c.Y+1)*3 + (c.Z + 1)
}

// CoordOf is the inverse of FlatIndex for i in [0,Size).
func CoordOf(i int) Coord {
	return Coord{X: i/9 - 1, Y: (i/3)%3 - 1, Z: i%3 - 1}
}

// Cubie is one sub-cube. Orientation accumulates every rotation ever applied
// to it; Position is its world-space center.
type Cubie struct {
	Position    mgl32.Vec3
	Orientation mgl32.Mat4
}

// Model returns translate · orientation · scale for drawing the unit mesh.
func (c Cubie) Model(scale float32) mgl32.Mat4 {
	t := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	s := mgl32.Scale3D(scale, scale, scale)
	return t.Mul4(c.Orientation).Mul4(s)
}
