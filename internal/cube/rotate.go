package cube

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/logging"
)

// Box is an inclusive, axis-aligned range of lattice slots.
type Box struct {
	Min, Max Coord
}

// FullBox selects all 27 slots.
var FullBox = Box{Min: Coord{-1, -1, -1}, Max: Coord{1, 1, 1}}

func (b Box) Valid() bool {
	return b.Min.InLattice() && b.Max.InLattice() &&
		b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

func (b Box) Contains(c Coord) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X &&
		c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
		c.Z >= b.Min.Z && c.Z <= b.Max.Z
}

// Center is the lattice-space midpoint of the box.
func (b Box) Center() mgl32.Vec3 {
	return b.Min.Vec3().Add(b.Max.Vec3()).Mul(0.5)
}

// Coords lists the slots in x, y, z order.
func (b Box) Coords() []Coord {
	var out []Coord
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				out = append(out, Coord{x, y, z})
			}
		}
	}
	return out
}

// aboutPivot builds T(pivot) · rot · T(-pivot).
func aboutPivot(pivot mgl32.Vec3, rot mgl32.Mat4) mgl32.Mat4 {
	to := mgl32.Translate3D(pivot.X(), pivot.Y(), pivot.Z())
	from := mgl32.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z())
	return to.Mul4(rot).Mul4(from)
}

// snapTolerance bounds how far a rotated lattice coordinate may sit from the
// nearest integer before the turn is rejected.
const snapTolerance = 1e-3

// roundCoord snaps v to the nearest integer triple. ok is false when any
// component is further than snapTolerance from an integer.
func roundCoord(v mgl32.Vec3) (c Coord, ok bool) {
	var r [3]int
	for i := 0; i < 3; i++ {
		n := math32.Round(v[i])
		if math32.Abs(v[i]-n) > snapTolerance {
			return Coord{}, false
		}
		r[i] = int(n)
	}
	return Coord{r[0], r[1], r[2]}, true
}

// RotateBox turns every cubie inside box by degrees about axis and re-files
// each one into the slot its lattice coordinate maps to. Orientations
// accumulate the rotation; positions are mapped about the box center.
//
// Only axis-aligned quarter and half turns map the lattice onto itself. If any
// mapped coordinate falls off the integer lattice or two cubies land in one
// slot, the call is a no-op.
func (s *Store) RotateBox(box Box, axis mgl32.Vec3, degrees float32) {
	log := logging.Logger()
	if !box.Valid() || axis.Len() == 0 {
		log.Warn("rotate ignored", "box", box, "axis", axis)
		return
	}
	rot := mgl32.HomogRotate3D(mgl32.DegToRad(degrees), axis.Normalize())

	pivot := box.Center()
	world := aboutPivot(pivot.Mul(s.scale), rot)
	lattice := aboutPivot(pivot, rot)

	dest := s.cubies
	var filled [Size]bool
	for _, from := range box.Coords() {
		to, ok := roundCoord(lattice.Mul4x1(from.Vec3().Vec4(1)).Vec3())
		if !ok || !to.InLattice() || !box.Contains(to) {
			log.Warn("rotate left the lattice", "from", from, "to", to, "degrees", degrees)
			return
		}
		idx := FlatIndex(to)
		if filled[idx] {
			log.Warn("rotate is not a permutation", "slot", to, "degrees", degrees)
			return
		}
		filled[idx] = true

		c := s.cubies[FlatIndex(from)]
		c.Position = world.Mul4x1(c.Position.Vec4(1)).Vec3()
		c.Orientation = rot.Mul4(c.Orientation)
		dest[idx] = c
	}
	s.cubies = dest
	log.Debug("rotated box", "min", box.Min, "max", box.Max, "axis", axis, "degrees", degrees)
}
