package cube

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

type Face int

const (
	Front Face = iota
	Back
	Left
	Right
	Top
	Bottom
)

var faceNames = [...]string{"front", "back", "left", "right", "top", "bottom"}

// Faces lists every valid face.
var Faces = []Face{Front, Back, Left, Right, Top, Bottom}

func (f Face) Valid() bool { return f >= Front && f <= Bottom }

func (f Face) String() string {
	if !f.Valid() {
		return "invalid"
	}
	return faceNames[f]
}

// ParseFace resolves a face name as used in config key bindings.
func ParseFace(name string) (Face, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range faceNames {
		if n == name {
			return Face(i), true
		}
	}
	return 0, false
}

type faceSpec struct {
	box  Box
	axis mgl32.Vec3
}

var faceTable = [...]faceSpec{
	Front:  {Box{Coord{-1, -1, 1}, Coord{1, 1, 1}}, ZAxis},
	Back:   {Box{Coord{-1, -1, -1}, Coord{1, 1, -1}}, ZAxis.Mul(-1)},
	Left:   {Box{Coord{-1, -1, -1}, Coord{-1, 1, 1}}, XAxis.Mul(-1)},
	Right:  {Box{Coord{1, -1, -1}, Coord{1, 1, 1}}, XAxis},
	Top:    {Box{Coord{-1, 1, -1}, Coord{1, 1, 1}}, YAxis},
	Bottom: {Box{Coord{-1, -1, -1}, Coord{1, -1, 1}}, YAxis.Mul(-1)},
}

// Box returns the slab of slots the face turns. Invalid faces return a zero box.
func (f Face) Box() Box {
	if !f.Valid() {
		return Box{}
	}
	return faceTable[f].box
}

// Axis is the outward normal of the face.
func (f Face) Axis() mgl32.Vec3 {
	if !f.Valid() {
		return mgl32.Vec3{}
	}
	return faceTable[f].axis
}
