package pick

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/cube"
)

// None is the decoded value of a background pixel.
const None = -1

// EncodeBytes returns the flat pick color for cubie index i. Index i is
// stored as i+1 so the zero color stays free for the background.
func EncodeBytes(i int) [4]uint8 {
	id := i + 1
	return [4]uint8{
		uint8(id & 0xFF),
		uint8((id >> 8) & 0xFF),
		uint8((id >> 16) & 0xFF),
		0xFF,
	}
}

// Encode is EncodeBytes normalized to [0,1] for use as a shader color.
func Encode(i int) mgl32.Vec4 {
	b := EncodeBytes(i)
	return mgl32.Vec4{
		float32(b[0]) / 255,
		float32(b[1]) / 255,
		float32(b[2]) / 255,
		1,
	}
}

// Decode recovers the cubie index from a read-back pixel. The alpha channel
// is ignored. A background pixel decodes to None.
func Decode(px [4]uint8) int {
	return (int(px[0]) | int(px[1])<<8 | int(px[2])<<16) - 1
}

// Valid reports whether a decoded index names a cubie.
func Valid(i int) bool { return i >= 0 && i < cube.Size }
