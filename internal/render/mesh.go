package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is a mesh corner with its sticker texture coordinate.
type Vertex struct {
	Pos mgl32.Vec3
	UV  mgl32.Vec2
}

// Quad is one face of the unit cubie. Corners wind counter-clockwise seen
// from outside.
type Quad struct {
	Name    string
	Normal  mgl32.Vec3
	Color   color.RGBA
	Corners [4]Vertex
}

// Triangles splits the quad into (0,1,2) and (2,3,0).
func (q Quad) Triangles() [2][3]Vertex {
	c := q.Corners
	return [2][3]Vertex{{c[0], c[1], c[2]}, {c[2], c[3], c[0]}}
}

var uv = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func quad(name string, n mgl32.Vec3, col color.RGBA, p0, p1, p2, p3 mgl32.Vec3) Quad {
	return Quad{
		Name:   name,
		Normal: n,
		Color:  col,
		Corners: [4]Vertex{
			{p0, uv[0]}, {p1, uv[1]}, {p2, uv[2]}, {p3, uv[3]},
		},
	}
}

// Sticker colors.
var (
	Red    = color.RGBA{220, 30, 30, 255}
	Orange = color.RGBA{255, 128, 0, 255}
	Blue   = color.RGBA{20, 60, 220, 255}
	Green  = color.RGBA{20, 180, 60, 255}
	White  = color.RGBA{240, 240, 240, 255}
	Yellow = color.RGBA{250, 220, 20, 255}
)

const h = 0.5

// CubieQuads is the unit cubie mesh, centered on the origin with edge 1.
var CubieQuads = [6]Quad{
	quad("front", mgl32.Vec3{0, 0, 1}, Red,
		mgl32.Vec3{-h, -h, h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, h, h}, mgl32.Vec3{-h, h, h}),
	quad("back", mgl32.Vec3{0, 0, -1}, Orange,
		mgl32.Vec3{h, -h, -h}, mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, h, -h}, mgl32.Vec3{h, h, -h}),
	quad("left", mgl32.Vec3{-1, 0, 0}, Blue,
		mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{-h, -h, h}, mgl32.Vec3{-h, h, h}, mgl32.Vec3{-h, h, -h}),
	quad("right", mgl32.Vec3{1, 0, 0}, Green,
		mgl32.Vec3{h, -h, h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{h, h, h}),
	quad("top", mgl32.Vec3{0, 1, 0}, White,
		mgl32.Vec3{-h, h, h}, mgl32.Vec3{h, h, h}, mgl32.Vec3{h, h, -h}, mgl32.Vec3{-h, h, -h}),
	quad("bottom", mgl32.Vec3{0, -1, 0}, Yellow,
		mgl32.Vec3{-h, -h, -h}, mgl32.Vec3{h, -h, -h}, mgl32.Vec3{h, -h, h}, mgl32.Vec3{-h, -h, h}),
}
