package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// borderWidth is the sticker border in face texture units.
const borderWidth = 0.06

var (
	DefaultBackground = color.RGBA{24, 24, 32, 255}
	borderColor       = color.RGBA{10, 10, 10, 255}
)

// Soft is a CPU z-buffered rasterizer over an RGBA image. It implements the
// pick render target contract, so pick passes and lit frames can be produced
// without a GPU. Pixel rows in ReadPixel and ReadDepth count from the bottom.
type Soft struct {
	img        *image.RGBA
	depth      []float32
	width      int
	height     int
	picking    bool
	Background color.RGBA
}

func NewSoft(width, height int) *Soft {
	s := &Soft{Background: DefaultBackground}
	s.Resize(width, height)
	return s
}

// Resize reallocates the buffers. Non-positive sizes are raised to 1.
func (s *Soft) Resize(width, height int) {
	s.width, s.height = max(width, 1), max(height, 1)
	s.img = image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	s.depth = make([]float32, s.width*s.height)
	s.Clear()
}

func (s *Soft) Size() (int, int)   { return s.width, s.height }
func (s *Soft) SetPicking(on bool) { s.picking = on }
func (s *Soft) Picking() bool      { return s.picking }
func (s *Soft) Image() *image.RGBA { return s.img }

// Clear fills depth with the far plane and color with zero while picking or
// with Background otherwise.
func (s *Soft) Clear() {
	c := s.Background
	if s.picking {
		c = color.RGBA{}
	}
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, c.A
	}
	for i := range s.depth {
		s.depth[i] = 1
	}
}

// ReadPixel returns the RGBA bytes at (x, y), or zero outside the buffer.
func (s *Soft) ReadPixel(x, y int) [4]uint8 {
	if !s.inside(x, y) {
		return [4]uint8{}
	}
	o := s.img.PixOffset(x, s.height-1-y)
	p := s.img.Pix[o : o+4 : o+4]
	return [4]uint8{p[0], p[1], p[2], p[3]}
}

// ReadDepth returns the depth at (x, y), or the far plane outside the buffer.
func (s *Soft) ReadDepth(x, y int) float32 {
	if !s.inside(x, y) {
		return 1
	}
	return s.depth[(s.height-1-y)*s.width+x]
}

func (s *Soft) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// screenVertex is a vertex after the perspective divide, in window pixels
// with y up and GL depth in [0,1].
type screenVertex struct {
	x, y, z float32
	uv      mgl32.Vec2
}

// Draw rasterizes the cubie mesh transformed by mvp. While picking every
// fragment is written in the flat color; otherwise the sticker colors are
// shaded by how squarely each face looks at the viewer.
func (s *Soft) Draw(mvp mgl32.Mat4, col mgl32.Vec4) {
	flat := color.RGBA{
		R: uint8(math32.Round(mgl32.Clamp(col[0], 0, 1) * 255)),
		G: uint8(math32.Round(mgl32.Clamp(col[1], 0, 1) * 255)),
		B: uint8(math32.Round(mgl32.Clamp(col[2], 0, 1) * 255)),
		A: uint8(math32.Round(mgl32.Clamp(col[3], 0, 1) * 255)),
	}
	for _, q := range CubieQuads {
		for _, tri := range q.Triangles() {
			var sv [3]screenVertex
			visible := true
			for k, v := range tri {
				clip := mvp.Mul4x1(v.Pos.Vec4(1))
				if clip.W() <= 1e-6 {
					visible = false
					break
				}
				ndc := clip.Vec3().Mul(1 / clip.W())
				sv[k] = screenVertex{
					x:  (ndc.X() + 1) * 0.5 * float32(s.width),
					y:  (ndc.Y() + 1) * 0.5 * float32(s.height),
					z:  ndc.Z()*0.5 + 0.5,
					uv: v.UV,
				}
			}
			if !visible {
				continue
			}
			c := flat
			if !s.picking {
				c = shade(q.Color, sv)
			}
			s.raster(sv, c, !s.picking)
		}
	}
}

// shade scales a sticker color by the facing ratio of the projected
// triangle, using the screen-space normal.
func shade(base color.RGBA, v [3]screenVertex) color.RGBA {
	a := mgl32.Vec3{v[1].x - v[0].x, v[1].y - v[0].y, (v[1].z - v[0].z) * 100}
	b := mgl32.Vec3{v[2].x - v[0].x, v[2].y - v[0].y, (v[2].z - v[0].z) * 100}
	n := a.Cross(b)
	if n.Len() == 0 {
		return base
	}
	f := 0.45 + 0.55*math32.Abs(n.Normalize().Z())
	return color.RGBA{
		R: uint8(float32(base.R) * f),
		G: uint8(float32(base.G) * f),
		B: uint8(float32(base.B) * f),
		A: 255,
	}
}

func (s *Soft) raster(v [3]screenVertex, c color.RGBA, borders bool) {
	area := edge(v[0], v[1], v[2].x, v[2].y)
	if area == 0 {
		return
	}
	minX := max(int(math32.Floor(min(v[0].x, v[1].x, v[2].x))), 0)
	maxX := min(int(math32.Ceil(max(v[0].x, v[1].x, v[2].x))), s.width-1)
	minY := max(int(math32.Floor(min(v[0].y, v[1].y, v[2].y))), 0)
	maxY := min(int(math32.Ceil(max(v[0].y, v[1].y, v[2].y))), s.height-1)

	for py := minY; py <= maxY; py++ {
		cy := float32(py) + 0.5
		for px := minX; px <= maxX; px++ {
			cx := float32(px) + 0.5
			w0 := edge(v[1], v[2], cx, cy) / area
			w1 := edge(v[2], v[0], cx, cy) / area
			w2 := edge(v[0], v[1], cx, cy) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			z := w0*v[0].z + w1*v[1].z + w2*v[2].z
			if z < 0 || z > 1 {
				continue
			}
			di := (s.height-1-py)*s.width + px
			if z >= s.depth[di] {
				continue
			}
			s.depth[di] = z
			out := c
			if borders {
				uv := v[0].uv.Mul(w0).Add(v[1].uv.Mul(w1)).Add(v[2].uv.Mul(w2))
				if onBorder(uv) {
					out = borderColor
				}
			}
			s.img.SetRGBA(px, s.height-1-py, out)
		}
	}
}

func edge(a, b screenVertex, x, y float32) float32 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func onBorder(uv mgl32.Vec2) bool {
	return min(uv.X(), 1-uv.X(), uv.Y(), 1-uv.Y()) < borderWidth
}
