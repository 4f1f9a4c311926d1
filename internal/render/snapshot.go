package render

import (
	"image/color"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/cube"
)

// stickerInset shrinks each sticker toward its face center, leaving the
// black plastic visible between stickers.
const stickerInset = 0.08

// FacePoly is one visible cubie face in window space, y down.
type FacePoly struct {
	Corners [4]mgl32.Vec3
	Sticker [4]mgl32.Vec3
	Depth   float32
	Color   color.RGBA
}

// Faces returns the faces of s visible from cam, sorted far to near.
func Faces(s *cube.Store, cam *camera.Camera) []FacePoly {
	polys := collectFaces(s, cam)
	sort.SliceStable(polys, func(i, j int) bool { return polys[i].Depth > polys[j].Depth })
	return polys
}

// Snapshot paints the store as seen by cam into a new gg context of the
// camera's size. Faces are back-face culled and sorted far to near. The
// caller owns the returned context.
func Snapshot(s *cube.Store, cam *camera.Camera, bg color.RGBA) *gg.Context {
	w, h := cam.Width(), cam.Height()
	dc := gg.NewContext(w, h)
	dc.SetColor(bg)
	dc.DrawRectangle(0, 0, float64(w), float64(h))
	_ = dc.Fill()

	for _, p := range Faces(s, cam) {
		dc.SetColor(borderColor)
		tracePoly(dc, p.Corners)
		_ = dc.Fill()

		dc.SetColor(p.Color)
		tracePoly(dc, p.Sticker)
		_ = dc.Fill()
	}
	return dc
}

func collectFaces(s *cube.Store, cam *camera.Camera) []FacePoly {
	h := float32(cam.Height())
	eye := cam.Position
	light := cam.Orientation.Mul(-1).Normalize()
	scale := s.Scale()

	polys := make([]FacePoly, 0, cube.Size*len(CubieQuads))
	for _, c := range s.All() {
		model := c.Model(scale)
		for _, q := range CubieQuads {
			var world [4]mgl32.Vec3
			var center mgl32.Vec3
			for k, v := range q.Corners {
				world[k] = model.Mul4x1(v.Pos.Vec4(1)).Vec3()
				center = center.Add(world[k])
			}
			center = center.Mul(0.25)
			normal := world[1].Sub(world[0]).Cross(world[3].Sub(world[0])).Normalize()
			if normal.Dot(eye.Sub(center)) <= 0 {
				continue
			}

			var p FacePoly
			for k := range world {
				inner := world[k].Add(center.Sub(world[k]).Mul(stickerInset * 2))
				p.Corners[k] = toWindow(cam, world[k], h)
				p.Sticker[k] = toWindow(cam, inner, h)
			}
			p.Depth = center.Sub(eye).Len()
			p.Color = lambert(q.Color, max(normal.Dot(light), 0))
			polys = append(polys, p)
		}
	}
	return polys
}

func toWindow(cam *camera.Camera, world mgl32.Vec3, height float32) mgl32.Vec3 {
	win := cam.Project(world)
	return mgl32.Vec3{win.X(), height - win.Y(), win.Z()}
}

func lambert(base color.RGBA, ndotl float32) color.RGBA {
	f := 0.4 + 0.6*ndotl
	return color.RGBA{
		R: uint8(float32(base.R) * f),
		G: uint8(float32(base.G) * f),
		B: uint8(float32(base.B) * f),
		A: 255,
	}
}

func tracePoly(dc *gg.Context, pts [4]mgl32.Vec3) {
	dc.MoveTo(float64(pts[0].X()), float64(pts[0].Y()))
	for _, p := range pts[1:] {
		dc.LineTo(float64(p.X()), float64(p.Y()))
	}
	dc.ClosePath()
}
