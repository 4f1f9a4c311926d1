package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/pick"
)

// DrawScene renders a lit frame of the store into t.
func DrawScene(t pick.Target, s *cube.Store, cam *camera.Camera) {
	t.SetPicking(false)
	t.Clear()
	vp := cam.ViewProjection()
	scale := s.Scale()
	for _, c := range s.All() {
		t.Draw(vp.Mul4(c.Model(scale)), mgl32.Vec4{1, 1, 1, 1})
	}
}
