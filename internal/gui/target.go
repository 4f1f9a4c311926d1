package gui

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/render"
)

// stickerLift keeps stickers in front of the cubie body in the depth test.
const stickerLift = 0.002

// faceShade darkens faces by direction so the cube reads as solid without
// a lighting shader.
var faceShade = map[string]float32{
	"front": 1.0, "back": 0.7, "left": 0.8, "right": 0.85, "top": 0.95, "bottom": 0.75,
}

// Target draws cubies through rlgl immediate mode. The pick pass renders
// into its own single-sampled render texture so ids are never blended by
// the window's multisampling, and glReadPixels reads from that texture.
// Draw calls must be made between BeginMode3D and EndMode3D.
type Target struct {
	background color.RGBA
	picking    bool
	readback   bool
	pickBuf    rl.RenderTexture2D
	width      int
	height     int
}

func NewTarget(bg color.RGBA) *Target {
	return &Target{background: bg}
}

// InitReadback loads the GL entry points used for pixel readback and
// allocates the pick buffer at the framebuffer size. It needs a current GL
// context, so call it after the window opens.
func (t *Target) InitReadback(width, height int) error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("failed to init opengl: %v", err)
	}
	t.readback = true
	t.Resize(width, height)
	if !rl.IsRenderTextureValid(t.pickBuf) {
		t.readback = false
		return fmt.Errorf("pick buffer %dx%d could not be created", width, height)
	}
	return nil
}

// Resize reallocates the pick buffer when the framebuffer size changes.
func (t *Target) Resize(width, height int) {
	if width == t.width && height == t.height && rl.IsRenderTextureValid(t.pickBuf) {
		return
	}
	t.width, t.height = width, height
	if !t.readback {
		return
	}
	if rl.IsRenderTextureValid(t.pickBuf) {
		rl.UnloadRenderTexture(t.pickBuf)
	}
	t.pickBuf = rl.LoadRenderTexture(int32(width), int32(height))
}

// Close releases the pick buffer.
func (t *Target) Close() {
	if rl.IsRenderTextureValid(t.pickBuf) {
		rl.UnloadRenderTexture(t.pickBuf)
	}
	t.pickBuf = rl.RenderTexture2D{}
}

func (t *Target) CanRead() bool { return t.readback }

func (t *Target) Size() (int, int) { return t.width, t.height }

// SetPicking binds the pick buffer while on and returns to the window
// framebuffer when switched off.
func (t *Target) SetPicking(on bool) {
	if on == t.picking {
		return
	}
	t.picking = on
	if !t.readback {
		return
	}
	if on {
		rl.BeginTextureMode(t.pickBuf)
		return
	}
	rl.EndTextureMode()
}

func (t *Target) Clear() {
	rl.DrawRenderBatchActive()
	if t.picking {
		rl.ClearBackground(color.RGBA{})
		return
	}
	rl.ClearBackground(t.background)
}

// Draw emits one cubie. Each cubie is flushed on its own so the batch is
// drawn with this cubie's matrix as the projection and an identity
// modelview.
func (t *Target) Draw(mvp mgl32.Mat4, col mgl32.Vec4) {
	rl.DrawRenderBatchActive()
	rl.SetMatrixProjection(toMatrix(mvp))
	rl.SetMatrixModelview(rl.MatrixIdentity())

	rl.Begin(rl.Quads)
	if t.picking {
		c := toRGBA(col)
		rl.Color4ub(c.R, c.G, c.B, c.A)
		for _, q := range render.CubieQuads {
			emitQuad(q, 0, 0)
		}
	} else {
		for _, q := range render.CubieQuads {
			shade := faceShade[q.Name]
			rl.Color4ub(uint8(10*shade), uint8(10*shade), uint8(10*shade), 255)
			emitQuad(q, 0, 0)
			c := q.Color
			rl.Color4ub(uint8(float32(c.R)*shade), uint8(float32(c.G)*shade), uint8(float32(c.B)*shade), 255)
			emitQuad(q, 0.08, stickerLift)
		}
	}
	rl.End()
	rl.DrawRenderBatchActive()
}

// emitQuad sends q's corners pulled toward the face center by inset and
// pushed along the normal by lift.
func emitQuad(q render.Quad, inset, lift float32) {
	center := q.Normal.Mul(0.5 + lift)
	for _, v := range q.Corners {
		p := v.Pos.Add(q.Normal.Mul(lift))
		p = p.Add(center.Sub(p).Mul(inset))
		rl.Vertex3f(p.X(), p.Y(), p.Z())
	}
}

func (t *Target) ReadPixel(x, y int) [4]uint8 {
	var px [4]uint8
	if !t.readback {
		return px
	}
	rl.DrawRenderBatchActive()
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&px[0]))
	return px
}

func (t *Target) ReadDepth(x, y int) float32 {
	var d float32 = 1
	if !t.readback {
		return d
	}
	rl.DrawRenderBatchActive()
	gl.ReadPixels(int32(x), int32(y), 1, 1, gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(&d))
	return d
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout, whose
// Mi fields are also column-major indices.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}

func toRGBA(c mgl32.Vec4) color.RGBA {
	b := func(v float32) uint8 { return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5) }
	return color.RGBA{R: b(c[0]), G: b(c[1]), B: b(c[2]), A: b(c[3])}
}
