package pick

import (
	"math"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/logging"
)

// Picker runs pick passes and remembers the last hit. The hit is a slot
// index into the store, never a pointer, so it stays valid across turns.
type Picker struct {
	target Target
	index  int
	ok     bool
	depth  float32
}

func NewPicker(t Target) *Picker {
	return &Picker{target: t, index: None}
}

// SetTarget replaces the render target, for example once GPU resources exist.
func (p *Picker) SetTarget(t Target) { p.target = t }

// Picked returns the slot under the cursor at the last pick.
func (p *Picker) Picked() (int, bool) { return p.index, p.ok }

// Depth is the window depth read under the cursor at the last hit.
func (p *Picker) Depth() float32 { return p.depth }

// Reset forgets the current hit.
func (p *Picker) Reset() {
	p.index, p.ok, p.depth = None, false, 0
}

// Pick redraws every cubie in its pick color with the camera's live matrices
// and decodes the pixel under cursor position (x, y), given in window
// coordinates with the origin at the top-left. The target is cleared again
// before returning so the pass is never shown.
//
// Without a target the pick is skipped and the previous hit is kept.
func (p *Picker) Pick(s *cube.Store, cam *camera.Camera, x, y float64) {
	log := logging.Logger()
	if p.target == nil {
		log.Warn("pick skipped: render target not set")
		return
	}
	t := p.target

	t.SetPicking(true)
	t.Clear()
	vp := cam.ViewProjection()
	scale := s.Scale()
	for i, c := range s.All() {
		t.Draw(vp.Mul4(c.Model(scale)), Encode(i))
	}

	px, py := Readback(x, y, cam.Height())
	color := t.ReadPixel(px, py)
	depth := t.ReadDepth(px, py)
	t.SetPicking(false)

	idx := Decode(color)
	log.Debug("pick", "x", px, "y", py, "color", color, "index", idx)
	if !Valid(idx) {
		p.Reset()
		t.Clear()
		return
	}
	p.index, p.ok, p.depth = idx, true, depth
	t.Clear()
}

// Readback converts a top-left cursor position to the bottom-left pixel
// that ReadPixel and ReadDepth address on a target of the given height.
func Readback(x, y float64, height int) (int, int) {
	return int(math.Floor(x)), height - 1 - int(math.Floor(y))
}
