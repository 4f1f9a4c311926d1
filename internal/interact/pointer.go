package interact

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/logging"
	"github.com/san-kum/cubesim/internal/pick"
)

// Buttons is a bit set of held mouse buttons.
type Buttons uint8

const (
	ButtonLeft Buttons = 1 << iota
	ButtonRight
)

func (b Buttons) Has(btn Buttons) bool { return b&btn != 0 }

// Mode is what a pointer move did.
type Mode int

const (
	ModeIdle Mode = iota
	ModeOrbit
	ModePan
	ModeCubieRotate
	ModeCubieTranslate
)

func (m Mode) String() string {
	switch m {
	case ModeOrbit:
		return "orbit"
	case ModePan:
		return "pan"
	case ModeCubieRotate:
		return "cubie-rotate"
	case ModeCubieTranslate:
		return "cubie-translate"
	default:
		return "idle"
	}
}

// Sensitivity scales pointer deltas.
type Sensitivity struct {
	Rotate float32
	PanX   float32
	PanY   float32
}

// Pointer turns cursor motion into camera moves or, with picking enabled,
// into free rotation and translation of the picked cubie. The delta of a
// move is previous minus current cursor position.
type Pointer struct {
	store  *cube.Store
	cam    *camera.Camera
	picker *pick.Picker
	sens   Sensitivity

	prevX, prevY float64
	dx, dy       float64
	picking      bool
}

func NewPointer(s *cube.Store, cam *camera.Camera, p *pick.Picker, sens Sensitivity) *Pointer {
	return &Pointer{store: s, cam: cam, picker: p, sens: sens}
}

func (p *Pointer) Picking() bool { return p.picking }

// Delta is the last move's previous-minus-current cursor offset.
func (p *Pointer) Delta() (dx, dy float64) { return p.dx, p.dy }

// TogglePicking switches between camera and cubie manipulation and forgets
// any picked cubie.
func (p *Pointer) TogglePicking() {
	p.picking = !p.picking
	p.picker.Reset()
	logging.Logger().Debug("picking mode", "on", p.picking)
}

// Press records the cursor and, in picking mode, picks the cubie under it.
func (p *Pointer) Press(b Buttons, x, y float64) {
	p.prevX, p.prevY = x, y
	p.dx, p.dy = 0, 0
	if p.picking && (b.Has(ButtonLeft) || b.Has(ButtonRight)) {
		p.picker.Pick(p.store, p.cam, x, y)
	}
}

// Move updates the cursor and applies at most one manipulation for the held
// buttons. Without picking the left button wins; with picking the right
// button wins.
func (p *Pointer) Move(x, y float64, b Buttons) Mode {
	p.dx, p.dy = p.prevX-x, p.prevY-y
	p.prevX, p.prevY = x, y
	dx, dy := float32(p.dx), float32(p.dy)

	if !p.picking {
		switch {
		case b.Has(ButtonLeft):
			p.cam.Orbit(dx, dy, p.sens.Rotate)
			return ModeOrbit
		case b.Has(ButtonRight):
			p.cam.Pan(dx, dy, p.sens.PanX, p.sens.PanY)
			return ModePan
		}
		return ModeIdle
	}

	idx, ok := p.picker.Picked()
	if !ok {
		return ModeIdle
	}
	switch {
	case b.Has(ButtonRight):
		if p.translateCubie(idx, x, y) {
			return ModeCubieTranslate
		}
	case b.Has(ButtonLeft):
		p.rotateCubie(idx, dx, dy)
		return ModeCubieRotate
	}
	return ModeIdle
}

// Scroll zooms the camera along its look direction.
func (p *Pointer) Scroll(dy float32) { p.cam.Zoom(dy) }

func (p *Pointer) rotateCubie(idx int, dx, dy float32) {
	angleX := -dx / math32.Pi
	angleY := dy / math32.Pi
	sens := 2 * p.sens.Rotate
	rotX := mgl32.HomogRotate3D(angleX*sens, p.cam.UpAxis())
	rotY := mgl32.HomogRotate3D(angleY*sens, p.cam.RightAxis())
	c := p.store.Get(idx)
	c.Orientation = rotY.Mul4(rotX).Mul4(c.Orientation)
}

func (p *Pointer) translateCubie(idx int, x, y float64) bool {
	h := float32(p.cam.Height())
	depth := p.picker.Depth()
	cur := mgl32.Vec3{float32(x), h - float32(y), depth}
	prev := mgl32.Vec3{float32(x + p.dx), h - float32(y+p.dy), depth}

	curWorld, err := p.cam.Unproject(cur)
	if err != nil {
		logging.Logger().Warn("cubie translate skipped", "err", err)
		return false
	}
	prevWorld, err := p.cam.Unproject(prev)
	if err != nil {
		logging.Logger().Warn("cubie translate skipped", "err", err)
		return false
	}
	c := p.store.Get(idx)
	c.Position = c.Position.Add(curWorld.Sub(prevWorld))
	return true
}
