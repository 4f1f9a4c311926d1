// Package interact ties the cube, camera and picker to user input: pointer
// drags, scroll and discrete key actions.
package interact

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/camera"
	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/logging"
	"github.com/san-kum/cubesim/internal/pick"
)

// Session is one running cube with its camera and input state. Front ends
// own a session and feed it events; nothing here is shared between
// sessions.
type Session struct {
	Store   *cube.Store
	Turner  *cube.Turner
	Camera  *camera.Camera
	Picker  *pick.Picker
	Pointer *Pointer
	Keys    Keymap
}

// CameraParams converts the camera section of cfg.
func CameraParams(c config.CameraConfig) camera.Params {
	return camera.Params{
		Position:     mgl32.Vec3(c.Position),
		Orientation:  mgl32.Vec3(c.Orientation),
		Up:           mgl32.Vec3(c.Up),
		FOV:          c.FOV,
		Near:         c.Near,
		Far:          c.Far,
		Orthographic: c.Orthographic,
		ZoomStep:     c.ZoomStep,
	}
}

// NewSession builds a solved cube viewed through cfg's camera. target may
// be nil until the front end has a render surface; picks are skipped until
// one is set on the Picker.
func NewSession(cfg *config.Config, target pick.Target) (*Session, error) {
	keys, err := NewKeymap(cfg.Input.Keys)
	if err != nil {
		return nil, err
	}
	store := cube.New(cfg.Cube.Scale)
	turner := cube.NewTurner(store)
	turner.SetAngle(cfg.Cube.TurnAngle)
	turner.SetClockwise(cfg.Cube.Clockwise)

	cam := camera.New(cfg.Window.Width, cfg.Window.Height, CameraParams(cfg.Camera))
	picker := pick.NewPicker(target)
	ptr := NewPointer(store, cam, picker, Sensitivity{
		Rotate: cfg.Input.Sensitivity,
		PanX:   cfg.Input.PanX,
		PanY:   cfg.Input.PanY,
	})

	return &Session{
		Store:   store,
		Turner:  turner,
		Camera:  cam,
		Picker:  picker,
		Pointer: ptr,
		Keys:    keys,
	}, nil
}

// HandleKey applies the action bound to key and reports whether one was.
func (s *Session) HandleKey(key string) bool {
	a, ok := s.Keys.Lookup(key)
	if !ok {
		return false
	}
	s.Apply(a)
	return true
}

var faceActions = map[Action]cube.Face{
	TurnFront:  cube.Front,
	TurnBack:   cube.Back,
	TurnLeft:   cube.Left,
	TurnRight:  cube.Right,
	TurnTop:    cube.Top,
	TurnBottom: cube.Bottom,
}

var wholeActions = map[Action]mgl32.Vec3{
	RotateUp:    cube.XAxis,
	RotateDown:  cube.XAxis.Mul(-1),
	RotateLeft:  cube.YAxis.Mul(-1),
	RotateRight: cube.YAxis,
}

// Apply performs a discrete action. Unknown actions are ignored.
func (s *Session) Apply(a Action) {
	logging.Logger().Debug("action", "action", a.String())
	if f, ok := faceActions[a]; ok {
		s.Turner.TurnFace(f)
		return
	}
	if axis, ok := wholeActions[a]; ok {
		s.Turner.RotateWhole(axis)
		return
	}
	switch a {
	case AngleHalf:
		s.Turner.SetAngle(cube.MaxTurnAngle)
	case AngleQuarter:
		s.Turner.SetAngle(cube.QuarterTurn)
	case AngleEnlarge:
		s.Turner.Enlarge()
	case AngleShrink:
		s.Turner.Shrink()
	case ToggleHandedness:
		s.Turner.ToggleHandedness()
	case TogglePicking:
		s.Pointer.TogglePicking()
	case Reset:
		s.Store.Reset()
		s.Picker.Reset()
	}
}

// Resize adopts a new framebuffer size.
func (s *Session) Resize(width, height int) {
	s.Camera.Resize(width, height)
}
