package interact

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/render"
)

const eps = 1e-3

func near(a, b float32) bool { return mgl32.Abs(a-b) <= eps }

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = 200, 200
	s, err := NewSession(cfg, render.NewSoft(200, 200))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func isSolved(s *cube.Store) bool {
	solved := cube.New(s.Scale()).All()
	for i, c := range s.All() {
		if !c.Position.ApproxFuncEqual(solved[i].Position, near) ||
			!c.Orientation.ApproxFuncEqual(solved[i].Orientation, near) {
			return false
		}
	}
	return true
}

func TestKeymapDefaults(t *testing.T) {
	km, err := NewKeymap(config.DefaultKeys())
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		key  string
		want Action
	}{
		{"f", TurnFront},
		{"U", TurnTop},
		{"up", RotateUp},
		{"space", ToggleHandedness},
		{"p", TogglePicking},
		{"backspace", Reset},
	}
	for _, tt := range tests {
		if got, ok := km.Lookup(tt.key); !ok || got != tt.want {
			t.Errorf("Lookup(%q) = %v %v, want %v", tt.key, got, ok, tt.want)
		}
	}
	if _, ok := km.Lookup("q"); ok {
		t.Error("q should be unbound")
	}
}

func TestKeymapUnknownAction(t *testing.T) {
	_, err := NewKeymap(map[string]string{"scramble": "S"})
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestActionNamesRoundTrip(t *testing.T) {
	for a := TurnFront; a <= Reset; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v %v", a.String(), got, ok)
		}
	}
	if NoAction.String() != "none" {
		t.Errorf("NoAction.String() = %q", NoAction.String())
	}
}

func TestApplyFaceTurn(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TurnFront)

	// Clockwise about +Z sends the top-right-front corner to bottom-right-front.
	c := s.Store.Get(cube.FlatIndex(cube.Coord{X: 1, Y: -1, Z: 1}))
	want := mgl32.HomogRotate3DZ(mgl32.DegToRad(-90))
	if !c.Orientation.ApproxFuncEqual(want, near) {
		t.Errorf("orientation after front turn:\n%v", c.Orientation)
	}
	back := s.Store.Get(cube.FlatIndex(cube.Coord{X: 1, Y: 1, Z: -1}))
	if back.Orientation != mgl32.Ident4() {
		t.Error("back layer moved on a front turn")
	}
}

func TestApplyHandednessUndoesTurn(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TurnRight)
	s.Apply(ToggleHandedness)
	s.Apply(TurnRight)
	if !isSolved(s.Store) {
		t.Error("clockwise then counter-clockwise should restore the cube")
	}
}

func TestApplyAngles(t *testing.T) {
	s := newTestSession(t)
	tests := []struct {
		action Action
		want   float32
	}{
		{AngleHalf, 180},
		{AngleQuarter, 90},
		{AngleEnlarge, 180},
		{AngleEnlarge, 180},
		{AngleShrink, 90},
		{AngleShrink, 90},
	}
	for _, tt := range tests {
		s.Apply(tt.action)
		if got := s.Turner.Angle(); got != tt.want {
			t.Errorf("after %v: angle %f, want %f", tt.action, got, tt.want)
		}
	}
}

func TestApplyWholeRotations(t *testing.T) {
	for _, a := range []Action{RotateUp, RotateDown, RotateLeft, RotateRight} {
		s := newTestSession(t)
		s.Apply(a)
		if isSolved(s.Store) {
			t.Errorf("%v left the cube unchanged", a)
		}
		for i := 0; i < 3; i++ {
			s.Apply(a)
		}
		if !isSolved(s.Store) {
			t.Errorf("four %v rotations should restore the cube", a)
		}
	}
}

func TestApplyReset(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TurnFront)
	s.Apply(TurnTop)
	s.Apply(RotateLeft)
	s.Apply(Reset)
	if !isSolved(s.Store) {
		t.Error("reset should restore the solved cube")
	}
}

func TestHandleKey(t *testing.T) {
	s := newTestSession(t)
	if !s.HandleKey("p") {
		t.Fatal("p should be bound")
	}
	if !s.Pointer.Picking() {
		t.Error("p should enable picking")
	}
	if s.HandleKey("q") {
		t.Error("q should not be handled")
	}
}

func TestPointerOrbitAndPan(t *testing.T) {
	s := newTestSession(t)
	p := s.Pointer
	p.Press(ButtonLeft, 100, 100)
	if m := p.Move(90, 100, ButtonLeft|ButtonRight); m != ModeOrbit {
		t.Errorf("left+right without picking gave %v, want orbit", m)
	}
	if dx, dy := p.Delta(); dx != 10 || dy != 0 {
		t.Errorf("delta (%f,%f), want (10,0)", dx, dy)
	}
	if s.Camera.Position.ApproxFuncEqual(mgl32.Vec3{0, 0, 8}, near) {
		t.Error("orbit did not move the camera")
	}

	s = newTestSession(t)
	p = s.Pointer
	p.Press(ButtonRight, 100, 100)
	if m := p.Move(90, 110, ButtonRight); m != ModePan {
		t.Errorf("right drag gave %v, want pan", m)
	}
	want := mgl32.Vec3{10 * config.DefaultSensitivity, 10 * config.DefaultSensitivity, 8}
	if !s.Camera.Position.ApproxFuncEqual(want, near) {
		t.Errorf("pan moved camera to %v, want %v", s.Camera.Position, want)
	}

	if m := p.Move(80, 80, 0); m != ModeIdle {
		t.Errorf("move without buttons gave %v", m)
	}
}

func TestPointerPickingWithoutHit(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TogglePicking)
	s.Pointer.Press(ButtonLeft, 1, 1)
	if m := s.Pointer.Move(5, 5, ButtonLeft); m != ModeIdle {
		t.Errorf("drag with no picked cubie gave %v", m)
	}
	if !s.Camera.Position.ApproxFuncEqual(mgl32.Vec3{0, 0, 8}, near) {
		t.Error("camera moved while picking")
	}
}

func TestPointerRotateCubie(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TogglePicking)
	s.Pointer.Press(ButtonLeft, 100, 100)
	idx, ok := s.Picker.Picked()
	if !ok {
		t.Fatal("press at center should pick")
	}
	if m := s.Pointer.Move(110, 100, ButtonLeft); m != ModeCubieRotate {
		t.Fatalf("left drag gave %v", m)
	}
	c := s.Store.Get(idx)
	if c.Orientation.ApproxFuncEqual(mgl32.Ident4(), near) {
		t.Error("cubie orientation unchanged")
	}
	// angleX = 10/pi, sensitivity 2*0.01 about the camera up axis.
	want := mgl32.HomogRotate3D(10/math.Pi*2*config.DefaultSensitivity, mgl32.Vec3{0, 1, 0})
	if !c.Orientation.ApproxFuncEqual(want, near) {
		t.Errorf("orientation\n%v\nwant\n%v", c.Orientation, want)
	}
}

func TestPointerTranslateCubie(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TogglePicking)
	s.Pointer.Press(ButtonRight, 100, 100)
	idx, ok := s.Picker.Picked()
	if !ok {
		t.Fatal("press at center should pick")
	}
	before := s.Store.Get(idx).Position

	if m := s.Pointer.Move(110, 100, ButtonLeft|ButtonRight); m != ModeCubieTranslate {
		t.Fatalf("left+right drag while picking gave %v, want translate", m)
	}
	moved := s.Store.Get(idx).Position.Sub(before)
	if moved.X() <= 0.1 || math.Abs(float64(moved.Y())) > eps {
		t.Errorf("cursor moved right, cubie moved %v", moved)
	}
}

func TestTogglePickingForgetsHit(t *testing.T) {
	s := newTestSession(t)
	s.Apply(TogglePicking)
	s.Pointer.Press(ButtonLeft, 100, 100)
	if _, ok := s.Picker.Picked(); !ok {
		t.Fatal("expected a pick")
	}
	s.Apply(TogglePicking)
	if _, ok := s.Picker.Picked(); ok {
		t.Error("toggling picking should clear the hit")
	}
}

func TestScrollZooms(t *testing.T) {
	s := newTestSession(t)
	s.Pointer.Scroll(1)
	if !s.Camera.Position.ApproxFuncEqual(mgl32.Vec3{0, 0, 7}, near) {
		t.Errorf("scroll moved camera to %v", s.Camera.Position)
	}
}
