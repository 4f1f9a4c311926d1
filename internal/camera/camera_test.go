package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-3

func approx(a, b float32) bool { return mgl32.Abs(a-b) <= eps }

func newTestCamera() *Camera {
	return New(800, 600, DefaultParams())
}

func TestProjectOriginToCenter(t *testing.T) {
	c := newTestCamera()
	win := c.Project(mgl32.Vec3{0, 0, 0})
	if math.Abs(float64(win.X()-400)) > eps || math.Abs(float64(win.Y()-300)) > eps {
		t.Errorf("origin projected to %v, want screen center", win)
	}
	if win.Z() <= 0 || win.Z() >= 1 {
		t.Errorf("depth %f outside (0,1)", win.Z())
	}
}

func TestUnprojectRoundTrip(t *testing.T) {
	c := newTestCamera()
	points := []mgl32.Vec3{{0, 0, 0}, {1, 1, 1}, {-1, 0.5, -1}}
	for _, p := range points {
		back, err := c.Unproject(c.Project(p))
		if err != nil {
			t.Fatalf("unproject failed: %v", err)
		}
		if !back.ApproxFuncEqual(p, approx) {
			t.Errorf("round trip of %v gave %v", p, back)
		}
	}
}

func TestUnprojectSingular(t *testing.T) {
	c := newTestCamera()
	c.proj = mgl32.Mat4{}
	if _, err := c.Unproject(mgl32.Vec3{1, 1, 0.5}); err != ErrSingular {
		t.Errorf("expected ErrSingular, got %v", err)
	}
}

func TestOrbitKeepsDistance(t *testing.T) {
	c := newTestCamera()
	before := c.Position.Len()
	c.Orbit(25, -40, 0.01)
	if math.Abs(float64(c.Position.Len()-before)) > eps {
		t.Errorf("orbit changed distance from %f to %f", before, c.Position.Len())
	}
	if c.Up != (mgl32.Vec3{0, 1, 0}) {
		t.Error("orbit should not touch the up vector")
	}
}

func TestOrbitHorizontal(t *testing.T) {
	c := newTestCamera()
	c.Orbit(math.Pi*math.Pi/2, 0, 1)
	// dx/pi = pi/2: a quarter turn about +Y moves (0,0,8) to (8,0,0).
	if !c.Position.ApproxFuncEqual(mgl32.Vec3{8, 0, 0}, approx) {
		t.Errorf("expected camera at (8,0,0), got %v", c.Position)
	}
	if !c.Orientation.ApproxFuncEqual(mgl32.Vec3{-1, 0, 0}, approx) {
		t.Errorf("expected look direction (-1,0,0), got %v", c.Orientation)
	}
}

func TestPan(t *testing.T) {
	c := newTestCamera()
	c.Pan(10, 20, 0.01, 0.02)
	want := mgl32.Vec3{0.1, -0.4, 8}
	if !c.Position.ApproxFuncEqual(want, approx) {
		t.Errorf("pan moved camera to %v, want %v", c.Position, want)
	}
}

func TestZoom(t *testing.T) {
	c := newTestCamera()
	c.Zoom(2)
	if !c.Position.ApproxFuncEqual(mgl32.Vec3{0, 0, 6}, approx) {
		t.Errorf("zoom moved camera to %v", c.Position)
	}
}

func TestAxes(t *testing.T) {
	c := newTestCamera()
	if !c.RightAxis().ApproxFuncEqual(mgl32.Vec3{-1, 0, 0}, approx) {
		t.Errorf("unexpected right axis %v", c.RightAxis())
	}
	c.Up = mgl32.Vec3{0, 3, 0}
	if !c.UpAxis().ApproxFuncEqual(mgl32.Vec3{0, 1, 0}, approx) {
		t.Errorf("up axis should be normalized, got %v", c.UpAxis())
	}
}

func TestResize(t *testing.T) {
	c := newTestCamera()
	c.Resize(0, -5)
	if c.Width() != 1 || c.Height() != 1 {
		t.Errorf("expected 1x1 after bad resize, got %dx%d", c.Width(), c.Height())
	}
	c.Resize(1024, 512)
	_, _, w, h := c.Viewport()
	if w != 1024 || h != 512 {
		t.Errorf("viewport %dx%d, want 1024x512", w, h)
	}
}

func TestOrthographic(t *testing.T) {
	c := newTestCamera()
	c.SetOrthographic(0.1, 100)
	if !c.Orthographic() {
		t.Fatal("expected orthographic mode")
	}
	win := c.Project(mgl32.Vec3{1, 1, 0})
	if math.Abs(float64(win.X()-800)) > eps || math.Abs(float64(win.Y()-600)) > eps {
		t.Errorf("unit corner projected to %v, want top-right", win)
	}
	c.SetPerspective(60, 0.1, 50)
	if c.Orthographic() {
		t.Error("expected perspective mode")
	}
}
