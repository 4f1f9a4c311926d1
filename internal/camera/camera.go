// Package camera owns the view and projection used by every render and pick
// pass, and the orbit/pan/zoom moves the pointer layer applies to it.
package camera

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

var ErrSingular = errors.New("camera: view-projection matrix is singular")

// Orthographic bounds used when the camera is not in perspective mode.
const (
	orthoLeft   = -1
	orthoRight  = 1
	orthoBottom = -1
	orthoTop    = 1
)

// Params configures a new camera.
type Params struct {
	Position     mgl32.Vec3
	Orientation  mgl32.Vec3
	Up           mgl32.Vec3
	FOV          float32 // degrees
	Near, Far    float32
	Orthographic bool
	ZoomStep     float32
}

func DefaultParams() Params {
	return Params{
		Position:    mgl32.Vec3{0, 0, 8},
		Orientation: mgl32.Vec3{0, 0, -1},
		Up:          mgl32.Vec3{0, 1, 0},
		FOV:         45,
		Near:        0.1,
		Far:         100,
		ZoomStep:    1,
	}
}

// Camera is a look-direction camera. Position, Orientation (the look
// direction) and Up are mutated in place by Orbit, Pan and Zoom; call Update
// after changing them directly.
type Camera struct {
	Position    mgl32.Vec3
	Orientation mgl32.Vec3
	Up          mgl32.Vec3

	fov, near, far float32
	ortho          bool
	zoomStep       float32
	width, height  int

	view, proj mgl32.Mat4
}

func New(width, height int, p Params) *Camera {
	c := &Camera{
		Position:    p.Position,
		Orientation: p.Orientation,
		Up:          p.Up,
		fov:         p.FOV,
		near:        p.Near,
		far:         p.Far,
		ortho:       p.Orthographic,
		zoomStep:    p.ZoomStep,
	}
	c.Resize(width, height)
	return c
}

// SetPerspective switches to a perspective projection.
func (c *Camera) SetPerspective(fovDegrees, near, far float32) {
	c.fov, c.near, c.far, c.ortho = fovDegrees, near, far, false
	c.updateProjection()
	c.Update()
}

// SetOrthographic switches to an orthographic projection over the unit box.
func (c *Camera) SetOrthographic(near, far float32) {
	c.near, c.far, c.ortho = near, far, true
	c.updateProjection()
	c.Update()
}

// Resize adopts a new framebuffer size. Non-positive sizes are raised to 1.
func (c *Camera) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	c.updateProjection()
	c.Update()
}

func (c *Camera) updateProjection() {
	if c.ortho {
		c.proj = mgl32.Ortho(orthoLeft, orthoRight, orthoBottom, orthoTop, c.near, c.far)
		return
	}
	aspect := float32(c.width) / float32(c.height)
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.fov), aspect, c.near, c.far)
}

// Update rebuilds the view matrix from Position, Orientation and Up.
func (c *Camera) Update() {
	c.view = mgl32.LookAtV(c.Position, c.Position.Add(c.Orientation), c.Up)
}

func (c *Camera) View() mgl32.Mat4       { return c.view }
func (c *Camera) Projection() mgl32.Mat4 { return c.proj }
func (c *Camera) Width() int             { return c.width }
func (c *Camera) Height() int            { return c.height }
func (c *Camera) Orthographic() bool     { return c.ortho }

// ViewProjection is projection · view.
func (c *Camera) ViewProjection() mgl32.Mat4 { return c.proj.Mul4(c.view) }

// Viewport returns x, y, width, height of the drawable area.
func (c *Camera) Viewport() (x, y, w, h int) { return 0, 0, c.width, c.height }

// RightAxis is normalize(cross(position - orientation, up)).
func (c *Camera) RightAxis() mgl32.Vec3 {
	return c.Position.Sub(c.Orientation).Cross(c.Up).Normalize()
}

func (c *Camera) UpAxis() mgl32.Vec3 { return c.Up.Normalize() }

// Orbit rotates the camera about the world origin. dx turns about the world
// vertical axis, dy about the world horizontal axis.
func (c *Camera) Orbit(dx, dy, sensitivity float32) {
	rotX := mgl32.HomogRotate3D(dx/math32.Pi*sensitivity, mgl32.Vec3{0, 1, 0})
	rotY := mgl32.HomogRotate3D(dy/math32.Pi*sensitivity, mgl32.Vec3{1, 0, 0})
	rot := rotY.Mul4(rotX)
	c.Position = rot.Mul4x1(c.Position.Vec4(1)).Vec3()
	c.Orientation = rot.Mul4x1(c.Orientation.Vec4(1)).Vec3()
	c.Update()
}

// Pan translates the camera position in the world XY plane.
func (c *Camera) Pan(dx, dy, sensX, sensY float32) {
	transX := mgl32.Translate3D(dx*sensX, 0, 0)
	transY := mgl32.Translate3D(0, -dy*sensY, 0)
	c.Position = transX.Mul4(transY).Mul4x1(c.Position.Vec4(1)).Vec3()
	c.Update()
}

// Zoom moves the camera along its look direction.
func (c *Camera) Zoom(delta float32) {
	c.Position = c.Position.Add(c.Orientation.Mul(delta * c.zoomStep))
	c.Update()
}

// Project maps a world point to window coordinates (origin bottom-left,
// depth in [0,1]).
func (c *Camera) Project(world mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Project(world, c.view, c.proj, 0, 0, c.width, c.height)
}

// Unproject maps window coordinates (origin bottom-left, depth in [0,1])
// back to world space using the live matrices.
func (c *Camera) Unproject(win mgl32.Vec3) (mgl32.Vec3, error) {
	p, err := mgl32.UnProject(win, c.view, c.proj, 0, 0, c.width, c.height)
	if err != nil {
		return mgl32.Vec3{}, ErrSingular
	}
	return p, nil
}
