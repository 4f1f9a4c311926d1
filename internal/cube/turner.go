package cube

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/logging"
)

const (
	MinTurnAngle = 90.0
	MaxTurnAngle = 180.0
	QuarterTurn  = 90.0
)

// Turner applies face and whole-cube turns to a store. It owns the turn angle
// magnitude and the handedness shared by every face turn.
type Turner struct {
	store     *Store
	angle     float32
	clockwise bool
}

// NewTurner starts with clockwise quarter turns.
func NewTurner(s *Store) *Turner {
	return &Turner{store: s, angle: QuarterTurn, clockwise: true}
}

func (t *Turner) Store() *Store     { return t.store }
func (t *Turner) Angle() float32    { return t.angle }
func (t *Turner) Clockwise() bool   { return t.clockwise }
func (t *Turner) ToggleHandedness() { t.clockwise = !t.clockwise }

func (t *Turner) SetClockwise(cw bool) { t.clockwise = cw }

// SetAngle sets the turn magnitude, clamped to [MinTurnAngle, MaxTurnAngle].
func (t *Turner) SetAngle(degrees float32) {
	t.angle = mgl32.Clamp(degrees, MinTurnAngle, MaxTurnAngle)
}

// Enlarge doubles the turn magnitude within the clamp.
func (t *Turner) Enlarge() { t.SetAngle(t.angle * 2) }

// Shrink halves the turn magnitude within the clamp.
func (t *Turner) Shrink() { t.SetAngle(t.angle / 2) }

// SignedAngle is the angle passed to the rotation engine: negative for
// clockwise turns.
func (t *Turner) SignedAngle() float32 {
	if t.clockwise {
		return -t.angle
	}
	return t.angle
}

// TurnFace turns the slab of f by the signed angle. Invalid faces are ignored.
func (t *Turner) TurnFace(f Face) {
	if !f.Valid() {
		return
	}
	logging.Logger().Debug("turn face", "face", f, "degrees", t.SignedAngle())
	t.store.RotateBox(f.Box(), f.Axis(), t.SignedAngle())
}

// RotateWhole turns all 27 cubies a clockwise quarter turn about axis,
// regardless of the current angle and handedness.
func (t *Turner) RotateWhole(axis mgl32.Vec3) {
	if axis.Len() == 0 {
		return
	}
	t.store.RotateBox(FullBox, axis, -QuarterTurn)
}
