package metrics

import (
	"math"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/cube"
)

// Orthogonality tracks how far cubie orientations have drifted from pure
// rotations, as the largest entry of |RᵀR - I| over all cubies.
type Orthogonality struct {
	name    string
	current float64
	maxErr  float64
	samples int
}

func NewOrthogonality() *Orthogonality {
	return &Orthogonality{name: "orthogonality"}
}

func (o *Orthogonality) Name() string { return o.name }

func (o *Orthogonality) Observe(s *cube.Store) {
	var worst float32
	for _, c := range s.All() {
		r := c.Orientation.Mat3()
		d := r.Transpose().Mul3(r).Sub(mgl32.Ident3())
		for _, v := range d {
			worst = max(worst, math32.Abs(v))
		}
	}
	o.current = float64(worst)
	o.maxErr = math.Max(o.maxErr, o.current)
	o.samples++
}

// Current is the error at the last observation.
func (o *Orthogonality) Current() float64 { return o.current }

func (o *Orthogonality) Value() float64 { return o.maxErr }

func (o *Orthogonality) Reset() {
	o.current = 0
	o.maxErr = 0
	o.samples = 0
}

// LatticeDrift tracks the largest distance, in lattice units, between a
// cubie position and the nearest lattice point.
type LatticeDrift struct {
	name     string
	current  float64
	maxDrift float64
	samples  int
}

func NewLatticeDrift() *LatticeDrift {
	return &LatticeDrift{name: "lattice_drift"}
}

func (l *LatticeDrift) Name() string { return l.name }

func (l *LatticeDrift) Observe(s *cube.Store) {
	var worst float32
	scale := s.Scale()
	for _, c := range s.All() {
		p := c.Position.Mul(1 / scale)
		snapped := mgl32.Vec3{math32.Round(p.X()), math32.Round(p.Y()), math32.Round(p.Z())}
		worst = max(worst, p.Sub(snapped).Len())
	}
	l.current = float64(worst)
	l.maxDrift = math.Max(l.maxDrift, l.current)
	l.samples++
}

func (l *LatticeDrift) Current() float64 { return l.current }

func (l *LatticeDrift) Value() float64 { return l.maxDrift }

func (l *LatticeDrift) Reset() {
	l.current = 0
	l.maxDrift = 0
	l.samples = 0
}
