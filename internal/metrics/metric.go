package metrics

import "github.com/san-kum/cubesim/internal/cube"

// Metric accumulates a scalar over successive observations of a store.
type Metric interface {
	Name() string
	Observe(s *cube.Store)
	Value() float64
	Reset()
}

// Standard returns the metrics the drift report tracks.
func Standard() []Metric {
	return []Metric{NewOrthogonality(), NewLatticeDrift(), NewSlotConsistency()}
}
