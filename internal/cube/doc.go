// Package cube tracks the spatial state of a 3×3×3 puzzle.
//
// The package has three layers:
//
//   - [Store]: the 27 cubies, each with a world position and an accumulated
//     orientation, filed by lattice slot
//   - [Store.RotateBox]: the lattice rotation that turns every cubie inside a
//     [Box] about an axis and re-files it into its new slot
//   - [Turner]: maps a [Face] or a whole-cube axis to a box and applies the
//     current turn angle and handedness
//
// # Example
//
//	s := cube.New(1)
//	t := cube.NewTurner(s)
//	t.TurnFace(cube.Front)
//	t.RotateWhole(cube.YAxis)
//
// # Thread Safety
//
// Store and Turner are NOT safe for concurrent use. They are driven from the
// single thread that handles input and issues draw calls.
package cube
