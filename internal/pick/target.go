// Package pick resolves a cursor position to a cubie by drawing every cubie
// in a unique flat color and reading back the pixel under the cursor.
package pick

import "github.com/go-gl/mathgl/mgl32"

// Target is the renderer collaborator a pick pass draws into. Coordinates
// passed to ReadPixel and ReadDepth are in pixels with the origin at the
// bottom-left, matching the rendering surface. Depth is in [0,1].
type Target interface {
	Size() (width, height int)
	// SetPicking switches fragment output between flat pick colors and lit
	// material colors.
	SetPicking(on bool)
	// Clear resets color to zero and depth to the far plane.
	Clear()
	Draw(mvp mgl32.Mat4, color mgl32.Vec4)
	ReadPixel(x, y int) [4]uint8
	ReadDepth(x, y int) float32
}
