package gui

import rl "github.com/gen2brain/raylib-go/raylib"

// viewport relates the window's screen-space size, in which raylib reports
// the mouse, to the framebuffer size the camera and pick buffer use. The
// two differ on HiDPI displays.
type viewport struct {
	screenW, screenH int
	renderW, renderH int
}

func currentViewport() viewport {
	return viewport{
		screenW: rl.GetScreenWidth(),
		screenH: rl.GetScreenHeight(),
		renderW: rl.GetRenderWidth(),
		renderH: rl.GetRenderHeight(),
	}
}

// cursor scales a screen-space mouse position to framebuffer pixels,
// origin still at the top-left.
func (v viewport) cursor(mx, my float32) (float64, float64) {
	return float64(mx) * ratio(v.renderW, v.screenW), float64(my) * ratio(v.renderH, v.screenH)
}

func ratio(render, screen int) float64 {
	if screen <= 0 || render <= 0 {
		return 1
	}
	return float64(render) / float64(screen)
}
