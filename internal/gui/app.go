package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/interact"
	"github.com/san-kum/cubesim/internal/logging"
	"github.com/san-kum/cubesim/internal/render"
)

// Theme Colors (Monochrome)
var (
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(90, 90, 90, 255)    // Dark Gray
)

const fontPath = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"

type boundKey struct {
	name string
	code int32
}

type App struct {
	Session *interact.Session
	Target  *Target
	Font    rl.Font

	keys     []boundKey
	lastMode interact.Mode
	title    string
}

// initWindow opens a resizable window of the configured size and disables
// the default exit key.
func initWindow(cfg config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// loadFont loads Liberation Mono when present and falls back to raylib's
// built-in font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp builds the session and GPU target. It must run after the window
// exists. When GL readback cannot be initialised the cube is still drawn
// but picking is disabled.
func NewApp(cfg *config.Config) (*App, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	target := NewTarget(bg)
	session, err := interact.NewSession(cfg, nil)
	if err != nil {
		return nil, err
	}
	vp := currentViewport()
	session.Resize(vp.renderW, vp.renderH)

	if err := target.InitReadback(vp.renderW, vp.renderH); err != nil {
		logging.Logger().Warn("picking disabled", "err", err)
	} else {
		session.Picker.SetTarget(target)
	}

	app := &App{
		Session: session,
		Target:  target,
		Font:    loadFont(),
		title:   cfg.Window.Title,
	}
	for _, name := range session.Keys.Keys() {
		code, ok := keyCode(name)
		if !ok {
			logging.Logger().Warn("unknown key name in bindings", "key", name)
			continue
		}
		app.keys = append(app.keys, boundKey{name: name, code: code})
	}
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()
	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Target.Close()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Frame()
	}
}

// Frame handles input and draws one frame. Input runs inside the 3D pass
// because a pick press renders into the pick buffer with the 3D state set.
func (a *App) Frame() {
	if rl.IsWindowResized() {
		vp := currentViewport()
		a.Session.Resize(vp.renderW, vp.renderH)
		a.Target.Resize(vp.renderW, vp.renderH)
	}

	rl.BeginDrawing()
	rl.BeginMode3D(a.modeCamera())

	a.Update()
	render.DrawScene(a.Target, a.Session.Store, a.Session.Camera)

	rl.EndMode3D()
	a.DrawHUD()
	rl.EndDrawing()
}

// modeCamera mirrors the session camera so raylib's 3D mode state matches;
// Target.Draw replaces the matrices per cubie.
func (a *App) modeCamera() rl.Camera3D {
	c := a.Session.Camera
	target := c.Position.Add(c.Orientation)
	projection := rl.CameraPerspective
	if c.Orthographic() {
		projection = rl.CameraOrthographic
	}
	return rl.NewCamera3D(
		rl.NewVector3(c.Position.X(), c.Position.Y(), c.Position.Z()),
		rl.NewVector3(target.X(), target.Y(), target.Z()),
		rl.NewVector3(c.Up.X(), c.Up.Y(), c.Up.Z()),
		45.0,
		projection,
	)
}

func (a *App) Update() {
	for _, k := range a.keys {
		if rl.IsKeyPressed(k.code) {
			a.Session.HandleKey(k.name)
		}
	}

	p := a.Session.Pointer
	mouse := rl.GetMousePosition()
	x, y := currentViewport().cursor(mouse.X, mouse.Y)

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		p.Press(interact.ButtonLeft, x, y)
	case rl.IsMouseButtonPressed(rl.MouseButtonRight):
		p.Press(interact.ButtonRight, x, y)
	}

	var held interact.Buttons
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		held |= interact.ButtonLeft
	}
	if rl.IsMouseButtonDown(rl.MouseButtonRight) {
		held |= interact.ButtonRight
	}
	a.lastMode = p.Move(x, y, held)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		p.Scroll(wheel)
	}
}

func (a *App) DrawHUD() {
	t := a.Session.Turner
	a.drawText(a.title, 30, 30, 24, ColSelect)

	hand := "CW"
	if !t.Clockwise() {
		hand = "CCW"
	}
	a.drawText(fmt.Sprintf(":: %.0f° %s", t.Angle(), hand), 160, 34, 16, ColText)

	status := "CAMERA"
	col := ColTextDim
	if a.Session.Pointer.Picking() {
		status = "PICKING"
		col = ColSelect
		if !a.Target.CanRead() {
			status = "PICKING (NO READBACK)"
		}
	}
	a.drawText(status, 30, 60, 16, col)

	if idx, ok := a.Session.Picker.Picked(); ok {
		a.drawText(fmt.Sprintf("cubie %d %v  depth %.3f", idx, cube.CoordOf(idx), a.Session.Picker.Depth()), 30, 84, 14, ColAccent)
	}
	if a.lastMode != interact.ModeIdle {
		a.drawText(a.lastMode.String(), 30, 106, 14, ColTextDim)
	}

	h := rl.GetScreenHeight()
	a.drawText("[F/B/L/R/U/D] TURN  [ARROWS] ROTATE  [A/Z] 180/90  [SPACE] DIR  [P] PICK  [BKSP] RESET", 30, h-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), rl.GetScreenWidth()-90, h-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}
