package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/cubesim/internal/config"
	"github.com/san-kum/cubesim/internal/cube"
	"github.com/san-kum/cubesim/internal/interact"
	"github.com/san-kum/cubesim/internal/render"
)

// headerRows is the number of terminal rows above the canvas; footerRows
// the number below it.
const (
	headerRows = 2
	footerRows = 2
)

type model struct {
	session *interact.Session
	target  *render.Soft
	held    interact.Buttons
	mode    interact.Mode
	theme   Theme
	style   styles
	width   int
	height  int
}

// NewInteractiveApp builds a terminal front end over a fresh session. The
// software target doubles as the pick target.
func NewInteractiveApp(cfg *config.Config) (*model, error) {
	target := render.NewSoft(80, 40)
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, err
	}
	target.Background = bg

	session, err := interact.NewSession(cfg, target)
	if err != nil {
		return nil, err
	}
	theme := GetTheme(cfg.Render.Theme)
	m := &model{session: session, target: target, theme: theme, style: theme.styles()}
	m.resize(80, 24)
	return m, nil
}

func (m model) Init() tea.Cmd { return nil }

// resize fits the canvas to a terminal of w columns and h rows. Each cell
// holds two pixel rows, which keeps pixels roughly square.
func (m *model) resize(w, h int) {
	m.width, m.height = w, h
	pw := max(w, 1)
	ph := max((h-headerRows-footerRows)*2, 2)
	m.target.Resize(pw, ph)
	m.session.Resize(pw, ph)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.theme = m.theme.next()
			m.style = m.theme.styles()
			return m, nil
		}
		m.session.HandleKey(keyName(msg.String()))
		return m, nil
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, tea.ClearScreen
	case tea.MouseMsg:
		return m.handleMouse(msg), nil
	}
	return m, nil
}

// pixel maps a terminal cell to the middle of its two-pixel column in
// window coordinates with the origin at the top-left of the canvas.
func pixel(cellX, cellY int) (float64, float64) {
	return float64(cellX) + 0.5, float64(cellY-headerRows)*2 + 1
}

func button(b tea.MouseButton) interact.Buttons {
	switch b {
	case tea.MouseButtonLeft:
		return interact.ButtonLeft
	case tea.MouseButtonRight:
		return interact.ButtonRight
	}
	return 0
}

func (m model) handleMouse(msg tea.MouseMsg) model {
	p := m.session.Pointer
	x, y := pixel(msg.X, msg.Y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		p.Scroll(1)
	case msg.Button == tea.MouseButtonWheelDown:
		p.Scroll(-1)
	case msg.Action == tea.MouseActionPress:
		b := button(msg.Button)
		m.held |= b
		p.Press(b, x, y)
	case msg.Action == tea.MouseActionRelease:
		m.held = 0
		m.mode = interact.ModeIdle
	case msg.Action == tea.MouseActionMotion:
		m.mode = p.Move(x, y, m.held)
	}
	return m
}

func (m model) View() string {
	s := m.session
	render.DrawScene(m.target, s.Store, s.Camera)

	var b strings.Builder
	t := s.Turner
	hand := "cw"
	if !t.Clockwise() {
		hand = "ccw"
	}
	st := m.style
	b.WriteString(st.primary.Render("cubesim"))
	b.WriteString(st.muted.Render(fmt.Sprintf("  %.0f° %s", t.Angle(), hand)))
	if s.Pointer.Picking() {
		b.WriteString(st.accent.Render("  PICKING"))
		if idx, ok := s.Picker.Picked(); ok {
			b.WriteString(st.text.Render(fmt.Sprintf("  cubie %d %v", idx, cube.CoordOf(idx))))
		}
	}
	if m.mode != interact.ModeIdle {
		b.WriteString(st.muted.Render("  " + m.mode.String()))
	}
	b.WriteString("\n\n")

	b.WriteString(halfBlocks(m.target.Image()))
	b.WriteString("\n\n")
	b.WriteString(st.muted.Render("f/b/l/r/u/d turn  arrows rotate  a/z 180/90  space dir  p pick  bksp reset  tab theme  esc quit"))
	return b.String()
}

func RunInteractive(cfg *config.Config) error {
	m, err := NewInteractiveApp(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
