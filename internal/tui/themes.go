package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the text colors of the terminal viewer
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Accent  lipgloss.Color
}

// Available themes
var (
	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("86"),
		Text:    lipgloss.Color("255"),
		Muted:   lipgloss.Color("242"),
		Accent:  lipgloss.Color("220"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"), // Magenta
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Accent:  lipgloss.Color("#ffff00"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"), // Green phosphor
		Text:    lipgloss.Color("#88ff88"),
		Muted:   lipgloss.Color("#005500"),
		Accent:  lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#00a8cc"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Accent:  lipgloss.Color("#ffd700"),
	}

	// All available themes
	Themes = []Theme{
		ThemeMinimal,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to minimal.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMinimal
}

// next returns the theme after t in Themes, wrapping around.
func (t Theme) next() Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

type styles struct {
	primary lipgloss.Style
	text    lipgloss.Style
	muted   lipgloss.Style
	accent  lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		primary: lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		text:    lipgloss.NewStyle().Foreground(t.Text),
		muted:   lipgloss.NewStyle().Foreground(t.Muted),
		accent:  lipgloss.NewStyle().Foreground(t.Accent),
	}
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
