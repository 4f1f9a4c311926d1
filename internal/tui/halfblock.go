package tui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalf = "▀"

// halfBlocks renders img with one terminal cell per two pixel rows: the
// upper half block takes the top pixel as foreground and the bottom pixel
// as background. Runs of identical cells share one style.
func halfBlocks(img *image.RGBA) string {
	b := img.Bounds()
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var run strings.Builder
		var runTop, runBottom color.RGBA
		flush := func() {
			if run.Len() == 0 {
				return
			}
			style := lipgloss.NewStyle().
				Foreground(hex(runTop)).
				Background(hex(runBottom))
			sb.WriteString(style.Render(run.String()))
			run.Reset()
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			if run.Len() > 0 && (top != runTop || bottom != runBottom) {
				flush()
			}
			runTop, runBottom = top, bottom
			run.WriteString(upperHalf)
		}
		flush()
		if y+2 < b.Max.Y {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// keyName maps a bubbletea key string to the key names used in bindings.
func keyName(s string) string {
	switch s {
	case " ":
		return "SPACE"
	case "=", "+":
		return "EQUAL"
	case "-":
		return "MINUS"
	}
	return strings.ToUpper(s)
}
