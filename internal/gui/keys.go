package gui

import (
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var namedKeys = map[string]int32{
	"SPACE":     rl.KeySpace,
	"BACKSPACE": rl.KeyBackspace,
	"ENTER":     rl.KeyEnter,
	"TAB":       rl.KeyTab,
	"UP":        rl.KeyUp,
	"DOWN":      rl.KeyDown,
	"LEFT":      rl.KeyLeft,
	"RIGHT":     rl.KeyRight,
	"EQUAL":     rl.KeyEqual,
	"MINUS":     rl.KeyMinus,
	"HOME":      rl.KeyHome,
	"END":       rl.KeyEnd,
}

// keyCode maps a config key name to a raylib key code.
func keyCode(name string) (int32, bool) {
	name = strings.ToUpper(name)
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'A' && c <= 'Z':
			return rl.KeyA + int32(c-'A'), true
		case c >= '0' && c <= '9':
			return rl.KeyZero + int32(c-'0'), true
		}
	}
	code, ok := namedKeys[name]
	return code, ok
}
