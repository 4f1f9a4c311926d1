package interact

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/cubesim/internal/config"
)

var ErrUnknownAction = errors.New("unknown action")

// Action is a discrete keyboard command.
type Action int

const (
	NoAction Action = iota
	TurnFront
	TurnBack
	TurnLeft
	TurnRight
	TurnTop
	TurnBottom
	RotateUp
	RotateDown
	RotateLeft
	RotateRight
	AngleHalf
	AngleQuarter
	AngleEnlarge
	AngleShrink
	ToggleHandedness
	TogglePicking
	Reset
)

var actionNames = map[Action]string{
	TurnFront:        "turn_front",
	TurnBack:         "turn_back",
	TurnLeft:         "turn_left",
	TurnRight:        "turn_right",
	TurnTop:          "turn_top",
	TurnBottom:       "turn_bottom",
	RotateUp:         "rotate_up",
	RotateDown:       "rotate_down",
	RotateLeft:       "rotate_left",
	RotateRight:      "rotate_right",
	AngleHalf:        "angle_half",
	AngleQuarter:     "angle_quarter",
	AngleEnlarge:     "angle_enlarge",
	AngleShrink:      "angle_shrink",
	ToggleHandedness: "toggle_handedness",
	TogglePicking:    "toggle_picking",
	Reset:            "reset",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "none"
}

func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return NoAction, false
}

// Keymap maps upper-case key names to actions.
type Keymap map[string]Action

// NewKeymap inverts a config key table (action name to key name).
func NewKeymap(keys map[string]string) (Keymap, error) {
	km := make(Keymap, len(keys))
	for name, key := range keys {
		a, ok := ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("%w: %w %q", config.ErrInvalid, ErrUnknownAction, name)
		}
		km[strings.ToUpper(key)] = a
	}
	return km, nil
}

// Lookup is case-insensitive.
func (k Keymap) Lookup(key string) (Action, bool) {
	a, ok := k[strings.ToUpper(key)]
	return a, ok
}

// Keys returns the bound key names in sorted order.
func (k Keymap) Keys() []string {
	keys := make([]string, 0, len(k))
	for key := range k {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
