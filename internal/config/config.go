package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 1000
	DefaultHeight      = 1000
	DefaultFPS         = 60
	DefaultScale       = 1.0
	DefaultTurnAngle   = 90.0
	DefaultFOV         = 45.0
	DefaultNear        = 0.1
	DefaultFar         = 100.0
	DefaultZoomStep    = 1.0
	DefaultSensitivity = 0.01
	DefaultBackground  = "#181820"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window WindowConfig `yaml:"window"`
	Cube   CubeConfig   `yaml:"cube"`
	Camera CameraConfig `yaml:"camera"`
	Input  InputConfig  `yaml:"input"`
	Render RenderConfig `yaml:"render"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	Title  string `yaml:"title"`
}

type CubeConfig struct {
	Scale     float32 `yaml:"scale"`
	TurnAngle float32 `yaml:"turn_angle"`
	Clockwise bool    `yaml:"clockwise"`
}

type CameraConfig struct {
	Position     [3]float32 `yaml:"position,flow"`
	Orientation  [3]float32 `yaml:"orientation,flow"`
	Up           [3]float32 `yaml:"up,flow"`
	FOV          float32    `yaml:"fov"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	Orthographic bool       `yaml:"orthographic"`
	ZoomStep     float32    `yaml:"zoom_step"`
}

// InputConfig holds pointer sensitivities and the key bindings, keyed by
// action name.
type InputConfig struct {
	Sensitivity float32           `yaml:"sensitivity"`
	PanX        float32           `yaml:"pan_x"`
	PanY        float32           `yaml:"pan_y"`
	Keys        map[string]string `yaml:"keys"`
}

type RenderConfig struct {
	Background     string `yaml:"background"`
	Theme          string `yaml:"theme"`
	SnapshotWidth  int    `yaml:"snapshot_width"`
	SnapshotHeight int    `yaml:"snapshot_height"`
}

// DefaultKeys reproduces the classic desktop bindings.
func DefaultKeys() map[string]string {
	return map[string]string{
		"turn_front":        "F",
		"turn_back":         "B",
		"turn_left":         "L",
		"turn_right":        "R",
		"turn_top":          "U",
		"turn_bottom":       "D",
		"rotate_up":         "UP",
		"rotate_down":       "DOWN",
		"rotate_left":       "LEFT",
		"rotate_right":      "RIGHT",
		"angle_half":        "A",
		"angle_quarter":     "Z",
		"angle_enlarge":     "EQUAL",
		"angle_shrink":      "MINUS",
		"toggle_handedness": "SPACE",
		"toggle_picking":    "P",
		"reset":             "BACKSPACE",
	}
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Title:  "cubesim",
		},
		Cube: CubeConfig{
			Scale:     DefaultScale,
			TurnAngle: DefaultTurnAngle,
			Clockwise: true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 8},
			Orientation: [3]float32{0, 0, -1},
			Up:          [3]float32{0, 1, 0},
			FOV:         DefaultFOV,
			Near:        DefaultNear,
			Far:         DefaultFar,
			ZoomStep:    DefaultZoomStep,
		},
		Input: InputConfig{
			Sensitivity: DefaultSensitivity,
			PanX:        DefaultSensitivity,
			PanY:        DefaultSensitivity,
			Keys:        DefaultKeys(),
		},
		Render: RenderConfig{
			Background:     DefaultBackground,
			Theme:          "minimal",
			SnapshotWidth:  800,
			SnapshotHeight: 800,
		},
	}
}

// Load reads a yaml file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a yaml file over base, which is modified in place.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first unusable value, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPS < 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Window.FPS)
	case c.Cube.Scale <= 0:
		return fmt.Errorf("%w: cube scale %g", ErrInvalid, c.Cube.Scale)
	case c.Cube.TurnAngle < 90 || c.Cube.TurnAngle > 180:
		return fmt.Errorf("%w: turn angle %g outside [90,180]", ErrInvalid, c.Cube.TurnAngle)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return fmt.Errorf("%w: clip planes near=%g far=%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	case !c.Camera.Orthographic && (c.Camera.FOV <= 0 || c.Camera.FOV >= 180):
		return fmt.Errorf("%w: fov %g", ErrInvalid, c.Camera.FOV)
	case c.Camera.Orientation == [3]float32{}:
		return fmt.Errorf("%w: zero camera orientation", ErrInvalid)
	case c.Camera.Up == [3]float32{}:
		return fmt.Errorf("%w: zero camera up vector", ErrInvalid)
	case c.Input.Sensitivity <= 0:
		return fmt.Errorf("%w: sensitivity %g", ErrInvalid, c.Input.Sensitivity)
	case c.Render.SnapshotWidth <= 0 || c.Render.SnapshotHeight <= 0:
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalid, c.Render.SnapshotWidth, c.Render.SnapshotHeight)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	bound := make(map[string]string, len(c.Input.Keys))
	for action, key := range c.Input.Keys {
		key = strings.ToUpper(key)
		if key == "" {
			return fmt.Errorf("%w: empty key for %s", ErrInvalid, action)
		}
		if other, dup := bound[key]; dup {
			return fmt.Errorf("%w: key %s bound to both %s and %s", ErrInvalid, key, other, action)
		}
		bound[key] = action
	}
	return nil
}

// BackgroundColor parses Render.Background as #rrggbb.
func (c *Config) BackgroundColor() (color.RGBA, error) {
	s := strings.TrimPrefix(c.Render.Background, "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: background %q", ErrInvalid, c.Render.Background)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: background %q", ErrInvalid, c.Render.Background)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
