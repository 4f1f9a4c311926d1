package gui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/san-kum/cubesim/internal/config"
)

func TestKeyCode(t *testing.T) {
	tests := []struct {
		name string
		want int32
	}{
		{"F", rl.KeyF},
		{"z", rl.KeyZ},
		{"7", rl.KeySeven},
		{"space", rl.KeySpace},
		{"BACKSPACE", rl.KeyBackspace},
		{"Up", rl.KeyUp},
	}
	for _, tt := range tests {
		got, ok := keyCode(tt.name)
		if !ok || got != tt.want {
			t.Errorf("keyCode(%q) = %d %v, want %d", tt.name, got, ok, tt.want)
		}
	}
	if _, ok := keyCode("HYPER"); ok {
		t.Error("unknown key name should not resolve")
	}
}

func TestDefaultBindingsResolve(t *testing.T) {
	for action, key := range config.DefaultKeys() {
		if _, ok := keyCode(key); !ok {
			t.Errorf("%s: key %q has no raylib code", action, key)
		}
	}
}

func TestToMatrixLayout(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	r := toMatrix(m)
	if r.M12 != 1 || r.M13 != 2 || r.M14 != 3 || r.M15 != 1 {
		t.Errorf("translation not in M12..M14: %+v", r)
	}
	if got := rl.MatrixToFloatV(r); got != [16]float32(m) {
		t.Errorf("layout mismatch: %v vs %v", got, m)
	}
}

func TestToRGBA(t *testing.T) {
	c := toRGBA(mgl32.Vec4{14.0 / 255, 0, 0, 1})
	if c.R != 14 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("got %v", c)
	}
}
