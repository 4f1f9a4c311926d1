package config

import "sort"

// Presets adjust the default config for common viewing setups.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"closeup": func(c *Config) {
		c.Camera.Position = [3]float32{0, 0, 5.5}
		c.Camera.FOV = 60
	},
	"ortho": func(c *Config) {
		// The orthographic box spans [-1,1], so the cube is shrunk to fit.
		c.Camera.Orthographic = true
		c.Cube.Scale = 0.3
	},
	"sensitive": func(c *Config) {
		c.Input.Sensitivity = 0.03
		c.Input.PanX = 0.02
		c.Input.PanY = 0.02
	},
	"isometric": func(c *Config) {
		c.Camera.Position = [3]float32{5, 5, 5}
		c.Camera.Orientation = [3]float32{-1, -1, -1}
	},
}

// GetPreset returns a fresh default config with the named preset applied,
// or nil if there is no such preset.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
