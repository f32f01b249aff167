package config

import "sort"

var Presets = map[string]*Config{
	"classic": {
		Width: 320, Height: 200, Lines: 40, Hues: 24, Shades: 8, AverageSpeed: 6, FPS: 30,
	},
	"trails": {
		Width: 320, Height: 200, Lines: 96, Hues: 24, Shades: 8, AverageSpeed: 4, FPS: 30,
	},
	"sparse": {
		Width: 320, Height: 200, Lines: 8, Hues: 24, Shades: 8, AverageSpeed: 8, FPS: 30,
	},
	"calm": {
		Width: 320, Height: 200, Lines: 40, Hues: 24, Shades: 8, AverageSpeed: 2, FPS: 20,
	},
	"frantic": {
		Width: 320, Height: 200, Lines: 24, Hues: 24, Shades: 8, AverageSpeed: 16, FPS: 60,
	},
	"hires": {
		Width: 640, Height: 400, Lines: 64, Hues: 24, Shades: 8, AverageSpeed: 12, FPS: 30,
	},
	"smooth": {
		Width: 320, Height: 200, Lines: 40, Hues: 14, Shades: 16, AverageSpeed: 6, FPS: 30,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if cfg.Restart == "" {
		cfg.Restart = RestartFresh
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
