package config

import (
	"sort"

	"github.com/san-kum/holesim/internal/dynamo"
)

// Layouts place holes relative to the surface so they survive a resize.
var Layouts = map[string]func(surface dynamo.Vec2) []dynamo.Rect{
	"empty": func(surface dynamo.Vec2) []dynamo.Rect {
		return nil
	},
	"classic": func(surface dynamo.Vec2) []dynamo.Rect {
		return []dynamo.Rect{hole(surface.X/2, surface.Y/2)}
	},
	"corners": func(surface dynamo.Vec2) []dynamo.Rect {
		m := DefaultHoleSize
		return []dynamo.Rect{
			hole(m, m),
			hole(surface.X-m, m),
			hole(m, surface.Y-m),
			hole(surface.X-m, surface.Y-m),
		}
	},
	"octo": func(surface dynamo.Vec2) []dynamo.Rect {
		holes := make([]dynamo.Rect, 0, 8)
		for row := 0; row < 4; row++ {
			shift := 0.0
			if row%2 == 1 {
				shift = 0.15
			}
			for col := 0; col < 2; col++ {
				cx := surface.X * (0.2 + shift + 0.45*float64(col))
				cy := surface.Y * (0.125 + 0.25*float64(row))
				holes = append(holes, hole(cx, cy))
			}
		}
		return holes
	},
}

func hole(cx, cy float64) dynamo.Rect {
	return dynamo.Rect{
		X:      cx - DefaultHoleSize/2,
		Y:      cy - DefaultHoleSize/2,
		Width:  DefaultHoleSize,
		Height: DefaultHoleSize,
	}
}

// LayoutHoles returns the holes of a named layout, or nil when unknown.
func LayoutHoles(name string, surface dynamo.Vec2) []dynamo.Rect {
	fn, ok := Layouts[name]
	if !ok {
		return nil
	}
	return fn(surface)
}

func ListLayouts() []string {
	names := make([]string, 0, len(Layouts))
	for name := range Layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Presets are complete configurations for common setups.
var Presets = map[string]func() *Config{
	"classic": func() *Config {
		return WithLayout(DefaultConfig(), "classic")
	},
	"octo": DefaultConfig,
	"slippery": func() *Config {
		cfg := DefaultConfig()
		cfg.Physics.DefaultFriction = 0.4
		cfg.Physics.Damping = "medium_bouncy"
		return cfg
	},
	"sticky": func() *Config {
		cfg := WithLayout(DefaultConfig(), "corners")
		cfg.Physics.DefaultFriction = 3
		cfg.Physics.VelocityThreshold = 600
		return cfg
	},
}

// WithLayout swaps the layout of cfg and regenerates its holes.
func WithLayout(cfg *Config, layout string) *Config {
	cfg.Layout = layout
	cfg.Holes = LayoutHoles(layout, cfg.Surface)
	return cfg
}

func GetPreset(name string) *Config {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return fn()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
