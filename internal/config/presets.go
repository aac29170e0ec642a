package config

import (
	"math"
	"math/rand/v2"
	"slices"
)

var Presets = map[string]*Config{
	"binary": {
		Name: "binary", Gravity: 1, StepScale: 1, Ticks: 600, FPS: 30, Separation: "first", Trail: 80,
		Viewport: defaultViewport,
		Bodies: []BodyConfig{
			{Name: "primary", X: 0, Y: 0, VY: -0.05, Mass: 500, Radius: 20, Color: "#ffcc33", Centered: true},
			{Name: "companion", X: 80, Y: 0, VY: 2.5, Mass: 10, Radius: 6, Color: "#33ccff", Centered: true},
		},
	},
	"collision": {
		Name: "collision", Gravity: 1, StepScale: 1, Ticks: 300, FPS: 30, Separation: "first", Trail: 48,
		Viewport: defaultViewport,
		Bodies: []BodyConfig{
			{Name: "left", X: -150, Y: 4, VX: 2, Mass: 20, Radius: 15, Color: "#ff5566", Centered: true},
			{Name: "right", X: 150, Y: -4, VX: -2, Mass: 10, Radius: 10, Color: "#66ff99", Centered: true},
		},
	},
	"trio": {
		Name: "trio", Gravity: 1, StepScale: 0.5, Ticks: 1200, FPS: 30, Separation: "both", Trail: 96, AutoOrbit: true,
		Viewport: defaultViewport,
		Bodies: []BodyConfig{
			{Name: "sun", Mass: 1000, Radius: 25, Color: "#ffcc33", Centered: true},
			{Name: "inner", X: 120, Mass: 5, Radius: 5, Color: "#33ccff", Centered: true},
			{Name: "outer", X: -220, Mass: 3, Radius: 4, Color: "#cc88ff", Centered: true},
		},
	},
	"ring":    ringPreset(8),
	"cluster": clusterPreset(12, 7),
}

var defaultViewport = DefaultConfig().Viewport

func ringPreset(n int) *Config {
	cfg := DefaultConfig()
	cfg.Name = "ring"
	cfg.Ticks = 900
	cfg.StepScale = 0.5
	cfg.AutoOrbit = true
	cfg.Bodies = []BodyConfig{{Name: "hub", Mass: 800, Radius: 20, Color: "#ffcc33", Centered: true}}
	for i := range n {
		theta := 2 * math.Pi * float64(i) / float64(n)
		cfg.Bodies = append(cfg.Bodies, BodyConfig{
			X: 150 * math.Cos(theta), Y: 150 * math.Sin(theta),
			Mass: 2, Radius: 4, Centered: true,
		})
	}
	return cfg
}

// clusterPreset scatters n bodies at rest. The seed keeps the layout stable
// between runs.
func clusterPreset(n int, seed uint64) *Config {
	rng := rand.New(rand.NewPCG(seed, seed))
	cfg := DefaultConfig()
	cfg.Name = "cluster"
	cfg.Ticks = 900
	cfg.Separation = "both"
	for range n {
		m := 5 + rng.Float64()*25
		cfg.Bodies = append(cfg.Bodies, BodyConfig{
			X:        (rng.Float64() - 0.5) * 400,
			Y:        (rng.Float64() - 0.5) * 300,
			Mass:     m,
			Radius:   2 + math.Sqrt(m),
			Centered: true,
		})
	}
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.Bodies = slices.Clone(p.Bodies)
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
