package config

import (
	"errors"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Gravity != 1 {
		t.Errorf("gravity: got %v, want 1", cfg.Gravity)
	}
	if cfg.StepScale <= 0 {
		t.Error("step scale should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative gravity", func(c *Config) { c.Gravity = -1 }},
		{"nan gravity", func(c *Config) { c.Gravity = math.NaN() }},
		{"zero step scale", func(c *Config) { c.StepScale = 0 }},
		{"nan step scale", func(c *Config) { c.StepScale = math.NaN() }},
		{"zero ticks", func(c *Config) { c.Ticks = 0 }},
		{"fps 24", func(c *Config) { c.FPS = 24 }},
		{"unknown separation", func(c *Config) { c.Separation = "sideways" }},
		{"empty viewport", func(c *Config) { c.Viewport = dynamo.Viewport{} }},
		{"bad colour", func(c *Config) {
			c.Bodies = []BodyConfig{{Mass: 1, Radius: 1, Color: "orange"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_ColourError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Bodies = []BodyConfig{{Mass: 1, Radius: 1, Color: "#zz0000"}}
	if err := cfg.Validate(); !errors.Is(err, ErrColor) {
		t.Errorf("got %v, want ErrColor", err)
	}
}

func TestSpecs(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trail = 12
	cfg.Bodies = []BodyConfig{
		{Name: "a", X: 1, Y: 2, VX: 3, VY: 4, Mass: 5, Radius: 6, Color: "#ff8000"},
		{X: 10, Mass: 1, Radius: 1, Trail: 3, Centered: true},
	}

	specs, err := cfg.Specs()
	if err != nil {
		t.Fatal(err)
	}
	if len(specs) != 2 {
		t.Fatalf("got %d specs, want 2", len(specs))
	}

	a := specs[0]
	if a.Position != dynamo.V(1, 2) || a.Velocity != dynamo.V(3, 4) {
		t.Errorf("kinematics: got %v %v", a.Position, a.Velocity)
	}
	if a.TrailCap != 12 {
		t.Errorf("trail default: got %d, want 12", a.TrailCap)
	}
	if want := (color.RGBA{R: 255, G: 128, B: 0, A: 255}); a.Color != want {
		t.Errorf("colour: got %v, want %v", a.Color, want)
	}

	b := specs[1]
	if b.Name != "body1" {
		t.Errorf("name: got %q, want body1", b.Name)
	}
	if b.TrailCap != 3 || !b.Centered {
		t.Errorf("got trail %d centered %v", b.TrailCap, b.Centered)
	}
	if b.Color.A != 255 {
		t.Error("palette colour should be opaque")
	}
}

func TestSetOrbitalVelocities(t *testing.T) {
	bodies := []BodyConfig{
		{Mass: 400},
		{X: 100, Mass: 1},
		{X: 50, VX: 7, Mass: 1},
	}
	SetOrbitalVelocities(bodies, 1)

	if got := bodies[1].VY; math.Abs(got-2) > 1e-12 {
		t.Errorf("orbital speed: got %v, want 2", got)
	}
	if bodies[1].VX != 0 {
		t.Errorf("orbital vx: got %v, want 0", bodies[1].VX)
	}
	if bodies[2].VX != 7 || bodies[2].VY != 0 {
		t.Error("moving body should keep its velocity")
	}
}

func TestNewWorld(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			w, err := GetPreset(name).NewWorld()
			if err != nil {
				t.Fatalf("preset %s: %v", name, err)
			}
			if w.Len() != len(Presets[name].Bodies) {
				t.Errorf("got %d bodies, want %d", w.Len(), len(Presets[name].Bodies))
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")

	cfg := GetPreset("trio")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "trio" || len(got.Bodies) != 3 {
		t.Errorf("got %q with %d bodies", got.Name, len(got.Bodies))
	}
	if !got.AutoOrbit {
		t.Error("auto_orbit lost in round trip")
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	data := []byte("bodies:\n  - {x: 0, y: 0, mass: 1, radius: 1}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ticks != DefaultTicks || cfg.FPS != DefaultFPS {
		t.Errorf("defaults not applied: ticks %d fps %d", cfg.Ticks, cfg.FPS)
	}
}

func TestLoad_NaNStepScale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nan.yaml")
	data := []byte("step_scale: .nan\nbodies:\n  - {x: 0, y: 0, mass: 1, radius: 1}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("binary")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Bodies[0].Mass != 500 || cfg.Bodies[1].Mass != 10 {
		t.Errorf("got masses %v and %v", cfg.Bodies[0].Mass, cfg.Bodies[1].Mass)
	}

	cfg.Bodies[0].Mass = 1
	if Presets["binary"].Bodies[0].Mass != 500 {
		t.Error("GetPreset should return a copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	want := []string{"binary", "cluster", "collision", "ring", "trio"}
	got := ListPresets()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %s, want %s", i, got[i], want[i])
		}
	}
}
