package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	DefaultTicks     = 600
	DefaultFPS       = 30
	DefaultStepScale = 1.0
	DefaultWidth     = 800.0
	DefaultHeight    = 600.0
	DefaultTrail     = dynamo.DefaultTrailCap
)

var (
	ErrInvalidConfig = errors.New("config: invalid configuration")
	ErrColor         = errors.New("config: invalid colour")
)

// Palette colours bodies that do not name one.
var Palette = []string{"#ffcc33", "#33ccff", "#ff5566", "#66ff99", "#cc88ff", "#ff9933", "#e0e0e0", "#3366ff"}

type Config struct {
	Name        string          `yaml:"name"`
	Gravity     float64         `yaml:"gravity"`
	MinDistance float64         `yaml:"min_distance,omitempty"`
	StepScale   float64         `yaml:"step_scale"`
	Ticks       int             `yaml:"ticks"`
	FPS         int             `yaml:"fps"`
	Separation  string          `yaml:"separation,omitempty"`
	Trail       int             `yaml:"trail"`
	AutoOrbit   bool            `yaml:"auto_orbit,omitempty"`
	Viewport    dynamo.Viewport `yaml:"viewport"`
	Bodies      []BodyConfig    `yaml:"bodies"`
}

type BodyConfig struct {
	Name     string  `yaml:"name,omitempty"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	VX       float64 `yaml:"vx,omitempty"`
	VY       float64 `yaml:"vy,omitempty"`
	Mass     float64 `yaml:"mass"`
	Radius   float64 `yaml:"radius"`
	Trail    int     `yaml:"trail,omitempty"`
	Color    string  `yaml:"color,omitempty"`
	Centered bool    `yaml:"centered,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		Gravity:     physics.DefaultG,
		MinDistance: physics.DefaultMinDistance,
		StepScale:   DefaultStepScale,
		Ticks:       DefaultTicks,
		FPS:         DefaultFPS,
		Separation:  "first",
		Trail:       DefaultTrail,
		Viewport:    dynamo.Viewport{Width: DefaultWidth, Height: DefaultHeight},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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

// Validate checks run-level settings. Per-body preconditions are enforced
// when the world is built.
func (c *Config) Validate() error {
	switch {
	case c.Gravity < 0 || math.IsNaN(c.Gravity) || math.IsInf(c.Gravity, 0):
		return fmt.Errorf("%w: gravity %v", ErrInvalidConfig, c.Gravity)
	case c.StepScale <= 0 || math.IsNaN(c.StepScale) || math.IsInf(c.StepScale, 0):
		return fmt.Errorf("%w: step_scale %v", ErrInvalidConfig, c.StepScale)
	case c.Ticks <= 0:
		return fmt.Errorf("%w: ticks %d", ErrInvalidConfig, c.Ticks)
	case c.Viewport.Width <= 0 || c.Viewport.Height <= 0:
		return fmt.Errorf("%w: viewport %vx%v", ErrInvalidConfig, c.Viewport.Width, c.Viewport.Height)
	case c.Trail < 0:
		return fmt.Errorf("%w: trail %d", ErrInvalidConfig, c.Trail)
	}
	if !validFPS(c.FPS) {
		return fmt.Errorf("%w: fps %d (want 15, 30 or 60)", ErrInvalidConfig, c.FPS)
	}
	if _, ok := physics.SeparatorByName(c.Separation); !ok {
		return fmt.Errorf("%w: separation %q", ErrInvalidConfig, c.Separation)
	}
	for i, b := range c.Bodies {
		if b.Color == "" {
			continue
		}
		if _, err := parseColor(b.Color); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	return nil
}

func validFPS(fps int) bool {
	return fps == 15 || fps == 30 || fps == 60
}

// GravityModel returns the force law described by the config.
func (c *Config) GravityModel() physics.Gravity {
	return physics.Gravity{G: c.Gravity, MinDistance: c.MinDistance}
}

// Specs converts the body list into world descriptors.
func (c *Config) Specs() ([]dynamo.BodySpec, error) {
	bodies := c.Bodies
	if c.AutoOrbit {
		bodies = make([]BodyConfig, len(c.Bodies))
		copy(bodies, c.Bodies)
		SetOrbitalVelocities(bodies, c.Gravity)
	}

	specs := make([]dynamo.BodySpec, len(bodies))
	for i, b := range bodies {
		hex := b.Color
		if hex == "" {
			hex = Palette[i%len(Palette)]
		}
		col, err := parseColor(hex)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}

		trail := b.Trail
		if trail == 0 {
			trail = c.Trail
		}

		name := b.Name
		if name == "" {
			name = fmt.Sprintf("body%d", i)
		}

		specs[i] = dynamo.BodySpec{
			Name:     name,
			Position: dynamo.V(b.X, b.Y),
			Velocity: dynamo.V(b.VX, b.VY),
			Mass:     b.Mass,
			Radius:   b.Radius,
			TrailCap: trail,
			Color:    col,
			Centered: b.Centered,
		}
	}
	return specs, nil
}

// Options returns the world options described by the config.
func (c *Config) Options() []sim.Option {
	sep, _ := physics.SeparatorByName(c.Separation)
	return []sim.Option{
		sim.WithGravity(c.GravityModel()),
		sim.WithStepScale(c.StepScale),
		sim.WithSeparator(sep),
	}
}

// NewWorld validates the config and builds a world from it.
func (c *Config) NewWorld() (*sim.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	specs, err := c.Specs()
	if err != nil {
		return nil, err
	}
	return sim.New(specs, c.Viewport, c.Options()...)
}

// SetOrbitalVelocities gives every body after the first that starts at rest
// the circular-orbit velocity around the first body.
func SetOrbitalVelocities(bodies []BodyConfig, g float64) {
	if len(bodies) == 0 {
		return
	}
	central := bodies[0]
	for i := 1; i < len(bodies); i++ {
		if bodies[i].VX != 0 || bodies[i].VY != 0 {
			continue
		}
		if bodies[i].Centered != central.Centered {
			continue
		}
		dx := bodies[i].X - central.X
		dy := bodies[i].Y - central.Y
		r := math.Hypot(dx, dy)
		if r == 0 {
			continue
		}
		v := math.Sqrt(g * central.Mass / r)
		bodies[i].VX = central.VX - dy/r*v
		bodies[i].VY = central.VY + dx/r*v
	}
}

func parseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w %q", ErrColor, hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
