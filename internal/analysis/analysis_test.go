package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

func TestDominantPeriod(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		perLoop int
		dt      float64
		want    float64
	}{
		{"period 20", 200, 40, 0.5, 20},
		{"period 8", 64, 8, 1, 8},
		{"non power of two", 300, 30, 1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := make([]float64, tt.samples)
			for i := range series {
				series[i] = 3 + math.Sin(2*math.Pi*float64(i)/float64(tt.perLoop))
			}
			got, err := DominantPeriod(series, tt.dt)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDominantPeriod_Errors(t *testing.T) {
	if _, err := DominantPeriod([]float64{1, 2}, 1); !errors.Is(err, ErrShortSeries) {
		t.Errorf("short: got %v", err)
	}
	flat := make([]float64, 32)
	if _, err := DominantPeriod(flat, 1); !errors.Is(err, ErrFlatSeries) {
		t.Errorf("flat: got %v", err)
	}
}

func TestSeriesAndApsides(t *testing.T) {
	frames := []sim.Frame{
		{Positions: []dynamo.Vec2{{}, {X: 10}}, Velocities: []dynamo.Vec2{{}, {Y: 1}}},
		{Positions: []dynamo.Vec2{{}, {Y: 30}}, Velocities: []dynamo.Vec2{{}, {X: -1}}},
		{Positions: []dynamo.Vec2{{}, {X: -20}}, Velocities: []dynamo.Vec2{{}, {Y: -1}}},
	}

	xs := Series(frames, 1, X)
	if xs[0] != 10 || xs[1] != 0 || xs[2] != -20 {
		t.Errorf("x series: got %v", xs)
	}
	vys := Series(frames, 1, VY)
	if vys[0] != 1 || vys[2] != -1 {
		t.Errorf("vy series: got %v", vys)
	}

	o := Apsides(frames, 0, 1)
	if o.Periapsis != 10 || o.Apoapsis != 30 {
		t.Errorf("got periapsis %v apoapsis %v", o.Periapsis, o.Apoapsis)
	}
	if math.Abs(o.Eccentricity-0.5) > 1e-12 {
		t.Errorf("eccentricity: got %v, want 0.5", o.Eccentricity)
	}
}

func TestParseComponent(t *testing.T) {
	for _, s := range []string{"x", "y", "vx", "vy"} {
		if _, ok := ParseComponent(s); !ok {
			t.Errorf("%s should parse", s)
		}
	}
	if _, ok := ParseComponent("z"); ok {
		t.Error("z should not parse")
	}
}

func TestDivergence_LoneBody(t *testing.T) {
	specs := []dynamo.BodySpec{
		{Position: dynamo.V(10, 10), Velocity: dynamo.V(1, 0), Mass: 1, Radius: 1, TrailCap: 1},
	}
	rate, err := Divergence(specs, dynamo.Viewport{}, nil, 1e-3, 50)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(rate) > 1e-6 {
		t.Errorf("lone body rate: got %v, want 0", rate)
	}
	if specs[0].Position.X != 10 {
		t.Error("input specs must not be modified")
	}
}

func TestDivergence_BadPerturbation(t *testing.T) {
	if _, err := Divergence(nil, dynamo.Viewport{}, nil, 0, 10); !errors.Is(err, ErrPerturbation) {
		t.Errorf("got %v, want ErrPerturbation", err)
	}
}
