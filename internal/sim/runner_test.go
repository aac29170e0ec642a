package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/physics"
)

func testWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	specs := []dynamo.BodySpec{
		{Position: dynamo.V(0, 0), Mass: 500, Radius: 20, TrailCap: 16},
		{Position: dynamo.V(80, 0), Velocity: dynamo.V(0, 2.5), Mass: 10, Radius: 4, TrailCap: 16},
	}
	w, err := New(specs, dynamo.Viewport{Width: 800, Height: 600}, opts...)
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	return w
}

type countMetric struct {
	count int
}

func (c *countMetric) Name() string                            { return "count" }
func (c *countMetric) Observe(tick int, _ []dynamo.BodyState) { c.count++ }
func (c *countMetric) Value() float64                          { return float64(c.count) }
func (c *countMetric) Reset()                                  { c.count = 0 }

type tickRecorder struct {
	ticks []int
}

func (r *tickRecorder) OnTick(tick int, _ []dynamo.BodyState) { r.ticks = append(r.ticks, tick) }

func TestRunnerRun(t *testing.T) {
	r := NewRunner(testWorld(t))
	metric := &countMetric{}
	obs := &tickRecorder{}
	r.AddMetric(metric)
	r.AddObserver(obs)

	result, err := r.Run(context.Background(), RunConfig{Ticks: 20, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if len(result.Frames) != 21 {
		t.Errorf("expected 21 frames, got %d", len(result.Frames))
	}
	if result.StepsTaken != 20 {
		t.Errorf("expected 20 steps, got %d", result.StepsTaken)
	}
	if got := result.Metrics["count"]; got != 21 {
		t.Errorf("expected 21 observations, got %v", got)
	}
	if len(obs.ticks) != 20 || obs.ticks[0] != 1 || obs.ticks[19] != 20 {
		t.Errorf("observer ticks = %v", obs.ticks)
	}
	last := result.Frames[len(result.Frames)-1]
	if last.Tick != 20 || last.Time != 20 {
		t.Errorf("last frame tick=%d time=%v", last.Tick, last.Time)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}
}

func TestRunnerEvery(t *testing.T) {
	tests := []struct {
		ticks, every, frames int
	}{
		{10, 1, 11},
		{10, 5, 3},
		{10, 3, 5},
		{10, 0, 11},
	}

	for _, tt := range tests {
		r := NewRunner(testWorld(t))
		result, err := r.Run(context.Background(), RunConfig{Ticks: tt.ticks, Every: tt.every})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		if len(result.Frames) != tt.frames {
			t.Errorf("ticks=%d every=%d: expected %d frames, got %d", tt.ticks, tt.every, tt.frames, len(result.Frames))
		}
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  RunConfig
	}{
		{"zero ticks", RunConfig{Ticks: 0}},
		{"negative ticks", RunConfig{Ticks: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRunner(testWorld(t)).Run(context.Background(), tt.cfg)
			if !errors.Is(err, ErrTicks) {
				t.Errorf("expected ErrTicks, got %v", err)
			}
		})
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewRunner(testWorld(t)).Run(ctx, RunConfig{Ticks: 100})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if result.StepsTaken != 0 {
		t.Errorf("expected no steps, got %d", result.StepsTaken)
	}
}

func TestRunnerUnstable(t *testing.T) {
	w := testWorld(t, WithGravity(physics.Gravity{G: math.MaxFloat64}))

	result, err := NewRunner(w).Run(context.Background(), RunConfig{Ticks: 10, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(result.Errors) != 1 {
		t.Fatalf("expected one error, got %v", result.Errors)
	}

	var re *RunError
	if !errors.As(result.Errors[0], &re) || !errors.Is(re, ErrUnstable) {
		t.Errorf("expected RunError wrapping ErrUnstable, got %v", result.Errors[0])
	}
	if re.Tick != 1 {
		t.Errorf("expected failure on tick 1, got %d", re.Tick)
	}
}

func TestRunnerEnergyDrift(t *testing.T) {
	result, err := NewRunner(testWorld(t, WithStepScale(0.1))).Run(context.Background(), RunConfig{Ticks: 50})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if math.IsNaN(result.EnergyDrift) || result.EnergyDrift < 0 {
		t.Errorf("invalid energy drift %v", result.EnergyDrift)
	}
}

func TestRunWithCallback(t *testing.T) {
	r := NewRunner(testWorld(t))

	calls := 0
	err := r.RunWithCallback(context.Background(), RunConfig{Ticks: 100}, func(w *World) bool {
		calls++
		return w.Tick() < 7
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 7 {
		t.Errorf("expected 7 callbacks, got %d", calls)
	}
	if r.World().Tick() != 7 {
		t.Errorf("expected world at tick 7, got %d", r.World().Tick())
	}
}

func TestRunErrorMessage(t *testing.T) {
	err := &RunError{Tick: 150, Time: 1.5, Wrapped: ErrUnstable}
	expected := "tick 150 (t=1.5000): sim: simulation unstable (non-finite body state)"
	if err.Error() != expected {
		t.Errorf("RunError.Error() = %q, want %q", err.Error(), expected)
	}
}
