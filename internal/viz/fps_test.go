package viz

import (
	"testing"
	"time"
)

func TestTargetFPSInterval(t *testing.T) {
	tests := []struct {
		fps  TargetFPS
		want time.Duration
	}{
		{FPS15, 68 * time.Millisecond},
		{FPS30, 34 * time.Millisecond},
		{FPS60, 16 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := tt.fps.Interval(); got != tt.want {
			t.Errorf("%d fps: got %v, want %v", tt.fps, got, tt.want)
		}
	}
}

func TestParseFPS(t *testing.T) {
	for _, n := range []int{15, 30, 60} {
		if _, err := ParseFPS(n); err != nil {
			t.Errorf("%d: unexpected error %v", n, err)
		}
	}
	for _, n := range []int{0, 24, 120} {
		if _, err := ParseFPS(n); err == nil {
			t.Errorf("%d: expected error", n)
		}
	}
}

func TestTargetFPSNext(t *testing.T) {
	f := FPS15
	seen := []TargetFPS{f}
	for range 3 {
		f = f.Next()
		seen = append(seen, f)
	}
	want := []TargetFPS{FPS15, FPS30, FPS60, FPS15}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("step %d: got %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestFPSMeter(t *testing.T) {
	var m FPSMeter
	start := time.Unix(0, 0)

	m.Tick(start)
	for i := 1; i <= 29; i++ {
		m.Tick(start.Add(time.Duration(i) * 34 * time.Millisecond))
	}
	if m.FPS() != 0 {
		t.Errorf("no full window yet, got %v", m.FPS())
	}

	m.Tick(start.Add(time.Second))
	if got := m.FPS(); got != 30 {
		t.Errorf("got %v, want 30", got)
	}

	m.Reset()
	if m.FPS() != 0 {
		t.Error("reset should clear the rate")
	}
}
