package viz

import (
	"fmt"
	"time"
)

// TargetFPS is one of the supported live refresh rates.
type TargetFPS int

const (
	FPS15 TargetFPS = 15
	FPS30 TargetFPS = 30
	FPS60 TargetFPS = 60
)

func ParseFPS(n int) (TargetFPS, error) {
	switch TargetFPS(n) {
	case FPS15, FPS30, FPS60:
		return TargetFPS(n), nil
	}
	return 0, fmt.Errorf("unsupported fps %d (want 15, 30 or 60)", n)
}

// Interval is the frame period for the target rate, truncated to whole
// milliseconds.
func (f TargetFPS) Interval() time.Duration {
	switch f {
	case FPS15:
		return 68 * time.Millisecond
	case FPS60:
		return 16 * time.Millisecond
	default:
		return 34 * time.Millisecond
	}
}

// Next cycles 15 -> 30 -> 60 -> 15.
func (f TargetFPS) Next() TargetFPS {
	switch f {
	case FPS15:
		return FPS30
	case FPS30:
		return FPS60
	default:
		return FPS15
	}
}

// FPSMeter counts frames and publishes a rate once at least a second has
// elapsed since the window opened.
type FPSMeter struct {
	start  time.Time
	frames int
	fps    float64
}

func (m *FPSMeter) Tick(now time.Time) {
	if m.start.IsZero() {
		m.start = now
		return
	}
	m.frames++
	if elapsed := now.Sub(m.start); elapsed >= time.Second {
		m.fps = float64(m.frames) / elapsed.Seconds()
		m.start = now
		m.frames = 0
	}
}

// FPS is the rate measured over the last complete window.
func (m *FPSMeter) FPS() float64 { return m.fps }

func (m *FPSMeter) Reset() { *m = FPSMeter{} }
