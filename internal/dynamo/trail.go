package dynamo

import "iter"

// Trail is a fixed-capacity FIFO of positions, oldest first.
// Push evicts the oldest entry before inserting once the trail is full, so
// Len never exceeds Cap.
type Trail struct {
	buf   []Vec2
	start int
	n     int
}

// NewTrail creates a trail holding at most capacity points. Capacities below
// one are raised to one.
func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = 1
	}
	return &Trail{buf: make([]Vec2, capacity)}
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Push(p Vec2) {
	if t.n == len(t.buf) {
		t.start = (t.start + 1) % len(t.buf)
		t.n--
	}
	t.buf[(t.start+t.n)%len(t.buf)] = p
	t.n++
}

// At returns the i-th point, 0 being the oldest.
func (t *Trail) At(i int) Vec2 {
	if i < 0 || i >= t.n {
		panic("dynamo: trail index out of range")
	}
	return t.buf[(t.start+i)%len(t.buf)]
}

// All yields (age index, point) pairs from oldest to newest. The sequence is
// restartable; each range over it walks the current contents.
func (t *Trail) All() iter.Seq2[int, Vec2] {
	return func(yield func(int, Vec2) bool) {
		for i := 0; i < t.n; i++ {
			if !yield(i, t.buf[(t.start+i)%len(t.buf)]) {
				return
			}
		}
	}
}

// Points returns a copy of the contents, oldest first.
func (t *Trail) Points() []Vec2 {
	out := make([]Vec2, 0, t.n)
	for _, p := range t.All() {
		out = append(out, p)
	}
	return out
}

// Alpha is the fade factor for the point at age index i: 1 - i/Cap.
func (t *Trail) Alpha(i int) float64 {
	return TrailAlpha(i, len(t.buf))
}

func (t *Trail) Reset() {
	t.start = 0
	t.n = 0
}

// TrailAlpha computes 1 - index/capacity for renderers holding a copied trail.
func TrailAlpha(index, capacity int) float64 {
	if capacity <= 0 {
		return 0
	}
	return 1 - float64(index)/float64(capacity)
}
