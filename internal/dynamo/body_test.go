package dynamo

import (
	"errors"
	"math"
	"testing"
)

func TestBodySpec_Validate(t *testing.T) {
	tests := []struct {
		name string
		spec BodySpec
		want error
	}{
		{"valid", BodySpec{Mass: 1, Radius: 1, TrailCap: 1}, nil},
		{"zero mass", BodySpec{Mass: 0, Radius: 1, TrailCap: 1}, ErrNonPositiveMass},
		{"negative radius", BodySpec{Mass: 1, Radius: -2, TrailCap: 1}, ErrNonPositiveRadius},
		{"no trail", BodySpec{Mass: 1, Radius: 1}, ErrTrailCapacity},
		{"NaN mass", BodySpec{Mass: math.NaN(), Radius: 1, TrailCap: 1}, ErrNonFinite},
		{"Inf position", BodySpec{Position: V(math.Inf(1), 0), Mass: 1, Radius: 1, TrailCap: 1}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.spec.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBodySpec_Build(t *testing.T) {
	vp := Viewport{Width: 200, Height: 100}

	plain := BodySpec{Position: V(5, 6), Mass: 2, Radius: 3, TrailCap: 7}.Build(vp)
	if plain.Position != V(5, 6) {
		t.Errorf("position = %v, want (5,6)", plain.Position)
	}
	if plain.Trail.Cap() != 7 || plain.Trail.Len() != 0 {
		t.Errorf("trail cap=%d len=%d", plain.Trail.Cap(), plain.Trail.Len())
	}

	centred := BodySpec{Position: V(5, 6), Mass: 2, Radius: 3, TrailCap: 7, Centered: true}.Build(vp)
	if centred.Position != V(105, 56) {
		t.Errorf("centred position = %v, want (105,56)", centred.Position)
	}
}

func TestBody_State(t *testing.T) {
	b := BodySpec{Name: "sun", Position: V(1, 1), Velocity: V(2, 0), Mass: 4, Radius: 1, TrailCap: 3}.Build(Viewport{})
	b.Trail.Push(V(1, 1))

	s := b.State()
	if s.Name != "sun" || s.TrailCap != 3 || len(s.Trail) != 1 {
		t.Errorf("unexpected state %+v", s)
	}

	s.Trail[0] = V(9, 9)
	if b.Trail.At(0) != V(1, 1) {
		t.Error("State shares trail storage with the body")
	}
	if b.KineticEnergy() != 8 {
		t.Errorf("KineticEnergy = %v, want 8", b.KineticEnergy())
	}
	if b.Momentum() != V(8, 0) {
		t.Errorf("Momentum = %v, want (8,0)", b.Momentum())
	}
}

func TestPreconditionError(t *testing.T) {
	tests := []struct {
		err  *PreconditionError
		want string
	}{
		{&PreconditionError{Index: 2, Other: -1, Wrapped: ErrNonPositiveMass}, "body 2: dynamo: mass must be positive"},
		{&PreconditionError{Index: 0, Other: 3, Wrapped: ErrCoincident}, "body 0 and body 3: dynamo: bodies share the same position"},
	}

	for _, tt := range tests {
		if tt.err.Error() != tt.want {
			t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.want)
		}
		if !errors.Is(tt.err, tt.err.Wrapped) {
			t.Errorf("errors.Is failed for %v", tt.err)
		}
	}
}
