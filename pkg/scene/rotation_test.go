package scene

import (
	"math"
	"testing"

	"github.com/taigrr/softcube/pkg/math3d"
)

func TestNewRotation(t *testing.T) {
	r := NewRotation(0)
	if r.Angles != math3d.Zero3() {
		t.Errorf("Angles = %v, want zero", r.Angles)
	}
	if r.Velocity != DefaultVelocity {
		t.Errorf("Velocity = %v, want %v", r.Velocity, DefaultVelocity)
	}
}

func TestRotationAdditive(t *testing.T) {
	r := NewRotation(60)
	r.Velocity = math3d.V3(1, -2, 0.5)

	for range 4 {
		r.Advance(0.25)
	}
	want := math3d.V3(1, -2, 0.5)
	if math.Abs(r.Angles.X-want.X) > 1e-12 || math.Abs(r.Angles.Y-want.Y) > 1e-12 || math.Abs(r.Angles.Z-want.Z) > 1e-12 {
		t.Errorf("Angles = %v, want %v", r.Angles, want)
	}

	// dt of zero changes nothing.
	before := r.Angles
	r.Advance(0)
	if r.Angles != before {
		t.Errorf("Advance(0) moved angles from %v to %v", before, r.Angles)
	}
}

func TestRotationImpulseDecays(t *testing.T) {
	r := NewRotation(60)
	r.Velocity = math3d.Zero3()
	r.ApplyImpulse(math3d.V3(2, 0, -1))

	prev := r.spin.X
	for i := range 300 {
		r.Advance(1.0 / 60)
		if s := r.spin.X; s > prev+1e-12 {
			t.Fatalf("step %d: spin grew from %v to %v", i, prev, s)
		}
		prev = r.spin.X
	}

	spin := r.spin
	if math.Abs(spin.X) > 1e-4 || math.Abs(spin.Z) > 1e-4 || spin.Y != 0 {
		t.Errorf("spin after 5s = %v, want ~0", spin)
	}
	if r.Angles.X <= 0 || r.Angles.Z >= 0 || r.Angles.Y != 0 {
		t.Errorf("Angles = %v, want +X, -Z, no Y", r.Angles)
	}
}

func TestRotationImpulseFollowsElapsedTime(t *testing.T) {
	// A critically damped spring released from rest decays as
	// (1 + ωt)·e^(-ωt), independent of how the second is sliced.
	want := 2 * (1 + springFrequency) * math.Exp(-springFrequency)

	for _, steps := range []int{10, 30, 60, 144} {
		r := NewRotation(60)
		r.ApplyImpulse(math3d.V3(2, 0, 0))
		for range steps {
			r.Advance(1 / float64(steps))
		}
		if got := r.spin.X; math.Abs(got-want) > 1e-6 {
			t.Errorf("%d steps over 1s: spin = %v, want %v", steps, got, want)
		}
	}
}

func TestRotationReset(t *testing.T) {
	r := NewRotation(30)
	r.Velocity = math3d.V3(1, 1, 1)
	r.ApplyImpulse(math3d.V3(3, 3, 3))
	r.Advance(0.5)

	r.Reset()
	if r.Angles != math3d.Zero3() || r.spin != math3d.Zero3() {
		t.Errorf("after Reset: angles %v spin %v", r.Angles, r.spin)
	}
	if r.Velocity != math3d.V3(1, 1, 1) {
		t.Error("Reset should keep Velocity")
	}
}

func TestRotationWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{1, 1},
		{2 * math.Pi, 0},
		{2*math.Pi + 0.5, 0.5},
		{-0.5, 2*math.Pi - 0.5},
		{-4 * math.Pi, 0},
		{7 * math.Pi, math.Pi},
	}
	for _, tc := range tests {
		r := NewRotation(60)
		r.Angles = math3d.V3(tc.in, tc.in, tc.in)
		r.Wrap()
		for _, got := range []float64{r.Angles.X, r.Angles.Y, r.Angles.Z} {
			if got < 0 || got >= 2*math.Pi {
				t.Errorf("wrap(%v) = %v, outside [0, 2π)", tc.in, got)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("wrap(%v) = %v, want %v", tc.in, got, tc.want)
			}
		}
	}
}

func TestRotationWrapKeepsOrientation(t *testing.T) {
	r := NewRotation(60)
	r.Angles = math3d.V3(13.7, -8.2, 40.1)
	p := math3d.V3(0.3, -0.7, 1.1)
	before := p.Rotate(r.Angles)

	r.Wrap()
	after := p.Rotate(r.Angles)
	if before.Sub(after).Len() > 1e-9 {
		t.Errorf("Wrap changed the orientation: %v vs %v", before, after)
	}
}
