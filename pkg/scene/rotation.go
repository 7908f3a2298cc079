package scene

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/softcube/pkg/math3d"
)

// DefaultVelocity is the idle spin in radians per second around X, Y and Z.
var DefaultVelocity = math3d.V3(0.16, 0.24, 0.16)

// Rotation accumulates the per-axis angles handed to the renderer each
// frame. Angles only ever grow by what Advance adds, so the renderer itself
// stays stateless.
type Rotation struct {
	Angles math3d.Vec3
	// Velocity is the constant spin in radians per second.
	Velocity math3d.Vec3

	// spin is extra velocity from impulses, eased back to zero by spring.
	spin     math3d.Vec3
	accel    math3d.Vec3 // spring's own velocity, one per axis
	spring   harmonica.Spring
	springDT float64
}

const (
	// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
	springFrequency = 4.0
	springDamping   = 1.0
)

// NewRotation returns a rotation at zero angles spinning at DefaultVelocity.
// fps is the expected frame rate; the impulse spring is prepared for it and
// rebuilt whenever Advance sees a different dt.
func NewRotation(fps int) *Rotation {
	if fps <= 0 {
		fps = 60
	}
	r := &Rotation{Velocity: DefaultVelocity}
	r.tune(harmonica.FPS(fps))
	return r
}

func (r *Rotation) tune(dt float64) {
	r.spring = harmonica.NewSpring(dt, springFrequency, springDamping)
	r.springDT = dt
}

// Advance adds (Velocity + impulse spin) * dt to the angles and lets the
// impulse spin decay over dt seconds.
func (r *Rotation) Advance(dt float64) {
	r.Angles = r.Angles.Add(r.Velocity.Add(r.spin).Scale(dt))
	if dt <= 0 {
		return
	}
	if dt != r.springDT {
		r.tune(dt)
	}

	r.spin.X, r.accel.X = r.spring.Update(r.spin.X, r.accel.X, 0)
	r.spin.Y, r.accel.Y = r.spring.Update(r.spin.Y, r.accel.Y, 0)
	r.spin.Z, r.accel.Z = r.spring.Update(r.spin.Z, r.accel.Z, 0)
}

// ApplyImpulse adds a temporary spin in radians per second. It fades out
// over the following second or so.
func (r *Rotation) ApplyImpulse(impulse math3d.Vec3) {
	r.spin = r.spin.Add(impulse)
}

// Reset returns to zero angles and drops pending impulses. Velocity is kept.
func (r *Rotation) Reset() {
	r.Angles = math3d.Zero3()
	r.spin = math3d.Zero3()
	r.accel = math3d.Zero3()
}

// Wrap reduces every angle into [0, 2π) without changing the orientation.
func (r *Rotation) Wrap() {
	r.Angles = math3d.V3(wrapAngle(r.Angles.X), wrapAngle(r.Angles.Y), wrapAngle(r.Angles.Z))
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	if a >= 2*math.Pi {
		a = 0
	}
	return a
}
