package physics

import (
	"math"
	"time"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// VelocityTracker estimates release velocity from drag samples. It lives for
// the duration of one drag.
type VelocityTracker struct {
	params   Params
	last     entity.Point
	lastAt   time.Time
	velocity Vector
}

// NewVelocityTracker starts a trace at the drag-start position.
func NewVelocityTracker(p Params, start entity.Point, at time.Time) *VelocityTracker {
	return &VelocityTracker{
		params: p,
		last:   start,
		lastAt: at,
	}
}

// Sample records a drag position. Samples with a non-positive or stale time
// delta never touch the velocity, and neither do near-still samples, so a
// final pause before release does not erase a throw.
func (vt *VelocityTracker) Sample(pos entity.Point, at time.Time) {
	dt := float64(at.Sub(vt.lastAt)) / float64(time.Millisecond)

	if dt > 0 && dt < vt.params.SampleWindowMs {
		inst := Vector{
			X: (pos.X - vt.last.X) / dt,
			Y: (pos.Y - vt.last.Y) / dt,
		}
		if math.Hypot(inst.X, inst.Y) > vt.params.NoiseFloor {
			vt.velocity = inst.Scale(vt.params.VelocityMultiplier)
		}
	}

	vt.last = pos
	vt.lastAt = at
}

// Velocity returns the smoothed velocity in px/tick.
func (vt *VelocityTracker) Velocity() Vector {
	return vt.velocity
}
