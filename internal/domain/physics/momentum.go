// Package physics turns pointer motion into post-release momentum and decides
// when a throw ends in an edge dock. Everything here is pure: callers own the
// clock and the animation loop.
package physics

import (
	"math"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// Default tuning constants.
const (
	DefaultVelocityMultiplier = 16.0 // px/ms to px/tick at ~60fps
	DefaultNoiseFloor         = 0.1  // px/ms
	DefaultSampleWindowMs     = 100.0
	DefaultMomentumThreshold  = 2.0 // px/tick
	DefaultDockSpeedThreshold = 8.0 // px/tick
	DefaultFriction           = 0.92
	DefaultMinVelocity        = 0.5 // px/tick
)

// Params tunes velocity estimation and momentum decay.
type Params struct {
	VelocityMultiplier float64
	NoiseFloor         float64 // Instantaneous speeds at or below this (px/ms) are ignored
	SampleWindowMs     float64 // Samples are taken only when 0 < dt < window
	MomentumThreshold  float64 // Release speed above this starts an animation
	DockSpeedThreshold float64 // Edge hits at or above this speed dock the frame
	Friction           float64 // Per-tick velocity decay, < 1
	MinVelocity        float64 // Animation stops once both components fall below this
}

// DefaultParams returns the default tuning.
func DefaultParams() Params {
	return Params{
		VelocityMultiplier: DefaultVelocityMultiplier,
		NoiseFloor:         DefaultNoiseFloor,
		SampleWindowMs:     DefaultSampleWindowMs,
		MomentumThreshold:  DefaultMomentumThreshold,
		DockSpeedThreshold: DefaultDockSpeedThreshold,
		Friction:           DefaultFriction,
		MinVelocity:        DefaultMinVelocity,
	}
}

// Vector is a velocity in px/tick.
type Vector struct {
	X float64
	Y float64
}

// Speed returns the vector magnitude.
func (v Vector) Speed() float64 {
	return math.Hypot(v.X, v.Y)
}

// Scale returns v multiplied by f.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// ShouldAnimate reports whether a release velocity is fast enough to start
// momentum; slower releases snap to the release position.
func ShouldAnimate(v Vector, p Params) bool {
	return v.Speed() > p.MomentumThreshold
}

// Edge is a horizontal viewport bound hit by a clamp.
type Edge int

const (
	EdgeNone Edge = iota
	EdgeLeft
	EdgeRight
)

// DockSide maps an edge to the side a frame docks on.
func (e Edge) DockSide() (entity.DockSide, bool) {
	switch e {
	case EdgeLeft:
		return entity.DockLeft, true
	case EdgeRight:
		return entity.DockRight, true
	default:
		return entity.DockLeft, false
	}
}

// Clamp keeps a frame of the given size inside the viewport and reports which
// horizontal bound, if any, was crossed.
func Clamp(pos entity.Point, frame entity.Size, vp entity.Viewport) (entity.Point, Edge) {
	maxX := math.Max(0, vp.Width-frame.Width)
	maxY := math.Max(0, vp.Height-frame.Height)

	edge := EdgeNone
	switch {
	case pos.X < 0:
		pos.X = 0
		edge = EdgeLeft
	case pos.X > maxX:
		pos.X = maxX
		edge = EdgeRight
	}

	if pos.Y < 0 {
		pos.Y = 0
	} else if pos.Y > maxY {
		pos.Y = maxY
	}

	return pos, edge
}

// Outcome is what the animation should do after a tick.
type Outcome int

const (
	OutcomeContinue Outcome = iota // Keep ticking with the decayed velocity
	OutcomeDock                    // Edge hit at dock speed: dock and stop
	OutcomeStop                    // Edge hit below dock speed: stop in place
	OutcomeSettle                  // Velocity decayed below the floor
)

// String returns a string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeContinue:
		return "continue"
	case OutcomeDock:
		return "dock"
	case OutcomeStop:
		return "stop"
	case OutcomeSettle:
		return "settle"
	default:
		return "unknown"
	}
}

// StepResult is the state after one momentum tick.
type StepResult struct {
	Position entity.Point
	Velocity Vector
	Outcome  Outcome
	Edge     Edge
}

// Step advances one animation tick.
func Step(pos entity.Point, v Vector, frame entity.Size, vp entity.Viewport, p Params) StepResult {
	next, edge := Clamp(entity.Point{X: pos.X + v.X, Y: pos.Y + v.Y}, frame, vp)

	if edge != EdgeNone {
		outcome := OutcomeStop
		if v.Speed() >= p.DockSpeedThreshold {
			outcome = OutcomeDock
		}
		return StepResult{Position: next, Velocity: Vector{}, Outcome: outcome, Edge: edge}
	}

	decayed := v.Scale(p.Friction)
	if math.Abs(decayed.X) > p.MinVelocity || math.Abs(decayed.Y) > p.MinVelocity {
		return StepResult{Position: next, Velocity: decayed, Outcome: OutcomeContinue}
	}
	return StepResult{Position: next, Velocity: Vector{}, Outcome: OutcomeSettle}
}
