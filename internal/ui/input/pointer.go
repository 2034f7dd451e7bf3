package input

import (
	"fmt"
	"time"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// Phase is the stage of a pointer interaction.
type Phase string

const (
	PhaseDown Phase = "down"
	PhaseMove Phase = "move"
	PhaseUp   Phase = "up"
)

// Target is the part of the frame chrome under the pointer.
type Target string

const (
	TargetHeader       Target = "header"
	TargetBody         Target = "body"
	TargetResizeHandle Target = "resize"
	TargetDockHandle   Target = "dock-handle"
)

// PointerEvent is one pointer sample in viewport coordinates.
type PointerEvent struct {
	Phase  Phase     `json:"phase"`
	Target Target    `json:"target"`
	X      float64   `json:"x"`
	Y      float64   `json:"y"`
	At     time.Time `json:"at"`
}

// Point returns the pointer position.
func (e PointerEvent) Point() entity.Point {
	return entity.Point{X: e.X, Y: e.Y}
}

// Validate rejects unknown phases and targets.
func (e PointerEvent) Validate() error {
	switch e.Phase {
	case PhaseDown, PhaseMove, PhaseUp:
	default:
		return fmt.Errorf("unknown pointer phase %q", e.Phase)
	}
	switch e.Target {
	case TargetHeader, TargetBody, TargetResizeHandle, TargetDockHandle:
	default:
		return fmt.Errorf("unknown pointer target %q", e.Target)
	}
	return nil
}
