package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	"github.com/bnema/dockframe/internal/logging"
)

type dragState struct {
	offset  entity.Point // Pointer position relative to the frame origin
	tracker *physics.VelocityTracker
}

type resizeState struct {
	origin entity.Point // Pointer position at resize start
	start  entity.Size
}

// DragController turns pointer gestures on a floating frame into live moves,
// resizes and post-release momentum. Live updates are never persisted; the
// layout is written once the gesture or its momentum settles.
type DragController struct {
	mu       sync.Mutex
	manager  *FrameManager
	animator port.Animator
	params   physics.Params
	drags    map[entity.FrameID]*dragState
	resizes  map[entity.FrameID]*resizeState
}

// NewDragController creates a drag controller driving manager. Without an
// animator every release snaps in place.
func NewDragController(manager *FrameManager, animator port.Animator, params physics.Params) *DragController {
	return &DragController{
		manager:  manager,
		animator: animator,
		params:   params,
		drags:    make(map[entity.FrameID]*dragState),
		resizes:  make(map[entity.FrameID]*resizeState),
	}
}

// DragStart begins moving a floating frame. Any momentum still running for
// the frame is cancelled before the new velocity trace starts.
func (dc *DragController) DragStart(ctx context.Context, id entity.FrameID, pointer entity.Point, at time.Time) bool {
	frame, ok := dc.manager.beginGesture(id)
	if !ok {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("drag start ignored: not floating")
		return false
	}

	dc.mu.Lock()
	dc.drags[id] = &dragState{
		offset:  pointer.Sub(frame.Position),
		tracker: physics.NewVelocityTracker(dc.params, frame.Position, at),
	}
	delete(dc.resizes, id)
	dc.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("drag started")
	return true
}

// DragMove follows the pointer, keeping the frame inside the viewport.
func (dc *DragController) DragMove(ctx context.Context, id entity.FrameID, pointer entity.Point, at time.Time) bool {
	dc.mu.Lock()
	state, ok := dc.drags[id]
	dc.mu.Unlock()
	if !ok {
		return false
	}

	moved := dc.manager.advance(id, func(frame entity.Frame, vp entity.Viewport) entity.Point {
		pos, _ := physics.Clamp(pointer.Sub(state.offset), frame.Size, vp)
		state.tracker.Sample(pos, at)
		return pos
	})
	if !moved {
		dc.forgetDrag(id)
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("drag abandoned: frame left floating")
	}
	return moved
}

// DragEnd releases the frame. A fast enough release starts momentum, which
// may end in an edge dock; a slow one settles in place.
func (dc *DragController) DragEnd(ctx context.Context, id entity.FrameID, pointer entity.Point, at time.Time) bool {
	if !dc.DragMove(ctx, id, pointer, at) {
		return false
	}

	dc.mu.Lock()
	state := dc.drags[id]
	delete(dc.drags, id)
	dc.mu.Unlock()
	if state == nil {
		return false
	}

	v := state.tracker.Velocity()
	if dc.animator == nil || !physics.ShouldAnimate(v, dc.tuning()) {
		dc.manager.settle(ctx, id)
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("drag settled")
		return true
	}

	logging.FromContext(ctx).Debug().
		Str("frame_id", string(id)).
		Float64("vx", v.X).
		Float64("vy", v.Y).
		Msg("momentum started")
	dc.startMomentum(ctx, id, v)
	return true
}

// Throw starts momentum from the frame's current position with velocity v
// in px/tick, as if a drag had just been released.
func (dc *DragController) Throw(ctx context.Context, id entity.FrameID, v physics.Vector) bool {
	if dc.animator == nil {
		return false
	}
	if _, ok := dc.manager.beginGesture(id); !ok {
		return false
	}
	dc.forgetDrag(id)
	dc.startMomentum(ctx, id, v)
	return true
}

func (dc *DragController) startMomentum(ctx context.Context, id entity.FrameID, v physics.Vector) {
	var last physics.StepResult
	params := dc.tuning()

	dc.animator.Start(momentumKey(id), func() bool {
		live := dc.manager.advance(id, func(frame entity.Frame, vp entity.Viewport) entity.Point {
			last = physics.Step(frame.Position, v, frame.Size, vp, params)
			return last.Position
		})
		if !live {
			return false
		}
		v = last.Velocity

		switch last.Outcome {
		case physics.OutcomeContinue:
			return true
		case physics.OutcomeDock:
			side, _ := last.Edge.DockSide()
			dc.manager.Dock(ctx, id, side, last.Position.Y)
		default:
			dc.manager.settle(ctx, id)
			logging.FromContext(ctx).Debug().
				Str("frame_id", string(id)).
				Str("outcome", last.Outcome.String()).
				Msg("momentum ended")
		}
		return false
	})
}

// SetParams replaces the physics tuning. Gestures and momentum already in
// flight keep the tuning they started with.
func (dc *DragController) SetParams(params physics.Params) {
	dc.mu.Lock()
	dc.params = params
	dc.mu.Unlock()
}

func (dc *DragController) tuning() physics.Params {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	return dc.params
}

// Momentum reports whether a momentum animation is running for id.
func (dc *DragController) Momentum(id entity.FrameID) bool {
	return dc.animator != nil && dc.animator.Running(momentumKey(id))
}

// Dragging reports whether a drag gesture is in progress for id.
func (dc *DragController) Dragging(id entity.FrameID) bool {
	dc.mu.Lock()
	defer dc.mu.Unlock()
	_, ok := dc.drags[id]
	return ok
}

// ResizeStart begins resizing a floating frame from its bottom-right corner.
func (dc *DragController) ResizeStart(ctx context.Context, id entity.FrameID, pointer entity.Point) bool {
	frame, ok := dc.manager.beginGesture(id)
	if !ok {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("resize start ignored: not floating")
		return false
	}

	dc.mu.Lock()
	dc.resizes[id] = &resizeState{origin: pointer, start: frame.Size}
	delete(dc.drags, id)
	dc.mu.Unlock()
	return true
}

// ResizeMove applies the pointer delta to the size captured at start.
func (dc *DragController) ResizeMove(ctx context.Context, id entity.FrameID, pointer entity.Point) bool {
	dc.mu.Lock()
	state, ok := dc.resizes[id]
	dc.mu.Unlock()
	if !ok {
		return false
	}

	delta := pointer.Sub(state.origin)
	_, ok = dc.manager.previewSize(id, entity.Size{
		Width:  state.start.Width + delta.X,
		Height: state.start.Height + delta.Y,
	})
	if !ok {
		dc.mu.Lock()
		delete(dc.resizes, id)
		dc.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("resize abandoned: frame left floating")
	}
	return ok
}

// ResizeEnd applies the final pointer position and persists the size.
func (dc *DragController) ResizeEnd(ctx context.Context, id entity.FrameID, pointer entity.Point) bool {
	if !dc.ResizeMove(ctx, id, pointer) {
		return false
	}

	dc.mu.Lock()
	delete(dc.resizes, id)
	dc.mu.Unlock()

	dc.manager.settle(ctx, id)
	return true
}

func (dc *DragController) forgetDrag(id entity.FrameID) {
	dc.mu.Lock()
	delete(dc.drags, id)
	dc.mu.Unlock()
}
