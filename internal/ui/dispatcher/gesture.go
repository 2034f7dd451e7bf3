// Package dispatcher routes shell input into the frame use cases.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/logging"
	"github.com/bnema/dockframe/internal/ui/input"
)

// ErrUnknownAction is returned for an action the dispatcher does not handle.
var ErrUnknownAction = errors.New("unknown frame action")

type press struct {
	target input.Target
	origin entity.Point
	moved  bool
}

// GestureDispatcher turns named actions and raw pointer events into frame
// manager and drag controller calls. All methods must run on the event loop.
type GestureDispatcher struct {
	frames *usecase.FrameManager
	drag   *usecase.DragController
	taps   *input.TapTracker

	mu      sync.Mutex
	pressed map[entity.FrameID]*press
}

// NewGestureDispatcher creates a new GestureDispatcher.
func NewGestureDispatcher(
	ctx context.Context,
	frames *usecase.FrameManager,
	drag *usecase.DragController,
	taps *input.TapTracker,
) *GestureDispatcher {
	logging.FromContext(ctx).Debug().Msg("creating gesture dispatcher")

	if taps == nil {
		taps = input.NewTapTracker(0, 0)
	}
	return &GestureDispatcher{
		frames:  frames,
		drag:    drag,
		taps:    taps,
		pressed: make(map[entity.FrameID]*press),
	}
}

// Dispatch applies a named action to id and reports whether the frame
// changed. Dock actions use the frame's current vertical position.
func (d *GestureDispatcher) Dispatch(ctx context.Context, id entity.FrameID, action input.Action) (bool, error) {
	log := logging.FromContext(ctx)
	log.Debug().Str("frame_id", string(id)).Str("action", string(action)).Msg("dispatching frame action")

	switch action {
	case input.ActionDetach:
		return d.frames.Detach(ctx, id), nil
	case input.ActionAttach:
		return d.frames.Attach(ctx, id), nil
	case input.ActionMaximize:
		return d.frames.Maximize(ctx, id), nil
	case input.ActionRestore:
		return d.frames.Restore(ctx, id), nil
	case input.ActionToggleMaximize:
		return d.toggleMaximize(ctx, id), nil
	case input.ActionDockLeft:
		return d.dock(ctx, id, entity.DockLeft), nil
	case input.ActionDockRight:
		return d.dock(ctx, id, entity.DockRight), nil
	case input.ActionUndock:
		return d.frames.Undock(ctx, id), nil
	case input.ActionFocus:
		_, ok := d.frames.BringToFront(ctx, id)
		return ok, nil
	case input.ActionClose:
		d.forget(id)
		return d.frames.Close(ctx, id), nil
	default:
		log.Warn().Str("action", string(action)).Msg("unhandled frame action")
		return false, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// HandlePointer feeds one pointer event on id's chrome through the gesture
// rules: any press raises the frame, the header drags and double-tap toggles
// maximize, the corner handle resizes, and a click on a dock handle undocks.
func (d *GestureDispatcher) HandlePointer(ctx context.Context, id entity.FrameID, ev input.PointerEvent) (bool, error) {
	if err := ev.Validate(); err != nil {
		return false, err
	}

	switch ev.Phase {
	case input.PhaseDown:
		return d.pointerDown(ctx, id, ev), nil
	case input.PhaseMove:
		return d.pointerMove(ctx, id, ev), nil
	default:
		return d.pointerUp(ctx, id, ev), nil
	}
}

func (d *GestureDispatcher) pointerDown(ctx context.Context, id entity.FrameID, ev input.PointerEvent) bool {
	if _, ok := d.frames.Frame(id); !ok {
		return false
	}

	d.mu.Lock()
	d.pressed[id] = &press{target: ev.Target, origin: ev.Point()}
	d.mu.Unlock()

	_, raised := d.frames.BringToFront(ctx, id)

	switch ev.Target {
	case input.TargetHeader:
		return d.drag.DragStart(ctx, id, ev.Point(), ev.At) || raised
	case input.TargetResizeHandle:
		return d.drag.ResizeStart(ctx, id, ev.Point()) || raised
	default:
		return raised
	}
}

func (d *GestureDispatcher) pointerMove(ctx context.Context, id entity.FrameID, ev input.PointerEvent) bool {
	p := d.current(id)
	if p == nil {
		return false
	}
	if ev.Point().Sub(p.origin).Length() > d.taps.Slop() {
		d.mu.Lock()
		p.moved = true
		d.mu.Unlock()
	}

	switch p.target {
	case input.TargetHeader:
		return d.drag.DragMove(ctx, id, ev.Point(), ev.At)
	case input.TargetResizeHandle:
		return d.drag.ResizeMove(ctx, id, ev.Point())
	default:
		return false
	}
}

func (d *GestureDispatcher) pointerUp(ctx context.Context, id entity.FrameID, ev input.PointerEvent) bool {
	p := d.current(id)
	if p == nil {
		return false
	}
	d.mu.Lock()
	delete(d.pressed, id)
	moved := p.moved || ev.Point().Sub(p.origin).Length() > d.taps.Slop()
	d.mu.Unlock()

	switch p.target {
	case input.TargetHeader:
		changed := false
		if d.drag.Dragging(id) {
			changed = d.drag.DragEnd(ctx, id, ev.Point(), ev.At)
		}
		if moved {
			d.taps.Forget(id)
			return changed
		}
		if d.taps.Tap(id, ev.Point(), ev.At) {
			return d.toggleMaximize(ctx, id) || changed
		}
		return changed
	case input.TargetResizeHandle:
		return d.drag.ResizeEnd(ctx, id, ev.Point())
	case input.TargetDockHandle:
		if moved {
			return false
		}
		return d.frames.Undock(ctx, id)
	default:
		return false
	}
}

func (d *GestureDispatcher) toggleMaximize(ctx context.Context, id entity.FrameID) bool {
	frame, ok := d.frames.Frame(id)
	if !ok {
		return false
	}
	if frame.Mode == entity.ModeMaximized {
		return d.frames.Restore(ctx, id)
	}
	return d.frames.Maximize(ctx, id)
}

func (d *GestureDispatcher) dock(ctx context.Context, id entity.FrameID, side entity.DockSide) bool {
	frame, ok := d.frames.Frame(id)
	if !ok {
		return false
	}
	return d.frames.Dock(ctx, id, side, frame.Position.Y)
}

func (d *GestureDispatcher) current(id entity.FrameID) *press {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pressed[id]
}

func (d *GestureDispatcher) forget(id entity.FrameID) {
	d.mu.Lock()
	delete(d.pressed, id)
	d.mu.Unlock()
	d.taps.Forget(id)
}
