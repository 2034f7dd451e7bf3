package usecase

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/service"
	"github.com/bnema/dockframe/internal/logging"
)

// FrameManagerDeps holds the collaborators of a FrameManager. Only Viewport
// is required; nil collaborators disable the matching feature.
type FrameManagerDeps struct {
	Geometry service.FloatingGeometry
	Viewport entity.Viewport
	ZOrder   *service.ZOrder
	Layouts  *PersistLayoutUseCase
	Rects    port.RectReporter
	Animator port.Animator
}

// FrameManager owns every frame and content record of the process. It is
// the state machine the presentation shell drives: operations that do not
// apply to a frame's current mode, or to an unknown id, are ignored and
// report false.
type FrameManager struct {
	mu       sync.Mutex
	frames   map[entity.FrameID]*entity.Frame
	records  map[entity.FrameID]*entity.ContentRecord
	seeded   map[entity.FrameID]bool
	viewport entity.Viewport

	geometry service.FloatingGeometry
	zorder   *service.ZOrder
	layouts  *PersistLayoutUseCase
	rects    port.RectReporter
	animator port.Animator
}

// NewFrameManager creates an empty frame manager.
func NewFrameManager(deps FrameManagerDeps) *FrameManager {
	if deps.ZOrder == nil {
		deps.ZOrder = service.NewZOrder(service.DefaultZBase)
	}
	if deps.Geometry == (service.FloatingGeometry{}) {
		deps.Geometry = service.DefaultFloatingGeometry()
	}
	return &FrameManager{
		frames:   make(map[entity.FrameID]*entity.Frame),
		records:  make(map[entity.FrameID]*entity.ContentRecord),
		seeded:   make(map[entity.FrameID]bool),
		viewport: deps.Viewport,
		geometry: deps.Geometry,
		zorder:   deps.ZOrder,
		layouts:  deps.Layouts,
		rects:    deps.Rects,
		animator: deps.Animator,
	}
}

// RegisterContent binds content to id. The first registration captures
// content for the life of the id, which ends only at Close; later
// registrations refresh the title and theme and never replace the handle.
// A missing frame is created in Inline mode, seeded from the persisted
// layout when there is one. Reports whether a frame was created.
func (m *FrameManager) RegisterContent(
	ctx context.Context,
	id entity.FrameID,
	content entity.ContentHandle,
	meta entity.ContentMetadata,
) bool {
	log := logging.FromContext(ctx)
	if id == "" || content == nil {
		log.Debug().Str("frame_id", string(id)).Msg("register ignored: empty id or content")
		return false
	}
	meta = meta.Normalized()

	persist, hasFrame := m.lookupRegistration(id, meta)
	if hasFrame {
		log.Debug().Str("frame_id", string(id)).Msg("content re-registered, handle kept")
		return false
	}

	var stored entity.LayoutSnapshot
	var hasStored bool
	if persist {
		stored, hasStored = m.layouts.Load(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if ok {
		rec.Metadata.Title = meta.Title
		rec.Metadata.Theme = meta.Theme
		rec.Declared = true
	} else {
		rec = entity.NewContentRecord(id, content, meta)
		m.records[id] = rec
	}

	// Lost a race with another registration while loading.
	if _, ok := m.frames[id]; ok {
		return false
	}

	frame := entity.NewFrame(id)
	frame.Persist = rec.Metadata.Persist
	frame.AspectRatio = rec.Metadata.AspectRatio
	if hasStored {
		frame.Position = stored.Position
		frame.Size = stored.Size
		m.seeded[id] = true
	}
	m.frames[id] = frame

	log.Debug().
		Str("frame_id", string(id)).
		Bool("persist", frame.Persist).
		Bool("seeded", hasStored).
		Msg("content registered")
	return true
}

// lookupRegistration refreshes the cosmetic metadata of a live frame and
// reports the persistence flag a new frame for id would get.
func (m *FrameManager) lookupRegistration(id entity.FrameID, meta entity.ContentMetadata) (persist, hasFrame bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return meta.Persist, false
	}
	if _, ok := m.frames[id]; !ok {
		return rec.Metadata.Persist, false
	}
	rec.Metadata.Title = meta.Title
	rec.Metadata.Theme = meta.Theme
	rec.Declared = true
	return rec.Metadata.Persist, true
}

// UnregisterContent tells the manager the declaring page is gone. A detached
// frame keeps rendering with its content. An inline frame is destroyed, but
// its content record stays behind, undeclared, so a later registration of
// the same id finds the original handle. Reports whether a frame was
// destroyed.
func (m *FrameManager) UnregisterContent(ctx context.Context, id entity.FrameID) bool {
	log := logging.FromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok {
		log.Debug().Str("frame_id", string(id)).Msg("unregister ignored: unknown frame")
		return false
	}

	rec := m.records[id]
	rec.Declared = false
	rec.SlotRect = nil

	if frame.Mode.IsDetached() {
		log.Debug().
			Str("frame_id", string(id)).
			Str("mode", frame.Mode.String()).
			Msg("frame detached, content retained after unregister")
		return false
	}

	m.cancelMomentum(id)
	delete(m.frames, id)
	delete(m.seeded, id)

	log.Debug().Str("frame_id", string(id)).Msg("content unregistered")
	return true
}

// ReportRect records the current on-screen rectangle of the inline slot.
func (m *FrameManager) ReportRect(ctx context.Context, id entity.FrameID, rect entity.Rect) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("rect ignored: unknown frame")
		return false
	}
	rec.SlotRect = &rect
	return true
}

// Detach lifts an inline frame out of the page flow. The frame needs a known
// slot rectangle, either from the rect reporter or from ReportRect.
func (m *FrameManager) Detach(ctx context.Context, id entity.FrameID) bool {
	log := logging.FromContext(ctx)

	var (
		reported   entity.Rect
		isReported bool
	)
	if m.rects != nil {
		reported, isReported = m.rects.SlotRect(ctx, id)
	}

	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeInline {
		m.mu.Unlock()
		log.Debug().Str("frame_id", string(id)).Msg("detach ignored: unknown frame or not inline")
		return false
	}

	rec := m.records[id]
	if isReported {
		rec.SlotRect = &reported
	}
	if rec.SlotRect == nil {
		m.mu.Unlock()
		log.Debug().Str("frame_id", string(id)).Msg("detach ignored: slot rect unknown")
		return false
	}

	var layout entity.LayoutSnapshot
	if m.seeded[id] {
		layout = frame.Layout()
		layout.Position = m.geometry.FitToViewport(layout.Position, layout.Size, m.viewport)
		delete(m.seeded, id)
	} else {
		layout = m.geometry.InitialLayout(*rec.SlotRect, m.viewport)
	}

	frame.Mode = entity.ModeFloating
	frame.Position = layout.Position
	frame.Size = layout.Size
	frame.ZIndex = m.zorder.Next()
	z := frame.ZIndex
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	log.Debug().
		Str("frame_id", string(id)).
		Float64("width", layout.Size.Width).
		Float64("height", layout.Size.Height).
		Int64("z_index", z).
		Msg("frame detached")

	if persist {
		m.layouts.Save(ctx, id, save)
	}
	return true
}

// Attach returns a detached frame to the page flow. A frame whose page has
// already unregistered it has no slot to return to and is dropped; its
// content record stays so a later registration gets the same handle back.
func (m *FrameManager) Attach(ctx context.Context, id entity.FrameID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || !frame.Mode.IsDetached() {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("attach ignored: unknown frame or inline")
		return false
	}

	m.cancelMomentum(id)
	if rec, ok := m.records[id]; ok && !rec.Declared {
		delete(m.frames, id)
		delete(m.seeded, id)
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("frame attached without a page, dropped")
		return true
	}

	frame.Mode = entity.ModeInline
	frame.PreMaximize = nil
	frame.DockY = 0

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("frame attached")
	return true
}

// Maximize fills the viewport with a floating or docked frame, remembering
// the geometry to restore. Maximizing a maximized frame does nothing.
func (m *FrameManager) Maximize(ctx context.Context, id entity.FrameID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || (frame.Mode != entity.ModeFloating && !frame.Mode.IsDocked()) {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("maximize ignored")
		return false
	}

	m.cancelMomentum(id)
	snap := frame.Layout()
	frame.PreMaximize = &snap
	frame.Mode = entity.ModeMaximized
	frame.Position = entity.Point{}
	frame.Size = m.viewport.Size()
	frame.ZIndex = m.zorder.Next()

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("frame maximized")
	return true
}

// Restore leaves Maximized and puts back the geometry captured on entry.
func (m *FrameManager) Restore(ctx context.Context, id entity.FrameID) bool {
	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeMaximized || frame.PreMaximize == nil {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("restore ignored")
		return false
	}

	frame.Position = frame.PreMaximize.Position
	frame.Size = frame.PreMaximize.Size
	frame.PreMaximize = nil
	frame.Mode = entity.ModeFloating
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("frame restored")
	if persist {
		m.layouts.Save(ctx, id, save)
	}
	return true
}

// Dock reduces a floating frame to an edge handle at vertical offset y. The
// content stays registered and its floating geometry is kept for undock.
func (m *FrameManager) Dock(ctx context.Context, id entity.FrameID, side entity.DockSide, y float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("dock ignored: not floating")
		return false
	}

	m.cancelMomentum(id)
	frame.Mode = side.Mode()
	frame.DockY = y

	logging.FromContext(ctx).Debug().
		Str("frame_id", string(id)).
		Str("side", side.String()).
		Float64("y", y).
		Msg("frame docked")
	return true
}

// Undock brings a docked frame back next to the edge it was docked on.
func (m *FrameManager) Undock(ctx context.Context, id entity.FrameID) bool {
	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("undock ignored: unknown frame")
		return false
	}
	side, docked := frame.DockSide()
	if !docked {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("undock ignored: not docked")
		return false
	}

	frame.Position = m.geometry.UndockPosition(side, frame.DockY, frame.Size, m.viewport)
	frame.Mode = entity.ModeFloating
	frame.DockY = 0
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Str("side", side.String()).Msg("frame undocked")
	if persist {
		m.layouts.Save(ctx, id, save)
	}
	return true
}

// UpdatePosition moves a floating frame and persists the result.
func (m *FrameManager) UpdatePosition(ctx context.Context, id entity.FrameID, pos entity.Point) bool {
	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("position update ignored")
		return false
	}

	m.cancelMomentum(id)
	frame.Position = pos
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	if persist {
		m.layouts.Save(ctx, id, save)
	}
	return true
}

// UpdateSize resizes a floating frame, applying the minimum size and the
// aspect lock, and persists the result.
func (m *FrameManager) UpdateSize(ctx context.Context, id entity.FrameID, size entity.Size) bool {
	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("size update ignored")
		return false
	}

	frame.Size = m.geometry.ResizeTo(size, frame.AspectRatio)
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	if persist {
		m.layouts.Save(ctx, id, save)
	}
	return true
}

// BringToFront gives a detached frame the next z-index and returns it.
func (m *FrameManager) BringToFront(ctx context.Context, id entity.FrameID) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || !frame.Mode.IsDetached() {
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("bring to front ignored")
		return 0, false
	}

	frame.ZIndex = m.zorder.Next()
	return frame.ZIndex, true
}

// Close ends the life of id whatever its mode: the frame, its content
// record and its persisted layout are removed.
func (m *FrameManager) Close(ctx context.Context, id entity.FrameID) bool {
	m.mu.Lock()
	rec, ok := m.records[id]
	if !ok {
		m.mu.Unlock()
		logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("close ignored: unknown frame")
		return false
	}

	m.cancelMomentum(id)
	persisted := rec.Metadata.Persist
	delete(m.frames, id)
	delete(m.records, id)
	delete(m.seeded, id)
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Str("frame_id", string(id)).Msg("frame closed")
	if persisted {
		m.layouts.Remove(ctx, id)
	}
	return true
}

// SetViewport records a viewport resize. Maximized frames follow the new
// size and floating frames are moved back on screen.
func (m *FrameManager) SetViewport(ctx context.Context, vp entity.Viewport) {
	type pending struct {
		id     entity.FrameID
		layout entity.LayoutSnapshot
	}
	var saves []pending

	m.mu.Lock()
	m.viewport = vp
	for id, frame := range m.frames {
		switch frame.Mode {
		case entity.ModeMaximized:
			frame.Position = entity.Point{}
			frame.Size = vp.Size()
		case entity.ModeFloating:
			pos := m.geometry.FitToViewport(frame.Position, frame.Size, vp)
			if pos == frame.Position {
				continue
			}
			frame.Position = pos
			if layout, ok := settledLayout(frame); ok {
				saves = append(saves, pending{id: id, layout: layout})
			}
		}
	}
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().
		Float64("width", vp.Width).
		Float64("height", vp.Height).
		Int("refit", len(saves)).
		Msg("viewport updated")

	for _, p := range saves {
		m.layouts.Save(ctx, p.id, p.layout)
	}
}

// SetGeometry replaces the floating geometry rules. Frames keep their
// current layout until their next transition.
func (m *FrameManager) SetGeometry(ctx context.Context, g service.FloatingGeometry) {
	m.mu.Lock()
	m.geometry = g
	m.mu.Unlock()

	logging.FromContext(ctx).Debug().Msg("floating geometry updated")
}

// Viewport returns the last reported viewport.
func (m *FrameManager) Viewport() entity.Viewport {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.viewport
}

// IsDetached reports whether id is out of the page flow.
func (m *FrameManager) IsDetached(id entity.FrameID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	return ok && frame.Mode.IsDetached()
}

// IsDocked reports whether id is reduced to an edge handle.
func (m *FrameManager) IsDocked(id entity.FrameID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	return ok && frame.Mode.IsDocked()
}

// Frame returns a copy of the frame state for rendering.
func (m *FrameManager) Frame(id entity.FrameID) (entity.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok {
		return entity.Frame{}, false
	}
	return frame.Clone(), true
}

// Frames returns copies of all frames in draw order: inline frames first,
// then detached frames by ascending z-index.
func (m *FrameManager) Frames() []entity.Frame {
	m.mu.Lock()
	out := make([]entity.Frame, 0, len(m.frames))
	for _, frame := range m.frames {
		out = append(out, frame.Clone())
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].Mode.IsDetached(), out[j].Mode.IsDetached()
		if di != dj {
			return dj
		}
		if out[i].ZIndex != out[j].ZIndex {
			return out[i].ZIndex < out[j].ZIndex
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Content returns the handle captured at first registration.
func (m *FrameManager) Content(id entity.FrameID) (entity.ContentHandle, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, false
	}
	return rec.Content, true
}

// Record returns a copy of the content record of id.
func (m *FrameManager) Record(id entity.FrameID) (entity.ContentRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return entity.ContentRecord{}, false
	}
	out := *rec
	if rec.SlotRect != nil {
		r := *rec.SlotRect
		out.SlotRect = &r
	}
	return out, true
}

// beginGesture prepares a floating frame for a pointer gesture: any momentum
// is cancelled and the frame is raised. Returns the frame state after that.
func (m *FrameManager) beginGesture(id entity.FrameID) (entity.Frame, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		return entity.Frame{}, false
	}
	m.cancelMomentum(id)
	frame.ZIndex = m.zorder.Next()
	return frame.Clone(), true
}

// previewPosition moves a floating frame during a live gesture without
// persisting.
func (m *FrameManager) previewPosition(id entity.FrameID, pos entity.Point) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		return false
	}
	frame.Position = pos
	return true
}

// previewSize resizes a floating frame during a live gesture without
// persisting. Returns the size actually applied.
func (m *FrameManager) previewSize(id entity.FrameID, size entity.Size) (entity.Size, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		return entity.Size{}, false
	}
	frame.Size = m.geometry.ResizeTo(size, frame.AspectRatio)
	return frame.Size, true
}

// advance replaces a floating frame's position with fn's result. fn sees a
// copy of the frame and the current viewport. Used by momentum ticks.
func (m *FrameManager) advance(
	id entity.FrameID,
	fn func(frame entity.Frame, vp entity.Viewport) entity.Point,
) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	frame, ok := m.frames[id]
	if !ok || frame.Mode != entity.ModeFloating {
		return false
	}
	frame.Position = fn(frame.Clone(), m.viewport)
	return true
}

// settle persists the current layout of id once a gesture or animation ends.
func (m *FrameManager) settle(ctx context.Context, id entity.FrameID) {
	m.mu.Lock()
	frame, ok := m.frames[id]
	if !ok {
		m.mu.Unlock()
		return
	}
	save, persist := settledLayout(frame)
	m.mu.Unlock()

	if persist {
		m.layouts.Save(ctx, id, save)
	}
}

// cancelMomentum stops the momentum task of id. Callers hold m.mu.
func (m *FrameManager) cancelMomentum(id entity.FrameID) {
	if m.animator != nil {
		m.animator.Cancel(momentumKey(id))
	}
}

func momentumKey(id entity.FrameID) string {
	return "momentum:" + string(id)
}

// settledLayout returns the layout to persist for frame, if any. Only
// floating frames with persistence enabled are written; docked and maximized
// geometry is derived and never stored.
func settledLayout(frame *entity.Frame) (entity.LayoutSnapshot, bool) {
	if !frame.Persist || frame.Mode != entity.ModeFloating {
		return entity.LayoutSnapshot{}, false
	}
	return frame.Layout(), true
}
