package entity

// FrameID uniquely identifies a frame within the process. It is supplied by
// the caller and doubles as registry and persistence key.
type FrameID string

// FrameMode is the presentation state of a frame. Exactly one is active.
type FrameMode int

const (
	ModeInline FrameMode = iota // Embedded in the page layout (initial state)
	ModeFloating
	ModeDockedLeft
	ModeDockedRight
	ModeMaximized
)

// String returns a string representation of the mode.
func (m FrameMode) String() string {
	switch m {
	case ModeInline:
		return "inline"
	case ModeFloating:
		return "floating"
	case ModeDockedLeft:
		return "docked_left"
	case ModeDockedRight:
		return "docked_right"
	case ModeMaximized:
		return "maximized"
	default:
		return "unknown"
	}
}

// IsDetached reports whether the frame is out of the page flow.
func (m FrameMode) IsDetached() bool {
	return m != ModeInline
}

// IsDocked reports whether the frame is reduced to an edge handle.
func (m FrameMode) IsDocked() bool {
	return m == ModeDockedLeft || m == ModeDockedRight
}

// DockSide is the viewport edge a docked frame is anchored to.
type DockSide int

const (
	DockLeft DockSide = iota
	DockRight
)

// String returns a string representation of the dock side.
func (s DockSide) String() string {
	if s == DockRight {
		return "right"
	}
	return "left"
}

// Mode returns the frame mode for docking on this side.
func (s DockSide) Mode() FrameMode {
	if s == DockRight {
		return ModeDockedRight
	}
	return ModeDockedLeft
}

// ParseDockSide converts "left"/"right" to a DockSide.
func ParseDockSide(s string) (DockSide, bool) {
	switch s {
	case "left":
		return DockLeft, true
	case "right":
		return DockRight, true
	default:
		return DockLeft, false
	}
}

// LayoutSnapshot is a position/size pair, captured before maximizing and
// used as the persisted layout shape.
type LayoutSnapshot struct {
	Position Point `json:"position"`
	Size     Size  `json:"size"`
}

// LayoutEntry is a stored layout together with the frame it belongs to.
type LayoutEntry struct {
	ID     FrameID        `json:"id"`
	Layout LayoutSnapshot `json:"layout"`
}

// Frame is one floating/inline unit of content.
type Frame struct {
	ID       FrameID
	Mode     FrameMode
	Position Point // Meaningful outside Inline
	Size     Size  // Meaningful in Floating and Maximized
	ZIndex   int64

	// PreMaximize is non-nil only while Mode == ModeMaximized.
	PreMaximize *LayoutSnapshot

	// AspectRatio is width/height of the content area applied on resize.
	// Zero disables the lock.
	AspectRatio float64

	// DockY is the vertical offset of the dock handle while docked.
	DockY float64

	// Persist enables layout persistence under the frame id.
	Persist bool
}

// NewFrame creates a frame in the initial Inline state.
func NewFrame(id FrameID) *Frame {
	return &Frame{
		ID:   id,
		Mode: ModeInline,
	}
}

// Layout returns the current position and size.
func (f *Frame) Layout() LayoutSnapshot {
	return LayoutSnapshot{Position: f.Position, Size: f.Size}
}

// DockSide returns the side the frame is docked to, if any.
func (f *Frame) DockSide() (DockSide, bool) {
	switch f.Mode {
	case ModeDockedLeft:
		return DockLeft, true
	case ModeDockedRight:
		return DockRight, true
	default:
		return DockLeft, false
	}
}

// Clone returns a deep copy safe to hand to renderers.
func (f *Frame) Clone() Frame {
	c := *f
	if f.PreMaximize != nil {
		snap := *f.PreMaximize
		c.PreMaximize = &snap
	}
	return c
}

// HandleRect returns where the dock handle of a docked frame is drawn. Its
// top edge sits at DockY, kept inside the viewport.
func (f *Frame) HandleRect(handle Size, vp Viewport) (Rect, bool) {
	side, ok := f.DockSide()
	if !ok {
		return Rect{}, false
	}

	y := f.DockY
	if y > vp.Height-handle.Height {
		y = vp.Height - handle.Height
	}
	if y < 0 {
		y = 0
	}

	x := 0.0
	if side == DockRight {
		x = vp.Width - handle.Width
	}
	return Rect{X: x, Y: y, Width: handle.Width, Height: handle.Height}, true
}
