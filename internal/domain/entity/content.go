package entity

import "time"

// ContentHandle is an opaque reference to the embedded content node (a
// document, a video element, a remote node id). The manager stores the value
// it is given at first registration and never builds or swaps one.
type ContentHandle any

// Theme selects the chrome color scheme of a frame.
type Theme string

const (
	ThemeDefault Theme = "default"
	ThemeDark    Theme = "dark"
	ThemeLight   Theme = "light"
)

// ContentMetadata describes how a frame is presented.
// Title and Theme are cosmetic and may be refreshed by later registrations;
// Persist and AspectRatio are fixed when the frame is created.
type ContentMetadata struct {
	Title       string
	Theme       Theme   // Empty means ThemeDefault
	Persist     bool    // Store {position, size} under the frame id
	AspectRatio float64 // Content width/height; zero disables the resize lock
}

// Normalized fills documented defaults.
func (m ContentMetadata) Normalized() ContentMetadata {
	switch m.Theme {
	case ThemeDark, ThemeLight, ThemeDefault:
	default:
		m.Theme = ThemeDefault
	}
	if m.AspectRatio < 0 {
		m.AspectRatio = 0
	}
	return m
}

// ContentRecord binds a frame id to its content handle.
type ContentRecord struct {
	ID       FrameID
	Content  ContentHandle
	Metadata ContentMetadata

	// SlotRect is the last on-screen rectangle reported for the inline slot.
	SlotRect *Rect

	// Declared is false once the declaring page unregistered the id while the
	// frame was detached.
	Declared bool

	RegisteredAt time.Time
}

// NewContentRecord creates a declared record.
func NewContentRecord(id FrameID, content ContentHandle, meta ContentMetadata) *ContentRecord {
	return &ContentRecord{
		ID:           id,
		Content:      content,
		Metadata:     meta.Normalized(),
		Declared:     true,
		RegisteredAt: time.Now(),
	}
}
