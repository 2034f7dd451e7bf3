package port

import (
	"context"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// RectReporter is the host layout boundary: it returns the current on-screen
// rectangle of a frame's inline slot on demand.
type RectReporter interface {
	// SlotRect returns the slot rectangle, or false if the slot is not laid out.
	SlotRect(ctx context.Context, id entity.FrameID) (entity.Rect, bool)
}
