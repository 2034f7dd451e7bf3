package input

import (
	"sync"
	"time"

	"github.com/bnema/dockframe/internal/domain/entity"
)

const (
	// DefaultDoubleTapWindow is the longest gap between two taps of a double-tap.
	DefaultDoubleTapWindow = 300 * time.Millisecond
	// DefaultTapSlop is how far (px) a pointer may travel and still count as a tap.
	DefaultTapSlop = 8.0
)

type tap struct {
	at    time.Time
	point entity.Point
}

// TapTracker recognizes double-taps per frame.
type TapTracker struct {
	mu     sync.Mutex
	window time.Duration
	slop   float64
	last   map[entity.FrameID]tap
}

// NewTapTracker creates a tracker. Non-positive arguments use the defaults.
func NewTapTracker(window time.Duration, slop float64) *TapTracker {
	if window <= 0 {
		window = DefaultDoubleTapWindow
	}
	if slop <= 0 {
		slop = DefaultTapSlop
	}
	return &TapTracker{
		window: window,
		slop:   slop,
		last:   make(map[entity.FrameID]tap),
	}
}

// Slop returns the tap movement tolerance.
func (t *TapTracker) Slop() float64 {
	return t.slop
}

// Tap records a tap and reports whether it completes a double-tap. A
// completed double-tap is consumed, so a third tap starts over.
func (t *TapTracker) Tap(id entity.FrameID, p entity.Point, at time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev, ok := t.last[id]
	if ok {
		gap := at.Sub(prev.at)
		if gap >= 0 && gap <= t.window && p.Sub(prev.point).Length() <= t.slop {
			delete(t.last, id)
			return true
		}
	}
	t.last[id] = tap{at: at, point: p}
	return false
}

// Forget drops any pending tap for id.
func (t *TapTracker) Forget(id entity.FrameID) {
	t.mu.Lock()
	delete(t.last, id)
	t.mu.Unlock()
}
