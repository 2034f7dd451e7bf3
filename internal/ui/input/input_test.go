package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dockframe/internal/domain/entity"
)

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("dock-left")
	assert.True(t, ok)
	assert.Equal(t, ActionDockLeft, a)

	_, ok = ParseAction("minimize")
	assert.False(t, ok)

	assert.Len(t, Actions(), 10)
	assert.Equal(t, ActionAttach, Actions()[0])
}

func TestTapTracker(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	tt := NewTapTracker(0, 0)

	assert.False(t, tt.Tap("v1", entity.Point{X: 10, Y: 10}, base))
	assert.True(t, tt.Tap("v1", entity.Point{X: 12, Y: 14}, base.Add(200*time.Millisecond)))

	// A completed double-tap is consumed.
	assert.False(t, tt.Tap("v1", entity.Point{X: 12, Y: 14}, base.Add(300*time.Millisecond)))

	// Too far apart in space.
	assert.False(t, tt.Tap("v1", entity.Point{X: 40, Y: 14}, base.Add(350*time.Millisecond)))

	// Too far apart in time.
	assert.False(t, tt.Tap("v1", entity.Point{X: 40, Y: 14}, base.Add(time.Second)))

	// Frames are tracked independently.
	assert.False(t, tt.Tap("v2", entity.Point{X: 40, Y: 14}, base.Add(time.Second+10*time.Millisecond)))

	tt.Forget("v1")
	assert.False(t, tt.Tap("v1", entity.Point{X: 40, Y: 14}, base.Add(time.Second+20*time.Millisecond)))
}

func TestPointerEvent_Validate(t *testing.T) {
	assert.NoError(t, PointerEvent{Phase: PhaseMove, Target: TargetResizeHandle}.Validate())
	assert.Error(t, PointerEvent{Phase: "press", Target: TargetHeader}.Validate())
	assert.Error(t, PointerEvent{Phase: PhaseUp}.Validate())
	assert.Equal(t, entity.Point{X: 3, Y: 4}, PointerEvent{X: 3, Y: 4}.Point())
}
