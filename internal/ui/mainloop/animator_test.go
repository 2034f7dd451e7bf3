package mainloop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualSchedule struct {
	queue []func()
	last  time.Duration
}

func (m *manualSchedule) schedule(d time.Duration, fn func()) {
	m.last = d
	m.queue = append(m.queue, fn)
}

func (m *manualSchedule) runNext() bool {
	if len(m.queue) == 0 {
		return false
	}
	fn := m.queue[0]
	m.queue = m.queue[1:]
	fn()
	return true
}

func TestAnimator_RunsUntilStepReturnsFalse(t *testing.T) {
	s := &manualSchedule{}
	a := NewAnimator(10*time.Millisecond, s.schedule)

	ticks := 0
	a.Start("v1", func() bool {
		ticks++
		return ticks < 3
	})
	assert.True(t, a.Running("v1"))
	assert.Equal(t, 10*time.Millisecond, s.last)

	for s.runNext() {
	}

	assert.Equal(t, 3, ticks)
	assert.False(t, a.Running("v1"))
}

func TestAnimator_CancelStopsQueuedTick(t *testing.T) {
	s := &manualSchedule{}
	a := NewAnimator(0, s.schedule)

	ticks := 0
	a.Start("v1", func() bool {
		ticks++
		return true
	})
	require.True(t, a.Cancel("v1"))
	assert.False(t, a.Cancel("v1"))

	for s.runNext() {
	}
	assert.Zero(t, ticks)
}

func TestAnimator_RestartReplacesRunningTask(t *testing.T) {
	s := &manualSchedule{}
	a := NewAnimator(0, s.schedule)

	first, second := 0, 0
	a.Start("v1", func() bool {
		first++
		return true
	})
	a.Start("v1", func() bool {
		second++
		return second < 2
	})

	for s.runNext() {
	}

	assert.Zero(t, first)
	assert.Equal(t, 2, second)
	assert.False(t, a.Running("v1"))
}

func TestAnimator_StepMayCancelItself(t *testing.T) {
	s := &manualSchedule{}
	a := NewAnimator(0, s.schedule)

	ticks := 0
	a.Start("v1", func() bool {
		ticks++
		a.Cancel("v1")
		return true
	})

	for s.runNext() {
	}
	assert.Equal(t, 1, ticks)
	assert.False(t, a.Running("v1"))
}

func TestAnimator_KeysAreIndependent(t *testing.T) {
	s := &manualSchedule{}
	a := NewAnimator(0, s.schedule)

	a.Start("a", func() bool { return true })
	a.Start("b", func() bool { return true })
	a.Cancel("a")

	assert.False(t, a.Running("a"))
	assert.True(t, a.Running("b"))
}
