package mainloop

import (
	"sync"
	"time"
)

// DefaultTickInterval is roughly one display frame.
const DefaultTickInterval = 16 * time.Millisecond

// Animator runs self-rescheduling tasks with at most one live task per key.
// A cancelled task may still have a tick queued; that tick sees a stale
// generation and does nothing.
type Animator struct {
	mu       sync.Mutex
	interval time.Duration
	schedule func(d time.Duration, fn func())
	live     map[string]uint64
	gen      uint64
}

// NewAnimator creates an animator. schedule must run fn after d on the
// goroutine that owns the animated state, e.g. Loop.PostAfter.
func NewAnimator(interval time.Duration, schedule func(d time.Duration, fn func())) *Animator {
	if schedule == nil {
		panic("mainloop.NewAnimator: schedule function cannot be nil")
	}
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Animator{
		interval: interval,
		schedule: schedule,
		live:     make(map[string]uint64),
	}
}

// Start runs step once per tick until it returns false, replacing any task
// already running under key.
func (a *Animator) Start(key string, step func() bool) {
	if key == "" || step == nil {
		return
	}

	a.mu.Lock()
	a.gen++
	gen := a.gen
	a.live[key] = gen
	a.mu.Unlock()

	a.tick(key, gen, step)
}

// Cancel stops the task under key.
func (a *Animator) Cancel(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.live[key]; !ok {
		return false
	}
	delete(a.live, key)
	return true
}

// Running reports whether a task is live under key.
func (a *Animator) Running(key string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	_, ok := a.live[key]
	return ok
}

func (a *Animator) tick(key string, gen uint64, step func() bool) {
	a.schedule(a.interval, func() {
		if !a.isLive(key, gen) {
			return
		}
		if !step() {
			a.finish(key, gen)
			return
		}
		if a.isLive(key, gen) {
			a.tick(key, gen, step)
		}
	})
}

func (a *Animator) isLive(key string, gen uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.live[key] == gen
}

func (a *Animator) finish(key string, gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.live[key] == gen {
		delete(a.live, key)
	}
}
