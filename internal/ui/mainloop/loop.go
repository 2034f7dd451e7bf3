// Package mainloop provides the cooperative event loop every frame mutation
// runs on, plus helpers for scheduling work onto it.
package mainloop

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/dockframe/internal/logging"
)

// ErrLoopStopped is returned when work is submitted after the loop exited.
var ErrLoopStopped = errors.New("main loop stopped")

const defaultQueueSize = 256

// Loop runs posted tasks one at a time on a single goroutine. A task always
// runs to completion before the next one starts, so state touched only from
// tasks needs no further coordination.
type Loop struct {
	tasks    chan func()
	stopped  chan struct{}
	stopOnce sync.Once
}

// NewLoop creates a loop with the given queue capacity.
func NewLoop(queueSize int) *Loop {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Loop{
		tasks:   make(chan func(), queueSize),
		stopped: make(chan struct{}),
	}
}

// Post queues fn. Returns false if the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	if fn == nil {
		return false
	}
	select {
	case <-l.stopped:
		return false
	default:
	}

	select {
	case l.tasks <- fn:
		return true
	case <-l.stopped:
		return false
	}
}

// PostAfter queues fn once d has elapsed.
func (l *Loop) PostAfter(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Call runs fn on the loop and waits for it to finish. It must not be
// called from a task already running on the loop.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if !l.Post(func() {
		defer close(done)
		fn()
	}) {
		return ErrLoopStopped
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes tasks until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) error {
	log := logging.FromContext(ctx)
	log.Debug().Msg("main loop started")
	defer l.stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("main loop stopped")
			return nil
		case fn := <-l.tasks:
			l.runTask(ctx, fn)
		}
	}
}

// Stopped returns a channel closed once the loop exits.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func (l *Loop) runTask(ctx context.Context, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error().Interface("panic", r).Msg("main loop task panicked")
		}
	}()
	fn()
}

func (l *Loop) stop() {
	l.stopOnce.Do(func() { close(l.stopped) })
}
