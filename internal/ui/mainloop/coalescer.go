package mainloop

import "sync"

// Coalescer merges bursts of same-key tasks into one posted callback that
// runs the latest function submitted for that key.
type Coalescer struct {
	mu        sync.Mutex
	latest    map[string]func()
	post      func(func())
	destroyed bool
}

// NewCoalescer creates a coalescer posting through post.
func NewCoalescer(post func(func())) *Coalescer {
	if post == nil {
		panic("mainloop.NewCoalescer: post function cannot be nil")
	}

	return &Coalescer{
		latest: make(map[string]func()),
		post:   post,
	}
}

// Post schedules fn under key. If a callback for key is already queued, fn
// replaces the function it will run and nothing new is posted.
func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, queued := c.latest[key]
	c.latest[key] = fn
	c.mu.Unlock()

	if queued {
		return
	}

	c.post(func() {
		c.mu.Lock()
		run, ok := c.latest[key]
		delete(c.latest, key)
		destroyed := c.destroyed
		c.mu.Unlock()

		if ok && !destroyed {
			run()
		}
	})
}

// Pending reports whether a callback for key is queued.
func (c *Coalescer) Pending(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.latest[key]
	return ok
}

// Destroy drops queued work; later posts are ignored.
func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.latest = map[string]func(){}
	c.mu.Unlock()
}
