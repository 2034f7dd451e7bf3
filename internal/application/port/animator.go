package port

// Animator runs cancellable repeating tasks, at most one per key.
type Animator interface {
	// Start schedules step to run once per tick until it returns false.
	// A task already running under key is cancelled first.
	Start(key string, step func() bool)

	// Cancel stops the task under key. Returns false if none was running.
	Cancel(key string) bool

	// Running reports whether a task is live under key.
	Running(key string) bool
}
