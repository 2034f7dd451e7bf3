package bootstrap

import (
	"context"
	"sync"

	"github.com/bnema/dockframe/internal/app/api"
	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/infrastructure/config"
	"github.com/bnema/dockframe/internal/infrastructure/persistence/layout"
	"github.com/bnema/dockframe/internal/logging"
	"github.com/bnema/dockframe/internal/ui/dispatcher"
	"github.com/bnema/dockframe/internal/ui/input"
	"github.com/bnema/dockframe/internal/ui/mainloop"
)

// Options configures NewRuntime.
type Options struct {
	Config *config.Config

	// Store replaces the store selected by Config.Persistence.Backend.
	// The runtime takes ownership and closes it.
	Store port.KeyValueStore

	// Rects answers slot rectangle queries when the shell does not push them.
	Rects port.RectReporter

	// QueueSize is the event loop queue capacity; zero uses the default.
	QueueSize int
}

// Runtime is the wired object graph behind every frame. All frame state is
// owned by Loop; callers outside it go through Loop.Call.
type Runtime struct {
	Loop     *mainloop.Loop
	Animator *mainloop.Animator
	Writes   *mainloop.Coalescer
	Store    port.KeyValueStore
	Layouts  *layout.Repository
	Frames   *usecase.FrameManager
	Drag     *usecase.DragController
	Gestures *dispatcher.GestureDispatcher
	Manage   *usecase.ManageLayoutsUseCase

	mu  sync.RWMutex
	cfg *config.Config

	closeOnce sync.Once
	closeErr  error
}

// NewRuntime opens the layout store and wires the frame manager, the drag
// controller and the gesture dispatcher onto a fresh event loop.
func NewRuntime(ctx context.Context, opts Options) (*Runtime, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := logging.FromContext(ctx)

	store := opts.Store
	if store == nil {
		var err error
		store, err = OpenStore(ctx, cfg.Persistence)
		if err != nil {
			return nil, err
		}
	}

	loop := mainloop.NewLoop(opts.QueueSize)
	animator := mainloop.NewAnimator(cfg.Physics.TickInterval(), loop.PostAfter)
	// PostAfter keeps writes posted from a loop task from blocking on a full queue.
	writes := mainloop.NewCoalescer(func(fn func()) { loop.PostAfter(0, fn) })

	layouts := NewLayoutRepository(ctx, store, cfg.Persistence)
	persist := usecase.NewPersistLayoutUseCase(layouts)
	persist.SetWriteCoalescer(writes.Post)

	frames := usecase.NewFrameManager(usecase.FrameManagerDeps{
		Geometry: cfg.Frame.Geometry(),
		Viewport: cfg.Viewport.Viewport(),
		Layouts:  persist,
		Rects:    opts.Rects,
		Animator: animator,
	})
	drag := usecase.NewDragController(frames, animator, cfg.Physics.Params())
	gestures := dispatcher.NewGestureDispatcher(ctx, frames, drag, input.NewTapTracker(0, 0))

	log.Debug().
		Str("backend", string(cfg.Persistence.Backend)).
		Dur("tick", cfg.Physics.TickInterval()).
		Msg("runtime wired")

	return &Runtime{
		cfg:      cfg,
		Loop:     loop,
		Animator: animator,
		Writes:   writes,
		Store:    store,
		Layouts:  layouts,
		Frames:   frames,
		Drag:     drag,
		Gestures: gestures,
		Manage:   usecase.NewManageLayoutsUseCase(layouts),
	}, nil
}

// Run drives the event loop until ctx is cancelled.
func (r *Runtime) Run(ctx context.Context) error {
	return r.Loop.Run(ctx)
}

// Config returns the configuration in effect: the startup configuration
// with the sections applied by ApplyConfig.
func (r *Runtime) Config() *config.Config {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Handler returns the HTTP API bound to this runtime.
func (r *Runtime) Handler() *api.Handler {
	return api.NewHandler(api.Deps{
		Frames:   r.Frames,
		Gestures: r.Gestures,
		Loop:     r.Loop,
		DockHandle: func() entity.Size {
			return r.Config().Frame.DockHandle()
		},
	})
}

// ApplyConfig adopts the geometry and physics sections of cfg. Persistence,
// server and tick settings need a restart and keep their running values.
func (r *Runtime) ApplyConfig(ctx context.Context, cfg *config.Config) {
	if cfg == nil {
		return
	}
	r.Frames.SetGeometry(ctx, cfg.Frame.Geometry())
	r.Drag.SetParams(cfg.Physics.Params())

	r.mu.Lock()
	next := *r.cfg
	next.Frame = cfg.Frame
	next.Physics = cfg.Physics
	next.Physics.TickIntervalMs = r.cfg.Physics.TickIntervalMs
	r.cfg = &next
	r.mu.Unlock()

	if cfg.Physics.TickInterval() != next.Physics.TickInterval() {
		logging.FromContext(ctx).Warn().Msg("physics.tick_interval_ms change takes effect after restart")
	}
	logging.FromContext(ctx).Info().Msg("configuration applied")
}

// Close drops queued layout writes and closes the store. Safe to call more
// than once.
func (r *Runtime) Close() error {
	r.closeOnce.Do(func() {
		r.Writes.Destroy()
		if r.Store != nil {
			r.closeErr = r.Store.Close()
		}
	})
	return r.closeErr
}
