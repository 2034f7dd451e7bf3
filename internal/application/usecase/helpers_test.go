package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/physics"
	repomocks "github.com/bnema/dockframe/internal/domain/repository/mocks"
	"github.com/bnema/dockframe/internal/logging"
	"github.com/bnema/dockframe/internal/ui/mainloop"
)

var testViewport = entity.Viewport{Width: 1280, Height: 800}

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

type fakeContent struct {
	name string
}

// manualScheduler queues animator ticks until the test runs them.
type manualScheduler struct {
	queue []func()
}

func (s *manualScheduler) schedule(_ time.Duration, fn func()) {
	s.queue = append(s.queue, fn)
}

// drain runs queued ticks, including ones they schedule, up to limit.
func (s *manualScheduler) drain(limit int) int {
	n := 0
	for len(s.queue) > 0 && n < limit {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
		n++
	}
	return n
}

// layoutStore backs a layout repository mock with a map.
type layoutStore struct {
	mu      sync.Mutex
	entries map[entity.FrameID]entity.LayoutSnapshot
	writes  int
}

func (s *layoutStore) get(id entity.FrameID) (entity.LayoutSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.entries[id]
	return l, ok
}

func newLayoutRepo(t *testing.T) (*repomocks.MockLayoutRepository, *layoutStore) {
	t.Helper()

	store := &layoutStore{entries: make(map[entity.FrameID]entity.LayoutSnapshot)}
	repo := repomocks.NewMockLayoutRepository(t)

	repo.EXPECT().Get(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id entity.FrameID) (*entity.LayoutSnapshot, error) {
			l, ok := store.get(id)
			if !ok {
				return nil, nil
			}
			return &l, nil
		}).Maybe()
	repo.EXPECT().Set(mock.Anything, mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id entity.FrameID, l entity.LayoutSnapshot) error {
			store.mu.Lock()
			defer store.mu.Unlock()
			store.entries[id] = l
			store.writes++
			return nil
		}).Maybe()
	repo.EXPECT().Delete(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, id entity.FrameID) error {
			store.mu.Lock()
			defer store.mu.Unlock()
			delete(store.entries, id)
			return nil
		}).Maybe()

	return repo, store
}

type testRig struct {
	ctx     context.Context
	manager *usecase.FrameManager
	drag    *usecase.DragController
	sched   *manualScheduler
	store   *layoutStore
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()

	repo, store := newLayoutRepo(t)
	sched := &manualScheduler{}
	animator := mainloop.NewAnimator(mainloop.DefaultTickInterval, sched.schedule)

	manager := usecase.NewFrameManager(usecase.FrameManagerDeps{
		Viewport: testViewport,
		Layouts:  usecase.NewPersistLayoutUseCase(repo),
		Animator: animator,
	})

	return &testRig{
		ctx:     testContext(),
		manager: manager,
		drag:    usecase.NewDragController(manager, animator, physics.DefaultParams()),
		sched:   sched,
		store:   store,
	}
}

// floating registers id with a 300x200 slot and detaches it, which puts the
// frame at (20, 80) with size 400x244.
func (r *testRig) floating(t *testing.T, id entity.FrameID, meta entity.ContentMetadata) {
	t.Helper()

	if !r.manager.RegisterContent(r.ctx, id, &fakeContent{name: string(id)}, meta) {
		t.Fatalf("register %s: frame not created", id)
	}
	r.manager.ReportRect(r.ctx, id, entity.Rect{X: 50, Y: 50, Width: 300, Height: 200})
	if !r.manager.Detach(r.ctx, id) {
		t.Fatalf("detach %s failed", id)
	}
}

func (r *testRig) frame(t *testing.T, id entity.FrameID) entity.Frame {
	t.Helper()
	f, ok := r.manager.Frame(id)
	if !ok {
		t.Fatalf("frame %s not found", id)
	}
	return f
}
