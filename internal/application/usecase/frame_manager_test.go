package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	portmocks "github.com/bnema/dockframe/internal/application/port/mocks"
	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/domain/entity"
	repomocks "github.com/bnema/dockframe/internal/domain/repository/mocks"
)

func TestFrameManager_DetachComputesInitialLayout(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	require.True(t, rig.manager.RegisterContent(ctx, "v1", &fakeContent{name: "video"}, entity.ContentMetadata{}))
	require.True(t, rig.manager.ReportRect(ctx, "v1", entity.Rect{X: 50, Y: 50, Width: 300, Height: 200}))

	require.True(t, rig.manager.Detach(ctx, "v1"))

	f := rig.frame(t, "v1")
	assert.Equal(t, entity.ModeFloating, f.Mode)
	assert.Equal(t, entity.Size{Width: 400, Height: 244}, f.Size)
	assert.Equal(t, entity.Point{X: 20, Y: 80}, f.Position)
	assert.Positive(t, f.ZIndex)
	assert.True(t, rig.manager.IsDetached("v1"))
	assert.False(t, rig.manager.IsDocked("v1"))
}

func TestFrameManager_DetachRequiresSlotRect(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	require.True(t, rig.manager.RegisterContent(ctx, "v1", &fakeContent{}, entity.ContentMetadata{}))

	assert.False(t, rig.manager.Detach(ctx, "v1"))
	assert.Equal(t, entity.ModeInline, rig.frame(t, "v1").Mode)

	assert.False(t, rig.manager.Detach(ctx, "missing"))
}

func TestFrameManager_DetachAsksRectReporter(t *testing.T) {
	ctx := testContext()

	rects := portmocks.NewMockRectReporter(t)
	rects.EXPECT().SlotRect(mock.Anything, entity.FrameID("v1")).
		Return(entity.Rect{X: 0, Y: 0, Width: 1600, Height: 900}, true).
		Once()

	m := usecase.NewFrameManager(usecase.FrameManagerDeps{Viewport: testViewport, Rects: rects})
	require.True(t, m.RegisterContent(ctx, "v1", &fakeContent{}, entity.ContentMetadata{}))
	require.True(t, m.Detach(ctx, "v1"))

	f, ok := m.Frame("v1")
	require.True(t, ok)
	assert.Equal(t, entity.Size{Width: 1240, Height: 700}, f.Size)

	rec, ok := m.Record("v1")
	require.True(t, ok)
	require.NotNil(t, rec.SlotRect)
	assert.InDelta(t, 1600, rec.SlotRect.Width, 0)
}

func TestFrameManager_ContentIdentityIsStable(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	first := &fakeContent{name: "first"}
	second := &fakeContent{name: "second"}

	t.Run("re-register keeps handle and refreshes cosmetics", func(t *testing.T) {
		require.True(t, rig.manager.RegisterContent(ctx, "doc", first, entity.ContentMetadata{Title: "Old"}))
		assert.False(t, rig.manager.RegisterContent(ctx, "doc", second, entity.ContentMetadata{
			Title: "New",
			Theme: entity.ThemeDark,
		}))

		got, ok := rig.manager.Content("doc")
		require.True(t, ok)
		assert.Same(t, first, got)

		rec, _ := rig.manager.Record("doc")
		assert.Equal(t, "New", rec.Metadata.Title)
		assert.Equal(t, entity.ThemeDark, rec.Metadata.Theme)
	})

	t.Run("register unregister register keeps the first handle", func(t *testing.T) {
		assert.True(t, rig.manager.UnregisterContent(ctx, "doc"))
		_, ok := rig.manager.Frame("doc")
		assert.False(t, ok)

		assert.True(t, rig.manager.RegisterContent(ctx, "doc", second, entity.ContentMetadata{}))

		got, ok := rig.manager.Content("doc")
		require.True(t, ok)
		assert.Same(t, first, got)

		rec, _ := rig.manager.Record("doc")
		assert.True(t, rec.Declared)
		assert.Equal(t, entity.ModeInline, rig.frame(t, "doc").Mode)
	})

	t.Run("close ends the identity", func(t *testing.T) {
		require.True(t, rig.manager.Close(ctx, "doc"))
		_, ok := rig.manager.Content("doc")
		assert.False(t, ok)

		require.True(t, rig.manager.RegisterContent(ctx, "doc", second, entity.ContentMetadata{}))
		got, _ := rig.manager.Content("doc")
		assert.Same(t, second, got)
	})
}

func TestFrameManager_RegisterRejectsEmptyInput(t *testing.T) {
	rig := newTestRig(t)

	assert.False(t, rig.manager.RegisterContent(rig.ctx, "", &fakeContent{}, entity.ContentMetadata{}))
	assert.False(t, rig.manager.RegisterContent(rig.ctx, "v1", nil, entity.ContentMetadata{}))
	assert.Empty(t, rig.manager.Frames())
}

func TestFrameManager_DetachedFrameSurvivesUnregister(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})
	content, _ := rig.manager.Content("x")

	assert.False(t, rig.manager.UnregisterContent(ctx, "x"))

	assert.True(t, rig.manager.IsDetached("x"))
	got, ok := rig.manager.Content("x")
	require.True(t, ok)
	assert.Same(t, content, got)

	rec, _ := rig.manager.Record("x")
	assert.False(t, rec.Declared)
	assert.Nil(t, rec.SlotRect)

	// Docked and maximized frames are detached too.
	require.True(t, rig.manager.Dock(ctx, "x", entity.DockRight, 200))
	assert.False(t, rig.manager.UnregisterContent(ctx, "x"))
	assert.True(t, rig.manager.IsDocked("x"))

	require.True(t, rig.manager.Maximize(ctx, "x"))
	assert.False(t, rig.manager.UnregisterContent(ctx, "x"))
	assert.True(t, rig.manager.IsDetached("x"))

	// Once back inline the next unregister destroys the frame.
	rig.floating(t, "y", entity.ContentMetadata{})
	require.True(t, rig.manager.Attach(ctx, "y"))
	assert.True(t, rig.manager.UnregisterContent(ctx, "y"))
	assert.False(t, rig.manager.IsDetached("y"))
}

func TestFrameManager_AttachDropsUnregisteredFrame(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})
	content, _ := rig.manager.Content("x")
	require.False(t, rig.manager.UnregisterContent(ctx, "x"))

	require.True(t, rig.manager.Attach(ctx, "x"))
	_, ok := rig.manager.Frame("x")
	assert.False(t, ok, "no page is left to hold the frame inline")
	assert.Empty(t, rig.manager.Frames())
	assert.False(t, rig.manager.UnregisterContent(ctx, "x"))

	// The handle survives for the next page that declares x.
	require.True(t, rig.manager.RegisterContent(ctx, "x", &fakeContent{}, entity.ContentMetadata{}))
	got, ok := rig.manager.Content("x")
	require.True(t, ok)
	assert.Same(t, content, got)
	f, ok := rig.manager.Frame("x")
	require.True(t, ok)
	assert.Equal(t, entity.ModeInline, f.Mode)
}

func TestFrameManager_FramesListsInlineFirst(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "a", entity.ContentMetadata{})
	rig.floating(t, "b", entity.ContentMetadata{})
	require.True(t, rig.manager.Attach(ctx, "b"))

	frames := rig.manager.Frames()
	require.Len(t, frames, 2)
	assert.Equal(t, entity.FrameID("b"), frames[0].ID)
	assert.Equal(t, entity.ModeInline, frames[0].Mode)
	assert.Equal(t, entity.FrameID("a"), frames[1].ID)
}

func TestFrameManager_ZOrderIsTotal(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	ids := []entity.FrameID{"a", "b", "c"}
	for _, id := range ids {
		rig.floating(t, id, entity.ContentMetadata{})
	}

	calls := []entity.FrameID{"b", "a", "c", "c", "a", "b", "a"}
	seen := make(map[int64]bool)
	for _, id := range calls {
		z, ok := rig.manager.BringToFront(ctx, id)
		require.True(t, ok)
		assert.False(t, seen[z], "z-index %d reused", z)
		seen[z] = true
	}

	last := rig.frame(t, "a")
	for _, id := range ids[1:] {
		assert.Greater(t, last.ZIndex, rig.frame(t, id).ZIndex)
	}

	frames := rig.manager.Frames()
	require.Len(t, frames, 3)
	assert.Equal(t, entity.FrameID("a"), frames[2].ID)
}

func TestFrameManager_BringToFrontScenario(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "a", entity.ContentMetadata{})
	rig.floating(t, "b", entity.ContentMetadata{})

	rig.manager.BringToFront(ctx, "a")
	rig.manager.BringToFront(ctx, "b")
	rig.manager.BringToFront(ctx, "a")

	assert.Greater(t, rig.frame(t, "a").ZIndex, rig.frame(t, "b").ZIndex)
}

func TestFrameManager_MaximizeRestoreRoundTrip(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})
	require.True(t, rig.manager.UpdatePosition(ctx, "x", entity.Point{X: 133.25, Y: 97.5}))
	before := rig.frame(t, "x")

	require.True(t, rig.manager.Maximize(ctx, "x"))
	maxed := rig.frame(t, "x")
	assert.Equal(t, entity.ModeMaximized, maxed.Mode)
	assert.Equal(t, entity.Point{}, maxed.Position)
	assert.Equal(t, testViewport.Size(), maxed.Size)
	require.NotNil(t, maxed.PreMaximize)

	assert.False(t, rig.manager.Maximize(ctx, "x"))
	assert.Equal(t, maxed.PreMaximize, rig.frame(t, "x").PreMaximize)

	require.True(t, rig.manager.Restore(ctx, "x"))
	after := rig.frame(t, "x")
	assert.Equal(t, entity.ModeFloating, after.Mode)
	assert.Equal(t, before.Position, after.Position)
	assert.Equal(t, before.Size, after.Size)
	assert.Nil(t, after.PreMaximize)
}

func TestFrameManager_MaximizeFromDocked(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})
	require.True(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 300))
	require.True(t, rig.manager.Maximize(ctx, "x"))

	require.True(t, rig.manager.Restore(ctx, "x"))
	f := rig.frame(t, "x")
	assert.Equal(t, entity.ModeFloating, f.Mode)
	assert.Equal(t, entity.Point{X: 20, Y: 80}, f.Position)
}

func TestFrameManager_DockUndock(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})

	require.True(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 300))
	f := rig.frame(t, "x")
	assert.Equal(t, entity.ModeDockedLeft, f.Mode)
	assert.InDelta(t, 300, f.DockY, 0)

	require.True(t, rig.manager.Undock(ctx, "x"))
	f = rig.frame(t, "x")
	assert.Equal(t, entity.ModeFloating, f.Mode)
	assert.Equal(t, entity.Point{X: 20, Y: 300}, f.Position)

	require.True(t, rig.manager.Dock(ctx, "x", entity.DockRight, 150))
	require.True(t, rig.manager.Undock(ctx, "x"))
	assert.Equal(t, entity.Point{X: 1280 - 400 - 20, Y: 150}, rig.frame(t, "x").Position)
}

func TestFrameManager_InvalidTransitionsAreIgnored(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	require.True(t, rig.manager.RegisterContent(ctx, "inline", &fakeContent{}, entity.ContentMetadata{}))
	rig.floating(t, "x", entity.ContentMetadata{})

	tests := []struct {
		name string
		run  func() bool
	}{
		{"attach inline", func() bool { return rig.manager.Attach(ctx, "inline") }},
		{"maximize inline", func() bool { return rig.manager.Maximize(ctx, "inline") }},
		{"dock inline", func() bool { return rig.manager.Dock(ctx, "inline", entity.DockLeft, 0) }},
		{"bring inline to front", func() bool {
			_, ok := rig.manager.BringToFront(ctx, "inline")
			return ok
		}},
		{"restore floating", func() bool { return rig.manager.Restore(ctx, "x") }},
		{"undock floating", func() bool { return rig.manager.Undock(ctx, "x") }},
		{"detach floating", func() bool { return rig.manager.Detach(ctx, "x") }},
		{"unknown id", func() bool { return rig.manager.Attach(ctx, "nope") }},
		{"unknown id position", func() bool { return rig.manager.UpdatePosition(ctx, "nope", entity.Point{}) }},
		{"unknown id close", func() bool { return rig.manager.Close(ctx, "nope") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := rig.manager.Frames()
			assert.False(t, tt.run())
			assert.Equal(t, before, rig.manager.Frames())
		})
	}

	t.Run("geometry updates while maximized", func(t *testing.T) {
		require.True(t, rig.manager.Maximize(ctx, "x"))
		before := rig.frame(t, "x")

		assert.False(t, rig.manager.UpdatePosition(ctx, "x", entity.Point{X: 5, Y: 5}))
		assert.False(t, rig.manager.UpdateSize(ctx, "x", entity.Size{Width: 500, Height: 500}))
		assert.False(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 0))
		assert.Equal(t, before, rig.frame(t, "x"))
	})

	t.Run("geometry updates while docked", func(t *testing.T) {
		require.True(t, rig.manager.Restore(ctx, "x"))
		require.True(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 10))
		before := rig.frame(t, "x")

		assert.False(t, rig.manager.UpdatePosition(ctx, "x", entity.Point{X: 5, Y: 5}))
		assert.False(t, rig.manager.UpdateSize(ctx, "x", entity.Size{Width: 500, Height: 500}))
		assert.Equal(t, before, rig.frame(t, "x"))
	})
}

func TestFrameManager_UpdateSizeAppliesAspectLock(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "v", entity.ContentMetadata{AspectRatio: 16.0 / 9.0})

	require.True(t, rig.manager.UpdateSize(ctx, "v", entity.Size{Width: 640, Height: 1}))
	size := rig.frame(t, "v").Size
	assert.InDelta(t, 640, size.Width, 0)
	assert.InDelta(t, 360+44, size.Height, 1e-9)

	require.True(t, rig.manager.UpdateSize(ctx, "v", entity.Size{Width: 10, Height: 10}))
	size = rig.frame(t, "v").Size
	assert.InDelta(t, 200, size.Width, 0)
	assert.InDelta(t, 200/(16.0/9.0)+44, size.Height, 1e-9)
}

func TestFrameManager_PersistenceExclusions(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx
	meta := entity.ContentMetadata{Persist: true}

	rig.floating(t, "x", meta)
	require.True(t, rig.manager.UpdatePosition(ctx, "x", entity.Point{X: 300, Y: 200}))

	floatingLayout := entity.LayoutSnapshot{
		Position: entity.Point{X: 300, Y: 200},
		Size:     entity.Size{Width: 400, Height: 244},
	}
	stored, ok := rig.store.get("x")
	require.True(t, ok)
	assert.Equal(t, floatingLayout, stored)

	require.True(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 250))
	stored, _ = rig.store.get("x")
	assert.Equal(t, floatingLayout, stored, "dock must not overwrite the floating layout")

	require.True(t, rig.manager.Maximize(ctx, "x"))
	stored, _ = rig.store.get("x")
	assert.Equal(t, floatingLayout, stored, "maximize must not overwrite the floating layout")

	rig.manager.SetViewport(ctx, entity.Viewport{Width: 1920, Height: 1080})
	stored, _ = rig.store.get("x")
	assert.Equal(t, floatingLayout, stored)

	require.True(t, rig.manager.Close(ctx, "x"))
	_, ok = rig.store.get("x")
	assert.False(t, ok, "close removes the persisted layout")
}

func TestFrameManager_PersistedLayoutSeedsFrame(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	saved := entity.LayoutSnapshot{
		Position: entity.Point{X: 600, Y: 300},
		Size:     entity.Size{Width: 500, Height: 320},
	}
	rig.store.entries["x"] = saved

	require.True(t, rig.manager.RegisterContent(ctx, "x", &fakeContent{}, entity.ContentMetadata{Persist: true}))
	f := rig.frame(t, "x")
	assert.Equal(t, entity.ModeInline, f.Mode)
	assert.Equal(t, saved.Position, f.Position)
	assert.Equal(t, saved.Size, f.Size)

	rig.manager.ReportRect(ctx, "x", entity.Rect{Width: 300, Height: 200})
	require.True(t, rig.manager.Detach(ctx, "x"))
	f = rig.frame(t, "x")
	assert.Equal(t, saved.Position, f.Position)
	assert.Equal(t, saved.Size, f.Size)

	// The seed is used once; the next detach computes a fresh layout.
	require.True(t, rig.manager.Attach(ctx, "x"))
	require.True(t, rig.manager.Detach(ctx, "x"))
	assert.Equal(t, entity.Point{X: 20, Y: 80}, rig.frame(t, "x").Position)
}

func TestFrameManager_WithoutPersistNeverTouchesStore(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)

	m := usecase.NewFrameManager(usecase.FrameManagerDeps{
		Viewport: testViewport,
		Layouts:  usecase.NewPersistLayoutUseCase(repo),
	})

	require.True(t, m.RegisterContent(ctx, "x", &fakeContent{}, entity.ContentMetadata{}))
	m.ReportRect(ctx, "x", entity.Rect{Width: 300, Height: 200})
	require.True(t, m.Detach(ctx, "x"))
	require.True(t, m.UpdatePosition(ctx, "x", entity.Point{X: 1, Y: 1}))
	require.True(t, m.Close(ctx, "x"))
}

func TestFrameManager_StoreFailuresAreSwallowed(t *testing.T) {
	ctx := testContext()
	repo := repomocks.NewMockLayoutRepository(t)
	storeErr := errors.New("store unavailable")

	repo.EXPECT().Get(mock.Anything, entity.FrameID("x")).Return(nil, storeErr).Once()
	repo.EXPECT().Set(mock.Anything, entity.FrameID("x"), mock.Anything).Return(storeErr)

	m := usecase.NewFrameManager(usecase.FrameManagerDeps{
		Viewport: testViewport,
		Layouts:  usecase.NewPersistLayoutUseCase(repo),
	})

	require.True(t, m.RegisterContent(ctx, "x", &fakeContent{}, entity.ContentMetadata{Persist: true}))
	m.ReportRect(ctx, "x", entity.Rect{Width: 300, Height: 200})
	require.True(t, m.Detach(ctx, "x"))

	f, _ := m.Frame("x")
	assert.Equal(t, entity.Point{X: 20, Y: 80}, f.Position)
}

func TestFrameManager_SetViewport(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "f", entity.ContentMetadata{Persist: true})
	rig.floating(t, "m", entity.ContentMetadata{})
	require.True(t, rig.manager.UpdatePosition(ctx, "f", entity.Point{X: 800, Y: 500}))
	require.True(t, rig.manager.Maximize(ctx, "m"))

	small := entity.Viewport{Width: 1000, Height: 600}
	rig.manager.SetViewport(ctx, small)

	assert.Equal(t, small, rig.manager.Viewport())
	assert.Equal(t, small.Size(), rig.frame(t, "m").Size)
	assert.Equal(t, entity.Point{X: 600, Y: 356}, rig.frame(t, "f").Position)

	stored, _ := rig.store.get("f")
	assert.Equal(t, entity.Point{X: 600, Y: 356}, stored.Position)
}

func TestFrameManager_CloseFromAnyMode(t *testing.T) {
	rig := newTestRig(t)
	ctx := rig.ctx

	rig.floating(t, "x", entity.ContentMetadata{})
	require.True(t, rig.manager.Dock(ctx, "x", entity.DockLeft, 0))

	assert.True(t, rig.manager.Close(ctx, "x"))
	_, ok := rig.manager.Frame("x")
	assert.False(t, ok)
	assert.False(t, rig.manager.IsDetached("x"))
}

func TestPersistLayoutUseCase_NilRepository(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewPersistLayoutUseCase(nil)

	_, ok := uc.Load(ctx, "x")
	assert.False(t, ok)
	uc.Save(ctx, "x", entity.LayoutSnapshot{})
	uc.Remove(ctx, "x")
}

func TestPersistLayoutUseCase_CoalescesWrites(t *testing.T) {
	ctx := testContext()
	repo, store := newLayoutRepo(t)

	var queued []func()
	pending := map[string]bool{}
	uc := usecase.NewPersistLayoutUseCase(repo)
	uc.SetWriteCoalescer(func(key string, fn func()) {
		if pending[key] {
			queued[len(queued)-1] = fn
			return
		}
		pending[key] = true
		queued = append(queued, fn)
	})

	uc.Save(ctx, "x", entity.LayoutSnapshot{Position: entity.Point{X: 1}})
	uc.Save(ctx, "x", entity.LayoutSnapshot{Position: entity.Point{X: 2}})
	require.Len(t, queued, 1)
	queued[0]()

	stored, _ := store.get("x")
	assert.InDelta(t, 2, stored.Position.X, 0)
	assert.Equal(t, 1, store.writes)
}

func TestPersistLayoutUseCase_LoadSeesQueuedWrites(t *testing.T) {
	ctx := testContext()
	repo, store := newLayoutRepo(t)

	old := entity.LayoutSnapshot{Position: entity.Point{X: 333, Y: 222}, Size: entity.Size{Width: 500, Height: 300}}
	fresh := entity.LayoutSnapshot{Position: entity.Point{X: 20, Y: 80}, Size: entity.Size{Width: 400, Height: 244}}

	queued := map[string]func(){}
	uc := usecase.NewPersistLayoutUseCase(repo)
	uc.SetWriteCoalescer(func(key string, fn func()) { queued[key] = fn })

	uc.Save(ctx, "p", old)
	queued["layout:p"]()
	delete(queued, "layout:p")

	uc.Remove(ctx, "p")
	_, ok := uc.Load(ctx, "p")
	assert.False(t, ok, "queued removal must hide the stored layout")

	uc.Save(ctx, "p", fresh)
	got, ok := uc.Load(ctx, "p")
	require.True(t, ok)
	assert.Equal(t, fresh, got)

	require.Len(t, queued, 1)
	queued["layout:p"]()
	stored, ok := store.get("p")
	require.True(t, ok)
	assert.Equal(t, fresh, stored)

	got, ok = uc.Load(ctx, "p")
	require.True(t, ok)
	assert.Equal(t, fresh, got)
}
