// Package usecase contains application use cases that orchestrate domain logic.
package usecase

import (
	"context"
	"sync"

	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/repository"
	"github.com/bnema/dockframe/internal/logging"
)

// PersistLayoutUseCase loads and stores floating layouts. Persistence is best
// effort: every repository failure is logged and swallowed so frame
// operations never fail because of the store.
type PersistLayoutUseCase struct {
	repo repository.LayoutRepository
	post func(key string, fn func())

	// Writes queued through post and not yet run. Load answers from here
	// first so a frame never sees a layout that a queued write replaces.
	mu      sync.Mutex
	seq     uint64
	pending map[entity.FrameID]pendingWrite
}

// pendingWrite is a queued save, or a queued remove when layout is nil.
type pendingWrite struct {
	seq    uint64
	layout *entity.LayoutSnapshot
}

// NewPersistLayoutUseCase creates a layout persistence use case. repo may be
// nil, which disables persistence entirely.
func NewPersistLayoutUseCase(repo repository.LayoutRepository) *PersistLayoutUseCase {
	return &PersistLayoutUseCase{repo: repo, pending: make(map[entity.FrameID]pendingWrite)}
}

// SetWriteCoalescer routes writes through post, keyed per frame, so a burst
// of settles collapses into one store write. Typically Coalescer.Post.
func (uc *PersistLayoutUseCase) SetWriteCoalescer(post func(key string, fn func())) {
	uc.post = post
}

// Load returns the stored layout for a frame, if any. Malformed or
// unreadable entries are treated as missing.
func (uc *PersistLayoutUseCase) Load(ctx context.Context, id entity.FrameID) (entity.LayoutSnapshot, bool) {
	if uc == nil || uc.repo == nil {
		return entity.LayoutSnapshot{}, false
	}
	log := logging.FromContext(ctx)

	if w, ok := uc.queued(id); ok {
		if w.layout == nil || w.layout.Size.IsEmpty() {
			log.Debug().Str("frame_id", string(id)).Msg("frame layout removal pending, using defaults")
			return entity.LayoutSnapshot{}, false
		}
		return *w.layout, true
	}

	layout, err := uc.repo.Get(ctx, id)
	if err != nil {
		log.Warn().Err(err).Str("frame_id", string(id)).Msg("failed to load frame layout, using defaults")
		return entity.LayoutSnapshot{}, false
	}
	if layout == nil || layout.Size.IsEmpty() {
		return entity.LayoutSnapshot{}, false
	}

	log.Debug().
		Str("frame_id", string(id)).
		Float64("x", layout.Position.X).
		Float64("y", layout.Position.Y).
		Msg("loaded frame layout")
	return *layout, true
}

// Save stores a settled floating layout.
func (uc *PersistLayoutUseCase) Save(ctx context.Context, id entity.FrameID, layout entity.LayoutSnapshot) {
	if uc == nil || uc.repo == nil {
		return
	}

	write := func() {
		if err := uc.repo.Set(ctx, id, layout); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("frame_id", string(id)).Msg("failed to save frame layout")
		}
	}

	if uc.post != nil {
		uc.enqueue(id, &layout, write)
		return
	}
	write()
}

// Remove deletes the stored layout of a closed frame.
func (uc *PersistLayoutUseCase) Remove(ctx context.Context, id entity.FrameID) {
	if uc == nil || uc.repo == nil {
		return
	}

	remove := func() {
		if err := uc.repo.Delete(ctx, id); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("frame_id", string(id)).Msg("failed to remove frame layout")
		}
	}

	// Share the write key so a queued save cannot land after the delete.
	if uc.post != nil {
		uc.enqueue(id, nil, remove)
		return
	}
	remove()
}

// enqueue records a pending write for id and posts it under the frame's
// write key. A later write for id replaces both the record and the task.
func (uc *PersistLayoutUseCase) enqueue(id entity.FrameID, layout *entity.LayoutSnapshot, fn func()) {
	uc.mu.Lock()
	uc.seq++
	seq := uc.seq
	uc.pending[id] = pendingWrite{seq: seq, layout: layout}
	uc.mu.Unlock()

	uc.post("layout:"+string(id), func() {
		fn()
		uc.mu.Lock()
		if w, ok := uc.pending[id]; ok && w.seq == seq {
			delete(uc.pending, id)
		}
		uc.mu.Unlock()
	})
}

func (uc *PersistLayoutUseCase) queued(id entity.FrameID) (pendingWrite, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	w, ok := uc.pending[id]
	return w, ok
}
