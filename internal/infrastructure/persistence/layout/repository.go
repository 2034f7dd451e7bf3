// Package layout persists floating frame layouts as JSON strings in a
// key-value store, one entry per frame id.
package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bnema/dockframe/internal/application/port"
	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/repository"
	"github.com/bnema/dockframe/internal/logging"
)

// DefaultKeyPrefix namespaces layout entries in a shared store.
const DefaultKeyPrefix = "dockframe:layout:"

// ErrMalformed is returned for entries that are not a valid layout.
var ErrMalformed = errors.New("malformed layout entry")

// Repository implements repository.LayoutRepository over a KeyValueStore.
// An optional cache keeps decoded entries; it is write-through, so it is
// only safe when this process is the sole writer of the prefix.
type Repository struct {
	store  port.KeyValueStore
	prefix string
	cache  port.Cache[entity.FrameID, entity.LayoutSnapshot]
}

var _ repository.LayoutRepository = (*Repository)(nil)

// NewRepository creates a layout repository. cache may be nil.
func NewRepository(
	store port.KeyValueStore,
	prefix string,
	cache port.Cache[entity.FrameID, entity.LayoutSnapshot],
) *Repository {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Repository{store: store, prefix: prefix, cache: cache}
}

// Key returns the store key for id.
func (r *Repository) Key(id entity.FrameID) string {
	return r.prefix + string(id)
}

func (r *Repository) Get(ctx context.Context, id entity.FrameID) (*entity.LayoutSnapshot, error) {
	if r.cache != nil {
		if l, ok := r.cache.Get(id); ok {
			return &l, nil
		}
	}

	raw, ok, err := r.store.Get(ctx, r.Key(id))
	if err != nil {
		return nil, fmt.Errorf("failed to read layout: %w", err)
	}
	if !ok {
		return nil, nil
	}

	l, err := Decode(raw)
	if err != nil {
		return nil, fmt.Errorf("layout %q: %w", id, err)
	}
	if r.cache != nil {
		r.cache.Set(id, l)
	}
	return &l, nil
}

func (r *Repository) Set(ctx context.Context, id entity.FrameID, l entity.LayoutSnapshot) error {
	raw, err := Encode(l)
	if err != nil {
		return err
	}

	logging.FromContext(ctx).Debug().
		Str("frame_id", string(id)).
		Str("layout", raw).
		Msg("saving layout")

	if err := r.store.Set(ctx, r.Key(id), raw); err != nil {
		if r.cache != nil {
			r.cache.Remove(id)
		}
		return fmt.Errorf("failed to write layout: %w", err)
	}
	if r.cache != nil {
		r.cache.Set(id, l)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id entity.FrameID) error {
	if r.cache != nil {
		r.cache.Remove(id)
	}
	if err := r.store.Remove(ctx, r.Key(id)); err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}
	return nil
}

// GetAll returns every decodable layout under the prefix. Malformed entries
// are logged and skipped.
func (r *Repository) GetAll(ctx context.Context) (map[entity.FrameID]entity.LayoutSnapshot, error) {
	keys, err := r.store.Keys(ctx, r.prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	out := make(map[entity.FrameID]entity.LayoutSnapshot, len(keys))
	for _, key := range keys {
		id := entity.FrameID(strings.TrimPrefix(key, r.prefix))
		l, err := r.Get(ctx, id)
		if err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("key", key).Msg("skipping layout entry")
			continue
		}
		if l != nil {
			out[id] = *l
		}
	}
	return out, nil
}

// Clear removes every entry under the prefix, malformed ones included, and
// returns how many were removed.
func (r *Repository) Clear(ctx context.Context) (int, error) {
	keys, err := r.store.Keys(ctx, r.prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to list layouts: %w", err)
	}
	for i, key := range keys {
		if err := r.store.Remove(ctx, key); err != nil {
			return i, fmt.Errorf("failed to delete %q: %w", key, err)
		}
	}
	if r.cache != nil {
		r.cache.Purge()
	}
	return len(keys), nil
}

// wireLayout mirrors the stored JSON. Pointers make missing fields visible.
type wireLayout struct {
	Position *struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"position"`
	Size *struct {
		Width  *float64 `json:"width"`
		Height *float64 `json:"height"`
	} `json:"size"`
}

// Encode renders a layout as {"position":{"x":..,"y":..},"size":{"width":..,"height":..}}.
func Encode(l entity.LayoutSnapshot) (string, error) {
	if !valid(l) {
		return "", ErrMalformed
	}
	b, err := json.Marshal(l)
	if err != nil {
		return "", fmt.Errorf("failed to encode layout: %w", err)
	}
	return string(b), nil
}

// Decode parses a stored layout. Missing fields, non-finite numbers and
// negative sizes are ErrMalformed.
func Decode(raw string) (entity.LayoutSnapshot, error) {
	var w wireLayout
	if err := json.Unmarshal([]byte(raw), &w); err != nil {
		return entity.LayoutSnapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Position == nil || w.Size == nil ||
		w.Position.X == nil || w.Position.Y == nil ||
		w.Size.Width == nil || w.Size.Height == nil {
		return entity.LayoutSnapshot{}, fmt.Errorf("%w: missing field", ErrMalformed)
	}

	l := entity.LayoutSnapshot{
		Position: entity.Point{X: *w.Position.X, Y: *w.Position.Y},
		Size:     entity.Size{Width: *w.Size.Width, Height: *w.Size.Height},
	}
	if !valid(l) {
		return entity.LayoutSnapshot{}, fmt.Errorf("%w: out of range", ErrMalformed)
	}
	return l, nil
}

func valid(l entity.LayoutSnapshot) bool {
	for _, v := range []float64{l.Position.X, l.Position.Y, l.Size.Width, l.Size.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return l.Size.Width >= 0 && l.Size.Height >= 0
}
