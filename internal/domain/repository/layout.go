// Package repository defines persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/dockframe/internal/domain/entity"
)

// LayoutRepository persists the last settled floating layout of each frame.
// Entries hold position and size only; mode, z-index and the pre-maximize
// snapshot are never stored.
type LayoutRepository interface {
	// Get retrieves the layout for a frame.
	// Returns nil if no layout is stored.
	Get(ctx context.Context, id entity.FrameID) (*entity.LayoutSnapshot, error)

	// Set saves or replaces the layout for a frame.
	Set(ctx context.Context, id entity.FrameID, layout entity.LayoutSnapshot) error

	// Delete removes the stored layout for a frame.
	Delete(ctx context.Context, id entity.FrameID) error

	// GetAll retrieves every stored layout keyed by frame id.
	GetAll(ctx context.Context) (map[entity.FrameID]entity.LayoutSnapshot, error)

	// Clear removes every stored layout and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
