package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/dockframe/internal/domain/entity"
	"github.com/bnema/dockframe/internal/domain/repository"
	"github.com/bnema/dockframe/internal/logging"
)

// ManageLayoutsUseCase inspects and purges stored layouts outside of a
// running frame manager, e.g. from the CLI.
type ManageLayoutsUseCase struct {
	repo repository.LayoutRepository
}

// NewManageLayoutsUseCase creates a new ManageLayoutsUseCase.
func NewManageLayoutsUseCase(repo repository.LayoutRepository) *ManageLayoutsUseCase {
	return &ManageLayoutsUseCase{repo: repo}
}

// List returns every stored layout sorted by frame id.
func (uc *ManageLayoutsUseCase) List(ctx context.Context) ([]entity.LayoutEntry, error) {
	layouts, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list layouts: %w", err)
	}

	entries := make([]entity.LayoutEntry, 0, len(layouts))
	for id, layout := range layouts {
		entries = append(entries, entity.LayoutEntry{ID: id, Layout: layout})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	logging.FromContext(ctx).Debug().Int("count", len(entries)).Msg("listed layouts")
	return entries, nil
}

// Forget removes the layout stored for id.
func (uc *ManageLayoutsUseCase) Forget(ctx context.Context, id entity.FrameID) error {
	if id == "" {
		return fmt.Errorf("frame id cannot be empty")
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to forget layout %s: %w", id, err)
	}
	return nil
}

// Clear removes every stored layout and returns how many were removed.
func (uc *ManageLayoutsUseCase) Clear(ctx context.Context) (int, error) {
	n, err := uc.repo.Clear(ctx)
	if err != nil {
		return n, fmt.Errorf("failed to clear layouts: %w", err)
	}
	logging.FromContext(ctx).Info().Int("count", n).Msg("cleared layouts")
	return n, nil
}
