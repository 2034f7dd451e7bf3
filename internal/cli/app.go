// Package cli holds the dependencies shared by the dockframe commands.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/dockframe/internal/application/usecase"
	"github.com/bnema/dockframe/internal/bootstrap"
	"github.com/bnema/dockframe/internal/cli/styles"
	"github.com/bnema/dockframe/internal/domain/build"
	"github.com/bnema/dockframe/internal/infrastructure/config"
	"github.com/bnema/dockframe/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	Manager   *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	// Context with logger
	ctx        context.Context
	logCleanup func() error
}

// NewApp loads configFile, or the XDG config file when empty, and builds
// the logger every command shares.
func NewApp(configFile string, stderr io.Writer) (*App, error) {
	mgr, err := config.NewManager(configFile)
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, cleanup, err := bootstrap.NewLogger(cfg.Logging, stderr)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	logger.Debug().Str("config", mgr.GetConfigFile()).Msg("config loaded")

	return &App{
		Config:     cfg,
		Manager:    mgr,
		Theme:      styles.NewTheme(),
		ctx:        logging.WithContext(context.Background(), logger),
		logCleanup: cleanup,
	}, nil
}

// OpenLayouts opens the configured layout store for maintenance commands.
// The returned function closes the store.
func (a *App) OpenLayouts(ctx context.Context) (*usecase.ManageLayoutsUseCase, func() error, error) {
	store, err := bootstrap.OpenStore(ctx, a.Config.Persistence)
	if err != nil {
		return nil, nil, fmt.Errorf("open layout store: %w", err)
	}
	repo := bootstrap.NewLayoutRepository(ctx, store, a.Config.Persistence)
	return usecase.NewManageLayoutsUseCase(repo), store.Close, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.logCleanup != nil {
		return a.logCleanup()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
