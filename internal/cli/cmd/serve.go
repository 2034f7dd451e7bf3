package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/dockframe/internal/app/api"
	"github.com/bnema/dockframe/internal/bootstrap"
	"github.com/bnema/dockframe/internal/infrastructure/config"
	"github.com/bnema/dockframe/internal/logging"
)

var (
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the shell API",
	Long: `Run the frame manager and serve its HTTP/JSON API to a browser-side shell.

Geometry and physics settings are reloaded when the config file changes;
storage and listen address changes need a restart.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", true, "reload geometry and physics on config change")
}

func runServe(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	log := logging.FromContext(ctx)

	timer := bootstrap.NewStartupTimer()
	rt, err := bootstrap.NewRuntime(ctx, bootstrap.Options{Config: a.Config})
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close layout store")
		}
	}()
	timer.Mark("runtime")

	if serveWatch {
		a.Manager.OnConfigChange(func(cfg *config.Config) { rt.ApplyConfig(ctx, cfg) })
		if err := a.Manager.Watch(); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}
	timer.Mark("watch")

	addr := a.Config.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	srv := api.NewServer(addr, rt.Handler().Routes(ctx))
	timer.Mark("server")
	timer.Log(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return rt.Run(gctx) })
	g.Go(func() error { return srv.Run(gctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("dockframe stopped")
	return nil
}
